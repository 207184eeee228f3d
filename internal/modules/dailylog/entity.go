package dailylog

import (
	"context"
	"net/http"
	"time"
)

// DailyLog is the GORM model for 'daily_logs'. One row per device and local date.
type DailyLog struct {
	ID               uint      `gorm:"primaryKey;column:id" json:"id"`
	DeviceID         string    `gorm:"column:device_id;type:varchar(128);not null;uniqueIndex:uq_daily_logs_device_date" json:"deviceId"`
	Date             string    `gorm:"column:date;type:varchar(10);not null;uniqueIndex:uq_daily_logs_device_date" json:"date"`
	CigarettesSmoked int       `gorm:"column:cigarettes_smoked;not null" json:"cigarettesSmoked"`
	CigarettesGoal   int       `gorm:"column:cigarettes_goal;not null" json:"cigarettesGoal"`
	CreatedAt        time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (DailyLog) TableName() string {
	return "daily_logs"
}

// DailyLogResponse omits the row id for synthetic (never stored) logs.
type DailyLogResponse struct {
	ID               *uint  `json:"id,omitempty"`
	DeviceID         string `json:"deviceId"`
	Date             string `json:"date"`
	CigarettesSmoked int    `json:"cigarettesSmoked"`
	CigarettesGoal   int    `json:"cigarettesGoal"`
}

type UpsertDailyLogRequest struct {
	DeviceID         string `json:"deviceId" validate:"required,max=128"`
	Date             string `json:"date" validate:"required,ymd"`
	CigarettesSmoked int    `json:"cigarettesSmoked" validate:"min=0"`
	CigarettesGoal   int    `json:"cigarettesGoal" validate:"min=0"`
}

// ArchiveResult describes one uploaded archive object.
type ArchiveResult struct {
	Date  string
	Key   string
	Count int
}

func ToDailyLogResponse(l *DailyLog) *DailyLogResponse {
	if l == nil {
		return nil
	}
	r := &DailyLogResponse{
		DeviceID:         l.DeviceID,
		Date:             l.Date,
		CigarettesSmoked: l.CigarettesSmoked,
		CigarettesGoal:   l.CigarettesGoal,
	}
	if l.ID != 0 {
		id := l.ID
		r.ID = &id
	}
	return r
}

// GoalProvider returns the device's configured daily goal.
type GoalProvider interface {
	GetDailyGoal(ctx context.Context, deviceID string) (int, error)
}

// StatsInvalidator drops any cached statistics for the device.
type StatsInvalidator interface {
	InvalidateStats(ctx context.Context, deviceID string) error
}

type Controller interface {
	GetDailyLog(w http.ResponseWriter, r *http.Request)
	UpsertDailyLog(w http.ResponseWriter, r *http.Request)
	IncrementDailyLog(w http.ResponseWriter, r *http.Request)
}

type UseCase interface {
	GetDailyLog(ctx context.Context, deviceID, date string) (*DailyLogResponse, error)
	UpsertDailyLog(ctx context.Context, req UpsertDailyLogRequest) (*DailyLogResponse, error)
	IncrementDailyLog(ctx context.Context, deviceID, date string) (*DailyLogResponse, error)
	ArchiveDay(ctx context.Context, date string) (*ArchiveResult, error)
}

type Repo interface {
	GetDailyLog(ctx context.Context, deviceID, date string) (*DailyLog, error)
	UpsertDailyLog(ctx context.Context, l *DailyLog) (*DailyLog, error)
	IncrementDailyLog(ctx context.Context, deviceID, date string, goal int) (*DailyLog, error)
	ListDailyLogsSince(ctx context.Context, deviceID, fromDate string) ([]*DailyLog, error)
	ListDailyLogsByDate(ctx context.Context, date string) ([]*DailyLog, error)

	ArchiveEnabled() bool
	PutArchive(ctx context.Context, key string, body []byte) error
}
