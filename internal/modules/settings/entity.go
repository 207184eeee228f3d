package settings

import (
	"context"
	"net/http"
	"time"
)

const (
	LanguageDE = "de"
	LanguageEN = "en"

	BackgroundGray  = "gray"
	BackgroundBlack = "black"
)

// Settings is the GORM model for the 'settings' table, one row per device.
type Settings struct {
	DeviceID           string     `gorm:"primaryKey;column:device_id;type:varchar(128)"`
	WakeTime           string     `gorm:"column:wake_time;type:varchar(5);not null"`
	SleepTime          string     `gorm:"column:sleep_time;type:varchar(5);not null"`
	DailyCigaretteGoal int        `gorm:"column:daily_cigarette_goal;not null"`
	Language           string     `gorm:"column:language;type:varchar(2);not null"`
	BackgroundColor    string     `gorm:"column:background_color;type:varchar(10);not null"`
	PremiumEnabled     bool       `gorm:"column:premium_enabled;not null"`
	PremiumExpiresAt   *time.Time `gorm:"column:premium_expires_at"`
	PromoCode          *string    `gorm:"column:promo_code;type:varchar(64)"`
	PushToken          *string    `gorm:"column:push_token"`
	CreatedAt          time.Time  `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP"`
}

func (Settings) TableName() string {
	return "settings"
}

// SettingsResponse is the API representation of a device's settings.
type SettingsResponse struct {
	DeviceID           string     `json:"deviceId"`
	WakeTime           string     `json:"wakeTime"`
	SleepTime          string     `json:"sleepTime"`
	DailyCigaretteGoal int        `json:"dailyCigaretteGoal"`
	Language           string     `json:"language"`
	BackgroundColor    string     `json:"backgroundColor"`
	PremiumEnabled     bool       `json:"premiumEnabled"`
	PremiumExpiresAt   *time.Time `json:"premiumExpiresAt,omitempty"`
	PromoCode          *string    `json:"promoCode,omitempty"`
	HasPushToken       bool       `json:"hasPushToken"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// UpsertSettingsRequest creates the device's settings or replaces the given fields.
// Premium state is not writable here; it is only granted through a promo code.
type UpsertSettingsRequest struct {
	DeviceID           string  `json:"deviceId" validate:"required,max=128"`
	WakeTime           string  `json:"wakeTime" validate:"required,hhmm"`
	SleepTime          string  `json:"sleepTime" validate:"required,hhmm"`
	DailyCigaretteGoal int     `json:"dailyCigaretteGoal" validate:"required,min=1,max=200"`
	Language           *string `json:"language,omitempty" validate:"omitempty,oneof=de en"`
	BackgroundColor    *string `json:"backgroundColor,omitempty" validate:"omitempty,oneof=gray black"`
	PushToken          *string `json:"pushToken,omitempty" validate:"omitempty,max=4096"`
}

// UpdateSettingsRequest is a partial update; nil fields are left untouched.
type UpdateSettingsRequest struct {
	WakeTime           *string `json:"wakeTime,omitempty" validate:"omitempty,hhmm"`
	SleepTime          *string `json:"sleepTime,omitempty" validate:"omitempty,hhmm"`
	DailyCigaretteGoal *int    `json:"dailyCigaretteGoal,omitempty" validate:"omitempty,min=1,max=200"`
	Language           *string `json:"language,omitempty" validate:"omitempty,oneof=de en"`
	BackgroundColor    *string `json:"backgroundColor,omitempty" validate:"omitempty,oneof=gray black"`
	PushToken          *string `json:"pushToken,omitempty" validate:"omitempty,max=4096"`
}

func ToSettingsResponse(s *Settings) *SettingsResponse {
	if s == nil {
		return nil
	}
	return &SettingsResponse{
		DeviceID:           s.DeviceID,
		WakeTime:           s.WakeTime,
		SleepTime:          s.SleepTime,
		DailyCigaretteGoal: s.DailyCigaretteGoal,
		Language:           s.Language,
		BackgroundColor:    s.BackgroundColor,
		PremiumEnabled:     s.PremiumEnabled,
		PremiumExpiresAt:   s.PremiumExpiresAt,
		PromoCode:          s.PromoCode,
		HasPushToken:       s.PushToken != nil && *s.PushToken != "",
		UpdatedAt:          s.UpdatedAt,
	}
}

// NewDefaultSettings returns a model with the optional fields at their defaults.
func NewDefaultSettings(deviceID string) *Settings {
	return &Settings{
		DeviceID:        deviceID,
		Language:        LanguageEN,
		BackgroundColor: BackgroundGray,
	}
}

// ApplyUpsert copies every field of the upsert request onto s. Optional fields only
// overwrite when present.
func ApplyUpsert(s *Settings, req *UpsertSettingsRequest) {
	s.WakeTime = req.WakeTime
	s.SleepTime = req.SleepTime
	s.DailyCigaretteGoal = req.DailyCigaretteGoal
	ApplyUpdate(s, &UpdateSettingsRequest{
		Language:        req.Language,
		BackgroundColor: req.BackgroundColor,
		PushToken:       req.PushToken,
	})
}

// ApplyUpdate merges a partial update into s and reports whether anything changed.
func ApplyUpdate(s *Settings, req *UpdateSettingsRequest) bool {
	changed := false
	if req.WakeTime != nil && *req.WakeTime != s.WakeTime {
		s.WakeTime = *req.WakeTime
		changed = true
	}
	if req.SleepTime != nil && *req.SleepTime != s.SleepTime {
		s.SleepTime = *req.SleepTime
		changed = true
	}
	if req.DailyCigaretteGoal != nil && *req.DailyCigaretteGoal != s.DailyCigaretteGoal {
		s.DailyCigaretteGoal = *req.DailyCigaretteGoal
		changed = true
	}
	if req.Language != nil && *req.Language != s.Language {
		s.Language = *req.Language
		changed = true
	}
	if req.BackgroundColor != nil && *req.BackgroundColor != s.BackgroundColor {
		s.BackgroundColor = *req.BackgroundColor
		changed = true
	}
	if req.PushToken != nil {
		token := *req.PushToken
		if token == "" {
			s.PushToken = nil
		} else {
			s.PushToken = &token
		}
		changed = true
	}
	return changed
}

// PushTarget is a device that can receive server-sent reminders.
type PushTarget struct {
	DeviceID  string
	PushToken string
	Language  string
}

type Controller interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpsertSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type UseCase interface {
	GetSettings(ctx context.Context, deviceID string) (*SettingsResponse, error)
	UpsertSettings(ctx context.Context, req UpsertSettingsRequest) (*SettingsResponse, error)
	UpdateSettings(ctx context.Context, deviceID string, req UpdateSettingsRequest) (*SettingsResponse, error)
	GetDailyGoal(ctx context.Context, deviceID string) (int, error)
	GrantPremium(ctx context.Context, deviceID string, promoCode string, expiresAt *time.Time) error
	ExpirePremium(ctx context.Context, now time.Time) (int64, error)
	GetPushTargets(ctx context.Context, deviceIDs []string) ([]PushTarget, error)
}

type Repo interface {
	GetSettingsByDeviceID(ctx context.Context, deviceID string) (*Settings, error)
	UpsertSettings(ctx context.Context, s *Settings) (*Settings, error)
	UpdateSettings(ctx context.Context, s *Settings) (*Settings, error)
	ExpirePremium(ctx context.Context, now time.Time) ([]string, error)
	GetPushTargets(ctx context.Context, deviceIDs []string) ([]PushTarget, error)

	GetSettingsCache(ctx context.Context, deviceID string) (*Settings, error)
	SaveSettingsCache(ctx context.Context, s *Settings) error
	DeleteSettingsCache(ctx context.Context, deviceIDs ...string) error
}
