package database

import (
	"context"
	"errors"
	"log/slog"
	"smokefree/internal/modules/alarm"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AlarmDatabase struct {
	db  *gorm.DB
	log *slog.Logger
}

var _ alarm.Repo = (*AlarmDatabase)(nil)

func NewAlarmDatabase(db *gorm.DB, log *slog.Logger) *AlarmDatabase {
	return &AlarmDatabase{
		db:  db,
		log: log,
	}
}

// GetAlarmSchedule returns nil without error when nothing is stored for the day.
func (r *AlarmDatabase) GetAlarmSchedule(ctx context.Context, deviceID, date string) (*alarm.AlarmSchedule, error) {
	op := "AlarmDatabase.GetAlarmSchedule"
	log := r.log.With(slog.String("op", op), slog.String("deviceID", deviceID), slog.String("date", date))

	var model alarm.AlarmSchedule
	err := r.db.WithContext(ctx).Where("device_id = ? AND date = ?", deviceID, date).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Error("failed to get alarm schedule", "error", err)
		return nil, alarm.ErrAlarmInternal
	}
	return &model, nil
}

func (r *AlarmDatabase) SaveAlarmSchedule(ctx context.Context, model *alarm.AlarmSchedule) (*alarm.AlarmSchedule, error) {
	op := "AlarmDatabase.SaveAlarmSchedule"
	log := r.log.With(slog.String("op", op), slog.String("deviceID", model.DeviceID), slog.String("date", model.Date))

	model.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "device_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"alarm_times", "updated_at"}),
		},
		clause.Returning{},
	).Create(model).Error
	if err != nil {
		log.Error("failed to save alarm schedule", "error", err)
		return nil, alarm.ErrAlarmInternal
	}

	log.Debug("alarm schedule saved", slog.Int("alarms", len(model.AlarmTimes)))
	return model, nil
}

// FindSchedulesContaining returns schedules for the given dates whose stored JSON
// array contains hhmm. Callers still decide which day an alarm belongs to.
func (r *AlarmDatabase) FindSchedulesContaining(ctx context.Context, dates []string, hhmm string) ([]*alarm.AlarmSchedule, error) {
	op := "AlarmDatabase.FindSchedulesContaining"
	log := r.log.With(slog.String("op", op), slog.String("time", hhmm))

	var schedules []*alarm.AlarmSchedule
	err := r.db.WithContext(ctx).
		Where("date IN ? AND alarm_times LIKE ?", dates, `%"`+hhmm+`"%`).
		Find(&schedules).Error
	if err != nil {
		log.Error("failed to search alarm schedules", "error", err)
		return nil, alarm.ErrAlarmInternal
	}
	return schedules, nil
}
