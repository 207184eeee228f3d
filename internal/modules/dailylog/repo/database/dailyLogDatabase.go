package database

import (
	"context"
	"errors"
	"log/slog"
	"smokefree/internal/modules/dailylog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyLogDatabase struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewDailyLogDatabase(db *gorm.DB, log *slog.Logger) *DailyLogDatabase {
	return &DailyLogDatabase{
		db:  db,
		log: log,
	}
}

var deviceDateConflict = []clause.Column{{Name: "device_id"}, {Name: "date"}}

func (r *DailyLogDatabase) GetDailyLog(ctx context.Context, deviceID, date string) (*dailylog.DailyLog, error) {
	op := "DailyLogDatabase.GetDailyLog"
	log := r.log.With(slog.String("op", op), slog.String("deviceID", deviceID), slog.String("date", date))

	var model dailylog.DailyLog
	err := r.db.WithContext(ctx).Where("device_id = ? AND date = ?", deviceID, date).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Debug("daily log not found")
			return nil, dailylog.ErrLogNotFound
		}
		log.Error("failed to get daily log", "error", err)
		return nil, dailylog.ErrLogInternal
	}
	return &model, nil
}

func (r *DailyLogDatabase) UpsertDailyLog(ctx context.Context, model *dailylog.DailyLog) (*dailylog.DailyLog, error) {
	op := "DailyLogDatabase.UpsertDailyLog"
	log := r.log.With(slog.String("op", op), slog.String("deviceID", model.DeviceID), slog.String("date", model.Date))

	model.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   deviceDateConflict,
			DoUpdates: clause.AssignmentColumns([]string{"cigarettes_smoked", "cigarettes_goal", "updated_at"}),
		},
		clause.Returning{},
	).Create(model).Error
	if err != nil {
		log.Error("failed to upsert daily log", "error", err)
		return nil, dailylog.ErrLogInternal
	}

	log.Debug("daily log upserted", slog.Int("smoked", model.CigarettesSmoked))
	return model, nil
}

// IncrementDailyLog adds one cigarette in a single statement. A missing row is
// created with smoked=1 and the given goal.
func (r *DailyLogDatabase) IncrementDailyLog(ctx context.Context, deviceID, date string, goal int) (*dailylog.DailyLog, error) {
	op := "DailyLogDatabase.IncrementDailyLog"
	log := r.log.With(slog.String("op", op), slog.String("deviceID", deviceID), slog.String("date", date))

	now := time.Now()
	model := &dailylog.DailyLog{
		DeviceID:         deviceID,
		Date:             date,
		CigarettesSmoked: 1,
		CigarettesGoal:   goal,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err := r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: deviceDateConflict,
			DoUpdates: clause.Assignments(map[string]interface{}{
				"cigarettes_smoked": gorm.Expr("daily_logs.cigarettes_smoked + 1"),
				"updated_at":        now,
			}),
		},
		clause.Returning{},
	).Create(model).Error
	if err != nil {
		log.Error("failed to increment daily log", "error", err)
		return nil, dailylog.ErrLogInternal
	}

	log.Debug("daily log incremented", slog.Int("smoked", model.CigarettesSmoked))
	return model, nil
}

func (r *DailyLogDatabase) ListDailyLogsSince(ctx context.Context, deviceID, fromDate string) ([]*dailylog.DailyLog, error) {
	op := "DailyLogDatabase.ListDailyLogsSince"
	log := r.log.With(slog.String("op", op), slog.String("deviceID", deviceID), slog.String("from", fromDate))

	var logs []*dailylog.DailyLog
	err := r.db.WithContext(ctx).
		Where("device_id = ? AND date >= ?", deviceID, fromDate).
		Order("date ASC").
		Find(&logs).Error
	if err != nil {
		log.Error("failed to list daily logs", "error", err)
		return nil, dailylog.ErrLogInternal
	}
	return logs, nil
}

func (r *DailyLogDatabase) ListDailyLogsByDate(ctx context.Context, date string) ([]*dailylog.DailyLog, error) {
	op := "DailyLogDatabase.ListDailyLogsByDate"
	log := r.log.With(slog.String("op", op), slog.String("date", date))

	var logs []*dailylog.DailyLog
	err := r.db.WithContext(ctx).Where("date = ?", date).Order("device_id ASC").Find(&logs).Error
	if err != nil {
		log.Error("failed to list daily logs for date", "error", err)
		return nil, dailylog.ErrLogInternal
	}
	return logs, nil
}
