package repo

import (
	"context"
	"smokefree/internal/modules/dailylog"
)

type DailyLogDb interface {
	GetDailyLog(ctx context.Context, deviceID, date string) (*dailylog.DailyLog, error)
	UpsertDailyLog(ctx context.Context, model *dailylog.DailyLog) (*dailylog.DailyLog, error)
	IncrementDailyLog(ctx context.Context, deviceID, date string, goal int) (*dailylog.DailyLog, error)
	ListDailyLogsSince(ctx context.Context, deviceID, fromDate string) ([]*dailylog.DailyLog, error)
	ListDailyLogsByDate(ctx context.Context, date string) ([]*dailylog.DailyLog, error)
}

type DailyLogArchive interface {
	PutArchive(ctx context.Context, key string, body []byte) error
}

type repo struct {
	db      DailyLogDb
	archive DailyLogArchive
}

// NewRepo combines the database with an optional archive. A nil archive disables
// PutArchive.
func NewRepo(db DailyLogDb, archive DailyLogArchive) dailylog.Repo {
	return &repo{
		db:      db,
		archive: archive,
	}
}

func (r *repo) GetDailyLog(ctx context.Context, deviceID, date string) (*dailylog.DailyLog, error) {
	return r.db.GetDailyLog(ctx, deviceID, date)
}

func (r *repo) UpsertDailyLog(ctx context.Context, model *dailylog.DailyLog) (*dailylog.DailyLog, error) {
	return r.db.UpsertDailyLog(ctx, model)
}

func (r *repo) IncrementDailyLog(ctx context.Context, deviceID, date string, goal int) (*dailylog.DailyLog, error) {
	return r.db.IncrementDailyLog(ctx, deviceID, date, goal)
}

func (r *repo) ListDailyLogsSince(ctx context.Context, deviceID, fromDate string) ([]*dailylog.DailyLog, error) {
	return r.db.ListDailyLogsSince(ctx, deviceID, fromDate)
}

func (r *repo) ListDailyLogsByDate(ctx context.Context, date string) ([]*dailylog.DailyLog, error) {
	return r.db.ListDailyLogsByDate(ctx, date)
}

func (r *repo) ArchiveEnabled() bool {
	return r.archive != nil
}

func (r *repo) PutArchive(ctx context.Context, key string, body []byte) error {
	if r.archive == nil {
		return dailylog.ErrArchiveDisabled
	}
	return r.archive.PutArchive(ctx, key, body)
}
