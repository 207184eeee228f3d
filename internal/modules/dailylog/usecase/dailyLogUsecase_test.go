package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smokefree/internal/modules/dailylog"
	"smokefree/internal/modules/settings"
)

type key struct{ device, date string }

type fakeRepo struct {
	logs     map[key]*dailylog.DailyLog
	nextID   uint
	archive  map[string][]byte
	archived bool
}

func newFakeRepo(withArchive bool) *fakeRepo {
	return &fakeRepo{logs: map[key]*dailylog.DailyLog{}, archive: map[string][]byte{}, archived: withArchive}
}

func (f *fakeRepo) GetDailyLog(_ context.Context, deviceID, date string) (*dailylog.DailyLog, error) {
	l, ok := f.logs[key{deviceID, date}]
	if !ok {
		return nil, dailylog.ErrLogNotFound
	}
	c := *l
	return &c, nil
}

func (f *fakeRepo) UpsertDailyLog(_ context.Context, l *dailylog.DailyLog) (*dailylog.DailyLog, error) {
	k := key{l.DeviceID, l.Date}
	if existing, ok := f.logs[k]; ok {
		l.ID = existing.ID
	} else {
		f.nextID++
		l.ID = f.nextID
	}
	c := *l
	f.logs[k] = &c
	return l, nil
}

func (f *fakeRepo) IncrementDailyLog(_ context.Context, deviceID, date string, goal int) (*dailylog.DailyLog, error) {
	k := key{deviceID, date}
	l, ok := f.logs[k]
	if !ok {
		f.nextID++
		l = &dailylog.DailyLog{ID: f.nextID, DeviceID: deviceID, Date: date, CigarettesGoal: goal}
		f.logs[k] = l
	}
	l.CigarettesSmoked++
	c := *l
	return &c, nil
}

func (f *fakeRepo) ListDailyLogsSince(_ context.Context, deviceID, fromDate string) ([]*dailylog.DailyLog, error) {
	var out []*dailylog.DailyLog
	for k, l := range f.logs {
		if k.device == deviceID && k.date >= fromDate {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListDailyLogsByDate(_ context.Context, date string) ([]*dailylog.DailyLog, error) {
	var out []*dailylog.DailyLog
	for k, l := range f.logs {
		if k.date == date {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeRepo) ArchiveEnabled() bool { return f.archived }

func (f *fakeRepo) PutArchive(_ context.Context, k string, body []byte) error {
	f.archive[k] = body
	return nil
}

type fakeGoals map[string]int

func (g fakeGoals) GetDailyGoal(_ context.Context, deviceID string) (int, error) {
	goal, ok := g[deviceID]
	if !ok {
		return 0, settings.ErrSettingsNotFound
	}
	return goal, nil
}

type countingInvalidator struct {
	calls []string
	err   error
}

func (c *countingInvalidator) InvalidateStats(_ context.Context, deviceID string) error {
	c.calls = append(c.calls, deviceID)
	return c.err
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestGetDailyLog_SyntheticWhenAbsent(t *testing.T) {
	uc := NewDailyLogUseCase(newFakeRepo(false), fakeGoals{}, nil, discard)

	got, err := uc.GetDailyLog(context.Background(), "dev-1", "2026-03-10")
	require.NoError(t, err)
	assert.Nil(t, got.ID)
	assert.Zero(t, got.CigarettesSmoked)
	assert.Zero(t, got.CigarettesGoal)
	assert.Equal(t, "2026-03-10", got.Date)
}

func TestGetDailyLog_InvalidDate(t *testing.T) {
	uc := NewDailyLogUseCase(newFakeRepo(false), fakeGoals{}, nil, discard)
	_, err := uc.GetDailyLog(context.Background(), "dev-1", "10.03.2026")
	assert.ErrorIs(t, err, dailylog.ErrLogInvalidDate)
}

func TestIncrementDailyLog_UsesSettingsGoal(t *testing.T) {
	repo := newFakeRepo(false)
	inv := &countingInvalidator{}
	uc := NewDailyLogUseCase(repo, fakeGoals{"dev-1": 12}, inv, discard)
	ctx := context.Background()

	first, err := uc.IncrementDailyLog(ctx, "dev-1", "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, 1, first.CigarettesSmoked)
	assert.Equal(t, 12, first.CigarettesGoal)

	second, err := uc.IncrementDailyLog(ctx, "dev-1", "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, 2, second.CigarettesSmoked)
	assert.Equal(t, []string{"dev-1", "dev-1"}, inv.calls)
}

func TestIncrementDailyLog_NoSettingsMeansZeroGoal(t *testing.T) {
	uc := NewDailyLogUseCase(newFakeRepo(false), fakeGoals{}, nil, discard)
	got, err := uc.IncrementDailyLog(context.Background(), "ghost", "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, 1, got.CigarettesSmoked)
	assert.Zero(t, got.CigarettesGoal)
}

func TestUpsertDailyLog_InvalidationFailureIsNotFatal(t *testing.T) {
	inv := &countingInvalidator{err: errors.New("redis down")}
	uc := NewDailyLogUseCase(newFakeRepo(false), fakeGoals{}, inv, discard)

	got, err := uc.UpsertDailyLog(context.Background(), dailylog.UpsertDailyLogRequest{
		DeviceID: "dev-1", Date: "2026-03-10", CigarettesSmoked: 4, CigarettesGoal: 10,
	})
	require.NoError(t, err)
	require.NotNil(t, got.ID)
	assert.Equal(t, 4, got.CigarettesSmoked)
	assert.Len(t, inv.calls, 1)
}

func TestArchiveDay(t *testing.T) {
	repo := newFakeRepo(true)
	uc := NewDailyLogUseCase(repo, fakeGoals{}, nil, discard).(*DailyLogUseCase)
	uc.nowFn = func() time.Time { return time.Date(2026, 3, 11, 0, 15, 0, 0, time.UTC) }
	ctx := context.Background()

	_, err := uc.UpsertDailyLog(ctx, dailylog.UpsertDailyLogRequest{DeviceID: "a", Date: "2026-03-10", CigarettesSmoked: 3, CigarettesGoal: 5})
	require.NoError(t, err)
	_, err = uc.UpsertDailyLog(ctx, dailylog.UpsertDailyLogRequest{DeviceID: "b", Date: "2026-03-10", CigarettesSmoked: 7, CigarettesGoal: 5})
	require.NoError(t, err)

	res, err := uc.ArchiveDay(ctx, "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, "daily-logs/2026-03-10.json", res.Key)
	assert.Equal(t, 2, res.Count)

	var doc archiveDocument
	require.NoError(t, json.Unmarshal(repo.archive[res.Key], &doc))
	assert.Equal(t, "2026-03-10", doc.Date)
	assert.Len(t, doc.Logs, 2)
}

func TestArchiveDay_Disabled(t *testing.T) {
	uc := NewDailyLogUseCase(newFakeRepo(false), fakeGoals{}, nil, discard)
	_, err := uc.ArchiveDay(context.Background(), "2026-03-10")
	assert.ErrorIs(t, err, dailylog.ErrArchiveDisabled)
}
