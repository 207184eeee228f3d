package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smokefree/internal/modules/dailylog"
	"smokefree/internal/modules/stats"
	"smokefree/pkg/lib/statistics"
)

type fakeLogs struct {
	rows  []*dailylog.DailyLog
	reads int
	from  string
}

func (f *fakeLogs) ListDailyLogsSince(_ context.Context, deviceID, fromDate string) ([]*dailylog.DailyLog, error) {
	f.reads++
	f.from = fromDate
	var out []*dailylog.DailyLog
	for _, r := range f.rows {
		if r.DeviceID == deviceID && r.Date >= fromDate {
			out = append(out, r)
		}
	}
	return out, nil
}

type memCache struct {
	data map[string]map[string]*statistics.Statistics
}

func newMemCache() *memCache {
	return &memCache{data: map[string]map[string]*statistics.Statistics{}}
}

func (m *memCache) GetStats(_ context.Context, deviceID, field string) (*statistics.Statistics, error) {
	if s, ok := m.data[deviceID][field]; ok {
		return s, nil
	}
	return nil, stats.ErrStatsCacheMiss
}

func (m *memCache) SaveStats(_ context.Context, deviceID, field string, s *statistics.Statistics) error {
	if m.data[deviceID] == nil {
		m.data[deviceID] = map[string]*statistics.Statistics{}
	}
	m.data[deviceID][field] = s
	return nil
}

func (m *memCache) DeleteStats(_ context.Context, deviceID string) error {
	delete(m.data, deviceID)
	return nil
}

func newTestUseCase(logs *fakeLogs, cache stats.Cache) *StatsUseCase {
	uc := NewStatsUseCase(logs, cache, 7, slog.New(slog.NewTextHandler(io.Discard, nil)))
	uc.nowFn = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local) }
	return uc
}

func sampleLogs() *fakeLogs {
	return &fakeLogs{rows: []*dailylog.DailyLog{
		{DeviceID: "dev-1", Date: "2026-03-06", CigarettesSmoked: 5, CigarettesGoal: 10},
		{DeviceID: "dev-1", Date: "2026-03-07", CigarettesSmoked: 10, CigarettesGoal: 10},
		{DeviceID: "dev-1", Date: "2026-03-08", CigarettesSmoked: 2, CigarettesGoal: 8},
		{DeviceID: "dev-1", Date: "2026-03-09", CigarettesSmoked: 8, CigarettesGoal: 8},
		{DeviceID: "dev-2", Date: "2026-03-09", CigarettesSmoked: 30, CigarettesGoal: 8},
	}}
}

func TestGetStatistics(t *testing.T) {
	logs := sampleLogs()
	uc := newTestUseCase(logs, nil)

	got, err := uc.GetStatistics(context.Background(), "dev-1", 0)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-03", logs.from)
	assert.Equal(t, 25, got.TotalSmoked)
	assert.Equal(t, 6.25, got.AveragePerDay)
	assert.Equal(t, statistics.TrendImproving, got.Trend)
	require.NotNil(t, got.BestDay)
	assert.Equal(t, "2026-03-08", got.BestDay.Date)
	assert.Len(t, got.WeeklyData, 4)
}

func TestGetStatistics_CachedUntilInvalidated(t *testing.T) {
	logs := sampleLogs()
	uc := newTestUseCase(logs, newMemCache())
	ctx := context.Background()

	_, err := uc.GetStatistics(ctx, "dev-1", 7)
	require.NoError(t, err)
	_, err = uc.GetStatistics(ctx, "dev-1", 7)
	require.NoError(t, err)
	assert.Equal(t, 1, logs.reads)

	require.NoError(t, uc.InvalidateStats(ctx, "dev-1"))
	_, err = uc.GetStatistics(ctx, "dev-1", 7)
	require.NoError(t, err)
	assert.Equal(t, 2, logs.reads)
}

func TestGetStatistics_WindowBounds(t *testing.T) {
	uc := newTestUseCase(sampleLogs(), nil)
	for _, days := range []int{-1, 366} {
		_, err := uc.GetStatistics(context.Background(), "dev-1", days)
		assert.ErrorIs(t, err, stats.ErrStatsInvalidRange)
	}

	got, err := uc.GetStatistics(context.Background(), "dev-1", 2)
	require.NoError(t, err)
	assert.Len(t, got.WeeklyData, 2)
}
