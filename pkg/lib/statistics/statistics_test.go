package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local)

func TestCompute_ImprovingTrendAndBestDay(t *testing.T) {
	logs := []Day{
		{Date: "2026-03-06", Smoked: 5, Goal: 10},
		{Date: "2026-03-07", Smoked: 10, Goal: 10},
		{Date: "2026-03-08", Smoked: 2, Goal: 8},
		{Date: "2026-03-09", Smoked: 8, Goal: 8},
	}

	got := Compute(logs, 7, today)

	assert.Equal(t, 25, got.TotalSmoked)
	assert.Equal(t, 6.25, got.AveragePerDay)
	assert.Equal(t, TrendImproving, got.Trend)
	require.NotNil(t, got.BestDay)
	assert.Equal(t, "2026-03-08", got.BestDay.Date)
	assert.Equal(t, 2, got.BestDay.Smoked)
	assert.Equal(t, logs, got.WeeklyData)
}

func TestCompute_FiltersWindowAndSortsChronologically(t *testing.T) {
	logs := []Day{
		{Date: "2026-03-09", Smoked: 4},
		{Date: "2026-02-01", Smoked: 40},
		{Date: "2026-03-03", Smoked: 6},
		{Date: "2026-03-02", Smoked: 99},
	}

	got := Compute(logs, 7, today)

	require.Len(t, got.WeeklyData, 2)
	assert.Equal(t, "2026-03-03", got.WeeklyData[0].Date)
	assert.Equal(t, "2026-03-09", got.WeeklyData[1].Date)
	assert.Equal(t, 10, got.TotalSmoked)
	assert.Equal(t, TrendImproving, got.Trend)
}

func TestCompute_Empty(t *testing.T) {
	got := Compute(nil, 7, today)

	assert.Zero(t, got.TotalSmoked)
	assert.Zero(t, got.AveragePerDay)
	assert.Nil(t, got.BestDay)
	assert.Equal(t, TrendStable, got.Trend)
	assert.Empty(t, got.WeeklyData)
}

func TestCompute_SingleDayIsStable(t *testing.T) {
	got := Compute([]Day{{Date: "2026-03-10", Smoked: 3}}, 7, today)
	assert.Equal(t, TrendStable, got.Trend)
	assert.Equal(t, 3.0, got.AveragePerDay)
}

func TestCompute_TiesPickEarliestDate(t *testing.T) {
	logs := []Day{
		{Date: "2026-03-09", Smoked: 1},
		{Date: "2026-03-05", Smoked: 1},
		{Date: "2026-03-07", Smoked: 3},
	}
	got := Compute(logs, 7, today)
	require.NotNil(t, got.BestDay)
	assert.Equal(t, "2026-03-05", got.BestDay.Date)
}

func TestCompute_AverageRoundedToTwoDecimals(t *testing.T) {
	logs := []Day{
		{Date: "2026-03-07", Smoked: 1},
		{Date: "2026-03-08", Smoked: 1},
		{Date: "2026-03-09", Smoked: 2},
	}
	got := Compute(logs, 7, today)
	assert.Equal(t, 1.33, got.AveragePerDay)
	assert.Equal(t, 1.3, got.DisplayAverage())
	assert.Equal(t, TrendWorsening, got.Trend)
}

func TestCompute_DefaultWindow(t *testing.T) {
	logs := []Day{{Date: "2026-03-01", Smoked: 7}, {Date: "2026-03-04", Smoked: 2}}
	got := Compute(logs, 0, today)
	assert.Len(t, got.WeeklyData, 1)
}

func TestClassifyTrend_EqualHalves(t *testing.T) {
	assert.Equal(t, TrendStable, ClassifyTrend([]Day{{Smoked: 4}, {Smoked: 4}}))
}
