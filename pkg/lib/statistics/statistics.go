// Package statistics aggregates daily smoking logs into totals, averages, a best day
// and a trend over a trailing window.
package statistics

import (
	"math"
	"sort"
	"time"
)

const (
	DateLayout        = "2006-01-02"
	DefaultWindowDays = 7
)

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendWorsening Trend = "worsening"
)

// Day is one daily log as seen by the aggregator.
type Day struct {
	Date   string `json:"date"`
	Smoked int    `json:"smoked"`
	Goal   int    `json:"goal"`
}

type Statistics struct {
	TotalSmoked   int     `json:"totalSmoked"`
	AveragePerDay float64 `json:"averagePerDay"`
	BestDay       *Day    `json:"bestDay"`
	WeeklyData    []Day   `json:"weeklyData"`
	Trend         Trend   `json:"trend"`
}

// DisplayAverage is the average rounded for display (one decimal).
func (s Statistics) DisplayAverage() float64 {
	return RoundTo(s.AveragePerDay, 1)
}

// Compute aggregates logs dated on or after today minus windowDays.
// A non-positive window falls back to DefaultWindowDays.
func Compute(logs []Day, windowDays int, today time.Time) Statistics {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	cutoff := today.AddDate(0, 0, -windowDays).Format(DateLayout)

	window := make([]Day, 0, len(logs))
	for _, d := range logs {
		if d.Date >= cutoff {
			window = append(window, d)
		}
	}
	sort.SliceStable(window, func(i, j int) bool { return window[i].Date < window[j].Date })

	stats := Statistics{
		WeeklyData: window,
		Trend:      TrendStable,
	}
	if len(window) == 0 {
		return stats
	}

	best := window[0]
	for _, d := range window {
		stats.TotalSmoked += d.Smoked
		if d.Smoked < best.Smoked {
			best = d
		}
	}
	stats.BestDay = &best
	stats.AveragePerDay = RoundTo(float64(stats.TotalSmoked)/float64(len(window)), 2)
	stats.Trend = ClassifyTrend(window)
	return stats
}

// ClassifyTrend compares the mean of the first and second half of a chronologically
// ordered series. The split index is floor(len/2).
func ClassifyTrend(days []Day) Trend {
	if len(days) < 2 {
		return TrendStable
	}
	mid := len(days) / 2
	first, second := mean(days[:mid]), mean(days[mid:])
	switch {
	case second < first:
		return TrendImproving
	case second > first:
		return TrendWorsening
	default:
		return TrendStable
	}
}

func mean(days []Day) float64 {
	if len(days) == 0 {
		return 0
	}
	sum := 0
	for _, d := range days {
		sum += d.Smoked
	}
	return float64(sum) / float64(len(days))
}

// RoundTo rounds v half away from zero to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
