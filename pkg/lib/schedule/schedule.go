// Package schedule derives evenly spaced reminder times across a daily smoking window.
package schedule

import (
	"errors"
	"fmt"
	"math"
)

const minutesPerDay = 24 * 60

var (
	// ErrInvalidGoal is returned when the goal count is zero or negative.
	ErrInvalidGoal = errors.New("goal count must be a positive integer")
	// ErrInvalidTime is returned for anything that is not a 24h "HH:MM" value.
	ErrInvalidTime = errors.New("time of day must be formatted as HH:MM")
)

// TimeOfDay is a naive wall-clock time without date or zone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a strict "HH:MM" (24h) value: two digits, a colon, two
// digits, nothing else.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' || !isDigit(s[0]) || !isDigit(s[1]) || !isDigit(s[3]) || !isDigit(s[4]) {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	t := TimeOfDay{
		Hour:   int(s[0]-'0')*10 + int(s[1]-'0'),
		Minute: int(s[3]-'0')*10 + int(s[4]-'0'),
	}
	if !t.Valid() {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return t, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// MustParse is ParseTimeOfDay for constants and tests.
func MustParse(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// IsTimeOfDay reports whether s is a well-formed "HH:MM" value.
func IsTimeOfDay(s string) bool {
	_, err := ParseTimeOfDay(s)
	return err == nil
}

func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// FromMinutes converts minutes since midnight into a TimeOfDay, wrapping past midnight.
func FromMinutes(minutes int) TimeOfDay {
	m := ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return TimeOfDay{Hour: m / 60, Minute: m % 60}
}

// WindowMinutes returns the length of the window from wake to sleep.
// A sleep time at or before the wake time means the window runs past midnight.
func WindowMinutes(wake, sleep TimeOfDay) int {
	w, s := wake.Minutes(), sleep.Minutes()
	if s > w {
		return s - w
	}
	return (minutesPerDay - w) + s
}

// ComputeAlarmTimes splits the window between wake and sleep into goalCount equal
// slots and returns the start of each slot. The first entry is always wake, entries
// are floored to whole minutes and the hour wraps modulo 24.
func ComputeAlarmTimes(wake, sleep TimeOfDay, goalCount int) ([]TimeOfDay, error) {
	if goalCount <= 0 {
		return nil, ErrInvalidGoal
	}
	if !wake.Valid() || !sleep.Valid() {
		return nil, ErrInvalidTime
	}

	start := wake.Minutes()
	interval := float64(WindowMinutes(wake, sleep)) / float64(goalCount)

	alarms := make([]TimeOfDay, 0, goalCount)
	for i := 0; i < goalCount; i++ {
		raw := int(math.Floor(float64(start) + interval*float64(i)))
		alarms = append(alarms, FromMinutes(raw))
	}
	return alarms, nil
}

// AlarmStrings is ComputeAlarmTimes over "HH:MM" strings.
func AlarmStrings(wake, sleep string, goalCount int) ([]string, error) {
	w, err := ParseTimeOfDay(wake)
	if err != nil {
		return nil, err
	}
	s, err := ParseTimeOfDay(sleep)
	if err != nil {
		return nil, err
	}
	alarms, err := ComputeAlarmTimes(w, s, goalCount)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(alarms))
	for i, a := range alarms {
		out[i] = a.String()
	}
	return out, nil
}
