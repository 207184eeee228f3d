package coordinator

import (
	"time"

	"smokefree/internal/device/model"
	"smokefree/pkg/lib/statistics"
)

// Phase tells where the values in a snapshot last came from.
type Phase string

const (
	PhaseCache  Phase = "cache"
	PhaseRemote Phase = "remote"
)

// Snapshot is the in-memory state exposed to the UI.
type Snapshot struct {
	Settings            *model.Settings
	Log                 *model.DailyLog
	Alarms              *model.AlarmSchedule
	Statistics          *statistics.Statistics
	Entitlement         model.Entitlement
	Phase               Phase
	LastSyncError       error
	ConsecutiveFailures int
	UpdatedAt           time.Time
}

// IsOffline returns true when the store has been unreachable for several requests.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

func (s Snapshot) clone() Snapshot {
	out := s
	if s.Settings != nil {
		v := *s.Settings
		out.Settings = &v
	}
	if s.Log != nil {
		v := *s.Log
		out.Log = &v
	}
	if s.Alarms != nil {
		v := *s.Alarms
		v.AlarmTimes = append([]string(nil), s.Alarms.AlarmTimes...)
		out.Alarms = &v
	}
	if s.Statistics != nil {
		v := *s.Statistics
		v.WeeklyData = append([]statistics.Day(nil), s.Statistics.WeeklyData...)
		out.Statistics = &v
	}
	return out
}
