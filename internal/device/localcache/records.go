package localcache

import (
	"fmt"
	"strings"

	"smokefree/internal/device/model"
)

func (s *Store) GetSettings() (*model.Settings, error) {
	var out model.Settings
	if err := s.Get(keySettings, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) SaveSettings(v *model.Settings) error {
	return s.Put(keySettings, v)
}

func (s *Store) GetLog(date string) (*model.DailyLog, error) {
	var out model.DailyLog
	if err := s.Get(prefixLog+date, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) SaveLog(v *model.DailyLog) error {
	return s.Put(prefixLog+v.Date, v)
}

// ListLogs returns every stored daily log ordered by date.
func (s *Store) ListLogs() ([]model.DailyLog, error) {
	keys, err := s.Keys(prefixLog)
	if err != nil {
		return nil, err
	}
	logs := make([]model.DailyLog, 0, len(keys))
	for _, k := range keys {
		l, err := s.GetLog(strings.TrimPrefix(k, prefixLog))
		if err != nil {
			return nil, fmt.Errorf("load %q: %w", k, err)
		}
		logs = append(logs, *l)
	}
	return logs, nil
}

func (s *Store) GetAlarms(date string) (*model.AlarmSchedule, error) {
	var out model.AlarmSchedule
	if err := s.Get(prefixAlarms+date, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) SaveAlarms(v *model.AlarmSchedule) error {
	return s.Put(prefixAlarms+v.Date, v)
}

func (s *Store) GetEntitlement() (*model.Entitlement, error) {
	var out model.Entitlement
	if err := s.Get(keyEntitlement, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) SaveEntitlement(v *model.Entitlement) error {
	return s.Put(keyEntitlement, v)
}
