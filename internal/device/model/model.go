// Package model holds the records the device keeps locally and mirrors to the store.
package model

import "time"

const DateLayout = "2006-01-02"

type Settings struct {
	DeviceID           string     `json:"deviceId"`
	WakeTime           string     `json:"wakeTime"`
	SleepTime          string     `json:"sleepTime"`
	DailyCigaretteGoal int        `json:"dailyCigaretteGoal"`
	Language           string     `json:"language"`
	BackgroundColor    string     `json:"backgroundColor"`
	PremiumEnabled     bool       `json:"premiumEnabled"`
	PremiumExpiresAt   *time.Time `json:"premiumExpiresAt,omitempty"`
	PromoCode          *string    `json:"promoCode,omitempty"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// SettingsPatch is a partial settings change; nil fields are left untouched.
type SettingsPatch struct {
	WakeTime           *string
	SleepTime          *string
	DailyCigaretteGoal *int
	Language           *string
	BackgroundColor    *string
}

// Apply merges p into s.
func (p SettingsPatch) Apply(s *Settings) {
	if p.WakeTime != nil {
		s.WakeTime = *p.WakeTime
	}
	if p.SleepTime != nil {
		s.SleepTime = *p.SleepTime
	}
	if p.DailyCigaretteGoal != nil {
		s.DailyCigaretteGoal = *p.DailyCigaretteGoal
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.BackgroundColor != nil {
		s.BackgroundColor = *p.BackgroundColor
	}
}

type DailyLog struct {
	DeviceID         string `json:"deviceId"`
	Date             string `json:"date"`
	CigarettesSmoked int    `json:"cigarettesSmoked"`
	CigarettesGoal   int    `json:"cigarettesGoal"`
}

type AlarmSchedule struct {
	DeviceID   string   `json:"deviceId"`
	Date       string   `json:"date"`
	AlarmTimes []string `json:"alarmTimes"`
}

// Entitlement is the device's premium state. A nil ExpiresAt never expires.
// Pending marks a grant made on the device that the store has not confirmed yet.
type Entitlement struct {
	Premium   bool       `json:"premium"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	PromoCode string     `json:"promoCode,omitempty"`
	Pending   bool       `json:"pending,omitempty"`
}

// Active reports whether the entitlement grants premium at now.
func (e Entitlement) Active(now time.Time) bool {
	if !e.Premium {
		return false
	}
	return e.ExpiresAt == nil || now.Before(*e.ExpiresAt)
}

// EntitlementOf derives the entitlement recorded on s.
func EntitlementOf(s *Settings) Entitlement {
	if s == nil {
		return Entitlement{}
	}
	e := Entitlement{Premium: s.PremiumEnabled, ExpiresAt: s.PremiumExpiresAt}
	if s.PromoCode != nil {
		e.PromoCode = *s.PromoCode
	}
	return e
}

// ApplyTo records the entitlement on s.
func (e Entitlement) ApplyTo(s *Settings) {
	s.PremiumEnabled = e.Premium
	s.PremiumExpiresAt = e.ExpiresAt
	s.PromoCode = nil
	if e.PromoCode != "" {
		code := e.PromoCode
		s.PromoCode = &code
	}
}
