package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEntitlement_Active(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.AddDate(0, 1, 0)

	assert.False(t, Entitlement{}.Active(now))
	assert.True(t, Entitlement{Premium: true}.Active(now))
	assert.True(t, Entitlement{Premium: true, ExpiresAt: &future}.Active(now))
	assert.False(t, Entitlement{Premium: true, ExpiresAt: &past}.Active(now))
}

func TestSettingsPatch_Apply(t *testing.T) {
	s := Settings{WakeTime: "07:00", SleepTime: "23:00", DailyCigaretteGoal: 10, Language: "en"}
	goal := 8
	lang := "de"

	SettingsPatch{DailyCigaretteGoal: &goal, Language: &lang}.Apply(&s)

	assert.Equal(t, 8, s.DailyCigaretteGoal)
	assert.Equal(t, "de", s.Language)
	assert.Equal(t, "07:00", s.WakeTime)
}

func TestEntitlementOf(t *testing.T) {
	code := "Easy22"
	e := EntitlementOf(&Settings{PremiumEnabled: true, PromoCode: &code})
	assert.True(t, e.Premium)
	assert.Equal(t, "Easy22", e.PromoCode)
	assert.Equal(t, Entitlement{}, EntitlementOf(nil))
}

func TestEntitlement_ApplyTo(t *testing.T) {
	exp := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	s := Settings{DeviceID: "d1", DailyCigaretteGoal: 5}

	Entitlement{Premium: true, ExpiresAt: &exp, PromoCode: "EASY EASY", Pending: true}.ApplyTo(&s)
	assert.True(t, s.PremiumEnabled)
	assert.Equal(t, &exp, s.PremiumExpiresAt)
	assert.Equal(t, "EASY EASY", *s.PromoCode)
	assert.Equal(t, 5, s.DailyCigaretteGoal)

	e := EntitlementOf(&s)
	assert.False(t, e.Pending)
	assert.Equal(t, "EASY EASY", e.PromoCode)
}
