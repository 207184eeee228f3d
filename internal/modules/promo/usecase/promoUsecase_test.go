package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smokefree/internal/modules/promo"
)

type fakeRepo []promo.PromoCode

func (f fakeRepo) FindActiveCode(_ context.Context, code string) (*promo.PromoCode, error) {
	for _, p := range f {
		if p.Active && strings.EqualFold(p.Code, code) {
			c := p
			return &c, nil
		}
	}
	return nil, promo.ErrPromoNotFound
}

type grant struct {
	deviceID, code string
	expiresAt      *time.Time
}

type recordingGranter struct {
	grants []grant
	err    error
}

func (g *recordingGranter) GrantPremium(_ context.Context, deviceID, code string, expiresAt *time.Time) error {
	g.grants = append(g.grants, grant{deviceID, code, expiresAt})
	return g.err
}

func months(n int) *int { return &n }

var (
	now   = time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC)
	codes = fakeRepo{
		{Code: "EASY EASY", Premium: true, DurationMonths: months(1), Active: true},
		{Code: "EASY22", Premium: true, Active: true},
		{Code: "OLD", Premium: true, Active: false},
	}
)

func newTestUseCase(g promo.PremiumGranter) promo.UseCase {
	uc := NewPromoUseCase(codes, g, slog.New(slog.NewTextHandler(io.Discard, nil))).(*PromoUseCase)
	uc.nowFn = func() time.Time { return now }
	return uc
}

func TestValidatePromo_TimeBoxed(t *testing.T) {
	g := &recordingGranter{}
	res, err := newTestUseCase(g).ValidatePromo(context.Background(), promo.ValidatePromoRequest{Code: "  easy easy ", DeviceID: "dev-1"})
	require.NoError(t, err)

	assert.True(t, res.Valid)
	assert.True(t, res.PremiumEnabled)
	require.NotNil(t, res.PremiumExpiresAt)
	assert.Equal(t, now.AddDate(0, 1, 0), *res.PremiumExpiresAt)
	require.Len(t, g.grants, 1)
	assert.Equal(t, "EASY EASY", g.grants[0].code)
}

func TestValidatePromo_Perpetual(t *testing.T) {
	g := &recordingGranter{}
	res, err := newTestUseCase(g).ValidatePromo(context.Background(), promo.ValidatePromoRequest{Code: "Easy22", DeviceID: "dev-1"})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Nil(t, res.PremiumExpiresAt)
	require.Len(t, g.grants, 1)
	assert.Nil(t, g.grants[0].expiresAt)
}

func TestValidatePromo_Rejected(t *testing.T) {
	for _, code := range []string{"NOPE", "OLD", "   "} {
		g := &recordingGranter{}
		res, err := newTestUseCase(g).ValidatePromo(context.Background(), promo.ValidatePromoRequest{Code: code, DeviceID: "dev-1"})
		require.NoError(t, err)
		assert.False(t, res.Valid, code)
		assert.False(t, res.PremiumEnabled, code)
		assert.Equal(t, promo.MessageInvalid, res.Message)
		assert.Empty(t, g.grants)
	}
}

func TestValidatePromo_GrantFailureStillValid(t *testing.T) {
	g := &recordingGranter{err: errors.New("settings not found")}
	res, err := newTestUseCase(g).ValidatePromo(context.Background(), promo.ValidatePromoRequest{Code: "EASY22", DeviceID: "ghost"})
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestValidatePromo_NoDeviceSkipsGrant(t *testing.T) {
	g := &recordingGranter{}
	res, err := newTestUseCase(g).ValidatePromo(context.Background(), promo.ValidatePromoRequest{Code: "EASY22"})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Empty(t, g.grants)
}
