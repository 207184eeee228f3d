package controller

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smokefree/internal/modules/settings"
)

type stubUseCase struct {
	settings.UseCase
	stored   map[string]*settings.SettingsResponse
	upserted *settings.UpsertSettingsRequest
	updated  *settings.UpdateSettingsRequest
}

func (s *stubUseCase) GetSettings(_ context.Context, deviceID string) (*settings.SettingsResponse, error) {
	if r, ok := s.stored[deviceID]; ok {
		return r, nil
	}
	return nil, settings.ErrSettingsNotFound
}

func (s *stubUseCase) UpsertSettings(_ context.Context, req settings.UpsertSettingsRequest) (*settings.SettingsResponse, error) {
	s.upserted = &req
	return &settings.SettingsResponse{DeviceID: req.DeviceID, WakeTime: req.WakeTime, SleepTime: req.SleepTime, DailyCigaretteGoal: req.DailyCigaretteGoal}, nil
}

func (s *stubUseCase) UpdateSettings(_ context.Context, deviceID string, req settings.UpdateSettingsRequest) (*settings.SettingsResponse, error) {
	s.updated = &req
	if r, ok := s.stored[deviceID]; ok {
		return r, nil
	}
	return nil, settings.ErrSettingsNotFound
}

func newRouter(uc settings.UseCase) http.Handler {
	c := NewSettingsController(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Get("/settings/{deviceId}", c.GetSettings)
	r.Post("/settings", c.UpsertSettings)
	r.Put("/settings/{deviceId}", c.UpdateSettings)
	return r
}

type envelope struct {
	Status string          `json:"status"`
	Error  string          `json:"error"`
	Data   json.RawMessage `json:"data"`
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestGetSettings(t *testing.T) {
	uc := &stubUseCase{stored: map[string]*settings.SettingsResponse{
		"dev-1": {DeviceID: "dev-1", WakeTime: "07:00", SleepTime: "23:00", DailyCigaretteGoal: 10, UpdatedAt: time.Now()},
	}}
	h := newRouter(uc)

	code, env := do(t, h, http.MethodGet, "/settings/dev-1", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", env.Status)
	var got settings.SettingsResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 10, got.DailyCigaretteGoal)

	code, env = do(t, h, http.MethodGet, "/settings/other", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "error", env.Status)
}

func TestUpsertSettings_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"deviceId":"d","wakeTime":"07:00","sleepTime":"23:00","dailyCigaretteGoal":10}`, http.StatusOK},
		{"bad wake time", `{"deviceId":"d","wakeTime":"7:00","sleepTime":"23:00","dailyCigaretteGoal":10}`, http.StatusBadRequest},
		{"zero goal", `{"deviceId":"d","wakeTime":"07:00","sleepTime":"23:00","dailyCigaretteGoal":0}`, http.StatusBadRequest},
		{"bad language", `{"deviceId":"d","wakeTime":"07:00","sleepTime":"23:00","dailyCigaretteGoal":3,"language":"fr"}`, http.StatusBadRequest},
		{"malformed", `{`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := do(t, newRouter(&stubUseCase{}), http.MethodPost, "/settings", tc.body)
			assert.Equal(t, tc.want, code)
		})
	}
}

func TestUpdateSettings_NotFound(t *testing.T) {
	code, env := do(t, newRouter(&stubUseCase{}), http.MethodPut, "/settings/ghost", `{"language":"de"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, settings.ErrSettingsNotFound.Error(), env.Error)
}

func TestSettingsWrites_IgnorePremiumFields(t *testing.T) {
	uc := &stubUseCase{stored: map[string]*settings.SettingsResponse{
		"dev-1": {DeviceID: "dev-1", WakeTime: "07:00", SleepTime: "23:00", DailyCigaretteGoal: 10},
	}}
	h := newRouter(uc)

	code, env := do(t, h, http.MethodPost, "/settings",
		`{"deviceId":"dev-1","wakeTime":"07:00","sleepTime":"23:00","dailyCigaretteGoal":10,"premiumEnabled":true,"premiumExpiresAt":"2099-01-01T00:00:00Z","promoCode":"FREE"}`)
	require.Equal(t, http.StatusOK, code)
	var got settings.SettingsResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.False(t, got.PremiumEnabled)
	assert.Nil(t, got.PromoCode)

	code, _ = do(t, h, http.MethodPut, "/settings/dev-1", `{"language":"de","premiumEnabled":true,"promoCode":"FREE"}`)
	require.Equal(t, http.StatusOK, code)

	for _, req := range []any{uc.upserted, uc.updated} {
		raw, err := json.Marshal(req)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "premium")
		assert.NotContains(t, string(raw), "promoCode")
	}
	require.NotNil(t, uc.updated.Language)
	assert.Equal(t, "de", *uc.updated.Language)
}
