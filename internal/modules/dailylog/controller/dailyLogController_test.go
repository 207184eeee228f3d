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

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smokefree/internal/modules/dailylog"
)

type stubUseCase struct {
	dailylog.UseCase
	smoked int
}

func (s *stubUseCase) GetDailyLog(_ context.Context, deviceID, date string) (*dailylog.DailyLogResponse, error) {
	if date == "bad" {
		return nil, dailylog.ErrLogInvalidDate
	}
	return &dailylog.DailyLogResponse{DeviceID: deviceID, Date: date}, nil
}

func (s *stubUseCase) UpsertDailyLog(_ context.Context, req dailylog.UpsertDailyLogRequest) (*dailylog.DailyLogResponse, error) {
	return &dailylog.DailyLogResponse{DeviceID: req.DeviceID, Date: req.Date, CigarettesSmoked: req.CigarettesSmoked}, nil
}

func (s *stubUseCase) IncrementDailyLog(_ context.Context, deviceID, date string) (*dailylog.DailyLogResponse, error) {
	s.smoked++
	return &dailylog.DailyLogResponse{DeviceID: deviceID, Date: date, CigarettesSmoked: s.smoked}, nil
}

func newRouter(uc dailylog.UseCase) http.Handler {
	c := NewDailyLogController(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Get("/logs/{deviceId}/{date}", c.GetDailyLog)
	r.Post("/logs", c.UpsertDailyLog)
	r.Put("/logs/{deviceId}/{date}/increment", c.IncrementDailyLog)
	return r
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetDailyLog(t *testing.T) {
	h := newRouter(&stubUseCase{})

	rec := serve(h, http.MethodGet, "/logs/dev-1/2026-03-10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Data dailylog.DailyLogResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "2026-03-10", env.Data.Date)

	rec = serve(h, http.MethodGet, "/logs/dev-1/bad", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpsertDailyLog_Validation(t *testing.T) {
	h := newRouter(&stubUseCase{})

	rec := serve(h, http.MethodPost, "/logs", `{"deviceId":"d","date":"2026-03-10","cigarettesSmoked":3,"cigarettesGoal":10}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, http.MethodPost, "/logs", `{"deviceId":"d","date":"2026/03/10","cigarettesSmoked":3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, http.MethodPost, "/logs", `{"deviceId":"d","date":"2026-03-10","cigarettesSmoked":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIncrementDailyLog(t *testing.T) {
	uc := &stubUseCase{}
	h := newRouter(uc)

	for i := 0; i < 3; i++ {
		rec := serve(h, http.MethodPut, "/logs/dev-1/2026-03-10/increment", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 3, uc.smoked)
}
