package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"smokefree/internal/modules/stats"
	resp "smokefree/pkg/lib/response"
)

type StatsController struct {
	useCase stats.UseCase
	log     *slog.Logger
}

func NewStatsController(useCase stats.UseCase, log *slog.Logger) *StatsController {
	return &StatsController{
		useCase: useCase,
		log:     log,
	}
}

// GetStatistics
// @Summary Get smoking statistics
// @Description Totals, average, best day and trend over the trailing window (7 days by default).
// @Tags stats
// @Produce json
// @Param deviceId path string true "Device ID"
// @Param days query int false "Window length in days (1-365)"
// @Success 200 {object} statistics.Statistics
// @Failure 400 {object} response.ErrorResponse "Invalid window"
// @Failure 500 {object} response.ErrorResponse
// @Router /stats/{deviceId} [get]
func (c *StatsController) GetStatistics(w http.ResponseWriter, r *http.Request) {
	op := "StatsController.GetStatistics"
	deviceID := chi.URLParam(r, "deviceId")
	log := c.log.With(slog.String("op", op), slog.String("deviceID", deviceID))

	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Warn("invalid days parameter", slog.String("days", raw))
			resp.SendError(w, r, http.StatusBadRequest, stats.ErrStatsInvalidRange.Error())
			return
		}
		days = parsed
	}

	result, err := c.useCase.GetStatistics(r.Context(), deviceID, days)
	if err != nil {
		if errors.Is(err, stats.ErrStatsInvalidRange) {
			resp.SendError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Error("usecase GetStatistics failed", "error", err)
		resp.SendError(w, r, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}
	resp.SendSuccess(w, r, http.StatusOK, result)
}
