package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"smokefree/internal/modules/dailylog"
	resp "smokefree/pkg/lib/response"
	"smokefree/pkg/lib/validation"
)

type DailyLogController struct {
	useCase  dailylog.UseCase
	log      *slog.Logger
	validate *validator.Validate
}

func NewDailyLogController(useCase dailylog.UseCase, log *slog.Logger) *DailyLogController {
	return &DailyLogController{
		useCase:  useCase,
		log:      log,
		validate: validation.New(),
	}
}

// GetDailyLog
// @Summary Get the log for one day
// @Description Returns a zero log when nothing was recorded for that day.
// @Tags logs
// @Produce json
// @Param deviceId path string true "Device ID"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dailylog.DailyLogResponse
// @Failure 400 {object} response.ErrorResponse "Invalid date"
// @Failure 500 {object} response.ErrorResponse
// @Router /logs/{deviceId}/{date} [get]
func (c *DailyLogController) GetDailyLog(w http.ResponseWriter, r *http.Request) {
	op := "DailyLogController.GetDailyLog"
	deviceID, date := chi.URLParam(r, "deviceId"), chi.URLParam(r, "date")
	log := c.log.With(slog.String("op", op), slog.String("deviceID", deviceID), slog.String("date", date))

	result, err := c.useCase.GetDailyLog(r.Context(), deviceID, date)
	if err != nil {
		c.sendError(w, r, log, err)
		return
	}
	resp.SendSuccess(w, r, http.StatusOK, result)
}

// UpsertDailyLog
// @Summary Create or replace the log for one day
// @Tags logs
// @Accept json
// @Produce json
// @Param log body dailylog.UpsertDailyLogRequest true "Daily log"
// @Success 200 {object} dailylog.DailyLogResponse
// @Failure 400 {object} response.ErrorResponse "Invalid payload"
// @Failure 500 {object} response.ErrorResponse
// @Router /logs [post]
func (c *DailyLogController) UpsertDailyLog(w http.ResponseWriter, r *http.Request) {
	op := "DailyLogController.UpsertDailyLog"
	log := c.log.With(slog.String("op", op))

	var req dailylog.UpsertDailyLogRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("failed to decode request body", "error", err)
		resp.SendError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := c.validate.Struct(req); err != nil {
		log.Warn("validation failed", "error", err)
		resp.SendValidationError(w, r, err)
		return
	}

	result, err := c.useCase.UpsertDailyLog(r.Context(), req)
	if err != nil {
		c.sendError(w, r, log, err)
		return
	}
	resp.SendSuccess(w, r, http.StatusOK, result)
}

// IncrementDailyLog
// @Summary Record one cigarette
// @Description Atomically adds one to the day's count, creating the log if needed.
// @Tags logs
// @Produce json
// @Param deviceId path string true "Device ID"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dailylog.DailyLogResponse
// @Failure 400 {object} response.ErrorResponse "Invalid date"
// @Failure 500 {object} response.ErrorResponse
// @Router /logs/{deviceId}/{date}/increment [put]
func (c *DailyLogController) IncrementDailyLog(w http.ResponseWriter, r *http.Request) {
	op := "DailyLogController.IncrementDailyLog"
	deviceID, date := chi.URLParam(r, "deviceId"), chi.URLParam(r, "date")
	log := c.log.With(slog.String("op", op), slog.String("deviceID", deviceID), slog.String("date", date))

	result, err := c.useCase.IncrementDailyLog(r.Context(), deviceID, date)
	if err != nil {
		c.sendError(w, r, log, err)
		return
	}
	resp.SendSuccess(w, r, http.StatusOK, result)
}

func (c *DailyLogController) sendError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	if errors.Is(err, dailylog.ErrLogInvalidDate) {
		log.Warn("invalid date", "error", err)
		resp.SendError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	log.Error("daily log operation failed", "error", err)
	resp.SendError(w, r, http.StatusInternalServerError, "Failed to process daily log")
}
