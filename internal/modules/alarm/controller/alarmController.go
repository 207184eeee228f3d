package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"smokefree/internal/modules/alarm"
	resp "smokefree/pkg/lib/response"
	"smokefree/pkg/lib/validation"
)

type AlarmController struct {
	useCase  alarm.UseCase
	log      *slog.Logger
	validate *validator.Validate
}

func NewAlarmController(useCase alarm.UseCase, log *slog.Logger) *AlarmController {
	return &AlarmController{
		useCase:  useCase,
		log:      log,
		validate: validation.New(),
	}
}

// GetAlarms
// @Summary Get the alarm schedule for one day
// @Tags alarms
// @Produce json
// @Param deviceId path string true "Device ID"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} alarm.AlarmScheduleResponse
// @Failure 400 {object} response.ErrorResponse "Invalid date"
// @Failure 500 {object} response.ErrorResponse
// @Router /alarms/{deviceId}/{date} [get]
func (c *AlarmController) GetAlarms(w http.ResponseWriter, r *http.Request) {
	op := "AlarmController.GetAlarms"
	deviceID, date := chi.URLParam(r, "deviceId"), chi.URLParam(r, "date")
	log := c.log.With(slog.String("op", op), slog.String("deviceID", deviceID), slog.String("date", date))

	result, err := c.useCase.GetAlarms(r.Context(), deviceID, date)
	if err != nil {
		if errors.Is(err, alarm.ErrAlarmInvalidDate) {
			resp.SendError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Error("usecase GetAlarms failed", "error", err)
		resp.SendError(w, r, http.StatusInternalServerError, "Failed to get alarms")
		return
	}
	resp.SendSuccess(w, r, http.StatusOK, result)
}

// SaveAlarms
// @Summary Save the alarm schedule for one day
// @Tags alarms
// @Accept json
// @Produce json
// @Param alarms body alarm.SaveAlarmsRequest true "Alarm schedule"
// @Success 200 {object} alarm.AlarmScheduleResponse
// @Failure 400 {object} response.ErrorResponse "Invalid payload"
// @Failure 500 {object} response.ErrorResponse
// @Router /alarms [post]
func (c *AlarmController) SaveAlarms(w http.ResponseWriter, r *http.Request) {
	op := "AlarmController.SaveAlarms"
	log := c.log.With(slog.String("op", op))

	var req alarm.SaveAlarmsRequest
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

	result, err := c.useCase.SaveAlarms(r.Context(), req)
	if err != nil {
		if errors.Is(err, alarm.ErrAlarmInvalid) {
			resp.SendError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Error("usecase SaveAlarms failed", "error", err)
		resp.SendError(w, r, http.StatusInternalServerError, "Failed to save alarms")
		return
	}
	resp.SendSuccess(w, r, http.StatusOK, result)
}
