package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"smokefree/internal/modules/settings"
	resp "smokefree/pkg/lib/response"
	"smokefree/pkg/lib/validation"
)

type SettingsController struct {
	useCase  settings.UseCase
	log      *slog.Logger
	validate *validator.Validate
}

func NewSettingsController(useCase settings.UseCase, log *slog.Logger) *SettingsController {
	return &SettingsController{
		useCase:  useCase,
		log:      log,
		validate: validation.New(),
	}
}

// GetSettings
// @Summary Get device settings
// @Tags settings
// @Produce json
// @Param deviceId path string true "Device ID"
// @Success 200 {object} settings.SettingsResponse
// @Failure 404 {object} response.ErrorResponse "Settings not found"
// @Failure 500 {object} response.ErrorResponse
// @Router /settings/{deviceId} [get]
func (c *SettingsController) GetSettings(w http.ResponseWriter, r *http.Request) {
	op := "SettingsController.GetSettings"
	deviceID := chi.URLParam(r, "deviceId")
	log := c.log.With(slog.String("op", op), slog.String("deviceID", deviceID))

	result, err := c.useCase.GetSettings(r.Context(), deviceID)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			resp.SendError(w, r, http.StatusNotFound, err.Error())
			return
		}
		log.Error("usecase GetSettings failed", "error", err)
		resp.SendError(w, r, http.StatusInternalServerError, "Failed to get settings")
		return
	}

	resp.SendSuccess(w, r, http.StatusOK, result)
}

// UpsertSettings
// @Summary Create or replace device settings
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body settings.UpsertSettingsRequest true "Settings"
// @Success 200 {object} settings.SettingsResponse
// @Failure 400 {object} response.ErrorResponse "Invalid payload"
// @Failure 500 {object} response.ErrorResponse
// @Router /settings [post]
func (c *SettingsController) UpsertSettings(w http.ResponseWriter, r *http.Request) {
	op := "SettingsController.UpsertSettings"
	log := c.log.With(slog.String("op", op))

	var req settings.UpsertSettingsRequest
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

	result, err := c.useCase.UpsertSettings(r.Context(), req)
	if err != nil {
		log.Error("usecase UpsertSettings failed", "error", err)
		resp.SendError(w, r, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	resp.SendSuccess(w, r, http.StatusOK, result)
}

// UpdateSettings
// @Summary Partially update device settings
// @Tags settings
// @Accept json
// @Produce json
// @Param deviceId path string true "Device ID"
// @Param settings body settings.UpdateSettingsRequest true "Fields to change"
// @Success 200 {object} settings.SettingsResponse
// @Failure 400 {object} response.ErrorResponse "Invalid payload"
// @Failure 404 {object} response.ErrorResponse "Settings not found"
// @Failure 500 {object} response.ErrorResponse
// @Router /settings/{deviceId} [put]
func (c *SettingsController) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	op := "SettingsController.UpdateSettings"
	deviceID := chi.URLParam(r, "deviceId")
	log := c.log.With(slog.String("op", op), slog.String("deviceID", deviceID))

	var req settings.UpdateSettingsRequest
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

	result, err := c.useCase.UpdateSettings(r.Context(), deviceID, req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrSettingsNotFound):
			resp.SendError(w, r, http.StatusNotFound, err.Error())
		case errors.Is(err, settings.ErrSettingsInvalidInput):
			resp.SendError(w, r, http.StatusBadRequest, err.Error())
		default:
			log.Error("usecase UpdateSettings failed", "error", err)
			resp.SendError(w, r, http.StatusInternalServerError, "Failed to update settings")
		}
		return
	}

	resp.SendSuccess(w, r, http.StatusOK, result)
}
