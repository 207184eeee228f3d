package controller

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"smokefree/internal/modules/promo"
	resp "smokefree/pkg/lib/response"
	"smokefree/pkg/lib/validation"
)

type PromoController struct {
	useCase  promo.UseCase
	log      *slog.Logger
	validate *validator.Validate
}

func NewPromoController(useCase promo.UseCase, log *slog.Logger) *PromoController {
	return &PromoController{
		useCase:  useCase,
		log:      log,
		validate: validation.New(),
	}
}

// ValidatePromo
// @Summary Validate a promo code
// @Description An unknown code is not an error: it answers valid=false.
// @Tags promo
// @Accept json
// @Produce json
// @Param promo body promo.ValidatePromoRequest true "Promo code"
// @Success 200 {object} promo.ValidatePromoResponse
// @Failure 400 {object} response.ErrorResponse "Invalid payload"
// @Failure 429 {object} response.ErrorResponse "Too many attempts"
// @Failure 500 {object} response.ErrorResponse
// @Router /promo/validate [post]
func (c *PromoController) ValidatePromo(w http.ResponseWriter, r *http.Request) {
	op := "PromoController.ValidatePromo"
	log := c.log.With(slog.String("op", op))

	var req promo.ValidatePromoRequest
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

	result, err := c.useCase.ValidatePromo(r.Context(), req)
	if err != nil {
		log.Error("usecase ValidatePromo failed", "error", err)
		resp.SendError(w, r, http.StatusInternalServerError, "Failed to validate promo code")
		return
	}
	resp.SendSuccess(w, r, http.StatusOK, result)
}
