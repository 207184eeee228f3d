package usecase

import (
	"context"
	"errors"
	"log/slog"
	"smokefree/internal/modules/promo"
	"strings"
	"time"
)

type PromoUseCase struct {
	repo    promo.Repo
	granter promo.PremiumGranter
	log     *slog.Logger
	nowFn   func() time.Time
}

func NewPromoUseCase(repo promo.Repo, granter promo.PremiumGranter, log *slog.Logger) promo.UseCase {
	return &PromoUseCase{
		repo:    repo,
		granter: granter,
		log:     log,
		nowFn:   time.Now,
	}
}

// ValidatePromo checks the trimmed code against the active codes. A valid premium
// code is also recorded on the device's settings when deviceId is given; failing to
// record it does not change the answer.
func (uc *PromoUseCase) ValidatePromo(ctx context.Context, req promo.ValidatePromoRequest) (*promo.ValidatePromoResponse, error) {
	op := "PromoUseCase.ValidatePromo"
	log := uc.log.With(slog.String("op", op), slog.String("deviceID", req.DeviceID))

	code := strings.TrimSpace(req.Code)
	if code == "" {
		return &promo.ValidatePromoResponse{Message: promo.MessageInvalid}, nil
	}

	found, err := uc.repo.FindActiveCode(ctx, code)
	if errors.Is(err, promo.ErrPromoNotFound) {
		log.Info("promo code rejected")
		return &promo.ValidatePromoResponse{Message: promo.MessageInvalid}, nil
	}
	if err != nil {
		return nil, err
	}

	res := &promo.ValidatePromoResponse{
		Valid:          true,
		PremiumEnabled: found.Premium,
		Message:        promo.MessageActivated,
	}
	if !found.Premium {
		res.Message = "Promo code accepted"
		return res, nil
	}
	res.PremiumExpiresAt = found.ExpiresAt(uc.nowFn())

	if req.DeviceID != "" && uc.granter != nil {
		if err := uc.granter.GrantPremium(ctx, req.DeviceID, found.Code, res.PremiumExpiresAt); err != nil {
			log.Warn("promo accepted but premium could not be stored", "error", err)
		}
	}

	log.Info("promo code accepted", slog.Bool("perpetual", res.PremiumExpiresAt == nil))
	return res, nil
}
