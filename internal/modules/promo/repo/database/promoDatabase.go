package database

import (
	"context"
	"errors"
	"log/slog"
	"smokefree/internal/modules/promo"

	"gorm.io/gorm"
)

type PromoDatabase struct {
	db  *gorm.DB
	log *slog.Logger
}

var _ promo.Repo = (*PromoDatabase)(nil)

func NewPromoDatabase(db *gorm.DB, log *slog.Logger) *PromoDatabase {
	return &PromoDatabase{
		db:  db,
		log: log,
	}
}

// FindActiveCode matches case-insensitively.
func (r *PromoDatabase) FindActiveCode(ctx context.Context, code string) (*promo.PromoCode, error) {
	op := "PromoDatabase.FindActiveCode"
	log := r.log.With(slog.String("op", op))

	var model promo.PromoCode
	err := r.db.WithContext(ctx).
		Where("UPPER(code) = UPPER(?) AND active = ?", code, true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, promo.ErrPromoNotFound
		}
		log.Error("failed to look up promo code", "error", err)
		return nil, promo.ErrPromoInternal
	}
	return &model, nil
}
