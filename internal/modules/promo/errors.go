package promo

import "errors"

var (
	ErrPromoNotFound = errors.New("promo code not found")
	ErrPromoInternal = errors.New("internal error")
)
