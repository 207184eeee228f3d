package promo

import (
	"context"
	"net/http"
	"time"
)

const (
	MessageActivated = "Premium activated"
	MessageInvalid   = "Invalid promo code"
)

// PromoCode is the GORM model for 'promo_codes'. A nil DurationMonths grants
// premium without expiry.
type PromoCode struct {
	Code           string    `gorm:"primaryKey;column:code;type:varchar(64)"`
	Premium        bool      `gorm:"column:premium;not null"`
	DurationMonths *int      `gorm:"column:duration_months"`
	Active         bool      `gorm:"column:active;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
}

func (PromoCode) TableName() string {
	return "promo_codes"
}

// ExpiresAt returns the entitlement end for a grant made at now.
func (p *PromoCode) ExpiresAt(now time.Time) *time.Time {
	if p.DurationMonths == nil {
		return nil
	}
	exp := now.AddDate(0, *p.DurationMonths, 0)
	return &exp
}

type ValidatePromoRequest struct {
	Code     string `json:"code" validate:"required,max=64"`
	DeviceID string `json:"deviceId" validate:"omitempty,max=128"`
}

type ValidatePromoResponse struct {
	Valid            bool       `json:"valid"`
	Message          string     `json:"message"`
	PremiumEnabled   bool       `json:"premiumEnabled"`
	PremiumExpiresAt *time.Time `json:"premiumExpiresAt,omitempty"`
}

// PremiumGranter persists a premium entitlement on the device's settings.
type PremiumGranter interface {
	GrantPremium(ctx context.Context, deviceID string, promoCode string, expiresAt *time.Time) error
}

type Controller interface {
	ValidatePromo(w http.ResponseWriter, r *http.Request)
}

type UseCase interface {
	ValidatePromo(ctx context.Context, req ValidatePromoRequest) (*ValidatePromoResponse, error)
}

type Repo interface {
	FindActiveCode(ctx context.Context, code string) (*PromoCode, error)
}
