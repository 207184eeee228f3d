package coordinator

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"smokefree/internal/device/localcache"
	"smokefree/internal/device/model"
)

// Codes honoured on the device without asking the store. Matching is exact.
const (
	codeOneMonth  = "EASY EASY"
	codePerpetual = "Easy22"
)

const (
	MessageActivated   = "Premium activated"
	MessageInvalid     = "Invalid promo code"
	MessageUnreachable = "Could not reach server, try again later"
)

type PromoResult struct {
	Valid            bool
	Message          string
	PremiumEnabled   bool
	PremiumExpiresAt *time.Time
}

// ApplyPromoCode redeems code. The two built-in codes grant premium locally; any
// other code is checked against the store.
func (c *Coordinator) ApplyPromoCode(ctx context.Context, code string) PromoResult {
	op := "Coordinator.ApplyPromoCode"
	log := c.log.With(slog.String("op", op))

	code = strings.TrimSpace(code)
	switch code {
	case "":
		return PromoResult{Message: MessageInvalid}
	case codeOneMonth:
		exp := c.now().AddDate(0, 1, 0)
		return c.grantLocal(ctx, code, &exp, true)
	case codePerpetual:
		return c.grantLocal(ctx, code, nil, true)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.remote.ValidatePromo(reqCtx, c.deviceID, code)
	c.apply(func(s *Snapshot) {
		if err != nil {
			s.LastSyncError = err
			s.ConsecutiveFailures++
			return
		}
		s.LastSyncError = nil
		s.ConsecutiveFailures = 0
	})
	if err != nil {
		log.Warn("promo validation failed", slog.String("error", err.Error()))
		return PromoResult{Message: MessageUnreachable}
	}

	if !res.Valid || !res.PremiumEnabled {
		msg := res.Message
		if msg == "" {
			msg = MessageInvalid
		}
		return PromoResult{Valid: res.Valid, Message: msg}
	}

	// The store already recorded the grant on its copy of the settings.
	out := c.grantLocal(ctx, code, res.PremiumExpiresAt, false)
	if res.Message != "" {
		out.Message = res.Message
	}
	return out
}

// grantLocal records a premium entitlement in the cache and in memory. When notify
// is set the grant stays pending until the validate endpoint confirms it.
func (c *Coordinator) grantLocal(ctx context.Context, code string, expiresAt *time.Time, notify bool) PromoResult {
	op := "Coordinator.grantLocal"
	log := c.log.With(slog.String("op", op))

	ent := model.Entitlement{Premium: true, ExpiresAt: expiresAt, PromoCode: code, Pending: notify}
	if err := c.local.SaveEntitlement(&ent); err != nil {
		log.Warn("local entitlement write failed", slog.String("error", err.Error()))
	}

	c.mu.RLock()
	var current *model.Settings
	if c.snap.Settings != nil {
		v := *c.snap.Settings
		current = &v
	}
	c.mu.RUnlock()

	if current != nil {
		ent.ApplyTo(current)
		current.UpdatedAt = c.now()
		if err := c.local.SaveSettings(current); err != nil {
			log.Warn("local settings write failed", slog.String("error", err.Error()))
		}
	}

	c.update(func(s *Snapshot) {
		s.Entitlement = ent
		if current != nil {
			v := *current
			s.Settings = &v
		}
	})
	c.mu.Lock()
	c.entitlementLoaded = true
	c.mu.Unlock()

	if notify {
		c.dispatch(ctx, op, func(ctx context.Context) error {
			return c.pushGrant(ctx, log, code)
		})
	}

	return PromoResult{
		Valid:            true,
		Message:          MessageActivated,
		PremiumEnabled:   true,
		PremiumExpiresAt: expiresAt,
	}
}

// pendingGrant returns the locally granted entitlement the store has not confirmed,
// if it is still active.
func (c *Coordinator) pendingGrant(log *slog.Logger) (model.Entitlement, bool) {
	ent, err := c.local.GetEntitlement()
	if err != nil {
		if !errors.Is(err, localcache.ErrNotFound) {
			log.Warn("local entitlement read failed", slog.String("error", err.Error()))
		}
		return model.Entitlement{}, false
	}
	if !ent.Pending || !ent.Active(c.now()) {
		return model.Entitlement{}, false
	}
	return *ent, true
}

// pushGrant sends a local grant to the validate endpoint. The store records premium
// on its settings when it accepts the code; only then is the grant settled.
func (c *Coordinator) pushGrant(ctx context.Context, log *slog.Logger, code string) error {
	res, err := c.remote.ValidatePromo(ctx, c.deviceID, code)
	if err != nil {
		return err
	}
	if !res.Valid || !res.PremiumEnabled {
		log.Warn("store did not confirm local grant", slog.String("message", res.Message))
		return nil
	}

	// Without a settings row the store accepts the code but has nowhere to keep it.
	if _, err := c.local.GetSettings(); err != nil {
		return nil
	}
	ent, err := c.local.GetEntitlement()
	if err != nil || ent.PromoCode != code || !ent.Pending {
		return nil
	}
	ent.Pending = false
	if err := c.local.SaveEntitlement(ent); err != nil {
		log.Warn("local entitlement write failed", slog.String("error", err.Error()))
		return nil
	}
	c.apply(func(s *Snapshot) {
		if s.Entitlement.PromoCode == code {
			s.Entitlement.Pending = false
		}
	})
	return nil
}
