package stats

import (
	"context"
	"net/http"

	"smokefree/pkg/lib/statistics"
)

const MaxWindowDays = 365

type Controller interface {
	GetStatistics(w http.ResponseWriter, r *http.Request)
}

type UseCase interface {
	GetStatistics(ctx context.Context, deviceID string, days int) (*statistics.Statistics, error)
	InvalidateStats(ctx context.Context, deviceID string) error
}

// Cache stores computed statistics per device. field identifies the day and window.
type Cache interface {
	GetStats(ctx context.Context, deviceID, field string) (*statistics.Statistics, error)
	SaveStats(ctx context.Context, deviceID, field string, s *statistics.Statistics) error
	DeleteStats(ctx context.Context, deviceID string) error
}
