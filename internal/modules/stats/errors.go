package stats

import "errors"

var (
	ErrStatsInternal     = errors.New("internal error")
	ErrStatsCacheMiss    = errors.New("statistics not cached")
	ErrStatsInvalidRange = errors.New("days must be between 1 and 365")
)
