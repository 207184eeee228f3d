package coordinator

import "errors"

var (
	ErrNoSettings      = errors.New("no settings yet")
	ErrInvalidSettings = errors.New("invalid settings")
	ErrInvalidLog      = errors.New("invalid daily log")
)
