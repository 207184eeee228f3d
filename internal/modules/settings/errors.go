package settings

import "errors"

var (
	// ErrSettingsNotFound means the device has never written settings.
	ErrSettingsNotFound = errors.New("settings not found")
	ErrSettingsInternal = errors.New("internal error")
	// ErrSettingsInvalidInput covers checks the struct validator cannot express,
	// e.g. a partial update that would leave the goal below 1.
	ErrSettingsInvalidInput = errors.New("invalid input for settings operation")
)
