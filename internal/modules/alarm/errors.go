package alarm

import "errors"

var (
	ErrAlarmInternal    = errors.New("internal error")
	ErrAlarmInvalidDate = errors.New("date must be YYYY-MM-DD")
	ErrAlarmInvalid     = errors.New("alarm times must be HH:MM")
)
