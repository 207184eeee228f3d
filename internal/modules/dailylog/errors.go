package dailylog

import "errors"

var (
	ErrLogNotFound        = errors.New("daily log not found")
	ErrLogInternal        = errors.New("internal error")
	ErrLogInvalidDate     = errors.New("date must be YYYY-MM-DD")
	ErrArchiveDisabled    = errors.New("daily log archive is not configured")
	ErrArchiveUploadFailed = errors.New("failed to upload daily log archive")
)
