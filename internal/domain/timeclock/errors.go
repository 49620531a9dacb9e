package timeclock

import "errors"

// Timeclock domain errors. Illegal stamp transitions are deliberately not
// errors; they degrade to silent no-ops so duplicate or out-of-order client
// submissions never surface failures to the worker.
var (
	ErrUnknownStampAction = errors.New("unknown stamp action")
	ErrInvalidDate        = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidMonth       = errors.New("invalid month, expected YYYY-MM")
)
