package timeclock

import (
	"time"
)

// OpenShift is an event record: its existence means the worker is on shift
// right now. At most one exists per worker.
type OpenShift struct {
	ID       string
	WorkerID string
	BegunAt  time.Time
}

// ClosedShift is a completed shift. EndedAt is nil when the record was closed
// by reconciliation because the worker never stamped out before the day
// changed; such a shift has an unknowable duration.
type ClosedShift struct {
	ID       string
	WorkerID string
	BegunAt  time.Time
	EndedAt  *time.Time
}

// OpenBreak is an event record: its existence means the worker is on a break.
// A break can only be opened while an OpenShift exists for the same worker.
type OpenBreak struct {
	ID       string
	WorkerID string
	BegunAt  time.Time
}

// ClosedBreak is a completed break. Same nil-EndedAt convention as ClosedShift.
type ClosedBreak struct {
	ID       string
	WorkerID string
	BegunAt  time.Time
	EndedAt  *time.Time
}

// TimeInSeconds returns the shift duration, or nil when the shift was closed
// without an end stamp.
func (s ClosedShift) TimeInSeconds() *int64 {
	return spanSeconds(s.BegunAt, s.EndedAt)
}

// TimeInSeconds returns the break duration, or nil when the break was closed
// without an end stamp.
func (b ClosedBreak) TimeInSeconds() *int64 {
	return spanSeconds(b.BegunAt, b.EndedAt)
}

func spanSeconds(begunAt time.Time, endedAt *time.Time) *int64 {
	if endedAt == nil {
		return nil
	}
	secs := int64(endedAt.Sub(begunAt) / time.Second)
	return &secs
}

// WorkStatus is the worker's current logical state, derived from the presence
// of open records.
type WorkStatus string

const (
	// StatusBefore covers both "not started yet" and "shift ended for the day".
	StatusBefore WorkStatus = "before"
	StatusDuring WorkStatus = "during"
	StatusBreak  WorkStatus = "break"
)

func (s WorkStatus) IsBefore() bool { return s == StatusBefore }
func (s WorkStatus) IsDuring() bool { return s == StatusDuring }
func (s WorkStatus) IsBreak() bool  { return s == StatusBreak }

// DailyShiftRow is one worker's shift on a given day, open or closed, joined
// with the worker's name for report ordering.
type DailyShiftRow struct {
	WorkerID   string
	WorkerName string
	BegunAt    time.Time
	EndedAt    *time.Time
	Open       bool
}
