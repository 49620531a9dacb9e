package timeclock

import (
	"context"
	"time"
)

// ShiftRepository defines data access for open and closed shift records.
// Range arguments are half-open intervals [from, to) of absolute timestamps;
// callers derive them from calendar days in the deployment time zone.
type ShiftRepository interface {
	// GetOpenShift returns the worker's open shift, or nil when there is none.
	GetOpenShift(ctx context.Context, workerID string) (*OpenShift, error)

	// GetOpenShiftForUpdate is GetOpenShift with a row-level write lock. Must
	// be called inside a transaction.
	GetOpenShiftForUpdate(ctx context.Context, workerID string) (*OpenShift, error)

	CreateOpenShift(ctx context.Context, shift OpenShift) (OpenShift, error)
	DeleteOpenShift(ctx context.Context, id string) error

	// ListOpenShiftsBegunBefore returns the worker's open shifts begun before
	// cutoff, locked for update. Used by reconciliation.
	ListOpenShiftsBegunBefore(ctx context.Context, workerID string, cutoff time.Time) ([]OpenShift, error)

	// ListAllOpenShiftsBegunBefore is the cross-worker variant used by the
	// nightly sweep job.
	ListAllOpenShiftsBegunBefore(ctx context.Context, cutoff time.Time) ([]OpenShift, error)

	CreateClosedShift(ctx context.Context, shift ClosedShift) (ClosedShift, error)

	// GetClosedShiftInRange returns the worker's closed shift begun within
	// [from, to), or nil when there is none.
	GetClosedShiftInRange(ctx context.Context, workerID string, from, to time.Time) (*ClosedShift, error)

	// GetClosedShiftInRangeForUpdate locks the row for the resume flow that
	// deletes it and reuses its begun_at.
	GetClosedShiftInRangeForUpdate(ctx context.Context, workerID string, from, to time.Time) (*ClosedShift, error)

	DeleteClosedShift(ctx context.Context, id string) error

	ListClosedShiftsInRange(ctx context.Context, workerID string, from, to time.Time) ([]ClosedShift, error)

	// ListDailyShifts returns one row per worker with any shift activity
	// (open or closed) begun within [from, to), joined with worker names and
	// ordered by name then worker id, paginated. The second return value is
	// the total row count before pagination.
	ListDailyShifts(ctx context.Context, from, to time.Time, limit, offset int) ([]DailyShiftRow, int64, error)
}

// TxManager runs a function inside a storage transaction. Repository calls
// made with the context passed to fn share that transaction. WithinSnapshot
// is the read-only repeatable-read variant used by reports.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	WithinSnapshot(ctx context.Context, fn func(ctx context.Context) error) error
}

// BreakRepository defines data access for open and closed break records.
type BreakRepository interface {
	GetOpenBreak(ctx context.Context, workerID string) (*OpenBreak, error)
	GetOpenBreakForUpdate(ctx context.Context, workerID string) (*OpenBreak, error)
	CreateOpenBreak(ctx context.Context, brk OpenBreak) (OpenBreak, error)
	DeleteOpenBreak(ctx context.Context, id string) error

	ListOpenBreaksBegunBefore(ctx context.Context, workerID string, cutoff time.Time) ([]OpenBreak, error)
	ListAllOpenBreaksBegunBefore(ctx context.Context, cutoff time.Time) ([]OpenBreak, error)

	CreateClosedBreak(ctx context.Context, brk ClosedBreak) (ClosedBreak, error)
	ListClosedBreaksInRange(ctx context.Context, workerID string, from, to time.Time) ([]ClosedBreak, error)
}
