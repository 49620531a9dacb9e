package timeclock

import (
	"context"
	"time"
)

// StampService executes the four stamp transitions and reports the worker's
// current status. Every method reconciles stale cross-midnight open records
// before touching state. The current time is passed explicitly; the service
// never reads it from ambient state.
type StampService interface {
	Stamp(ctx context.Context, action StampAction, workerID string, now time.Time) error
	BeginShift(ctx context.Context, workerID string, now time.Time) error
	EndShift(ctx context.Context, workerID string, now time.Time) error
	BeginBreak(ctx context.Context, workerID string, now time.Time) error
	EndBreak(ctx context.Context, workerID string, now time.Time) error
	Status(ctx context.Context, workerID string, now time.Time) (StatusResponse, error)
}

// AttendanceService is the read-only aggregation side. It never mutates state
// and tolerates both reconciled and still-open cross-midnight records.
type AttendanceService interface {
	DailyAttendances(ctx context.Context, date time.Time, page, limit int) (DailyAttendanceResponse, error)
	MonthlyAttendance(ctx context.Context, workerID string, month time.Time, now time.Time) (MonthlyAttendanceResponse, error)
}
