package stamp

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftlog-hr/timeclock-backend-go/internal/domain/timeclock"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/pkg/timeutil"
)

// StampServiceImpl implements the four stamp transitions as single storage
// transactions. Preconditions are re-checked under row locks, so two racing
// requests from the same worker resolve to one state change and one no-op.
// Transitions whose precondition is unmet are silent no-ops; duplicate and
// out-of-order submissions never surface errors to the worker.
type StampServiceImpl struct {
	tx     timeclock.TxManager
	shifts timeclock.ShiftRepository
	breaks timeclock.BreakRepository
	loc    *time.Location
}

func NewStampService(
	tx timeclock.TxManager,
	shiftRepo timeclock.ShiftRepository,
	breakRepo timeclock.BreakRepository,
	loc *time.Location,
) timeclock.StampService {
	return &StampServiceImpl{
		tx:     tx,
		shifts: shiftRepo,
		breaks: breakRepo,
		loc:    loc,
	}
}

// Stamp implements timeclock.StampService.
func (s *StampServiceImpl) Stamp(ctx context.Context, action timeclock.StampAction, workerID string, now time.Time) error {
	switch action {
	case timeclock.ActionBeginShift:
		return s.BeginShift(ctx, workerID, now)
	case timeclock.ActionEndShift:
		return s.EndShift(ctx, workerID, now)
	case timeclock.ActionBeginBreak:
		return s.BeginBreak(ctx, workerID, now)
	case timeclock.ActionEndBreak:
		return s.EndBreak(ctx, workerID, now)
	default:
		return timeclock.ErrUnknownStampAction
	}
}

// reconcile closes out open records left over from a calendar day before
// now's day: each becomes a closed record with a null end time and the open
// record is deleted. Re-invoking with nothing to repair is a no-op. Shifts
// are handled before breaks since break existence is gated on shift
// existence. Must run inside the caller's transaction.
func (s *StampServiceImpl) reconcile(ctx context.Context, workerID string, now time.Time) error {
	dayStart := timeutil.DayStart(now, s.loc)

	staleShifts, err := s.shifts.ListOpenShiftsBegunBefore(ctx, workerID, dayStart)
	if err != nil {
		return fmt.Errorf("failed to list stale open shifts: %w", err)
	}
	for _, open := range staleShifts {
		closed := timeclock.ClosedShift{
			WorkerID: open.WorkerID,
			BegunAt:  open.BegunAt,
			EndedAt:  nil,
		}
		if _, err := s.shifts.CreateClosedShift(ctx, closed); err != nil {
			return fmt.Errorf("failed to close stale shift: %w", err)
		}
		if err := s.shifts.DeleteOpenShift(ctx, open.ID); err != nil {
			return fmt.Errorf("failed to delete stale open shift: %w", err)
		}
	}

	staleBreaks, err := s.breaks.ListOpenBreaksBegunBefore(ctx, workerID, dayStart)
	if err != nil {
		return fmt.Errorf("failed to list stale open breaks: %w", err)
	}
	for _, open := range staleBreaks {
		closed := timeclock.ClosedBreak{
			WorkerID: open.WorkerID,
			BegunAt:  open.BegunAt,
			EndedAt:  nil,
		}
		if _, err := s.breaks.CreateClosedBreak(ctx, closed); err != nil {
			return fmt.Errorf("failed to close stale break: %w", err)
		}
		if err := s.breaks.DeleteOpenBreak(ctx, open.ID); err != nil {
			return fmt.Errorf("failed to delete stale open break: %w", err)
		}
	}

	return nil
}

// BeginShift implements timeclock.StampService. A repeated begin keeps the
// first begin time. When the worker already ended a shift earlier the same
// day, that closed shift is deleted and its begun_at reused, so the day's
// shift span survives a resume.
func (s *StampServiceImpl) BeginShift(ctx context.Context, workerID string, now time.Time) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.reconcile(ctx, workerID, now); err != nil {
			return err
		}

		open, err := s.shifts.GetOpenShiftForUpdate(ctx, workerID)
		if err != nil {
			return fmt.Errorf("failed to get open shift: %w", err)
		}
		if open != nil {
			return nil
		}

		begunAt := now
		from, to := timeutil.DayBounds(now, s.loc)
		closed, err := s.shifts.GetClosedShiftInRangeForUpdate(ctx, workerID, from, to)
		if err != nil {
			return fmt.Errorf("failed to get closed shift: %w", err)
		}
		if closed != nil {
			begunAt = closed.BegunAt
			if err := s.shifts.DeleteClosedShift(ctx, closed.ID); err != nil {
				return fmt.Errorf("failed to delete resumed shift: %w", err)
			}
		}

		_, err = s.shifts.CreateOpenShift(ctx, timeclock.OpenShift{
			WorkerID: workerID,
			BegunAt:  begunAt,
		})
		if err != nil {
			return fmt.Errorf("failed to create open shift: %w", err)
		}
		return nil
	})
}

// EndShift implements timeclock.StampService. A shift cannot be ended while
// a break is open; the worker has to end the break first. The shift row lock
// is taken before the break check so a concurrent BeginBreak, which locks the
// same row, cannot slip a new break in between the check and the delete.
func (s *StampServiceImpl) EndShift(ctx context.Context, workerID string, now time.Time) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.reconcile(ctx, workerID, now); err != nil {
			return err
		}

		open, err := s.shifts.GetOpenShiftForUpdate(ctx, workerID)
		if err != nil {
			return fmt.Errorf("failed to get open shift: %w", err)
		}
		if open == nil {
			return nil
		}

		openBreak, err := s.breaks.GetOpenBreak(ctx, workerID)
		if err != nil {
			return fmt.Errorf("failed to get open break: %w", err)
		}
		if openBreak != nil {
			return nil
		}

		closed := timeclock.ClosedShift{
			WorkerID: open.WorkerID,
			BegunAt:  open.BegunAt,
			EndedAt:  &now,
		}
		if _, err := s.shifts.CreateClosedShift(ctx, closed); err != nil {
			return fmt.Errorf("failed to create closed shift: %w", err)
		}
		if err := s.shifts.DeleteOpenShift(ctx, open.ID); err != nil {
			return fmt.Errorf("failed to delete open shift: %w", err)
		}
		return nil
	})
}

// BeginBreak implements timeclock.StampService. No-op unless a shift is open;
// a repeated begin keeps the first begin time. The shift precondition is read
// under the same row lock EndShift takes, so the two operations serialize and
// a break can never be created against a shift that is being ended.
func (s *StampServiceImpl) BeginBreak(ctx context.Context, workerID string, now time.Time) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.reconcile(ctx, workerID, now); err != nil {
			return err
		}

		openShift, err := s.shifts.GetOpenShiftForUpdate(ctx, workerID)
		if err != nil {
			return fmt.Errorf("failed to get open shift: %w", err)
		}
		if openShift == nil {
			return nil
		}

		openBreak, err := s.breaks.GetOpenBreakForUpdate(ctx, workerID)
		if err != nil {
			return fmt.Errorf("failed to get open break: %w", err)
		}
		if openBreak != nil {
			return nil
		}

		_, err = s.breaks.CreateOpenBreak(ctx, timeclock.OpenBreak{
			WorkerID: workerID,
			BegunAt:  now,
		})
		if err != nil {
			return fmt.Errorf("failed to create open break: %w", err)
		}
		return nil
	})
}

// EndBreak implements timeclock.StampService.
func (s *StampServiceImpl) EndBreak(ctx context.Context, workerID string, now time.Time) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.reconcile(ctx, workerID, now); err != nil {
			return err
		}

		open, err := s.breaks.GetOpenBreakForUpdate(ctx, workerID)
		if err != nil {
			return fmt.Errorf("failed to get open break: %w", err)
		}
		if open == nil {
			return nil
		}

		closed := timeclock.ClosedBreak{
			WorkerID: open.WorkerID,
			BegunAt:  open.BegunAt,
			EndedAt:  &now,
		}
		if _, err := s.breaks.CreateClosedBreak(ctx, closed); err != nil {
			return fmt.Errorf("failed to create closed break: %w", err)
		}
		if err := s.breaks.DeleteOpenBreak(ctx, open.ID); err != nil {
			return fmt.Errorf("failed to delete open break: %w", err)
		}
		return nil
	})
}

// Status implements timeclock.StampService. Stale cross-midnight records are
// reconciled first, so any open record left is from now's calendar day.
func (s *StampServiceImpl) Status(ctx context.Context, workerID string, now time.Time) (timeclock.StatusResponse, error) {
	status := timeclock.StatusBefore

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.reconcile(ctx, workerID, now); err != nil {
			return err
		}

		openBreak, err := s.breaks.GetOpenBreak(ctx, workerID)
		if err != nil {
			return fmt.Errorf("failed to get open break: %w", err)
		}
		if openBreak != nil {
			status = timeclock.StatusBreak
			return nil
		}

		openShift, err := s.shifts.GetOpenShift(ctx, workerID)
		if err != nil {
			return fmt.Errorf("failed to get open shift: %w", err)
		}
		if openShift != nil {
			status = timeclock.StatusDuring
		}
		return nil
	})
	if err != nil {
		return timeclock.StatusResponse{}, err
	}

	return timeclock.StatusResponse{WorkerID: workerID, Status: status}, nil
}
