package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftlog-hr/timeclock-backend-go/internal/domain/timeclock"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/pkg/timeutil"
)

// TimeclockJobs sweeps open shift and break records whose calendar day has
// passed. Stamp requests repair the caller's own records on demand; the sweep
// covers workers who never come back, so reports stop showing them as still
// at work.
type TimeclockJobs struct {
	txManager timeclock.TxManager
	shiftRepo timeclock.ShiftRepository
	breakRepo timeclock.BreakRepository
	loc       *time.Location
}

func NewTimeclockJobs(
	txManager timeclock.TxManager,
	shiftRepo timeclock.ShiftRepository,
	breakRepo timeclock.BreakRepository,
	loc *time.Location,
) *TimeclockJobs {
	return &TimeclockJobs{
		txManager: txManager,
		shiftRepo: shiftRepo,
		breakRepo: breakRepo,
		loc:       loc,
	}
}

func (j *TimeclockJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("sweep_stale_clock_records", 1*time.Hour, j.SweepStaleClockRecords)
}

// SweepStaleClockRecords closes every open record begun before today's
// midnight, marking its end time as unknown. Runs hourly but only acts in the
// first hour after midnight; the per-worker reconciliation during stamping
// makes more frequent sweeps pointless.
func (j *TimeclockJobs) SweepStaleClockRecords(ctx context.Context) error {
	now := time.Now().In(j.loc)
	if now.Hour() != 0 {
		return nil
	}

	cutoff := timeutil.DayStart(now, j.loc)

	staleShifts, err := j.shiftRepo.ListAllOpenShiftsBegunBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list stale open shifts: %w", err)
	}
	staleBreaks, err := j.breakRepo.ListAllOpenBreaksBegunBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list stale open breaks: %w", err)
	}

	if len(staleShifts) == 0 && len(staleBreaks) == 0 {
		return nil
	}

	workers := make(map[string]struct{})
	for _, shift := range staleShifts {
		workers[shift.WorkerID] = struct{}{}
	}
	for _, brk := range staleBreaks {
		workers[brk.WorkerID] = struct{}{}
	}

	slog.Info("Cron: Sweeping stale clock records", "worker_count", len(workers))

	sweptCount := 0
	for workerID := range workers {
		// Each worker gets their own transaction; a concurrent stamp by the
		// same worker reconciles the same rows under lock, so whichever runs
		// second finds nothing left to close.
		err := j.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
			return j.sweepWorker(ctx, workerID, cutoff)
		})
		if err != nil {
			slog.Error("Cron: Failed to sweep worker clock records",
				"worker_id", workerID,
				"error", err)
			continue
		}
		sweptCount++
	}

	slog.Info("Cron: Swept stale clock records", "count", sweptCount)
	return nil
}

func (j *TimeclockJobs) sweepWorker(ctx context.Context, workerID string, cutoff time.Time) error {
	shifts, err := j.shiftRepo.ListOpenShiftsBegunBefore(ctx, workerID, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list open shifts: %w", err)
	}
	for _, open := range shifts {
		closed := timeclock.ClosedShift{
			WorkerID: open.WorkerID,
			BegunAt:  open.BegunAt,
			EndedAt:  nil,
		}
		if _, err := j.shiftRepo.CreateClosedShift(ctx, closed); err != nil {
			return fmt.Errorf("failed to close stale shift: %w", err)
		}
		if err := j.shiftRepo.DeleteOpenShift(ctx, open.ID); err != nil {
			return fmt.Errorf("failed to delete stale open shift: %w", err)
		}
	}

	breaks, err := j.breakRepo.ListOpenBreaksBegunBefore(ctx, workerID, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list open breaks: %w", err)
	}
	for _, open := range breaks {
		closed := timeclock.ClosedBreak{
			WorkerID: open.WorkerID,
			BegunAt:  open.BegunAt,
			EndedAt:  nil,
		}
		if _, err := j.breakRepo.CreateClosedBreak(ctx, closed); err != nil {
			return fmt.Errorf("failed to close stale break: %w", err)
		}
		if err := j.breakRepo.DeleteOpenBreak(ctx, open.ID); err != nil {
			return fmt.Errorf("failed to delete stale open break: %w", err)
		}
	}

	return nil
}
