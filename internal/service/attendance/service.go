package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftlog-hr/timeclock-backend-go/internal/domain/timeclock"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/pkg/timeutil"
)

const (
	// DefaultLimit is the daily report page size when none is requested.
	DefaultLimit = 5
	MaxLimit     = 100

	timestampFormat = "2006-01-02 15:04:05"
)

// AttendanceServiceImpl builds the daily and monthly reports. All derived
// seconds go through the timesheet rules in the timeclock package, so a
// mid-break worker or a missed stamp-out uniformly yields null totals. Reads
// run in a read-only snapshot so rows fetched across several queries agree.
type AttendanceServiceImpl struct {
	tx     timeclock.TxManager
	shifts timeclock.ShiftRepository
	breaks timeclock.BreakRepository
	loc    *time.Location
}

func NewAttendanceService(
	tx timeclock.TxManager,
	shiftRepo timeclock.ShiftRepository,
	breakRepo timeclock.BreakRepository,
	loc *time.Location,
) timeclock.AttendanceService {
	return &AttendanceServiceImpl{
		tx:     tx,
		shifts: shiftRepo,
		breaks: breakRepo,
		loc:    loc,
	}
}

// DailyAttendances implements timeclock.AttendanceService. One row per worker
// with shift activity on the date, ordered by worker name, paginated.
func (s *AttendanceServiceImpl) DailyAttendances(ctx context.Context, date time.Time, page, limit int) (timeclock.DailyAttendanceResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	offset := (page - 1) * limit

	from, to := timeutil.DayBounds(date, s.loc)

	var attendances []timeclock.DailyAttendanceRow
	var total int64
	err := s.tx.WithinSnapshot(ctx, func(ctx context.Context) error {
		rows, count, err := s.shifts.ListDailyShifts(ctx, from, to, limit, offset)
		if err != nil {
			return fmt.Errorf("failed to list daily shifts: %w", err)
		}
		total = count

		attendances = make([]timeclock.DailyAttendanceRow, 0, len(rows))
		for _, row := range rows {
			breakSecs, err := s.dayBreakSeconds(ctx, row.WorkerID, from, to)
			if err != nil {
				return err
			}

			shift := &timeclock.ClosedShift{BegunAt: row.BegunAt, EndedAt: row.EndedAt}
			shiftSecs := timeclock.ShiftSeconds(row.Open, shift)

			attendances = append(attendances, timeclock.DailyAttendanceRow{
				WorkerID:     row.WorkerID,
				WorkerName:   row.WorkerName,
				ShiftBegunAt: row.BegunAt.In(s.loc).Format(timestampFormat),
				ShiftEndedAt: s.formatTimePtr(row.EndedAt),
				BreakSeconds: breakSecs,
				WorkSeconds:  timeclock.WorkSeconds(shiftSecs, breakSecs),
			})
		}
		return nil
	})
	if err != nil {
		return timeclock.DailyAttendanceResponse{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return timeclock.DailyAttendanceResponse{
		Date:        from.Format("2006-01-02"),
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		Attendances: attendances,
	}, nil
}

// dayBreakSeconds totals a worker's breaks within [from, to). An open break
// begun in the range means the total is still unknown.
func (s *AttendanceServiceImpl) dayBreakSeconds(ctx context.Context, workerID string, from, to time.Time) (*int64, error) {
	closed, err := s.breaks.ListClosedBreaksInRange(ctx, workerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list closed breaks: %w", err)
	}

	onBreak := false
	open, err := s.breaks.GetOpenBreak(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get open break: %w", err)
	}
	if open != nil && !open.BegunAt.Before(from) && open.BegunAt.Before(to) {
		onBreak = true
	}

	return timeclock.BreakSeconds(onBreak, closed), nil
}

// MonthlyAttendance implements timeclock.AttendanceService. One row per
// calendar day of the month, from the first through today (or through the
// month's end for past months). Days without activity carry zero seconds.
func (s *AttendanceServiceImpl) MonthlyAttendance(ctx context.Context, workerID string, month time.Time, now time.Time) (timeclock.MonthlyAttendanceResponse, error) {
	from, to := timeutil.MonthBounds(month, s.loc)

	var (
		closedShifts []timeclock.ClosedShift
		closedBreaks []timeclock.ClosedBreak
		openShift    *timeclock.OpenShift
		openBreak    *timeclock.OpenBreak
	)
	err := s.tx.WithinSnapshot(ctx, func(ctx context.Context) error {
		var err error
		closedShifts, err = s.shifts.ListClosedShiftsInRange(ctx, workerID, from, to)
		if err != nil {
			return fmt.Errorf("failed to list closed shifts: %w", err)
		}
		closedBreaks, err = s.breaks.ListClosedBreaksInRange(ctx, workerID, from, to)
		if err != nil {
			return fmt.Errorf("failed to list closed breaks: %w", err)
		}
		openShift, err = s.shifts.GetOpenShift(ctx, workerID)
		if err != nil {
			return fmt.Errorf("failed to get open shift: %w", err)
		}
		openBreak, err = s.breaks.GetOpenBreak(ctx, workerID)
		if err != nil {
			return fmt.Errorf("failed to get open break: %w", err)
		}
		return nil
	})
	if err != nil {
		return timeclock.MonthlyAttendanceResponse{}, err
	}

	shiftsByDay := make(map[string]timeclock.ClosedShift, len(closedShifts))
	for _, shift := range closedShifts {
		shiftsByDay[s.dayKey(shift.BegunAt)] = shift
	}
	breaksByDay := make(map[string][]timeclock.ClosedBreak)
	for _, brk := range closedBreaks {
		key := s.dayKey(brk.BegunAt)
		breaksByDay[key] = append(breaksByDay[key], brk)
	}

	days := timeutil.DaysOfMonthUpTo(month, now, s.loc)
	rows := make([]timeclock.MonthlyAttendanceRow, 0, len(days))
	for _, day := range days {
		key := day.Format("2006-01-02")

		var (
			shift   *timeclock.ClosedShift
			begunAt *time.Time
			endedAt *time.Time
			onShift bool
			onBreak bool
		)
		if closed, ok := shiftsByDay[key]; ok {
			shift = &closed
			begunAt = &closed.BegunAt
			endedAt = closed.EndedAt
		}
		if openShift != nil && s.dayKey(openShift.BegunAt) == key {
			onShift = true
			begunAt = &openShift.BegunAt
		}
		if openBreak != nil && s.dayKey(openBreak.BegunAt) == key {
			onBreak = true
		}

		shiftSecs := timeclock.ShiftSeconds(onShift, shift)
		breakSecs := timeclock.BreakSeconds(onBreak, breaksByDay[key])

		rows = append(rows, timeclock.MonthlyAttendanceRow{
			Date:         key,
			ShiftBegunAt: s.formatTimePtr(begunAt),
			ShiftEndedAt: s.formatTimePtr(endedAt),
			ShiftSeconds: shiftSecs,
			BreakSeconds: breakSecs,
			WorkSeconds:  timeclock.WorkSeconds(shiftSecs, breakSecs),
		})
	}

	return timeclock.MonthlyAttendanceResponse{
		WorkerID: workerID,
		Month:    from.Format("2006-01"),
		Days:     rows,
	}, nil
}

func (s *AttendanceServiceImpl) dayKey(t time.Time) string {
	return t.In(s.loc).Format("2006-01-02")
}

func (s *AttendanceServiceImpl) formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.In(s.loc).Format(timestampFormat)
	return &formatted
}
