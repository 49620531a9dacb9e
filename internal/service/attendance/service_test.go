package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftlog-hr/timeclock-backend-go/internal/domain/timeclock"
)

var tokyo = mustLoadLocation("Asia/Tokyo")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTx) WithinSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeShiftRepo embeds the interface so only the methods the report reads
// need implementing; calling anything else panics, which is what we want.
type fakeShiftRepo struct {
	timeclock.ShiftRepository
	daily     []timeclock.DailyShiftRow
	total     int64
	closed    []timeclock.ClosedShift
	openShift *timeclock.OpenShift
}

func (f *fakeShiftRepo) ListDailyShifts(_ context.Context, from, to time.Time, limit, offset int) ([]timeclock.DailyShiftRow, int64, error) {
	end := offset + limit
	if offset > len(f.daily) {
		offset = len(f.daily)
	}
	if end > len(f.daily) {
		end = len(f.daily)
	}
	return f.daily[offset:end], f.total, nil
}

func (f *fakeShiftRepo) ListClosedShiftsInRange(_ context.Context, workerID string, from, to time.Time) ([]timeclock.ClosedShift, error) {
	var out []timeclock.ClosedShift
	for _, s := range f.closed {
		if s.WorkerID == workerID && !s.BegunAt.Before(from) && s.BegunAt.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeShiftRepo) GetOpenShift(_ context.Context, workerID string) (*timeclock.OpenShift, error) {
	if f.openShift != nil && f.openShift.WorkerID == workerID {
		return f.openShift, nil
	}
	return nil, nil
}

type fakeBreakRepo struct {
	timeclock.BreakRepository
	closed    []timeclock.ClosedBreak
	openBreak *timeclock.OpenBreak
}

func (f *fakeBreakRepo) ListClosedBreaksInRange(_ context.Context, workerID string, from, to time.Time) ([]timeclock.ClosedBreak, error) {
	var out []timeclock.ClosedBreak
	for _, b := range f.closed {
		if b.WorkerID == workerID && !b.BegunAt.Before(from) && b.BegunAt.Before(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBreakRepo) GetOpenBreak(_ context.Context, workerID string) (*timeclock.OpenBreak, error) {
	if f.openBreak != nil && f.openBreak.WorkerID == workerID {
		return f.openBreak, nil
	}
	return nil, nil
}

func tAt(day, hour, min int) time.Time {
	return time.Date(2026, 3, day, hour, min, 0, 0, tokyo)
}

func tPtr(t time.Time) *time.Time { return &t }

func TestDailyAttendances(t *testing.T) {
	date := tAt(10, 0, 0)

	t.Run("finished worker has concrete totals", func(t *testing.T) {
		shifts := &fakeShiftRepo{
			daily: []timeclock.DailyShiftRow{
				{WorkerID: "w1", WorkerName: "Aoki", BegunAt: tAt(10, 9, 0), EndedAt: tPtr(tAt(10, 18, 0))},
			},
			total: 1,
		}
		breaks := &fakeBreakRepo{
			closed: []timeclock.ClosedBreak{
				{WorkerID: "w1", BegunAt: tAt(10, 12, 0), EndedAt: tPtr(tAt(10, 12, 30))},
			},
		}
		svc := NewAttendanceService(passthroughTx{}, shifts, breaks, tokyo)

		res, err := svc.DailyAttendances(context.Background(), date, 1, 5)
		require.NoError(t, err)

		assert.Equal(t, "2026-03-10", res.Date)
		assert.Equal(t, int64(1), res.TotalCount)
		assert.Equal(t, 1, res.TotalPages)
		require.Len(t, res.Attendances, 1)

		row := res.Attendances[0]
		assert.Equal(t, "Aoki", row.WorkerName)
		assert.Equal(t, "2026-03-10 09:00:00", row.ShiftBegunAt)
		require.NotNil(t, row.ShiftEndedAt)
		assert.Equal(t, "2026-03-10 18:00:00", *row.ShiftEndedAt)
		require.NotNil(t, row.BreakSeconds)
		assert.Equal(t, int64(1800), *row.BreakSeconds)
		require.NotNil(t, row.WorkSeconds)
		assert.Equal(t, int64(9*3600-1800), *row.WorkSeconds)
	})

	t.Run("still on shift yields null end and null work", func(t *testing.T) {
		shifts := &fakeShiftRepo{
			daily: []timeclock.DailyShiftRow{
				{WorkerID: "w1", WorkerName: "Aoki", BegunAt: tAt(10, 9, 0), Open: true},
			},
			total: 1,
		}
		svc := NewAttendanceService(passthroughTx{}, shifts, &fakeBreakRepo{}, tokyo)

		res, err := svc.DailyAttendances(context.Background(), date, 1, 5)
		require.NoError(t, err)
		require.Len(t, res.Attendances, 1)

		row := res.Attendances[0]
		assert.Nil(t, row.ShiftEndedAt)
		require.NotNil(t, row.BreakSeconds)
		assert.Equal(t, int64(0), *row.BreakSeconds)
		assert.Nil(t, row.WorkSeconds)
	})

	t.Run("mid-break yields null break and work seconds", func(t *testing.T) {
		shifts := &fakeShiftRepo{
			daily: []timeclock.DailyShiftRow{
				{WorkerID: "w1", WorkerName: "Aoki", BegunAt: tAt(10, 9, 0), Open: true},
			},
			total: 1,
		}
		breaks := &fakeBreakRepo{
			openBreak: &timeclock.OpenBreak{WorkerID: "w1", BegunAt: tAt(10, 12, 0)},
		}
		svc := NewAttendanceService(passthroughTx{}, shifts, breaks, tokyo)

		res, err := svc.DailyAttendances(context.Background(), date, 1, 5)
		require.NoError(t, err)
		require.Len(t, res.Attendances, 1)

		assert.Nil(t, res.Attendances[0].BreakSeconds)
		assert.Nil(t, res.Attendances[0].WorkSeconds)
	})

	t.Run("missed stamp-out yields null work seconds", func(t *testing.T) {
		shifts := &fakeShiftRepo{
			daily: []timeclock.DailyShiftRow{
				{WorkerID: "w1", WorkerName: "Aoki", BegunAt: tAt(9, 21, 0), EndedAt: nil},
			},
			total: 1,
		}
		svc := NewAttendanceService(passthroughTx{}, shifts, &fakeBreakRepo{}, tokyo)

		res, err := svc.DailyAttendances(context.Background(), tAt(9, 0, 0), 1, 5)
		require.NoError(t, err)
		require.Len(t, res.Attendances, 1)

		row := res.Attendances[0]
		assert.Nil(t, row.ShiftEndedAt)
		require.NotNil(t, row.BreakSeconds)
		assert.Equal(t, int64(0), *row.BreakSeconds)
		assert.Nil(t, row.WorkSeconds)
	})

	t.Run("pagination math", func(t *testing.T) {
		daily := make([]timeclock.DailyShiftRow, 7)
		for i := range daily {
			daily[i] = timeclock.DailyShiftRow{
				WorkerID:   string(rune('a' + i)),
				WorkerName: string(rune('A' + i)),
				BegunAt:    tAt(10, 9, 0),
				EndedAt:    tPtr(tAt(10, 17, 0)),
			}
		}
		shifts := &fakeShiftRepo{daily: daily, total: 7}
		svc := NewAttendanceService(passthroughTx{}, shifts, &fakeBreakRepo{}, tokyo)

		res, err := svc.DailyAttendances(context.Background(), date, 2, 5)
		require.NoError(t, err)

		assert.Equal(t, int64(7), res.TotalCount)
		assert.Equal(t, 2, res.Page)
		assert.Equal(t, 2, res.TotalPages)
		assert.Len(t, res.Attendances, 2)
	})

	t.Run("empty day", func(t *testing.T) {
		svc := NewAttendanceService(passthroughTx{}, &fakeShiftRepo{}, &fakeBreakRepo{}, tokyo)

		res, err := svc.DailyAttendances(context.Background(), date, 1, 5)
		require.NoError(t, err)

		assert.Equal(t, int64(0), res.TotalCount)
		assert.Equal(t, 0, res.TotalPages)
		assert.Empty(t, res.Attendances)
	})
}

func TestMonthlyAttendance(t *testing.T) {
	now := tAt(10, 15, 0)
	month := tAt(1, 0, 0)

	t.Run("one row per day up to today", func(t *testing.T) {
		shifts := &fakeShiftRepo{
			closed: []timeclock.ClosedShift{
				{WorkerID: "w1", BegunAt: tAt(9, 9, 0), EndedAt: tPtr(tAt(9, 18, 0))},
			},
		}
		breaks := &fakeBreakRepo{
			closed: []timeclock.ClosedBreak{
				{WorkerID: "w1", BegunAt: tAt(9, 12, 0), EndedAt: tPtr(tAt(9, 13, 0))},
			},
		}
		svc := NewAttendanceService(passthroughTx{}, shifts, breaks, tokyo)

		res, err := svc.MonthlyAttendance(context.Background(), "w1", month, now)
		require.NoError(t, err)

		assert.Equal(t, "2026-03", res.Month)
		require.Len(t, res.Days, 10)
		assert.Equal(t, "2026-03-01", res.Days[0].Date)
		assert.Equal(t, "2026-03-10", res.Days[9].Date)

		// Day without activity carries zeros.
		idle := res.Days[0]
		assert.Nil(t, idle.ShiftBegunAt)
		require.NotNil(t, idle.WorkSeconds)
		assert.Equal(t, int64(0), *idle.WorkSeconds)

		worked := res.Days[8]
		require.NotNil(t, worked.ShiftBegunAt)
		assert.Equal(t, "2026-03-09 09:00:00", *worked.ShiftBegunAt)
		require.NotNil(t, worked.ShiftSeconds)
		assert.Equal(t, int64(9*3600), *worked.ShiftSeconds)
		require.NotNil(t, worked.BreakSeconds)
		assert.Equal(t, int64(3600), *worked.BreakSeconds)
		require.NotNil(t, worked.WorkSeconds)
		assert.Equal(t, int64(8*3600), *worked.WorkSeconds)
	})

	t.Run("open shift today has null totals", func(t *testing.T) {
		shifts := &fakeShiftRepo{
			openShift: &timeclock.OpenShift{WorkerID: "w1", BegunAt: tAt(10, 9, 0)},
		}
		svc := NewAttendanceService(passthroughTx{}, shifts, &fakeBreakRepo{}, tokyo)

		res, err := svc.MonthlyAttendance(context.Background(), "w1", month, now)
		require.NoError(t, err)
		require.Len(t, res.Days, 10)

		today := res.Days[9]
		require.NotNil(t, today.ShiftBegunAt)
		assert.Equal(t, "2026-03-10 09:00:00", *today.ShiftBegunAt)
		assert.Nil(t, today.ShiftEndedAt)
		assert.Nil(t, today.ShiftSeconds)
		assert.Nil(t, today.WorkSeconds)
	})

	t.Run("missed stamp-out day has null shift seconds", func(t *testing.T) {
		shifts := &fakeShiftRepo{
			closed: []timeclock.ClosedShift{
				{WorkerID: "w1", BegunAt: tAt(5, 9, 0), EndedAt: nil},
			},
		}
		svc := NewAttendanceService(passthroughTx{}, shifts, &fakeBreakRepo{}, tokyo)

		res, err := svc.MonthlyAttendance(context.Background(), "w1", month, now)
		require.NoError(t, err)

		day := res.Days[4]
		assert.Equal(t, "2026-03-05", day.Date)
		require.NotNil(t, day.ShiftBegunAt)
		assert.Nil(t, day.ShiftEndedAt)
		assert.Nil(t, day.ShiftSeconds)
		assert.Nil(t, day.WorkSeconds)
		require.NotNil(t, day.BreakSeconds)
		assert.Equal(t, int64(0), *day.BreakSeconds)
	})

	t.Run("future month has no days", func(t *testing.T) {
		svc := NewAttendanceService(passthroughTx{}, &fakeShiftRepo{}, &fakeBreakRepo{}, tokyo)

		res, err := svc.MonthlyAttendance(context.Background(), "w1", tAt(1, 0, 0).AddDate(0, 1, 0), now)
		require.NoError(t, err)

		assert.Equal(t, "2026-04", res.Month)
		assert.Empty(t, res.Days)
	})

	t.Run("past month covers whole month", func(t *testing.T) {
		svc := NewAttendanceService(passthroughTx{}, &fakeShiftRepo{}, &fakeBreakRepo{}, tokyo)

		res, err := svc.MonthlyAttendance(context.Background(), "w1", tAt(1, 0, 0).AddDate(0, -1, 0), now)
		require.NoError(t, err)

		assert.Equal(t, "2026-02", res.Month)
		assert.Len(t, res.Days, 28)
	})
}
