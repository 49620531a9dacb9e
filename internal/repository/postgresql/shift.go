package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/domain/timeclock"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) timeclock.ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) getOpenShift(ctx context.Context, workerID string, forUpdate bool) (*timeclock.OpenShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, worker_id, begun_at
		FROM open_shifts
		WHERE worker_id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var shift timeclock.OpenShift
	err := q.QueryRow(ctx, query, workerID).Scan(&shift.ID, &shift.WorkerID, &shift.BegunAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open shift: %w", err)
	}

	return &shift, nil
}

// GetOpenShift implements timeclock.ShiftRepository.
func (r *shiftRepository) GetOpenShift(ctx context.Context, workerID string) (*timeclock.OpenShift, error) {
	return r.getOpenShift(ctx, workerID, false)
}

// GetOpenShiftForUpdate implements timeclock.ShiftRepository.
func (r *shiftRepository) GetOpenShiftForUpdate(ctx context.Context, workerID string) (*timeclock.OpenShift, error) {
	return r.getOpenShift(ctx, workerID, true)
}

// CreateOpenShift implements timeclock.ShiftRepository.
func (r *shiftRepository) CreateOpenShift(ctx context.Context, shift timeclock.OpenShift) (timeclock.OpenShift, error) {
	q := GetQuerier(ctx, r.db)

	shift.ID = uuid.NewString()
	query := `
		INSERT INTO open_shifts (id, worker_id, begun_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (worker_id) DO NOTHING
	`

	if _, err := q.Exec(ctx, query, shift.ID, shift.WorkerID, shift.BegunAt); err != nil {
		return timeclock.OpenShift{}, fmt.Errorf("failed to create open shift: %w", err)
	}

	return shift, nil
}

// DeleteOpenShift implements timeclock.ShiftRepository.
func (r *shiftRepository) DeleteOpenShift(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM open_shifts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete open shift: %w", err)
	}

	return nil
}

// ListOpenShiftsBegunBefore implements timeclock.ShiftRepository.
func (r *shiftRepository) ListOpenShiftsBegunBefore(ctx context.Context, workerID string, cutoff time.Time) ([]timeclock.OpenShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, worker_id, begun_at
		FROM open_shifts
		WHERE worker_id = $1
		  AND begun_at < $2
		FOR UPDATE
	`

	rows, err := q.Query(ctx, query, workerID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale open shifts: %w", err)
	}
	defer rows.Close()

	return scanOpenShifts(rows)
}

// ListAllOpenShiftsBegunBefore implements timeclock.ShiftRepository.
func (r *shiftRepository) ListAllOpenShiftsBegunBefore(ctx context.Context, cutoff time.Time) ([]timeclock.OpenShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, worker_id, begun_at
		FROM open_shifts
		WHERE begun_at < $1
		ORDER BY worker_id
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale open shifts: %w", err)
	}
	defer rows.Close()

	return scanOpenShifts(rows)
}

func scanOpenShifts(rows pgx.Rows) ([]timeclock.OpenShift, error) {
	var shifts []timeclock.OpenShift
	for rows.Next() {
		var shift timeclock.OpenShift
		if err := rows.Scan(&shift.ID, &shift.WorkerID, &shift.BegunAt); err != nil {
			return nil, fmt.Errorf("failed to scan open shift: %w", err)
		}
		shifts = append(shifts, shift)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read open shifts: %w", err)
	}
	return shifts, nil
}

// CreateClosedShift implements timeclock.ShiftRepository.
func (r *shiftRepository) CreateClosedShift(ctx context.Context, shift timeclock.ClosedShift) (timeclock.ClosedShift, error) {
	q := GetQuerier(ctx, r.db)

	shift.ID = uuid.NewString()
	query := `
		INSERT INTO closed_shifts (id, worker_id, begun_at, ended_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := q.Exec(ctx, query, shift.ID, shift.WorkerID, shift.BegunAt, shift.EndedAt); err != nil {
		return timeclock.ClosedShift{}, fmt.Errorf("failed to create closed shift: %w", err)
	}

	return shift, nil
}

func (r *shiftRepository) getClosedShiftInRange(ctx context.Context, workerID string, from, to time.Time, forUpdate bool) (*timeclock.ClosedShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, worker_id, begun_at, ended_at
		FROM closed_shifts
		WHERE worker_id = $1
		  AND begun_at >= $2
		  AND begun_at < $3
		LIMIT 1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var shift timeclock.ClosedShift
	err := q.QueryRow(ctx, query, workerID, from, to).Scan(&shift.ID, &shift.WorkerID, &shift.BegunAt, &shift.EndedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get closed shift: %w", err)
	}

	return &shift, nil
}

// GetClosedShiftInRange implements timeclock.ShiftRepository.
func (r *shiftRepository) GetClosedShiftInRange(ctx context.Context, workerID string, from, to time.Time) (*timeclock.ClosedShift, error) {
	return r.getClosedShiftInRange(ctx, workerID, from, to, false)
}

// GetClosedShiftInRangeForUpdate implements timeclock.ShiftRepository.
func (r *shiftRepository) GetClosedShiftInRangeForUpdate(ctx context.Context, workerID string, from, to time.Time) (*timeclock.ClosedShift, error) {
	return r.getClosedShiftInRange(ctx, workerID, from, to, true)
}

// DeleteClosedShift implements timeclock.ShiftRepository.
func (r *shiftRepository) DeleteClosedShift(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM closed_shifts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete closed shift: %w", err)
	}

	return nil
}

// ListClosedShiftsInRange implements timeclock.ShiftRepository.
func (r *shiftRepository) ListClosedShiftsInRange(ctx context.Context, workerID string, from, to time.Time) ([]timeclock.ClosedShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, worker_id, begun_at, ended_at
		FROM closed_shifts
		WHERE worker_id = $1
		  AND begun_at >= $2
		  AND begun_at < $3
		ORDER BY begun_at
	`

	rows, err := q.Query(ctx, query, workerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list closed shifts: %w", err)
	}
	defer rows.Close()

	var shifts []timeclock.ClosedShift
	for rows.Next() {
		var shift timeclock.ClosedShift
		if err := rows.Scan(&shift.ID, &shift.WorkerID, &shift.BegunAt, &shift.EndedAt); err != nil {
			return nil, fmt.Errorf("failed to scan closed shift: %w", err)
		}
		shifts = append(shifts, shift)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read closed shifts: %w", err)
	}

	return shifts, nil
}

// ListDailyShifts implements timeclock.ShiftRepository.
// Open and closed shifts for the day are combined into one row per worker and
// joined with the worker's name; ordering by name then id keeps pagination
// stable.
func (r *shiftRepository) ListDailyShifts(ctx context.Context, from, to time.Time, limit, offset int) ([]timeclock.DailyShiftRow, int64, error) {
	q := GetQuerier(ctx, r.db)

	const baseQuery = `
		SELECT s.worker_id, w.name AS worker_name, s.begun_at, s.ended_at, s.open
		FROM (
			SELECT worker_id, begun_at, ended_at, FALSE AS open
			FROM closed_shifts
			WHERE begun_at >= $1 AND begun_at < $2
			UNION ALL
			SELECT worker_id, begun_at, NULL AS ended_at, TRUE AS open
			FROM open_shifts
			WHERE begun_at >= $1 AND begun_at < $2
		) s
		JOIN workers w ON w.id = s.worker_id
	`

	var total int64
	countQuery := `SELECT COUNT(*) FROM (` + baseQuery + `) c`
	if err := q.QueryRow(ctx, countQuery, from, to).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count daily shifts: %w", err)
	}

	query := baseQuery + `
		ORDER BY w.name, s.worker_id
		LIMIT $3 OFFSET $4
	`

	rows, err := q.Query(ctx, query, from, to, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list daily shifts: %w", err)
	}
	defer rows.Close()

	var result []timeclock.DailyShiftRow
	for rows.Next() {
		var row timeclock.DailyShiftRow
		if err := rows.Scan(&row.WorkerID, &row.WorkerName, &row.BegunAt, &row.EndedAt, &row.Open); err != nil {
			return nil, 0, fmt.Errorf("failed to scan daily shift: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read daily shifts: %w", err)
	}

	return result, total, nil
}
