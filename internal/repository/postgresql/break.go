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

type breakRepository struct {
	db *database.DB
}

func NewBreakRepository(db *database.DB) timeclock.BreakRepository {
	return &breakRepository{db: db}
}

func (r *breakRepository) getOpenBreak(ctx context.Context, workerID string, forUpdate bool) (*timeclock.OpenBreak, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, worker_id, begun_at
		FROM open_breaks
		WHERE worker_id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var brk timeclock.OpenBreak
	err := q.QueryRow(ctx, query, workerID).Scan(&brk.ID, &brk.WorkerID, &brk.BegunAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open break: %w", err)
	}

	return &brk, nil
}

// GetOpenBreak implements timeclock.BreakRepository.
func (r *breakRepository) GetOpenBreak(ctx context.Context, workerID string) (*timeclock.OpenBreak, error) {
	return r.getOpenBreak(ctx, workerID, false)
}

// GetOpenBreakForUpdate implements timeclock.BreakRepository.
func (r *breakRepository) GetOpenBreakForUpdate(ctx context.Context, workerID string) (*timeclock.OpenBreak, error) {
	return r.getOpenBreak(ctx, workerID, true)
}

// CreateOpenBreak implements timeclock.BreakRepository.
func (r *breakRepository) CreateOpenBreak(ctx context.Context, brk timeclock.OpenBreak) (timeclock.OpenBreak, error) {
	q := GetQuerier(ctx, r.db)

	brk.ID = uuid.NewString()
	query := `
		INSERT INTO open_breaks (id, worker_id, begun_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (worker_id) DO NOTHING
	`

	if _, err := q.Exec(ctx, query, brk.ID, brk.WorkerID, brk.BegunAt); err != nil {
		return timeclock.OpenBreak{}, fmt.Errorf("failed to create open break: %w", err)
	}

	return brk, nil
}

// DeleteOpenBreak implements timeclock.BreakRepository.
func (r *breakRepository) DeleteOpenBreak(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM open_breaks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete open break: %w", err)
	}

	return nil
}

// ListOpenBreaksBegunBefore implements timeclock.BreakRepository.
func (r *breakRepository) ListOpenBreaksBegunBefore(ctx context.Context, workerID string, cutoff time.Time) ([]timeclock.OpenBreak, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, worker_id, begun_at
		FROM open_breaks
		WHERE worker_id = $1
		  AND begun_at < $2
		FOR UPDATE
	`

	rows, err := q.Query(ctx, query, workerID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale open breaks: %w", err)
	}
	defer rows.Close()

	return scanOpenBreaks(rows)
}

// ListAllOpenBreaksBegunBefore implements timeclock.BreakRepository.
func (r *breakRepository) ListAllOpenBreaksBegunBefore(ctx context.Context, cutoff time.Time) ([]timeclock.OpenBreak, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, worker_id, begun_at
		FROM open_breaks
		WHERE begun_at < $1
		ORDER BY worker_id
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale open breaks: %w", err)
	}
	defer rows.Close()

	return scanOpenBreaks(rows)
}

func scanOpenBreaks(rows pgx.Rows) ([]timeclock.OpenBreak, error) {
	var breaks []timeclock.OpenBreak
	for rows.Next() {
		var brk timeclock.OpenBreak
		if err := rows.Scan(&brk.ID, &brk.WorkerID, &brk.BegunAt); err != nil {
			return nil, fmt.Errorf("failed to scan open break: %w", err)
		}
		breaks = append(breaks, brk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read open breaks: %w", err)
	}
	return breaks, nil
}

// CreateClosedBreak implements timeclock.BreakRepository.
func (r *breakRepository) CreateClosedBreak(ctx context.Context, brk timeclock.ClosedBreak) (timeclock.ClosedBreak, error) {
	q := GetQuerier(ctx, r.db)

	brk.ID = uuid.NewString()
	query := `
		INSERT INTO closed_breaks (id, worker_id, begun_at, ended_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := q.Exec(ctx, query, brk.ID, brk.WorkerID, brk.BegunAt, brk.EndedAt); err != nil {
		return timeclock.ClosedBreak{}, fmt.Errorf("failed to create closed break: %w", err)
	}

	return brk, nil
}

// ListClosedBreaksInRange implements timeclock.BreakRepository.
func (r *breakRepository) ListClosedBreaksInRange(ctx context.Context, workerID string, from, to time.Time) ([]timeclock.ClosedBreak, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, worker_id, begun_at, ended_at
		FROM closed_breaks
		WHERE worker_id = $1
		  AND begun_at >= $2
		  AND begun_at < $3
		ORDER BY begun_at
	`

	rows, err := q.Query(ctx, query, workerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list closed breaks: %w", err)
	}
	defer rows.Close()

	var breaks []timeclock.ClosedBreak
	for rows.Next() {
		var brk timeclock.ClosedBreak
		if err := rows.Scan(&brk.ID, &brk.WorkerID, &brk.BegunAt, &brk.EndedAt); err != nil {
			return nil, fmt.Errorf("failed to scan closed break: %w", err)
		}
		breaks = append(breaks, brk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read closed breaks: %w", err)
	}

	return breaks, nil
}
