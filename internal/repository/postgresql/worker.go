package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/domain/worker"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/pkg/database"
)

type workerRepository struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepository{db: db}
}

// Create implements worker.WorkerRepository.
func (r *workerRepository) Create(ctx context.Context, newWorker worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	newWorker.ID = uuid.NewString()
	query := `
		INSERT INTO workers (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newWorker.ID,
		newWorker.Name,
		newWorker.Email,
		newWorker.PasswordHash,
	).Scan(&newWorker.CreatedAt, &newWorker.UpdatedAt)

	if err != nil {
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}

	return newWorker, nil
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepository) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM workers
		WHERE id = $1
	`

	var w worker.Worker
	err := q.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.Name, &w.Email, &w.PasswordHash, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker by ID: %w", err)
	}

	return w, nil
}

// GetByEmail implements worker.WorkerRepository.
func (r *workerRepository) GetByEmail(ctx context.Context, email string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM workers
		WHERE email = $1
	`

	var w worker.Worker
	err := q.QueryRow(ctx, query, email).Scan(
		&w.ID, &w.Name, &w.Email, &w.PasswordHash, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker by email: %w", err)
	}

	return w, nil
}

// ExistsByEmail implements worker.WorkerRepository.
func (r *workerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM workers WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check worker email: %w", err)
	}

	return exists, nil
}

// Search implements worker.WorkerRepository.
func (r *workerRepository) Search(ctx context.Context, search string, limit, offset int) ([]worker.Worker, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Escape LIKE metacharacters so a literal % or _ in the search string
	// does not widen the match.
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(search)
	pattern := "%" + escaped + "%"

	var total int64
	countQuery := `SELECT COUNT(*) FROM workers WHERE name ILIKE $1`
	if err := q.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count workers: %w", err)
	}

	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM workers
		WHERE name ILIKE $1
		ORDER BY name, id
		LIMIT $2 OFFSET $3
	`

	rows, err := q.Query(ctx, query, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		var w worker.Worker
		if err := rows.Scan(&w.ID, &w.Name, &w.Email, &w.PasswordHash, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read workers: %w", err)
	}

	return workers, total, nil
}
