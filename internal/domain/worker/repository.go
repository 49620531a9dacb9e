package worker

import (
	"context"
)

type WorkerRepository interface {
	Create(ctx context.Context, newWorker Worker) (Worker, error)
	GetByID(ctx context.Context, id string) (Worker, error)
	GetByEmail(ctx context.Context, email string) (Worker, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Search lists workers whose name contains the search string (all workers
	// when empty), ordered by name then id, paginated. The second return
	// value is the total match count.
	Search(ctx context.Context, search string, limit, offset int) ([]Worker, int64, error)
}
