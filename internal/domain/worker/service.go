package worker

import "context"

type WorkerService interface {
	GetWorker(ctx context.Context, id string) (WorkerResponse, error)
	ListWorkers(ctx context.Context, filter SearchFilter) (ListWorkersResponse, error)
}
