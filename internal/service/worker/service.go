package worker

import (
	"context"
	"fmt"

	"github.com/shiftlog-hr/timeclock-backend-go/internal/domain/worker"
)

type WorkerServiceImpl struct {
	workerRepo worker.WorkerRepository
}

func NewWorkerService(workerRepo worker.WorkerRepository) worker.WorkerService {
	return &WorkerServiceImpl{workerRepo: workerRepo}
}

// GetWorker implements worker.WorkerService.
func (s *WorkerServiceImpl) GetWorker(ctx context.Context, id string) (worker.WorkerResponse, error) {
	w, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	return worker.WorkerResponse{ID: w.ID, Name: w.Name, Email: w.Email}, nil
}

// ListWorkers implements worker.WorkerService. Name search is a substring
// match; an empty search lists everyone.
func (s *WorkerServiceImpl) ListWorkers(ctx context.Context, filter worker.SearchFilter) (worker.ListWorkersResponse, error) {
	if err := filter.Validate(); err != nil {
		return worker.ListWorkersResponse{}, err
	}

	offset := (filter.Page - 1) * filter.Limit
	workers, total, err := s.workerRepo.Search(ctx, filter.Search, filter.Limit, offset)
	if err != nil {
		return worker.ListWorkersResponse{}, fmt.Errorf("failed to list workers: %w", err)
	}

	responses := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		responses = append(responses, worker.WorkerResponse{ID: w.ID, Name: w.Name, Email: w.Email})
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return worker.ListWorkersResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Workers:    responses,
	}, nil
}
