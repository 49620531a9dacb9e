package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/domain/worker"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/handler/http/response"
)

type WorkerHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
}

type WorkerHandlerImpl struct {
	workerService worker.WorkerService
}

func NewWorkerHandler(workerService worker.WorkerService) WorkerHandler {
	return &WorkerHandlerImpl{workerService: workerService}
}

// List implements WorkerHandler. Query params: search (name substring), page,
// limit.
func (h *WorkerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := worker.SearchFilter{
		Search: r.URL.Query().Get("search"),
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 20),
	}

	res, err := h.workerService.ListWorkers(r.Context(), filter)
	if err != nil {
		slog.Error("List workers service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, res)
}

// GetByID implements WorkerHandler.
func (h *WorkerHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workerID")

	res, err := h.workerService.GetWorker(r.Context(), id)
	if err != nil {
		slog.Error("Get worker service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, res)
}
