package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shiftlog-hr/timeclock-backend-go/internal/domain/timeclock"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/handler/http/response"
)

type StampHandler interface {
	Stamp(w http.ResponseWriter, r *http.Request)
	BeginShift(w http.ResponseWriter, r *http.Request)
	EndShift(w http.ResponseWriter, r *http.Request)
	BeginBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
}

type StampHandlerImpl struct {
	stampService timeclock.StampService
	loc          *time.Location
}

func NewStampHandler(stampService timeclock.StampService, loc *time.Location) StampHandler {
	return &StampHandlerImpl{
		stampService: stampService,
		loc:          loc,
	}
}

type stampRequest struct {
	Action timeclock.StampAction `json:"action"`
}

// Stamp implements StampHandler. Generic endpoint taking the action in the
// body; the action-specific routes below cover clients with fixed buttons.
func (h *StampHandlerImpl) Stamp(w http.ResponseWriter, r *http.Request) {
	var req stampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Stamp decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	workerID, err := middleware.WorkerID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	now := time.Now().In(h.loc)
	if err := h.stampService.Stamp(r.Context(), req.Action, workerID, now); err != nil {
		slog.Error("Stamp service error", "error", err, "action", req.Action)
		response.HandleError(w, err)
		return
	}

	h.respondWithStatus(w, r, workerID, now)
}

// BeginShift implements StampHandler.
func (h *StampHandlerImpl) BeginShift(w http.ResponseWriter, r *http.Request) {
	h.stamp(w, r, timeclock.ActionBeginShift)
}

// EndShift implements StampHandler.
func (h *StampHandlerImpl) EndShift(w http.ResponseWriter, r *http.Request) {
	h.stamp(w, r, timeclock.ActionEndShift)
}

// BeginBreak implements StampHandler.
func (h *StampHandlerImpl) BeginBreak(w http.ResponseWriter, r *http.Request) {
	h.stamp(w, r, timeclock.ActionBeginBreak)
}

// EndBreak implements StampHandler.
func (h *StampHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	h.stamp(w, r, timeclock.ActionEndBreak)
}

func (h *StampHandlerImpl) stamp(w http.ResponseWriter, r *http.Request, action timeclock.StampAction) {
	workerID, err := middleware.WorkerID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	now := time.Now().In(h.loc)
	if err := h.stampService.Stamp(r.Context(), action, workerID, now); err != nil {
		slog.Error("Stamp service error", "error", err, "action", action)
		response.HandleError(w, err)
		return
	}

	h.respondWithStatus(w, r, workerID, now)
}

// Status implements StampHandler.
func (h *StampHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	workerID, err := middleware.WorkerID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.respondWithStatus(w, r, workerID, time.Now().In(h.loc))
}

func (h *StampHandlerImpl) respondWithStatus(w http.ResponseWriter, r *http.Request, workerID string, now time.Time) {
	status, err := h.stampService.Status(r.Context(), workerID, now)
	if err != nil {
		slog.Error("Status service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}
