package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/domain/timeclock"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/handler/http/response"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	Daily(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService timeclock.AttendanceService
	loc               *time.Location
}

func NewAttendanceHandler(attendanceService timeclock.AttendanceService, loc *time.Location) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
		loc:               loc,
	}
}

// Daily implements AttendanceHandler. Query params: date (YYYY-MM-DD,
// default today), page and limit.
func (h *AttendanceHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	date := time.Now().In(h.loc)
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, ok := validator.IsValidDate(dateStr, h.loc)
		if !ok {
			response.HandleError(w, timeclock.ErrInvalidDate)
			return
		}
		date = parsed
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 0)

	res, err := h.attendanceService.DailyAttendances(r.Context(), date, page, limit)
	if err != nil {
		slog.Error("Daily attendances service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, res)
}

// Monthly implements AttendanceHandler. Query param: month (YYYY-MM, default
// the current month).
func (h *AttendanceHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")

	now := time.Now().In(h.loc)
	month := now
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		parsed, ok := validator.IsValidMonth(monthStr, h.loc)
		if !ok {
			response.HandleError(w, timeclock.ErrInvalidMonth)
			return
		}
		month = parsed
	}

	res, err := h.attendanceService.MonthlyAttendance(r.Context(), workerID, month, now)
	if err != nil {
		slog.Error("Monthly attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, res)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return val
}
