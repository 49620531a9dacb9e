package timeclock

// ========================================
// TIMECLOCK DTOs
// ========================================

// StampAction selects one of the four stamp transitions.
type StampAction string

const (
	ActionBeginShift StampAction = "begin_shift"
	ActionEndShift   StampAction = "end_shift"
	ActionBeginBreak StampAction = "begin_break"
	ActionEndBreak   StampAction = "end_break"
)

type StatusResponse struct {
	WorkerID string     `json:"worker_id"`
	Status   WorkStatus `json:"status"`
}

// DailyAttendanceRow is one worker's attendance on the report date. Nil
// seconds render as JSON null, meaning "unknown / in progress".
type DailyAttendanceRow struct {
	WorkerID     string  `json:"worker_id"`
	WorkerName   string  `json:"worker_name"`
	ShiftBegunAt string  `json:"shift_begun_at"`
	ShiftEndedAt *string `json:"shift_ended_at"`
	BreakSeconds *int64  `json:"break_seconds"`
	WorkSeconds  *int64  `json:"work_seconds"`
}

type DailyAttendanceResponse struct {
	Date        string               `json:"date"`
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []DailyAttendanceRow `json:"attendances"`
}

// MonthlyAttendanceRow is one calendar day in a worker's month view. Days
// without activity carry zero seconds rather than being omitted.
type MonthlyAttendanceRow struct {
	Date         string  `json:"date"`
	ShiftBegunAt *string `json:"shift_begun_at"`
	ShiftEndedAt *string `json:"shift_ended_at"`
	ShiftSeconds *int64  `json:"shift_seconds"`
	BreakSeconds *int64  `json:"break_seconds"`
	WorkSeconds  *int64  `json:"work_seconds"`
}

type MonthlyAttendanceResponse struct {
	WorkerID string                 `json:"worker_id"`
	Month    string                 `json:"month"`
	Days     []MonthlyAttendanceRow `json:"days"`
}
