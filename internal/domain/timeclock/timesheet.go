package timeclock

// Timesheet aggregation rules. A nil result means "unknown": the period is
// still open, or was closed by reconciliation without an end stamp. Unknown
// is data, not an error, and it propagates through every derived value.

// BreakSeconds sums the day's break durations. The result is nil while the
// worker is mid-break, or when any break that day is missing its end stamp.
// A day without breaks sums to 0.
func BreakSeconds(onBreak bool, breaks []ClosedBreak) *int64 {
	if onBreak {
		return nil
	}

	var total int64
	for _, b := range breaks {
		secs := b.TimeInSeconds()
		if secs == nil {
			return nil
		}
		total += *secs
	}
	return &total
}

// ShiftSeconds derives the day's shift duration. The result is nil while the
// worker is still on shift, or when the day's closed shift is missing its end
// stamp. A day without any shift is 0, not unknown.
func ShiftSeconds(onShift bool, shift *ClosedShift) *int64 {
	if onShift {
		return nil
	}
	if shift == nil {
		zero := int64(0)
		return &zero
	}
	return shift.TimeInSeconds()
}

// WorkSeconds is shift time minus break time, nil when either is unknown.
func WorkSeconds(shiftSecs, breakSecs *int64) *int64 {
	if shiftSecs == nil || breakSecs == nil {
		return nil
	}
	work := *shiftSecs - *breakSecs
	return &work
}
