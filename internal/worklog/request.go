package worklog

import (
	"strings"
	"time"
)

// Raw is a log command's flag values as typed by the user.
type Raw struct {
	Issue     string
	Time      string
	Start     string
	End       string
	Date      string
	Comment   *string
	WorklogID string
}

// LogRequest is the reconciled payload handed to the worklog
// create/update call.
type LogRequest struct {
	Issue string
	// Seconds is nil for a comment-only update.
	Seconds *int64
	Comment *string
	// Date is nil when the worklog starts now.
	Date      *time.Time
	WorklogID string
	Mode      Mode
}

// IsUpdate reports whether the request targets an existing worklog.
func (r LogRequest) IsUpdate() bool { return r.WorklogID != "" }

// Build validates every field of raw, then reconciles them into a
// LogRequest. Fields are checked in the order time, start, end, date, so
// the first reported error matches what the user typed first.
func Build(raw Raw, now time.Time) (LogRequest, error) {
	seconds, err := ParseDuration(raw.Time)
	if err != nil {
		return LogRequest{}, err
	}
	start, err := ParseClock(FieldStart, raw.Start, false)
	if err != nil {
		return LogRequest{}, err
	}
	end, err := ParseClock(FieldEnd, raw.End, start != "" || seconds > 0)
	if err != nil {
		return LogRequest{}, err
	}
	date, err := ValidateDate(raw.Date, start, now)
	if err != nil {
		return LogRequest{}, err
	}

	in := Input{
		Seconds:   seconds,
		Start:     start,
		End:       end,
		WorklogID: strings.TrimSpace(raw.WorklogID),
		Comment:   raw.Comment,
	}
	spent, err := Reconcile(in, now)
	if err != nil {
		return LogRequest{}, err
	}

	return LogRequest{
		Issue:     strings.TrimSpace(raw.Issue),
		Seconds:   spent,
		Comment:   raw.Comment,
		Date:      date,
		WorklogID: in.WorklogID,
		Mode:      InputMode(in),
	}, nil
}
