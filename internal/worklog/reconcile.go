package worklog

import "time"

// Input holds the field-validated values a worklog request is reconciled
// from. Zero values mean "not given".
type Input struct {
	// Seconds is the explicit --time duration; 0 when absent.
	Seconds int64
	// Start and End are clock times, canonical HH:MM.
	Start string
	End   string
	// WorklogID selects an existing worklog to update.
	WorklogID string
	Comment   *string
}

// Mode says which input path produced the seconds of a request.
type Mode int

const (
	// ModeCommentOnly updates an existing worklog's comment without time.
	ModeCommentOnly Mode = iota
	// ModeDuration uses an explicit --time.
	ModeDuration
	// ModeInterval derives the time from --start and --end (or now).
	ModeInterval
)

func (m Mode) String() string {
	switch m {
	case ModeDuration:
		return "duration"
	case ModeInterval:
		return "interval"
	default:
		return "comment-only"
	}
}

// InputMode picks the input path for in. It does not check policy; see
// Reconcile.
func InputMode(in Input) Mode {
	switch {
	case in.Seconds > 0:
		return ModeDuration
	case in.Start != "":
		return ModeInterval
	default:
		return ModeCommentOnly
	}
}

// Reconcile applies the cross-field policy to in and returns the seconds
// to log. A nil result with a nil error means the request only updates a
// worklog's comment.
//
// An explicit duration wins over start/end. Otherwise the interval runs
// from start to end, or to now truncated to the minute when end is
// absent, both on the same day.
func Reconcile(in Input, now time.Time) (*int64, error) {
	hasTime := in.Seconds > 0 || in.Start != ""
	isUpdate := in.WorklogID != ""

	if !hasTime && !(isUpdate && in.Comment != nil) {
		if isUpdate && in.Comment == nil {
			return nil, &UsageError{Message: "to update a worklog, either time spent or a comment is needed"}
		}
		return nil, &UsageError{Message: "cannot spend without knowing working time or when work has started: " +
			"provide valid --time or --start options"}
	}

	switch InputMode(in) {
	case ModeDuration:
		seconds := in.Seconds
		return &seconds, nil
	case ModeInterval:
		seconds, err := intervalSeconds(in.Start, in.End, now)
		if err != nil {
			return nil, err
		}
		return &seconds, nil
	default:
		return nil, nil
	}
}

func intervalSeconds(start, end string, now time.Time) (int64, error) {
	from, err := clockMinutes(start)
	if err != nil {
		return 0, badParameter("--start", err.Error())
	}
	to := now.Hour()*60 + now.Minute()
	if end != "" {
		if to, err = clockMinutes(end); err != nil {
			return 0, badParameter("--end", err.Error())
		}
	}
	if to < from {
		return 0, badParameter("", "start time cannot be later than end time")
	}
	return int64(to-from) * 60, nil
}
