package worklog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Field names which clock flag a value came from.
type Field string

const (
	FieldStart Field = "start"
	FieldEnd   Field = "end"
)

const clockFormatMsg = "start/end time has to be in format '[H[H]][:.h,][M[M]]', e.g. '2h3', '12:03', '3,59'"

var (
	clockRe        = regexp.MustCompile(`^(([01]?\d|2[0-3])[:.h,])+([0-5]?\d)$`)
	clockSeparator = strings.NewReplacer(",", ":", ".", ":", "h", ":")
)

// ParseClock validates a --start or --end value and returns it as a
// canonical "HH:MM" string. Any of ':', '.', 'h' and ',' separate hours
// from minutes. An empty text yields an empty result.
//
// anchored reports whether a start time or an explicit duration is also
// present; an end time without one is rejected before its format is
// looked at.
func ParseClock(field Field, text string, anchored bool) (string, error) {
	param := "--" + string(field)
	if field == FieldEnd && text != "" && !anchored {
		return "", badParameter(param, "start time required to process end time")
	}
	if text == "" {
		return "", nil
	}
	if !clockRe.MatchString(text) {
		return "", badParameter(param, clockFormatMsg)
	}

	parts := strings.Split(clockSeparator.Replace(text), ":")
	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[1])
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// clockMinutes returns the minute of day of a clock value; separators
// other than ':' are accepted too.
func clockMinutes(clock string) (int, error) {
	parts := strings.Split(clockSeparator.Replace(clock), ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("malformed clock value %q", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q: %w", clock, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q: %w", clock, err)
	}
	return h*60 + m, nil
}
