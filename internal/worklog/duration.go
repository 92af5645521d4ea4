package worklog

import (
	"regexp"
	"strconv"
)

const durationFormatMsg = "time cannot be greater than 8h (1 day), " +
	"and has to be in format '[Nh][ N[m]]' or 'Nm', " +
	"e.g. '2h', '91m', '4h 37m', '1h59'."

var (
	// Minutes-only counts run 10-499 with no leading zero.
	minutesOnlyRe = regexp.MustCompile(`^([1-9]\d|[1-4]\d{2})m$`)
	// Minutes after the hour are 1-59 without a leading zero.
	hoursMinutesRe = regexp.MustCompile(`^([1-8])h(?:\s*([1-5]\d|[1-9])m?)?$`)
)

// ParseDuration converts a --time value such as "2h 10m", "45m" or "1h59"
// into seconds. An empty string means no duration was given and yields 0.
//
// Two forms are accepted, tried in order:
//
//	Nm        minutes only, 10 <= N <= 499
//	Nh[ M[m]] one hour digit 1-8, optionally followed by 1-59 minutes;
//	          8h takes no minutes
func ParseDuration(text string) (int64, error) {
	if text == "" {
		return 0, nil
	}

	if m := minutesOnlyRe.FindStringSubmatch(text); m != nil {
		mins, _ := strconv.Atoi(m[1])
		return int64(mins) * 60, nil
	}

	m := hoursMinutesRe.FindStringSubmatch(text)
	if m == nil {
		return 0, badParameter("--time", durationFormatMsg)
	}
	hours, _ := strconv.Atoi(m[1])
	var mins int
	if m[2] != "" {
		if hours == 8 {
			return 0, badParameter("--time", durationFormatMsg)
		}
		mins, _ = strconv.Atoi(m[2])
	}
	return int64(hours)*3600 + int64(mins)*60, nil
}
