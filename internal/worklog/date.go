package worklog

import (
	"regexp"
	"strings"
	"time"
)

// MaxAgeDays is how many whole days back a worklog may be dated.
const MaxAgeDays = 14

const dateOnlyLayout = "2006-01-02"

// dateLayouts are tried in order by ValidateDate.
var dateLayouts = []string{
	dateOnlyLayout,
	"2006-01-02T15:4",
	"2006-01-02 15:4",
}

var (
	dateOnlyRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	layoutLabels = strings.NewReplacer("2006", "YYYY", "01", "MM", "02", "DD", "15", "HH", "4", "MM")
)

// SupportedDateFormats lists the accepted --date layouts for messages and
// help text.
func SupportedDateFormats() string {
	labels := make([]string, len(dateLayouts))
	for i, l := range dateLayouts {
		labels[i] = layoutLabels.Replace(l)
	}
	return strings.Join(labels, ", ")
}

// ValidateDate parses a --date value relative to now. An empty text yields
// nil, meaning "now" at the point of use.
//
// A bare YYYY-MM-DD takes its time of day from start when start is set,
// otherwise from now. The date is read in now's location and must be
// neither in the future nor more than MaxAgeDays whole days old. The
// result is the same instant expressed in UTC.
func ValidateDate(text, start string, now time.Time) (*time.Time, error) {
	if text == "" {
		return nil, nil
	}
	if dateOnlyRe.MatchString(text) && start != "" {
		text = text + " " + start
	}

	loc := now.Location()
	var (
		given  time.Time
		parsed bool
	)
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, text, loc)
		if err != nil {
			continue
		}
		if layout == dateOnlyLayout {
			t = time.Date(t.Year(), t.Month(), t.Day(),
				now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), loc)
		}
		given, parsed = t, true
		break
	}
	if !parsed {
		return nil, badParameter("--date",
			"date has to match one of supported ISO formats: "+SupportedDateFormats())
	}

	if given.After(now) {
		return nil, badParameter("--date", "worklog date cannot be in future!")
	}
	if days := int(now.Sub(given) / (24 * time.Hour)); days > MaxAgeDays {
		return nil, badParameter("--date", "worklog date cannot be older than 2 weeks!")
	}

	utc := given.UTC()
	return &utc, nil
}
