package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/Tiliavir/trivial-jira-logger/internal/model"
	"github.com/Tiliavir/trivial-jira-logger/internal/timecalc"
)

// Journal lists journal entries grouped by day, followed by the total.
func Journal(w io.Writer, entries []model.JournalEntry, opts Options) error {
	st := newStyles(w, opts.Color)
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, st.dim.Render("No entries found."))
		return err
	}

	var b strings.Builder
	var currentDay string
	var total int64
	for _, e := range entries {
		started := e.Started.Local()
		day := started.Format("2006-01-02")
		if day != currentDay {
			b.WriteString(st.title.Render(day) + "\n")
			currentDay = day
		}

		end := started.Add(timeSeconds(e.DurationSeconds))
		comment := ""
		if e.Comment != nil && *e.Comment != "" {
			comment = "  " + st.dim.Render(*e.Comment)
		}
		fmt.Fprintf(&b, "%s–%s  %-10s (%s) %s%s\n",
			started.Format("15:04"), end.Format("15:04"), e.Issue,
			timecalc.FormatDuration(e.DurationSeconds), e.Action, comment)
		total += e.DurationSeconds
	}
	b.WriteString(st.total.Render("Total: "+timecalc.FormatHoursMinutes(total)) + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}
