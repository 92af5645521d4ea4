package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Tiliavir/trivial-jira-logger/internal/report"
	"github.com/Tiliavir/trivial-jira-logger/internal/timecalc"
)

type reportJSON struct {
	Date         string            `json:"date"`
	User         string            `json:"user,omitempty"`
	Issues       []reportIssueJSON `json:"issues"`
	TotalSeconds int64             `json:"total_seconds"`
	Total        string            `json:"total"`
}

type reportIssueJSON struct {
	Key          string            `json:"key"`
	Summary      string            `json:"summary"`
	Worklogs     []reportEntryJSON `json:"worklogs"`
	TotalSeconds int64             `json:"total_seconds"`
	Total        string            `json:"total"`
}

type reportEntryJSON struct {
	ID      string `json:"id"`
	Started string `json:"started"`
	Seconds int64  `json:"seconds"`
	Comment string `json:"comment,omitempty"`
}

// Report writes a day report.
func Report(w io.Writer, r *report.Report, opts Options) error {
	date := r.Date.Format("2006-01-02")
	switch opts.Format {
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"date", "key", "summary", "worklog_id", "started", "seconds", "comment"}); err != nil {
			return err
		}
		for _, ir := range r.Issues {
			for _, e := range ir.Worklogs {
				row := []string{date, ir.Key, ir.Summary, e.WorklogID,
					e.Started.Local().Format(time.RFC3339), strconv.FormatInt(e.Seconds, 10), e.Comment}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		cw.Flush()
		return cw.Error()

	case FormatJSON:
		out := reportJSON{
			Date:         date,
			User:         r.User,
			Issues:       make([]reportIssueJSON, 0, len(r.Issues)),
			TotalSeconds: r.TotalSeconds,
			Total:        r.Total(),
		}
		for _, ir := range r.Issues {
			ij := reportIssueJSON{Key: ir.Key, Summary: ir.Summary, TotalSeconds: ir.TotalSeconds, Total: ir.Total()}
			for _, e := range ir.Worklogs {
				ij.Worklogs = append(ij.Worklogs, reportEntryJSON{
					ID:      e.WorklogID,
					Started: e.Started.Local().Format(time.RFC3339),
					Seconds: e.Seconds,
					Comment: e.Comment,
				})
			}
			out.Issues = append(out.Issues, ij)
		}
		return writeJSON(w, out)
	}

	st := newStyles(w, opts.Color)
	if len(r.Issues) == 0 {
		_, err := fmt.Fprintf(w, "%s\n", st.dim.Render("nothing logged on "+date))
		return err
	}
	t := newTable(st, "key", "summary", "worklog", "started", "spent", "comment")
	for _, ir := range r.Issues {
		for i, e := range ir.Worklogs {
			key, summary := ir.Key, ir.Summary
			if i > 0 {
				key, summary = "", ""
			}
			t.Row(key, summary, e.WorklogID, e.Started.Local().Format("15:04"),
				timecalc.FormatHoursMinutes(e.Seconds), e.Comment)
		}
		if len(ir.Worklogs) > 1 {
			t.Row("", "", "", "", ir.Total(), "")
		}
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n",
		st.title.Render("Report for "+date),
		t.Render(),
		st.total.Render("Total: "+r.Total()))
	return err
}
