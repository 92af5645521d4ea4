package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Tiliavir/trivial-jira-logger/internal/jira"
	"github.com/Tiliavir/trivial-jira-logger/internal/timecalc"
)

type sprintJSON struct {
	Sprint sprintInfo  `json:"sprint"`
	Issues []issueJSON `json:"issues"`
}

type sprintInfo struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

type issueJSON struct {
	Key              string `json:"key"`
	Summary          string `json:"summary"`
	State            string `json:"state"`
	SpentSeconds     int64  `json:"spent_seconds"`
	EstimatedSeconds int64  `json:"estimated_seconds"`
	Estimated        string `json:"estimated,omitempty"`
}

// estimate formats remaining and original estimates as "1d 2h (3d)".
func estimate(f jira.IssueFields) string {
	tt := f.TimeTracking
	if tt == nil || (tt.RemainingEstimate == "" && tt.OriginalEstimate == "") {
		return ""
	}
	if tt.OriginalEstimate == "" {
		return tt.RemainingEstimate
	}
	return fmt.Sprintf("%s (%s)", tt.RemainingEstimate, tt.OriginalEstimate)
}

// Sprint writes the issues of a sprint.
func Sprint(w io.Writer, sprint *jira.Sprint, issues []jira.Issue, opts Options) error {
	switch opts.Format {
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"sprint_id", "key", "summary", "state", "spent", "estimated"}); err != nil {
			return err
		}
		id := strconv.Itoa(sprint.ID)
		for _, i := range issues {
			row := []string{id, i.Key, i.Fields.Summary, i.Fields.Status.Name,
				timecalc.FormatClock(i.Fields.TimeSpent), estimate(i.Fields)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()

	case FormatJSON:
		out := sprintJSON{
			Sprint: sprintInfo{ID: sprint.ID, Name: sprint.Name, State: sprint.State,
				StartDate: sprint.StartDate, EndDate: sprint.EndDate},
			Issues: make([]issueJSON, 0, len(issues)),
		}
		for _, i := range issues {
			out.Issues = append(out.Issues, issueJSON{
				Key:              i.Key,
				Summary:          i.Fields.Summary,
				State:            i.Fields.Status.Name,
				SpentSeconds:     i.Fields.TimeSpent,
				EstimatedSeconds: i.Fields.TimeEstimate,
				Estimated:        estimate(i.Fields),
			})
		}
		return writeJSON(w, out)
	}

	st := newStyles(w, opts.Color)
	t := newTable(st, "key", "summary", "state", "spent", "estimated")
	for _, i := range issues {
		t.Row(i.Key, i.Fields.Summary, i.Fields.Status.Name,
			timecalc.FormatClock(i.Fields.TimeSpent), estimate(i.Fields))
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", st.title.Render(sprint.Summary()), t.Render())
	return err
}
