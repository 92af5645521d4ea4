package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-jira-logger/internal/jira"
	"github.com/Tiliavir/trivial-jira-logger/internal/model"
	"github.com/Tiliavir/trivial-jira-logger/internal/storage"
	"github.com/Tiliavir/trivial-jira-logger/internal/timecalc"
	"github.com/Tiliavir/trivial-jira-logger/internal/worklog"
)

var (
	logTime     string
	logStart    string
	logEnd      string
	logDate     string
	logComment  string
	logWorklog  string
	logState    string
	logSprintID int
)

var logCmd = &cobra.Command{
	Use:   "log ISSUE",
	Short: "Log time spent on an issue, or update a worklog",
	Long: `Log time spent on ISSUE, given as an issue number of the configured
project or as text matched against the summaries of the current sprint's
issues.

Time spent is given with --time as '[Nh][ N[m]]' or 'Nm' (at most 8h), or
computed from --start and --end (or now). With --worklog an existing
worklog is updated instead; then --time or --comment is required.

--date logs work done in the past, at most 2 weeks ago, in one of the
formats YYYY-MM-DD, YYYY-MM-DDTHH:MM or YYYY-MM-DD HH:MM. A bare date takes
its time of day from --start, or from the current time.`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runLog,
}

func init() {
	f := logCmd.Flags()
	f.StringVarP(&logTime, "time", "t", "", "Time spent, e.g. '2h', '91m', '4h 37m', '1h59'")
	f.StringVarP(&logStart, "start", "s", "", "Time when the work started, e.g. '10:30', '12.45'")
	f.StringVarP(&logEnd, "end", "e", "", "Time when the work ended, e.g. '13:15', defaults to now")
	f.StringVarP(&logDate, "date", "d", "", "Date the work was done, e.g. 2023-11-24 or '2023-11-24 8:19'")
	f.StringVarP(&logComment, "comment", "c", "", "Comment added to the worklog")
	f.StringVarP(&logWorklog, "worklog", "w", "", "Id of the worklog to update")
	f.StringVar(&logState, "state", "active", "State of the sprint searched for ISSUE: active, closed, future")
	f.IntVar(&logSprintID, "sprint-id", 0, "Id of the sprint searched for ISSUE")
}

func runLog(cmd *cobra.Command, args []string) error {
	now := time.Now()

	raw := worklog.Raw{
		Issue:     args[0],
		Time:      logTime,
		Start:     logStart,
		End:       logEnd,
		Date:      logDate,
		WorklogID: logWorklog,
	}
	if cmd.Flags().Changed("comment") {
		comment := logComment
		raw.Comment = &comment
	}
	req, err := worklog.Build(raw, now)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, cfg, err := newClient(ctx)
	if err != nil {
		return err
	}
	key, err := jira.ResolveIssue(ctx, client, cfg.ProjectKey, req.Issue,
		jira.SprintQuery{State: logState, SprintID: logSprintID})
	if err != nil {
		return err
	}

	var wl *jira.Worklog
	action := model.ActionCreated
	if req.IsUpdate() {
		action = model.ActionUpdated
		wl, err = updateWorklog(ctx, client, key, req)
	} else {
		wl, err = client.CreateWorklog(ctx, key, *req.Seconds, req.Comment, req.Date)
		if err == nil {
			fmt.Printf("spent %s in %s [worklog %s] at %s\n", wl.TimeSpent, key, wl.ID, now.Format("15:04:05"))
		}
	}
	if err != nil {
		return err
	}

	if err := recordJournal(cfg.Server, key, action, wl, now); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record worklog in journal: %v\n", err)
	}
	return nil
}

func updateWorklog(ctx context.Context, client *jira.Client, key string, req worklog.LogRequest) (*jira.Worklog, error) {
	current, err := client.GetWorklog(ctx, key, req.WorklogID)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "%s, created by %s\n", current.ID, current.Author.DisplayName)

	updated, err := client.UpdateWorklog(ctx, current, jira.WorklogUpdate{
		Seconds: req.Seconds,
		Comment: req.Comment,
		Started: req.Date,
	})
	if err != nil {
		return nil, err
	}
	fmt.Println(describeUpdate(key, updated.ID, req))
	return updated, nil
}

// describeUpdate lists the fields an update changed.
func describeUpdate(key, id string, req worklog.LogRequest) string {
	out := fmt.Sprintf("updated worklog %s in %s:", id, key)
	if req.Seconds != nil {
		out += " time spent " + timecalc.FormatDuration(*req.Seconds) + ";"
	}
	if req.Comment != nil {
		out += fmt.Sprintf(" comment %q;", *req.Comment)
	}
	if req.Date != nil {
		out += " started " + req.Date.Local().Format("2006-01-02 15:04") + ";"
	}
	return out[:len(out)-1]
}

// recordJournal stores the worklog in the local journal, moving it when
// an update changed its day.
func recordJournal(server, key string, action model.Action, wl *jira.Worklog, now time.Time) error {
	base, err := storage.BaseDir()
	if err != nil {
		return err
	}
	started, err := wl.StartedAt()
	if err != nil {
		started = now
	}

	entry := model.JournalEntry{
		WorklogID:       wl.ID,
		Issue:           key,
		Server:          server,
		Action:          action,
		Started:         started,
		DurationSeconds: wl.TimeSpentSeconds,
		RecordedAt:      now,
	}
	if wl.Comment != "" {
		comment := wl.Comment
		entry.Comment = &comment
	}

	if action == model.ActionUpdated {
		prev, err := storage.FindEntry(base, server, wl.ID, now, worklog.MaxAgeDays)
		if err != nil {
			return err
		}
		if prev != nil && !sameDay(prev.Started, started) {
			if err := storage.RemoveEntry(base, prev.Started.Local(), server, wl.ID); err != nil {
				return err
			}
		}
	}
	return storage.UpdateEntry(base, entry)
}

func sameDay(a, b time.Time) bool {
	return timecalc.StartOfDay(a.Local()).Equal(timecalc.StartOfDay(b.Local()))
}
