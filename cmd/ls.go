package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-jira-logger/internal/jira"
	"github.com/Tiliavir/trivial-jira-logger/internal/render"
	"github.com/Tiliavir/trivial-jira-logger/internal/worklog"
)

var (
	lsState    string
	lsSprintID int
	lsFormat   string
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the issues of the current sprint",
	Args:  usageArgs(cobra.NoArgs),
	RunE:  runLs,
}

func init() {
	lsCmd.Flags().StringVarP(&lsState, "state", "s", "active", "Sprint state: active, closed, future")
	lsCmd.Flags().IntVarP(&lsSprintID, "sprint-id", "i", 0, "Sprint id, takes precedence over --state")
	lsCmd.Flags().StringVarP(&lsFormat, "format", "f", "table", "Output format: table, csv, json")
}

func runLs(cmd *cobra.Command, args []string) error {
	switch lsState {
	case "active", "closed", "future":
	default:
		return &worklog.ParameterError{Param: "--state", Message: "has to be one of active, closed, future"}
	}
	opts, err := renderOptions(lsFormat)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, cfg, err := newClient(ctx)
	if err != nil {
		return err
	}
	sprint, err := client.CurrentSprint(ctx, cfg.ProjectKey, jira.SprintQuery{State: lsState, SprintID: lsSprintID})
	if err != nil {
		return err
	}
	issues, err := client.SprintIssues(ctx, sprint)
	if err != nil {
		return err
	}
	return render.Sprint(os.Stdout, sprint, issues, opts)
}
