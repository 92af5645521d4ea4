package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-jira-logger/internal/render"
	"github.com/Tiliavir/trivial-jira-logger/internal/report"
	"github.com/Tiliavir/trivial-jira-logger/internal/worklog"
)

var (
	reportDate   string
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the time you logged on a day",
	Args:  usageArgs(cobra.NoArgs),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportDate, "date", "d", "", "Day to report, YYYY-MM-DD (default today)")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "table", "Output format: table, csv, json")
}

func runReport(cmd *cobra.Command, args []string) error {
	now := time.Now()
	day := now
	if reportDate != "" {
		d, err := time.ParseInLocation("2006-01-02", reportDate, time.Local)
		if err != nil {
			return &worklog.ParameterError{Param: "--date", Message: "date has to match YYYY-MM-DD"}
		}
		day = d
	}
	opts, err := renderOptions(reportFormat)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, cfg, err := newClient(ctx)
	if err != nil {
		return err
	}
	r, err := report.Collect(ctx, client, cfg.ProjectKey, day)
	if err != nil {
		return err
	}
	return render.Report(os.Stdout, r, opts)
}
