package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-jira-logger/internal/render"
	"github.com/Tiliavir/trivial-jira-logger/internal/storage"
	"github.com/Tiliavir/trivial-jira-logger/internal/timecalc"
)

var historyWeek bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List worklogs recorded by tjl on this machine",
	Args:  usageArgs(cobra.NoArgs),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyWeek, "week", false, "Show this week's worklogs instead of today's")
}

func runHistory(cmd *cobra.Command, args []string) error {
	now := time.Now()

	base, err := storage.BaseDir()
	if err != nil {
		return err
	}

	from, to := timecalc.StartOfDay(now), timecalc.EndOfDay(now)
	if historyWeek {
		from, to = timecalc.WeekRange(now)
		fmt.Printf("Week %s\n", timecalc.ISOWeekLabel(now))
	}

	entries, err := storage.LoadRange(base, from, to)
	if err != nil {
		return err
	}
	opts, err := renderOptions("")
	if err != nil {
		return err
	}
	return render.Journal(os.Stdout, entries, opts)
}
