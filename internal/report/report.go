// Package report aggregates the current user's worklogs for a day.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Tiliavir/trivial-jira-logger/internal/jira"
	"github.com/Tiliavir/trivial-jira-logger/internal/timecalc"
)

// Entry is one worklog in a report.
type Entry struct {
	WorklogID string
	Started   time.Time
	Seconds   int64
	Comment   string
}

// IssueReport groups the worklogs of one issue.
type IssueReport struct {
	Key          string
	Summary      string
	Worklogs     []Entry
	TotalSeconds int64
}

// Report is a user's logged work for a single day.
type Report struct {
	Date         time.Time
	User         string
	Issues       []IssueReport
	TotalSeconds int64
}

// Total formats the overall time as "Xh MMm".
func (r *Report) Total() string {
	return timecalc.FormatHoursMinutes(r.TotalSeconds)
}

// Total formats the issue's time as "Xh MMm".
func (ir IssueReport) Total() string {
	return timecalc.FormatHoursMinutes(ir.TotalSeconds)
}

// Build keeps the worklogs of user that started on date's day and totals
// them per issue. Issues without such worklogs are left out; the order of
// issues is kept.
func Build(user jira.User, date time.Time, issues []jira.Issue, worklogs map[string][]jira.Worklog) (*Report, error) {
	from, to := timecalc.DayRange(date)
	r := &Report{Date: from, User: user.DisplayName}
	for _, issue := range issues {
		ir := IssueReport{Key: issue.Key, Summary: issue.Fields.Summary}
		for _, w := range worklogs[issue.Key] {
			if !w.Author.Same(user) {
				continue
			}
			started, err := w.StartedAt()
			if err != nil {
				return nil, err
			}
			if started.Before(from) || !started.Before(to) {
				continue
			}
			ir.Worklogs = append(ir.Worklogs, Entry{
				WorklogID: w.ID,
				Started:   started,
				Seconds:   w.TimeSpentSeconds,
				Comment:   w.Comment,
			})
			ir.TotalSeconds += w.TimeSpentSeconds
		}
		if len(ir.Worklogs) == 0 {
			continue
		}
		sort.SliceStable(ir.Worklogs, func(i, j int) bool {
			return ir.Worklogs[i].Started.Before(ir.Worklogs[j].Started)
		})
		r.Issues = append(r.Issues, ir)
		r.TotalSeconds += ir.TotalSeconds
	}
	return r, nil
}

// Source is the part of the Jira client a report is collected from.
type Source interface {
	Myself(ctx context.Context) (*jira.User, error)
	IssuesWithWorklogsOn(ctx context.Context, projectKey string, date time.Time) ([]jira.Issue, error)
	IssueWorklogs(ctx context.Context, issue string) ([]jira.Worklog, error)
}

// Collect fetches the data for date from src and builds the report.
func Collect(ctx context.Context, src Source, projectKey string, date time.Time) (*Report, error) {
	user, err := src.Myself(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching current user: %w", err)
	}
	issues, err := src.IssuesWithWorklogsOn(ctx, projectKey, date)
	if err != nil {
		return nil, err
	}
	worklogs := make(map[string][]jira.Worklog, len(issues))
	for _, issue := range issues {
		wls, err := src.IssueWorklogs(ctx, issue.Key)
		if err != nil {
			return nil, err
		}
		worklogs[issue.Key] = wls
	}
	return Build(*user, date, issues, worklogs)
}
