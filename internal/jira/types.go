package jira

import (
	"fmt"
	"time"
)

// Jira's timestamp layout for worklog "started" values.
const startedLayout = "2006-01-02T15:04:05.000-0700"

// Board is an agile board.
type Board struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Location struct {
		DisplayName string `json:"displayName"`
	} `json:"location"`
}

// DisplayName is the board's location name, falling back to its own name.
func (b Board) DisplayName() string {
	if b.Location.DisplayName != "" {
		return b.Location.DisplayName
	}
	return b.Name
}

// Sprint is an agile sprint.
type Sprint struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Summary formats the sprint as "Name • id: 42 • Mon, Oct 23 -> Thu, Nov 23".
func (s Sprint) Summary() string {
	day := func(v string) string {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return v
		}
		return t.Format("Mon, Jan 02")
	}
	return fmt.Sprintf("%s • id: %d • %s -> %s", s.Name, s.ID, day(s.StartDate), day(s.EndDate))
}

// Issue is the subset of an issue's fields the commands use.
type Issue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

// IssueFields are the requested fields of an issue.
type IssueFields struct {
	Summary string `json:"summary"`
	Status  struct {
		Name string `json:"name"`
	} `json:"status"`
	TimeSpent    int64         `json:"timespent"`
	TimeEstimate int64         `json:"timeestimate"`
	TimeTracking *TimeTracking `json:"timetracking"`
}

// TimeTracking holds Jira's formatted estimates, e.g. "2d 7h 30m".
type TimeTracking struct {
	OriginalEstimate  string `json:"originalEstimate"`
	RemainingEstimate string `json:"remainingEstimate"`
}

// User is a Jira account.
type User struct {
	AccountID    string `json:"accountId"`
	Name         string `json:"name"`
	EmailAddress string `json:"emailAddress"`
	DisplayName  string `json:"displayName"`
}

// Same reports whether u and o denote the same account. Cloud accounts
// compare by account id, Data Center accounts by user name.
func (u User) Same(o User) bool {
	if u.AccountID != "" || o.AccountID != "" {
		return u.AccountID == o.AccountID
	}
	return u.Name != "" && u.Name == o.Name
}

// Worklog is a record of time spent on an issue.
type Worklog struct {
	ID               string `json:"id"`
	IssueID          string `json:"issueId"`
	Author           User   `json:"author"`
	Comment          string `json:"comment"`
	Started          string `json:"started"`
	TimeSpent        string `json:"timeSpent"`
	TimeSpentSeconds int64  `json:"timeSpentSeconds"`
}

// StartedAt parses the worklog's start timestamp.
func (w Worklog) StartedAt() (time.Time, error) {
	t, err := time.Parse(startedLayout, w.Started)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing worklog %s start %q: %w", w.ID, w.Started, err)
	}
	return t, nil
}

// WorklogUpdate lists the worklog fields to change; nil fields are kept.
type WorklogUpdate struct {
	Seconds *int64
	Comment *string
	Started *time.Time
}

// IsEmpty reports whether no field would change.
func (u WorklogUpdate) IsEmpty() bool {
	return u.Seconds == nil && u.Comment == nil && u.Started == nil
}

// FormatStarted renders t the way Jira expects worklog start times.
func FormatStarted(t time.Time) string {
	return t.Format(startedLayout)
}
