package jira

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// MinWorklogSeconds is the shortest worklog CreateWorklog accepts.
const MinWorklogSeconds = 5 * 60

type worklogPayload struct {
	TimeSpentSeconds *int64  `json:"timeSpentSeconds,omitempty"`
	Comment          *string `json:"comment,omitempty"`
	Started          string  `json:"started,omitempty"`
}

type worklogPage struct {
	StartAt    int       `json:"startAt"`
	MaxResults int       `json:"maxResults"`
	Total      int       `json:"total"`
	Worklogs   []Worklog `json:"worklogs"`
}

func worklogPath(issue string) string {
	return "/rest/api/2/issue/" + url.PathEscape(issue) + "/worklog"
}

// CreateWorklog logs seconds on issue. A nil started means now.
func (c *Client) CreateWorklog(ctx context.Context, issue string, seconds int64, comment *string, started *time.Time) (*Worklog, error) {
	if seconds < MinWorklogSeconds {
		return nil, fmt.Errorf("%d seconds is too low to log", seconds)
	}
	p := worklogPayload{TimeSpentSeconds: &seconds, Comment: comment}
	if started != nil {
		p.Started = FormatStarted(*started)
	}
	var w Worklog
	if err := c.do(ctx, "add worklog", "POST", worklogPath(issue), nil, p, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// GetWorklog fetches one worklog of issue.
func (c *Client) GetWorklog(ctx context.Context, issue, id string) (*Worklog, error) {
	var w Worklog
	err := c.do(ctx, "get worklog", "GET", worklogPath(issue)+"/"+url.PathEscape(id), nil, nil, &w)
	if IsNotFound(err) {
		return nil, fmt.Errorf("could not find worklog %s for issue %q: %w", id, issue, err)
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// UpdateWorklog changes the given fields of an existing worklog.
func (c *Client) UpdateWorklog(ctx context.Context, w *Worklog, upd WorklogUpdate) (*Worklog, error) {
	if upd.IsEmpty() {
		return nil, errors.New("at least one of <time> or <comment> fields needed to perform the update!")
	}
	p := worklogPayload{TimeSpentSeconds: upd.Seconds, Comment: upd.Comment}
	if upd.Started != nil {
		p.Started = FormatStarted(*upd.Started)
	}
	var updated Worklog
	path := worklogPath(w.IssueID) + "/" + url.PathEscape(w.ID)
	if err := c.do(ctx, "update worklog", "PUT", path, nil, p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// IssueWorklogs lists every worklog of an issue.
func (c *Client) IssueWorklogs(ctx context.Context, issue string) ([]Worklog, error) {
	var all []Worklog
	startAt := 0
	for {
		q := url.Values{
			"startAt":    {strconv.Itoa(startAt)},
			"maxResults": {strconv.Itoa(searchPageSize)},
		}
		var page worklogPage
		if err := c.do(ctx, "list worklogs", "GET", worklogPath(issue), q, nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Worklogs...)
		startAt += len(page.Worklogs)
		if len(page.Worklogs) == 0 || startAt >= page.Total {
			return all, nil
		}
	}
}

// Myself returns the authenticated user.
func (c *Client) Myself(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, "get user", "GET", "/rest/api/2/myself", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// IssuesWithWorklogsOn finds the project's issues with work logged on the
// day of date.
func (c *Client) IssuesWithWorklogsOn(ctx context.Context, projectKey string, date time.Time) ([]Issue, error) {
	jql := fmt.Sprintf("worklogDate = %q AND project = %q", date.Format("2006-01-02"), projectKey)
	return c.SearchIssues(ctx, jql, []string{"summary"})
}
