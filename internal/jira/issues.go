package jira

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SprintIssueFields are requested for sprint listings and issue lookup.
var SprintIssueFields = []string{"status", "summary", "timespent", "timeestimate", "timetracking"}

const searchPageSize = 50

type searchPage struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

// SearchIssues runs a JQL query and follows pagination until every match
// is loaded.
func (c *Client) SearchIssues(ctx context.Context, jql string, fields []string) ([]Issue, error) {
	var all []Issue
	startAt := 0
	for {
		q := url.Values{
			"jql":        {jql},
			"startAt":    {strconv.Itoa(startAt)},
			"maxResults": {strconv.Itoa(searchPageSize)},
		}
		if len(fields) > 0 {
			q.Set("fields", strings.Join(fields, ","))
		}
		var page searchPage
		if err := c.do(ctx, "search issues", "GET", "/rest/api/2/search", q, nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Issues...)
		startAt += len(page.Issues)
		if len(page.Issues) == 0 || startAt >= page.Total {
			return all, nil
		}
	}
}

// SprintIssues lists the issues of a sprint.
func (c *Client) SprintIssues(ctx context.Context, sprint *Sprint) ([]Issue, error) {
	issues, err := c.SearchIssues(ctx, fmt.Sprintf("sprint = %d", sprint.ID), SprintIssueFields)
	if err != nil {
		return nil, err
	}
	if len(issues) == 0 {
		return nil, fmt.Errorf("could not find any issues for sprint %q", sprint.Name)
	}
	return issues, nil
}

// SprintIssueLister is the part of Client that ResolveIssue needs.
type SprintIssueLister interface {
	CurrentSprint(ctx context.Context, projectKey string, q SprintQuery) (*Sprint, error)
	SprintIssues(ctx context.Context, sprint *Sprint) ([]Issue, error)
}

// ResolveIssue turns the ISSUE argument into an issue key. A bare number
// is prefixed with the project key; anything else is matched against the
// summaries of the current sprint's issues.
func ResolveIssue(ctx context.Context, l SprintIssueLister, projectKey, query string, q SprintQuery) (string, error) {
	if isDigits(query) {
		return projectKey + "-" + query, nil
	}
	sprint, err := l.CurrentSprint(ctx, projectKey, q)
	if err != nil {
		return "", err
	}
	issues, err := l.SprintIssues(ctx, sprint)
	if err != nil {
		return "", err
	}
	issue, err := MatchIssue(issues, query)
	if err != nil {
		return "", err
	}
	return issue.Key, nil
}

// MatchIssue returns the only issue whose summary contains query,
// ignoring case.
func MatchIssue(issues []Issue, query string) (*Issue, error) {
	needle := strings.ToLower(query)
	var candidates []*Issue
	for i := range issues {
		if strings.Contains(strings.ToLower(issues[i].Fields.Summary), needle) {
			candidates = append(candidates, &issues[i])
		}
	}
	switch len(candidates) {
	case 0:
		return nil, errors.New("could not find any matching issues")
	case 1:
		return candidates[0], nil
	}
	lines := make([]string, len(candidates))
	for i, c := range candidates {
		lines[i] = fmt.Sprintf(" * %s: %s", c.Key, c.Fields.Summary)
	}
	return nil, fmt.Errorf("found more than one matching issue:\n%s", strings.Join(lines, "\n"))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
