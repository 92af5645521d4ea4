package jira

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SprintQuery selects the sprint a command works on. A non-zero SprintID
// takes precedence over State.
type SprintQuery struct {
	State    string
	SprintID int
}

type boardPage struct {
	Values []Board `json:"values"`
}

type sprintPage struct {
	Values []Sprint `json:"values"`
}

// FindBoard returns the single board of the given project.
func (c *Client) FindBoard(ctx context.Context, projectKey string) (*Board, error) {
	var page boardPage
	q := url.Values{"projectKeyOrId": {projectKey}}
	if err := c.do(ctx, "find board", "GET", "/rest/agile/1.0/board", q, nil, &page); err != nil {
		return nil, err
	}
	switch len(page.Values) {
	case 0:
		return nil, fmt.Errorf("could not find any board matching %q", projectKey)
	case 1:
		return &page.Values[0], nil
	}
	names := make([]string, len(page.Values))
	for i, b := range page.Values {
		names[i] = b.DisplayName()
	}
	return nil, fmt.Errorf("found more than one board matching %q:\n%s", projectKey, strings.Join(names, ", "))
}

// FindSprints lists the board's sprints in the given state ("active",
// "closed", "future"; empty for all).
func (c *Client) FindSprints(ctx context.Context, board *Board, state string) ([]Sprint, error) {
	var page sprintPage
	q := url.Values{}
	if state != "" {
		q.Set("state", state)
	}
	path := "/rest/agile/1.0/board/" + strconv.Itoa(board.ID) + "/sprint"
	if err := c.do(ctx, "find sprints", "GET", path, q, nil, &page); err != nil {
		return nil, err
	}
	if len(page.Values) == 0 {
		return nil, fmt.Errorf("could not find any sprints for board %q", board.Name)
	}
	return page.Values, nil
}

// FindSprint fetches a sprint by id.
func (c *Client) FindSprint(ctx context.Context, id int) (*Sprint, error) {
	var s Sprint
	if err := c.do(ctx, "find sprint", "GET", "/rest/agile/1.0/sprint/"+strconv.Itoa(id), nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// CurrentSprint resolves q to a single sprint of the project's board.
func (c *Client) CurrentSprint(ctx context.Context, projectKey string, q SprintQuery) (*Sprint, error) {
	if q.SprintID != 0 {
		return c.FindSprint(ctx, q.SprintID)
	}
	state := q.State
	if state == "" {
		state = "active"
	}
	board, err := c.FindBoard(ctx, projectKey)
	if err != nil {
		return nil, err
	}
	sprints, err := c.FindSprints(ctx, board, state)
	if err != nil {
		return nil, err
	}
	if len(sprints) > 1 {
		var b strings.Builder
		for _, s := range sprints {
			fmt.Fprintf(&b, "\t - %s, id: %d\n", s.Name, s.ID)
		}
		return nil, fmt.Errorf("found more than one %s sprint:\n%suse --sprint-id to get an unambiguous result", state, b.String())
	}
	return &sprints[0], nil
}
