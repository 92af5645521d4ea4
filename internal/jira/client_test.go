package jira

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, auth AuthMethod, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(context.Background(), Options{
		Server:     srv.URL,
		Email:      "dev@example.com",
		Token:      "secret",
		Auth:       auth,
		HTTPClient: srv.Client(),
	})
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "https://acme.atlassian.net", BaseURL("acme.atlassian.net"))
	assert.Equal(t, "https://acme.atlassian.net", BaseURL(" acme.atlassian.net/ "))
	assert.Equal(t, "http://localhost:8080", BaseURL("http://localhost:8080/"))
}

func TestParseAuthMethod(t *testing.T) {
	m, err := ParseAuthMethod("")
	require.NoError(t, err)
	assert.Equal(t, AuthBasic, m)

	m, err = ParseAuthMethod("Bearer")
	require.NoError(t, err)
	assert.Equal(t, AuthBearer, m)

	_, err = ParseAuthMethod("oauth")
	assert.Error(t, err)
}

func TestBasicAuth(t *testing.T) {
	c := newTestClient(t, AuthBasic, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "dev@example.com", user)
		assert.Equal(t, "secret", pass)
		writeJSON(t, w, User{AccountID: "abc", DisplayName: "Dev"})
	})

	u, err := c.Myself(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", u.AccountID)
}

func TestBearerAuth(t *testing.T) {
	c := newTestClient(t, AuthBearer, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "/rest/api/2/myself", r.URL.Path)
		writeJSON(t, w, User{Name: "dev"})
	})

	u, err := c.Myself(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dev", u.Name)
}

func TestAPIErrorSurfacesJiraMessages(t *testing.T) {
	c := newTestClient(t, AuthBasic, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"errorMessages":["Issue does not exist"],"errors":{"timeSpent":"invalid"}}`)
	})

	_, err := c.Myself(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, []string{"Issue does not exist", "timeSpent: invalid"}, apiErr.Messages)
	assert.Contains(t, err.Error(), "Issue does not exist")
	assert.False(t, apiErr.IsAuthError())
}

func TestAPIErrorPlainBody(t *testing.T) {
	c := newTestClient(t, AuthBasic, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, "Unauthorized")
	})

	_, err := c.Myself(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsAuthError())
	assert.Equal(t, []string{"Unauthorized"}, apiErr.Messages)
}

func TestCurrentSprint(t *testing.T) {
	c := newTestClient(t, AuthBasic, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/agile/1.0/board":
			assert.Equal(t, "PRJ", r.URL.Query().Get("projectKeyOrId"))
			writeJSON(t, w, boardPage{Values: []Board{{ID: 7, Name: "PRJ board"}}})
		case "/rest/agile/1.0/board/7/sprint":
			assert.Equal(t, "active", r.URL.Query().Get("state"))
			writeJSON(t, w, sprintPage{Values: []Sprint{{ID: 42, Name: "Sprint 42", State: "active"}}})
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
		}
	})

	s, err := c.CurrentSprint(context.Background(), "PRJ", SprintQuery{})
	require.NoError(t, err)
	assert.Equal(t, 42, s.ID)
}

func TestCurrentSprintByID(t *testing.T) {
	c := newTestClient(t, AuthBasic, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/agile/1.0/sprint/9", r.URL.Path)
		writeJSON(t, w, Sprint{ID: 9, Name: "Old"})
	})

	s, err := c.CurrentSprint(context.Background(), "PRJ", SprintQuery{State: "closed", SprintID: 9})
	require.NoError(t, err)
	assert.Equal(t, "Old", s.Name)
}

func TestCurrentSprintAmbiguous(t *testing.T) {
	c := newTestClient(t, AuthBasic, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/agile/1.0/board":
			writeJSON(t, w, boardPage{Values: []Board{{ID: 7}}})
		default:
			writeJSON(t, w, sprintPage{Values: []Sprint{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}})
		}
	})

	_, err := c.CurrentSprint(context.Background(), "PRJ", SprintQuery{State: "closed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found more than one closed sprint")
	assert.Contains(t, err.Error(), "B, id: 2")
	assert.Contains(t, err.Error(), "--sprint-id")
}

func TestFindBoardErrors(t *testing.T) {
	boards := []Board{}
	c := newTestClient(t, AuthBasic, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, boardPage{Values: boards})
	})

	_, err := c.FindBoard(context.Background(), "PRJ")
	assert.EqualError(t, err, `could not find any board matching "PRJ"`)

	boards = []Board{{ID: 1, Name: "one"}, {ID: 2, Name: "two"}}
	_, err = c.FindBoard(context.Background(), "PRJ")
	assert.EqualError(t, err, "found more than one board matching \"PRJ\":\none, two")
}

func TestFindSprintsEmpty(t *testing.T) {
	c := newTestClient(t, AuthBasic, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, sprintPage{})
	})

	_, err := c.FindSprints(context.Background(), &Board{ID: 3, Name: "PRJ board"}, "future")
	assert.EqualError(t, err, `could not find any sprints for board "PRJ board"`)
}

func TestSearchIssuesPaginates(t *testing.T) {
	var calls int
	c := newTestClient(t, AuthBasic, func(w http.ResponseWriter, r *http.Request) {
		calls++
		q := r.URL.Query()
		assert.Equal(t, "sprint = 42", q.Get("jql"))
		assert.Equal(t, "status,summary,timespent,timeestimate,timetracking", q.Get("fields"))
		start, _ := strconv.Atoi(q.Get("startAt"))
		var page searchPage
		page.Total = 3
		page.StartAt = start
		if start == 0 {
			page.Issues = []Issue{{Key: "PRJ-1"}, {Key: "PRJ-2"}}
		} else {
			page.Issues = []Issue{{Key: "PRJ-3"}}
		}
		writeJSON(t, w, page)
	})

	issues, err := c.SprintIssues(context.Background(), &Sprint{ID: 42})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, issues, 3)
	assert.Equal(t, "PRJ-3", issues[2].Key)
}

func TestCreateWorklog(t *testing.T) {
	started := time.Date(2023, 11, 20, 7, 30, 0, 0, time.UTC)
	c := newTestClient(t, AuthBasic, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/api/2/issue/PRJ-7/worklog", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 5400, body["timeSpentSeconds"])
		assert.Equal(t, "review", body["comment"])
		assert.Equal(t, "2023-11-20T07:30:00.000+0000", body["started"])
		writeJSON(t, w, Worklog{ID: "100", IssueID: "10007", TimeSpentSeconds: 5400})
	})

	comment := "review"
	wl, err := c.CreateWorklog(context.Background(), "PRJ-7", 5400, &comment, &started)
	require.NoError(t, err)
	assert.Equal(t, "100", wl.ID)
}

func TestCreateWorklogOmitsAbsentFields(t *testing.T) {
	c := newTestClient(t, AuthBasic, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "comment")
		assert.NotContains(t, body, "started")
		writeJSON(t, w, Worklog{ID: "101"})
	})

	_, err := c.CreateWorklog(context.Background(), "PRJ-7", 600, nil, nil)
	require.NoError(t, err)
}

func TestCreateWorklogTooShort(t *testing.T) {
	c := newTestClient(t, AuthBasic, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := c.CreateWorklog(context.Background(), "PRJ-7", 240, nil, nil)
	assert.EqualError(t, err, "240 seconds is too low to log")
}

func TestGetAndUpdateWorklog(t *testing.T) {
	c := newTestClient(t, AuthBasic, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "/rest/api/2/issue/PRJ-7/worklog/100", r.URL.Path)
			writeJSON(t, w, Worklog{ID: "100", IssueID: "10007", Comment: "old"})
		case http.MethodPut:
			assert.Equal(t, "/rest/api/2/issue/10007/worklog/100", r.URL.Path)
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]any{"comment": "new"}, body)
			writeJSON(t, w, Worklog{ID: "100", IssueID: "10007", Comment: "new"})
		}
	})

	wl, err := c.GetWorklog(context.Background(), "PRJ-7", "100")
	require.NoError(t, err)

	comment := "new"
	updated, err := c.UpdateWorklog(context.Background(), wl, WorklogUpdate{Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Comment)
}

func TestGetWorklogNotFound(t *testing.T) {
	c := newTestClient(t, AuthBasic, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := c.GetWorklog(context.Background(), "PRJ-7", "999")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), `could not find worklog 999 for issue "PRJ-7"`)
}

func TestUpdateWorklogRequiresFields(t *testing.T) {
	c := newTestClient(t, AuthBasic, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := c.UpdateWorklog(context.Background(), &Worklog{ID: "1"}, WorklogUpdate{})
	assert.EqualError(t, err, "at least one of <time> or <comment> fields needed to perform the update!")
}

func TestIssueWorklogsPaginates(t *testing.T) {
	c := newTestClient(t, AuthBasic, func(w http.ResponseWriter, r *http.Request) {
		start, _ := strconv.Atoi(r.URL.Query().Get("startAt"))
		page := worklogPage{Total: 2, StartAt: start}
		page.Worklogs = []Worklog{{ID: strconv.Itoa(start + 1)}}
		writeJSON(t, w, page)
	})

	logs, err := c.IssueWorklogs(context.Background(), "PRJ-7")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "2", logs[1].ID)
}

func TestWorklogStartedAt(t *testing.T) {
	w := Worklog{ID: "1", Started: "2023-11-20T08:30:00.000+0100"}
	got, err := w.StartedAt()
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2023, 11, 20, 7, 30, 0, 0, time.UTC)))

	_, err = Worklog{Started: "yesterday"}.StartedAt()
	assert.Error(t, err)
}

func TestUserSame(t *testing.T) {
	assert.True(t, User{AccountID: "a"}.Same(User{AccountID: "a", Name: "x"}))
	assert.False(t, User{AccountID: "a"}.Same(User{Name: "a"}))
	assert.True(t, User{Name: "dev"}.Same(User{Name: "dev"}))
	assert.False(t, User{}.Same(User{}))
}
