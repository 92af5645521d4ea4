package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/trivial-jira-logger/internal/config"
	"github.com/Tiliavir/trivial-jira-logger/internal/jira"
	"github.com/Tiliavir/trivial-jira-logger/internal/render"
	"github.com/Tiliavir/trivial-jira-logger/internal/worklog"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		out  string
	}{
		{"nil", nil, 0, ""},
		{"abort", fmt.Errorf("prompt: %w", huh.ErrUserAborted), 0, ""},
		{"parameter", &worklog.ParameterError{Param: "--time", Message: "bad"}, 2, "Error: Invalid value for '--time': bad\n"},
		{"interval", &worklog.ParameterError{Message: "start time cannot be later than end time"}, 2, "Error: start time cannot be later than end time\n"},
		{"usage", &worklog.UsageError{Message: "need --time"}, 2, "Error: need --time\n"},
		{"runtime", errors.New("jira get user: Unauthorized (status 401)"), 1, "Error: jira get user: Unauthorized (status 401)\n"},
		{"abort text without sentinel", errors.New("send: user aborted upload"), 1, "Error: send: user aborted upload\n"},
		{"credentials", &jira.APIError{Op: "get user", StatusCode: 401}, 1,
			"Error: jira get user: Unauthorized (status 401)\nHint: Jira rejected the credentials; check JIRA_EMAIL, JIRA_TOKEN and JIRA_AUTH\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, tt.code, exitCode(&buf, tt.err))
			assert.Equal(t, tt.out, buf.String())
		})
	}
}

func TestExitCodeMissingConfigHint(t *testing.T) {
	var buf bytes.Buffer
	code := exitCode(&buf, &config.MissingError{Keys: []string{config.KeyServer}})
	assert.Equal(t, 1, code)

	out := buf.String()
	assert.Contains(t, out, "Error: could not find required config values: JIRA_SERVER\n")
	assert.Contains(t, out, `Hint: run "tjl init", or set the values in one of `)
	for _, p := range config.SearchPaths() {
		assert.Contains(t, out, p)
	}
}

func TestUsageArgs(t *testing.T) {
	check := usageArgs(cobra.ExactArgs(1))
	assert.NoError(t, check(&cobra.Command{}, []string{"12"}))
	err := check(&cobra.Command{}, nil)
	assert.True(t, worklog.IsUsageError(err))
}

func TestRenderOptions(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	rootNoColor = true
	t.Cleanup(func() { rootNoColor = false })

	opts, err := renderOptions("csv")
	require.NoError(t, err)
	assert.Equal(t, render.Options{Format: render.FormatCSV}, opts)

	_, err = renderOptions("xml")
	assert.True(t, worklog.IsUsageError(err))
}

func TestDescribeUpdate(t *testing.T) {
	seconds := int64(5400)
	comment := "review"
	date := time.Date(2023, 11, 20, 9, 30, 0, 0, time.Local)

	assert.Equal(t, "updated worklog 7 in PRJ-1: time spent 1h 30m; comment \"review\"; started 2023-11-20 09:30",
		describeUpdate("PRJ-1", "7", worklog.LogRequest{Seconds: &seconds, Comment: &comment, Date: &date}))
	assert.Equal(t, `updated worklog 7 in PRJ-1: comment ""`,
		describeUpdate("PRJ-1", "7", worklog.LogRequest{Comment: new(string)}))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2023, 11, 20, 0, 5, 0, 0, time.Local)
	assert.True(t, sameDay(a, a.Add(20*time.Hour)))
	assert.False(t, sameDay(a, a.Add(-10*time.Minute)))
}

func TestRequired(t *testing.T) {
	v := required("server")
	assert.EqualError(t, v("  "), "server cannot be empty")
	assert.NoError(t, v("acme.atlassian.net"))
}

func TestLogRejectsInvalidTimeBeforeConnecting(t *testing.T) {
	t.Cleanup(func() { logTime = "" })
	rootCmd.SetArgs([]string{"log", "12", "-t", "9h 1m"})
	err := rootCmd.Execute()

	var pe *worklog.ParameterError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "--time", pe.Param)
}

func TestLogRequiresIssue(t *testing.T) {
	rootCmd.SetArgs([]string{"log"})
	err := rootCmd.Execute()
	assert.True(t, worklog.IsUsageError(err))
}

func TestLsRejectsUnknownState(t *testing.T) {
	t.Cleanup(func() { lsState = "active" })
	rootCmd.SetArgs([]string{"ls", "-s", "done"})
	err := rootCmd.Execute()

	var pe *worklog.ParameterError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "--state", pe.Param)
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	rootCmd.SetArgs([]string{"report", "--nope"})
	err := rootCmd.Execute()
	assert.True(t, worklog.IsUsageError(err))
}
