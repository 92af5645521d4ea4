package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-jira-logger/internal/config"
	"github.com/Tiliavir/trivial-jira-logger/internal/jira"
	"github.com/Tiliavir/trivial-jira-logger/internal/keyring"
	"github.com/Tiliavir/trivial-jira-logger/internal/render"
	"github.com/Tiliavir/trivial-jira-logger/internal/worklog"
)

var (
	rootFile    string
	rootNoColor bool
	rootDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "tjl",
	Short: "Trivial Jira Logger – log work to Jira from the command line",
	Long: `tjl logs time spent on Jira issues, lists sprint issues and reports
what you logged on a day.

Connection settings (JIRA_SERVER, JIRA_EMAIL, JIRA_TOKEN, JIRA_PROJECT_KEY,
JIRA_AUTH) are read from an env file, the environment and the flags below,
in increasing order of precedence. Run "tjl init" to create the env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(os.Stderr, err))
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFile, "file", "", "env file with the JIRA_* settings")
	pf.StringP("key", "k", "", "Jira project key (JIRA_PROJECT_KEY)")
	pf.String("token", "", "Jira API token (JIRA_TOKEN)")
	pf.StringP("email", "m", "", "Jira account email (JIRA_EMAIL)")
	pf.String("server", "", "Jira server, e.g. acme.atlassian.net (JIRA_SERVER)")
	pf.String("auth", "", "authentication: basic or bearer (JIRA_AUTH)")
	pf.BoolVar(&rootNoColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&rootDebug, "debug", false, "Trace Jira requests on stderr")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &worklog.UsageError{Message: err.Error()}
	})

	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(initCmd)
}

// exitCode prints err and maps it to the process exit status: 0 for
// success or an aborted prompt, 2 for usage errors, 1 otherwise.
func exitCode(w io.Writer, err error) int {
	if err == nil || isUserAbort(err) {
		return 0
	}
	var pe *worklog.ParameterError
	if errors.As(err, &pe) && pe.Param != "" {
		fmt.Fprintf(w, "Error: Invalid value for '%s': %s\n", pe.Param, pe.Message)
		return 2
	}
	fmt.Fprintf(w, "Error: %s\n", err)
	if hint := errorHint(err); hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
	if pe != nil || worklog.IsUsageError(err) {
		return 2
	}
	return 1
}

// errorHint suggests how to fix configuration and credential errors.
func errorHint(err error) string {
	if config.IsMissing(err) {
		return `run "tjl init", or set the values in one of ` + strings.Join(config.SearchPaths(), ", ")
	}
	var apiErr *jira.APIError
	if errors.As(err, &apiErr) && apiErr.IsAuthError() {
		return "Jira rejected the credentials; check JIRA_EMAIL, JIRA_TOKEN and JIRA_AUTH"
	}
	return ""
}

// isUserAbort reports whether the user quit an interactive prompt.
func isUserAbort(err error) bool {
	return errors.Is(err, huh.ErrUserAborted)
}

// usageArgs marks positional argument errors as usage errors.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return &worklog.UsageError{Message: err.Error()}
		}
		return nil
	}
}

func newLogger() *slog.Logger {
	if !rootDebug {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// loadConfig resolves the connection settings from the env file, the
// environment, the root flags and the keychain.
func loadConfig() (*config.Config, error) {
	return config.Load(config.Options{
		File:        rootFile,
		Flags:       rootCmd.PersistentFlags(),
		TokenLookup: keyring.Get,
	})
}

// newClient loads the configuration and connects a Jira client.
func newClient(ctx context.Context) (*jira.Client, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	auth, err := jira.ParseAuthMethod(cfg.Auth)
	if err != nil {
		return nil, nil, &worklog.UsageError{Message: err.Error()}
	}
	logger := newLogger()
	if logger != nil {
		logger.Debug("config resolved", "file", cfg.File, "server", cfg.Server, "auth", auth)
	}
	client := jira.NewClient(ctx, jira.Options{
		Server: cfg.Server,
		Email:  cfg.Email,
		Token:  cfg.Token,
		Auth:   auth,
		Logger: logger,
	})
	return client, cfg, nil
}

// renderOptions builds the output options for a --format value.
func renderOptions(format string) (render.Options, error) {
	f, err := render.ParseFormat(format)
	if err != nil {
		return render.Options{}, &worklog.UsageError{Message: err.Error()}
	}
	return render.Options{
		Format: f,
		Color:  !rootNoColor && os.Getenv("NO_COLOR") == "",
	}, nil
}
