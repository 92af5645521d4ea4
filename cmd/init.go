package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-jira-logger/internal/config"
	"github.com/Tiliavir/trivial-jira-logger/internal/jira"
	"github.com/Tiliavir/trivial-jira-logger/internal/keyring"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up the Jira connection interactively",
	Long: `init asks for the Jira server, authentication, account email (basic auth
only), project key and token, writes them to an env file and stores the
token in the system keychain under the email, or under the server for
bearer tokens.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := rootFile
	if path == "" {
		path = config.DefaultPath()
	}

	// Existing values, if any, prefill the prompts.
	cfg := config.Config{Auth: string(jira.AuthBasic)}
	if existing, err := loadConfig(); existing != nil {
		cfg = *existing
	} else if err != nil && !config.IsMissing(err) {
		fmt.Fprintf(os.Stderr, "Warning: ignoring existing configuration: %v\n", err)
	}
	if cfg.Auth == "" {
		cfg.Auth = string(jira.AuthBasic)
	}

	fmt.Println()
	fmt.Println("  Let's connect tjl to Jira.")
	fmt.Println()

	connection := []huh.Field{
		huh.NewInput().
			Title("Jira server:").
			Placeholder("acme.atlassian.net").
			Validate(required("server")).
			Value(&cfg.Server),
		huh.NewSelect[string]().
			Title("Authentication:").
			Options(
				huh.NewOption("Email and API token (Jira Cloud)", string(jira.AuthBasic)),
				huh.NewOption("Personal access token (Data Center)", string(jira.AuthBearer)),
			).
			Value(&cfg.Auth),
	}
	if err := runFields(connection); err != nil {
		return err
	}

	var account []huh.Field
	if cfg.Auth == string(jira.AuthBasic) {
		account = append(account, huh.NewInput().
			Title("Account email:").
			Placeholder("you@example.com").
			Validate(required("email")).
			Value(&cfg.Email))
	} else {
		cfg.Email = ""
	}
	account = append(account,
		huh.NewInput().
			Title("Project key:").
			Placeholder("PRJ").
			Validate(required("project key")).
			Value(&cfg.ProjectKey),
		huh.NewInput().
			Title("API token:").
			EchoMode(huh.EchoModePassword).
			Validate(required("token")).
			Value(&cfg.Token),
	)
	if err := runFields(account); err != nil {
		return err
	}
	cfg.ProjectKey = strings.ToUpper(strings.TrimSpace(cfg.ProjectKey))

	inKeychain := true
	if err := keyring.Set(cfg.KeyringAccount(), cfg.Token); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not store token in keychain, writing it to %s: %v\n", path, err)
		inKeychain = false
	}
	if err := config.Write(path, cfg, !inKeychain); err != nil {
		return err
	}
	fmt.Printf("Configuration written to %s\n", path)
	return nil
}

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", what)
		}
		return nil
	}
}

func runFields(fields []huh.Field) error {
	for _, f := range fields {
		if err := runField(f); err != nil {
			return err
		}
	}
	return nil
}

// runField wraps a single huh field in a form that supports
// Ctrl+C and Ctrl+D for quitting.
func runField(field huh.Field) error {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"))

	t := huh.ThemeBase()
	t.Focused.Base = t.Focused.Base.MarginBottom(1)
	t.Blurred.Base = t.Blurred.Base.MarginBottom(1)

	return huh.NewForm(huh.NewGroup(field)).
		WithShowHelp(false).
		WithKeyMap(km).
		WithTheme(t).
		Run()
}
