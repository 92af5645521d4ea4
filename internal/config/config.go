package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys of the env file and of the environment.
const (
	KeyServer     = "JIRA_SERVER"
	KeyEmail      = "JIRA_EMAIL"
	KeyToken      = "JIRA_TOKEN"
	KeyProjectKey = "JIRA_PROJECT_KEY"
	KeyAuth       = "JIRA_AUTH"
)

// flagNames maps config keys to the root command's flags that override them.
var flagNames = map[string]string{
	KeyServer:     "server",
	KeyEmail:      "email",
	KeyToken:      "token",
	KeyProjectKey: "key",
	KeyAuth:       "auth",
}

// Config is the resolved Jira connection configuration.
type Config struct {
	Server     string
	Email      string
	Token      string
	ProjectKey string
	// Auth is "basic" (default) or "bearer".
	Auth string
	// File is the env file values were read from, empty if none.
	File string
}

// Options controls where Load looks for values.
type Options struct {
	// File is an explicit env file; when set the search paths are skipped.
	File string
	// Flags holds the root flags named in flagNames. May be nil.
	Flags *pflag.FlagSet
	// TokenLookup is asked for the token of Config.KeyringAccount when no
	// other source has one.
	TokenLookup func(account string) (string, error)
}

// searchPaths returns the env file candidates in lookup order.
// Exported as a var for testing.
var searchPaths = defaultSearchPaths

func defaultSearchPaths() []string {
	home, _ := os.UserHomeDir()
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = home
	}
	return []string{
		filepath.Join(configHome, "tjl", "env"),
		filepath.Join(configHome, ".tjl"),
		filepath.Join(home, ".config", "tjl", "env"),
		filepath.Join(home, ".config", ".tjl"),
	}
}

// SearchPaths lists the files Load tries when no file is given.
func SearchPaths() []string {
	return searchPaths()
}

// DefaultPath is where init writes the env file.
func DefaultPath() string {
	return searchPaths()[2]
}

// Load resolves the configuration. Values come from the env file, are
// overridden by environment variables, which in turn are overridden by
// explicitly set flags. A missing token is looked up with TokenLookup.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	v.SetConfigType("env")
	v.AutomaticEnv()

	file := opts.File
	if file == "" {
		for _, p := range searchPaths() {
			if _, err := os.Stat(p); err == nil {
				file = p
				break
			}
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	if opts.Flags != nil {
		for key, name := range flagNames {
			f := opts.Flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	cfg := &Config{
		Server:     strings.TrimSpace(v.GetString(KeyServer)),
		Email:      strings.TrimSpace(v.GetString(KeyEmail)),
		Token:      strings.TrimSpace(v.GetString(KeyToken)),
		ProjectKey: strings.TrimSpace(v.GetString(KeyProjectKey)),
		Auth:       strings.ToLower(strings.TrimSpace(v.GetString(KeyAuth))),
		File:       file,
	}
	if account := cfg.KeyringAccount(); cfg.Token == "" && account != "" && opts.TokenLookup != nil {
		// Keychain failures leave the token missing; Validate reports it.
		if token, err := opts.TokenLookup(account); err == nil {
			cfg.Token = token
		}
	}
	return cfg, cfg.Validate()
}

// KeyringAccount names the keychain entry holding the token: the email,
// or the server when there is none (bearer tokens).
func (c *Config) KeyringAccount() string {
	if c.Email != "" {
		return c.Email
	}
	return c.Server
}

// Validate reports every required key without a value.
func (c *Config) Validate() error {
	var missing []string
	if c.Server == "" {
		missing = append(missing, KeyServer)
	}
	if c.Email == "" && c.Auth != "bearer" {
		missing = append(missing, KeyEmail)
	}
	if c.Token == "" {
		missing = append(missing, KeyToken)
	}
	if c.ProjectKey == "" {
		missing = append(missing, KeyProjectKey)
	}
	if len(missing) > 0 {
		return &MissingError{Keys: missing}
	}
	return nil
}

// MissingError lists required configuration keys without a value.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return "could not find required config values: " + strings.Join(e.Keys, ", ")
}

// IsMissing reports whether err is a MissingError.
func IsMissing(err error) bool {
	var m *MissingError
	return errors.As(err, &m)
}

// envTemplate is the annotated env file written by init.
const envTemplate = `# tjl configuration
#
# Values set here can be overridden with environment variables of the same
# name, or with the matching tjl flags (--server, --email, --token, --key,
# --auth).

# Jira host, e.g. acme.atlassian.net, or a full https:// URL.
JIRA_SERVER=%q

# Account email; together with the token it is used for basic auth.
JIRA_EMAIL=%q

# Key of the project whose board and sprints tjl works with, e.g. PRJ.
JIRA_PROJECT_KEY=%q

# "basic" for Jira Cloud API tokens, "bearer" for Data Center personal
# access tokens.
JIRA_AUTH=%q
`

// Write stores cfg as an annotated env file at path. The token is written
// only when includeToken is set; otherwise it is expected in the keychain.
func Write(path string, cfg Config, includeToken bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	auth := cfg.Auth
	if auth == "" {
		auth = "basic"
	}
	data := fmt.Sprintf(envTemplate, cfg.Server, cfg.Email, cfg.ProjectKey, auth)
	if includeToken {
		data += fmt.Sprintf("\n# API token. Prefer the system keychain (tjl init) over this file.\nJIRA_TOKEN=%q\n", cfg.Token)
	}
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
