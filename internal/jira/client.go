package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// AuthMethod selects how requests are authenticated.
type AuthMethod string

const (
	// AuthBasic sends the account email and an API token (Jira Cloud).
	AuthBasic AuthMethod = "basic"
	// AuthBearer sends a personal access token (Jira Data Center).
	AuthBearer AuthMethod = "bearer"
)

// ParseAuthMethod maps a config value to an AuthMethod; empty means basic.
func ParseAuthMethod(s string) (AuthMethod, error) {
	switch AuthMethod(strings.ToLower(strings.TrimSpace(s))) {
	case "", AuthBasic:
		return AuthBasic, nil
	case AuthBearer:
		return AuthBearer, nil
	}
	return "", fmt.Errorf("unknown auth method %q (want %q or %q)", s, AuthBasic, AuthBearer)
}

// Options configures a Client.
type Options struct {
	// Server is a host name ("acme.atlassian.net") or a full base URL.
	Server string
	Email  string
	Token  string
	Auth   AuthMethod
	// HTTPClient is the base client; nil uses a client with a 30s timeout.
	HTTPClient *http.Client
	// Logger receives request traces at debug level; nil discards them.
	Logger *slog.Logger
}

// Client is an authenticated Jira REST client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client for the given options.
func NewClient(ctx context.Context, opts Options) *Client {
	base := opts.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: 30 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var hc *http.Client
	switch opts.Auth {
	case AuthBearer:
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: opts.Token,
			TokenType:   "Bearer",
		}))
	default:
		transport := base.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}
		hc = &http.Client{
			Timeout:   base.Timeout,
			Transport: &basicAuthTransport{email: opts.Email, token: opts.Token, base: transport},
		}
	}

	return &Client{
		baseURL:    BaseURL(opts.Server),
		httpClient: hc,
		log:        logger,
	}
}

// BaseURL turns a configured server value into an https base URL without
// a trailing slash. Values that already carry a scheme are kept.
func BaseURL(server string) string {
	server = strings.TrimRight(strings.TrimSpace(server), "/")
	if strings.HasPrefix(server, "http://") || strings.HasPrefix(server, "https://") {
		return server
	}
	return "https://" + server
}

// basicAuthTransport adds HTTP basic credentials to every request.
type basicAuthTransport struct {
	email string
	token string
	base  http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.SetBasicAuth(t.email, t.token)
	return t.base.RoundTrip(r)
}

// do sends a JSON request and decodes a JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Op: op, Err: err}
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	c.log.Debug("jira request", "op", op, "method", method, "url", endpoint,
		"status", resp.StatusCode, "elapsed", time.Since(started))
	if err != nil {
		return fmt.Errorf("reading %s response body: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(op, resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", op, err)
	}
	return nil
}
