package jira

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is returned for transport failures and non-2xx responses.
type APIError struct {
	Op         string
	StatusCode int
	// Messages are the errorMessages and field errors Jira returned.
	Messages []string
	Err      error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("jira %s: %v", e.Op, e.Err)
	}
	msg := strings.Join(e.Messages, "; ")
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("jira %s: %s (status %d)", e.Op, msg, e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.Err }

// IsAuthError reports whether the server rejected the credentials.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether err is an APIError for a missing resource.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// errorBody is Jira's standard error envelope.
type errorBody struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}

func newAPIError(op string, status int, body []byte) *APIError {
	e := &APIError{Op: op, StatusCode: status}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		if text := strings.TrimSpace(string(body)); text != "" && len(text) < 512 {
			e.Messages = []string{text}
		}
		return e
	}
	e.Messages = append(e.Messages, eb.ErrorMessages...)
	fields := make([]string, 0, len(eb.Errors))
	for k := range eb.Errors {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	for _, k := range fields {
		e.Messages = append(e.Messages, k+": "+eb.Errors[k])
	}
	return e
}
