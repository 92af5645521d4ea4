package worklog

import "errors"

// ParameterError reports a single flag value that fails its grammar or a
// range/ordering check. Message is shown to the user verbatim.
type ParameterError struct {
	// Param is the flag the value came from, e.g. "--time". May be empty
	// when the check spans two flags.
	Param   string
	Message string
}

func (e *ParameterError) Error() string { return e.Message }

// UsageError reports a combination of present/absent flags that makes the
// request meaningless.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

func badParameter(param, msg string) *ParameterError {
	return &ParameterError{Param: param, Message: msg}
}

// IsUsageError reports whether err is, or wraps, a *UsageError.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}
