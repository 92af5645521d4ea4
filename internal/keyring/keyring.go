package keyring

import (
	"errors"

	gokeyring "github.com/zalando/go-keyring"
)

// ErrNotFound is returned when no token is stored for an account.
var ErrNotFound = gokeyring.ErrNotFound

const serviceName = "trivial-jira-logger"

// IsNotFound reports whether err indicates a missing keyring entry.
func IsNotFound(err error) bool {
	return errors.Is(err, gokeyring.ErrNotFound)
}

// Get retrieves the Jira token stored for account from the system keychain.
func Get(account string) (string, error) {
	return gokeyring.Get(serviceName, account)
}

// Set stores the Jira token for account in the system keychain.
func Set(account, token string) error {
	return gokeyring.Set(serviceName, account, token)
}

// Delete removes the token stored for account.
func Delete(account string) error {
	return gokeyring.Delete(serviceName, account)
}
