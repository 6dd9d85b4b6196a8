package hiveapi

import (
	"errors"
	"fmt"
	"strings"
)

// ErrReauthRequired means the stored credentials or refresh token are no
// longer accepted. Callers must not retry the session with the same
// credentials.
var ErrReauthRequired = errors.New("hive: re-authentication required")

// ErrNoSession means an operation was attempted before StartSession.
var ErrNoSession = errors.New("hive: no active session")

// HTTPStatusError is returned for any non-2xx API response that is not an
// authentication failure.
type HTTPStatusError struct {
	Status int
	Body   string
}

func (e HTTPStatusError) Error() string {
	return fmt.Sprintf("hive api error %d: %s", e.Status, strings.TrimSpace(e.Body))
}

// IsRetryable reports whether err is worth retrying with the same
// credentials. Authentication failures are terminal, everything else
// (transport errors, 5xx, timeouts) is transient.
func IsRetryable(err error) bool {
	return err != nil && !errors.Is(err, ErrReauthRequired)
}
