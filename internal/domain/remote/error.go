// internal/domain/remote/error.go
package remote

import (
	"fmt"
	"strings"
)

// Error is a structured rejection from the backend: a non-2xx response whose
// body carried (or should have carried) a {"detail": string} payload.
// Transport-level failures are ordinary errors, never *Error.
type Error struct {
	Status     int
	StatusText string
	Detail     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("remote: status=%d detail=%s", e.Status, e.Message())
}

// Message returns the server-provided detail verbatim, falling back to the
// transport status text when no parseable detail was present.
func (e *Error) Message() string {
	if d := strings.TrimSpace(e.Detail); d != "" {
		return d
	}
	if t := strings.TrimSpace(e.StatusText); t != "" {
		return t
	}
	return fmt.Sprintf("status %d", e.Status)
}
