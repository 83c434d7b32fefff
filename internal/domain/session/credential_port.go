// internal/domain/session/credential_port.go
package session

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrInteractionRequired means silent acquisition failed and the user
	// must re-authenticate interactively. Not retryable by this layer.
	ErrInteractionRequired = errors.New("session: interaction required")

	// ErrAuthTransient means the provider or the network failed for a
	// recoverable reason; the triggering action may be retried by the user.
	ErrAuthTransient = errors.New("session: transient credential failure")
)

// Credential is a short-lived bearer credential for the API scope.
type Credential struct {
	AccessToken string
	ExpiresOn   time.Time
}

// Valid reports whether the credential carries a usable token.
func (c Credential) Valid() bool {
	return strings.TrimSpace(c.AccessToken) != ""
}

// CredentialSource yields a bearer credential for a signed-in principal.
//
// It must be invoked immediately before every network operation; whether a
// cached token is reused or refreshed is the provider's concern, not the
// caller's. All-or-nothing per call: no partial credentials.
type CredentialSource interface {
	Acquire(ctx context.Context, p Principal) (Credential, error)
}
