// internal/domain/session/entity.go
package session

import (
	"errors"
	"strings"
	"time"

	prefdom "stockroom/internal/domain/preferences"
)

var (
	ErrInvalidPrincipal = errors.New("session: invalid principal")
	ErrNoSession        = errors.New("session: no active session")
)

// Principal is the authenticated identity driving all owner-scoped operations.
// Immutable for the session; replaced wholesale on sign-in/sign-out.
type Principal struct {
	// Email is the stable owner key attached to every owner-scoped request.
	Email string

	// DisplayName is informational only (CLI banner etc).
	DisplayName string

	// HomeAccountID is the provider-side account handle used for silent
	// credential acquisition. Opaque to everything but the credential adapter.
	HomeAccountID string
}

// NewPrincipal normalizes and validates an identity.
func NewPrincipal(email, displayName, homeAccountID string) (Principal, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	if e == "" || !strings.Contains(e, "@") {
		return Principal{}, ErrInvalidPrincipal
	}
	return Principal{
		Email:         e,
		DisplayName:   strings.TrimSpace(displayName),
		HomeAccountID: strings.TrimSpace(homeAccountID),
	}, nil
}

// Session is the explicit per-sign-in context object. It is created on
// sign-in, torn down on sign-out, and passed to the orchestration layer;
// nothing here is ambient global state.
type Session struct {
	Principal   Principal
	Preferences prefdom.Preferences
	SignedInAt  time.Time
}

// NewSession opens a session for a validated principal.
func NewSession(p Principal, now time.Time) (*Session, error) {
	if strings.TrimSpace(p.Email) == "" {
		return nil, ErrInvalidPrincipal
	}
	return &Session{Principal: p, SignedInAt: now}, nil
}

// Owner returns the owner key for request payloads.
func (s *Session) Owner() string {
	if s == nil {
		return ""
	}
	return s.Principal.Email
}

// SetPreferences replaces the session-held preference copy.
func (s *Session) SetPreferences(p prefdom.Preferences) {
	if s == nil {
		return
	}
	s.Preferences = p
}
