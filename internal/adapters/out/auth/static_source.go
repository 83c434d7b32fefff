// internal/adapters/out/auth/static_source.go
package auth

import (
	"context"
	"strings"
	"time"

	"stockroom/internal/domain/session"
)

// StaticSource yields a fixed bearer token. Used by tests and smoke runs
// against a backend with auth disabled; never by production wiring.
type StaticSource struct {
	Token string
}

func (s StaticSource) Acquire(ctx context.Context, _ session.Principal) (session.Credential, error) {
	if strings.TrimSpace(s.Token) == "" {
		return session.Credential{}, session.ErrAuthTransient
	}
	return session.Credential{
		AccessToken: s.Token,
		ExpiresOn:   time.Now().Add(time.Hour),
	}, nil
}
