// internal/domain/preferences/entity.go
package preferences

import (
	"context"
	"strings"
)

// Preferences is the per-user preference record held by the backend and
// mirrored into the session after fetch/save.
type Preferences struct {
	// TeamsDeepLinkOrderRequestEnabled turns on deep-link notification
	// composition after a successful order submission.
	TeamsDeepLinkOrderRequestEnabled bool `json:"teamsDeepLinkOrderRequestEnabled"`

	// TeamsDeepLinkURLOrderRequest is the configured deep-link base URL
	// (an HTTP-trigger URL that already carries its own query string).
	TeamsDeepLinkURLOrderRequest string `json:"teamsDeepLinkUrlOrderRequest"`

	// EmailNotifyOrderRequestEnabled turns on the email notification sent
	// to the submitter after a successful order submission.
	EmailNotifyOrderRequestEnabled bool `json:"emailNotifyOrderRequestEnabled"`

	// DefaultRequestingBranch pre-fills the requesting branch on new items.
	DefaultRequestingBranch string `json:"defaultRequestingBranch"`
}

// Normalize trims string fields in place and returns the record.
func (p Preferences) Normalize() Preferences {
	p.TeamsDeepLinkURLOrderRequest = strings.TrimSpace(p.TeamsDeepLinkURLOrderRequest)
	p.DefaultRequestingBranch = strings.TrimSpace(p.DefaultRequestingBranch)
	return p
}

// DeepLinkBase returns the deep-link base URL, empty when unconfigured.
func (p Preferences) DeepLinkBase() string {
	return strings.TrimSpace(p.TeamsDeepLinkURLOrderRequest)
}

// Store is the outbound port for preference persistence. The backend owns
// the record; this layer only fetches and saves it whole. bearer is the
// access token acquired immediately before the call.
type Store interface {
	Fetch(ctx context.Context, bearer string, userEmail string) (Preferences, error)
	Save(ctx context.Context, bearer string, userEmail string, p Preferences) (Preferences, error)
}
