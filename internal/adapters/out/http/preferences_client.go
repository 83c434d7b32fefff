// internal/adapters/out/http/preferences_client.go
package httpout

import (
	"context"
	"net/http"
	"net/url"

	prefdom "stockroom/internal/domain/preferences"
)

type savePreferencesRequest struct {
	UserEmail   string              `json:"user_email"`
	Preferences prefdom.Preferences `json:"preferences"`
}

type preferencesResponse struct {
	Preferences prefdom.Preferences `json:"preferences"`
}

// Fetch implements preferences.Store.
func (c *APIClient) Fetch(ctx context.Context, bearer, userEmail string) (prefdom.Preferences, error) {
	var res preferencesResponse
	path := "/user-preferences?user_email=" + url.QueryEscape(userEmail)
	if err := c.do(ctx, http.MethodGet, path, bearer, nil, &res); err != nil {
		return prefdom.Preferences{}, err
	}
	return res.Preferences.Normalize(), nil
}

// Save implements preferences.Store. The backend echoes the persisted record.
func (c *APIClient) Save(ctx context.Context, bearer, userEmail string, p prefdom.Preferences) (prefdom.Preferences, error) {
	var res preferencesResponse
	err := c.do(ctx, http.MethodPost, "/user-preferences", bearer, savePreferencesRequest{
		UserEmail:   userEmail,
		Preferences: p.Normalize(),
	}, &res)
	if err != nil {
		return prefdom.Preferences{}, err
	}
	return res.Preferences.Normalize(), nil
}
