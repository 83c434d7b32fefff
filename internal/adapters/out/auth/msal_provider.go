// internal/adapters/out/auth/msal_provider.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/public"

	"stockroom/internal/domain/session"
)

// MSALProvider implements session.CredentialSource on top of the MSAL
// public-client flow: silent acquisition against the cached account before
// every call, device-code sign-in for the first interaction. The provider
// decides internally whether a cached token is reused or refreshed.
type MSALProvider struct {
	app    public.Client
	scopes []string
	log    *slog.Logger
}

func NewMSALProvider(clientID, tenantID string, scopes []string, log *slog.Logger) (*MSALProvider, error) {
	clientID = strings.TrimSpace(clientID)
	tenantID = strings.TrimSpace(tenantID)
	if clientID == "" || tenantID == "" || len(scopes) == 0 {
		return nil, errors.New("auth: msal provider needs client id, tenant id and scopes")
	}
	if log == nil {
		log = slog.Default()
	}

	app, err := public.New(clientID,
		public.WithAuthority("https://login.microsoftonline.com/"+tenantID))
	if err != nil {
		return nil, fmt.Errorf("auth: build msal client: %w", err)
	}
	return &MSALProvider{app: app, scopes: scopes, log: log}, nil
}

// Acquire yields a bearer credential for the principal, silent-first.
// No cached account or a failed silent acquisition surfaces as
// session.ErrInteractionRequired; provider/transport trouble surfaces as
// session.ErrAuthTransient.
func (p *MSALProvider) Acquire(ctx context.Context, principal session.Principal) (session.Credential, error) {
	if p == nil {
		return session.Credential{}, session.ErrAuthTransient
	}

	accounts, err := p.app.Accounts(ctx)
	if err != nil {
		return session.Credential{}, fmt.Errorf("%w: list accounts: %v", session.ErrAuthTransient, err)
	}

	acct, ok := matchAccount(accounts, principal)
	if !ok {
		return session.Credential{}, fmt.Errorf("%w: no cached account for %s", session.ErrInteractionRequired, principal.Email)
	}

	res, err := p.app.AcquireTokenSilent(ctx, p.scopes, public.WithSilentAccount(acct))
	if err != nil {
		if ctx.Err() != nil {
			return session.Credential{}, fmt.Errorf("%w: %v", session.ErrAuthTransient, err)
		}
		p.log.Warn("silent token acquisition failed", "user", principal.Email, "err", err)
		return session.Credential{}, fmt.Errorf("%w: %v", session.ErrInteractionRequired, err)
	}

	return session.Credential{AccessToken: res.AccessToken, ExpiresOn: res.ExpiresOn}, nil
}

// SignInDeviceCode runs the interactive device-code flow and returns the
// signed-in principal. userPrompt receives the verification message shown
// to the user ("go to ... and enter code ...").
func (p *MSALProvider) SignInDeviceCode(ctx context.Context, userPrompt func(string)) (session.Principal, error) {
	dc, err := p.app.AcquireTokenByDeviceCode(ctx, p.scopes)
	if err != nil {
		return session.Principal{}, fmt.Errorf("%w: start device code flow: %v", session.ErrAuthTransient, err)
	}
	if userPrompt != nil {
		userPrompt(dc.Result.Message)
	}

	res, err := dc.AuthenticationResult(ctx)
	if err != nil {
		return session.Principal{}, fmt.Errorf("%w: device code flow: %v", session.ErrAuthTransient, err)
	}

	return session.NewPrincipal(
		res.Account.PreferredUsername,
		res.Account.PreferredUsername,
		res.Account.HomeAccountID,
	)
}

func matchAccount(accounts []public.Account, principal session.Principal) (public.Account, bool) {
	for _, a := range accounts {
		if principal.HomeAccountID != "" && a.HomeAccountID == principal.HomeAccountID {
			return a, true
		}
		if strings.EqualFold(strings.TrimSpace(a.PreferredUsername), principal.Email) {
			return a, true
		}
	}
	return public.Account{}, false
}
