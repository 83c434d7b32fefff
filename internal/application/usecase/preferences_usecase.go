// internal/application/usecase/preferences_usecase.go
package usecase

import (
	"context"
	"log/slog"

	"stockroom/internal/application/status"
	prefdom "stockroom/internal/domain/preferences"
	"stockroom/internal/domain/session"
)

// PreferencesUsecase round-trips the per-user preference record through the
// backend and keeps the session copy current.
type PreferencesUsecase struct {
	store  prefdom.Store
	creds  session.CredentialSource
	status *status.Channel
	log    *slog.Logger
}

func NewPreferencesUsecase(store prefdom.Store, creds session.CredentialSource, st *status.Channel, log *slog.Logger) *PreferencesUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &PreferencesUsecase{store: store, creds: creds, status: st, log: log}
}

// Fetch loads the preference record and installs it on the session. Reads
// publish no success notification.
func (uc *PreferencesUsecase) Fetch(ctx context.Context, sess *session.Session) (prefdom.Preferences, *OpError) {
	bearer, oerr := uc.authorize(ctx, sess)
	if oerr != nil {
		return prefdom.Preferences{}, oerr
	}

	prefs, err := uc.store.Fetch(ctx, bearer, sess.Owner())
	if err != nil {
		oerr := classifyRemote(err, "Failed to load preferences.", "Error loading preferences:")
		uc.status.Error(oerr.Detail)
		return prefdom.Preferences{}, oerr
	}

	sess.SetPreferences(prefs)
	return prefs, nil
}

// Save persists the record, installs the server echo on the session and
// publishes one success notification.
func (uc *PreferencesUsecase) Save(ctx context.Context, sess *session.Session, p prefdom.Preferences) (prefdom.Preferences, *OpError) {
	bearer, oerr := uc.authorize(ctx, sess)
	if oerr != nil {
		return prefdom.Preferences{}, oerr
	}

	saved, err := uc.store.Save(ctx, bearer, sess.Owner(), p)
	if err != nil {
		oerr := classifyRemote(err, "Failed to save preferences.", "Error saving preferences:")
		uc.status.Error(oerr.Detail)
		return prefdom.Preferences{}, oerr
	}

	sess.SetPreferences(saved)
	uc.status.Success("Preferences saved successfully.")
	return saved, nil
}

func (uc *PreferencesUsecase) authorize(ctx context.Context, sess *session.Session) (string, *OpError) {
	if sess == nil || sess.Owner() == "" {
		oerr := opErr(KindUnauthenticated, "User not authenticated.")
		uc.status.Error(oerr.Detail)
		return "", oerr
	}

	cred, err := uc.creds.Acquire(ctx, sess.Principal)
	if err != nil || !cred.Valid() {
		oerr := classifyAuth(err)
		uc.log.Warn("credential acquisition failed", "user", sess.Owner(), "err", err)
		uc.status.Error(oerr.Detail)
		return "", oerr
	}
	return cred.AccessToken, nil
}
