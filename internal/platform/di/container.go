// internal/platform/di/container.go
package di

import (
	"fmt"
	"log/slog"
	"strings"

	authadapter "stockroom/internal/adapters/out/auth"
	httpout "stockroom/internal/adapters/out/http"
	mailadapter "stockroom/internal/adapters/out/mail"
	"stockroom/internal/application/status"
	"stockroom/internal/application/usecase"
	"stockroom/internal/domain/session"
	"stockroom/internal/domain/transfercart"
	"stockroom/internal/infra/config"
)

// Container is the bundle of constructed dependencies handed to the CLI.
// Its purpose is to keep cmd/ as thin as possible: everything wired here,
// rendered there.
type Container struct {
	Status       *status.Channel
	TransferCart *transfercart.Cart
	Credentials  session.CredentialSource
	MSAL         *authadapter.MSALProvider // nil when a static token is wired

	ActiveOrders *usecase.ActiveOrderUsecase
	Submit       *usecase.SubmitUsecase
	Preferences  *usecase.PreferencesUsecase
}

// Build wires adapters into usecases from resolved config.
//
// A non-empty staticToken replaces the MSAL provider with a fixed bearer;
// test/smoke wiring only.
func Build(cfg config.Config, log *slog.Logger, staticToken string) (*Container, error) {
	if log == nil {
		log = slog.Default()
	}

	st := status.NewChannel(cfg.StatusTTL)
	cart := transfercart.New()
	api := httpout.NewAPIClient(cfg.APIBaseURL, log)

	var creds session.CredentialSource
	var msal *authadapter.MSALProvider
	if strings.TrimSpace(staticToken) != "" {
		creds = authadapter.StaticSource{Token: staticToken}
	} else {
		var err error
		msal, err = authadapter.NewMSALProvider(cfg.AADClientID, cfg.AADTenantID, []string{cfg.APIScope}, log)
		if err != nil {
			return nil, fmt.Errorf("di: %w", err)
		}
		creds = msal
	}

	var mailer mailadapter.SubmissionMailerPort
	if cfg.MailEnabled() {
		mailer = mailadapter.NewSubmissionMailer(
			mailadapter.NewSendGridClient(cfg.SendGridAPIKey), cfg.MailFrom)
	}

	return &Container{
		Status:       st,
		TransferCart: cart,
		Credentials:  creds,
		MSAL:         msal,
		ActiveOrders: usecase.NewActiveOrderUsecase(api, creds, st, log),
		Submit:       usecase.NewSubmitUsecase(api, creds, st, cart, mailer, log),
		Preferences:  usecase.NewPreferencesUsecase(api, creds, st, log),
	}, nil
}
