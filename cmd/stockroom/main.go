// cmd/stockroom/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"stockroom/internal/application/status"
	"stockroom/internal/domain/session"
	"stockroom/internal/infra/config"
	"stockroom/internal/infra/logger"
	"stockroom/internal/platform/di"
)

var (
	flagUser  string
	flagToken string
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// Installs itself as slog's default; everything below logs through it.
	logger.New(logger.Options{
		Service: "stockroom",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
	})

	root := &cobra.Command{
		Use:           "stockroom",
		Short:         "Branch inventory order-request client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagUser, "user", os.Getenv("STOCKROOM_USER"), "owner email (the signed-in principal)")
	root.PersistentFlags().StringVar(&flagToken, "token", os.Getenv("STOCKROOM_STATIC_TOKEN"), "static bearer token (skips MSAL; test/smoke only)")

	app := &appContext{cfg: cfg}

	root.AddCommand(
		newLoginCmd(app),
		newOrdersCmd(app),
		newTransferCmd(app),
		newPrefsCmd(app),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// appContext lazily builds the container and opens the session on first use
// so that `stockroom --help` never touches config validation or MSAL.
type appContext struct {
	cfg  config.Config
	c    *di.Container
	sess *session.Session
}

// open wires the container and opens a session for the --user principal.
// When MSAL is wired and silent acquisition is impossible, the device-code
// flow runs once; afterwards operations acquire silently.
func (a *appContext) open(ctx context.Context) (*di.Container, *session.Session, error) {
	if a.c != nil && a.sess != nil {
		return a.c, a.sess, nil
	}

	if flagToken == "" {
		if err := a.cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}

	c, err := di.Build(a.cfg, nil, flagToken)
	if err != nil {
		return nil, nil, err
	}

	principal, err := a.resolvePrincipal(ctx, c)
	if err != nil {
		return nil, nil, err
	}

	sess, err := session.NewSession(principal, time.Now())
	if err != nil {
		return nil, nil, err
	}

	// Best-effort preference load; a failure already reached the status
	// channel and the session simply keeps zero preferences.
	if _, oerr := c.Preferences.Fetch(ctx, sess); oerr != nil {
		renderStatus(c.Status)
	}

	a.c, a.sess = c, sess
	return c, sess, nil
}

func (a *appContext) resolvePrincipal(ctx context.Context, c *di.Container) (session.Principal, error) {
	p, err := session.NewPrincipal(flagUser, "", "")
	if err == nil {
		if c.MSAL == nil {
			return p, nil
		}
		// Probe silent acquisition; only interaction-required falls through
		// to the device-code flow.
		if _, aerr := c.Credentials.Acquire(ctx, p); aerr == nil {
			return p, nil
		}
	}

	if c.MSAL == nil {
		return session.Principal{}, fmt.Errorf("--user is required (got %q)", flagUser)
	}

	return c.MSAL.SignInDeviceCode(ctx, func(msg string) {
		fmt.Fprintln(os.Stderr, msg)
	})
}

// newLoginCmd signs the user in eagerly. Other commands sign in lazily on
// first use; this exists so the device-code dance can be done ahead of time.
func newLoginCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in and cache credentials for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("signed in as %s\n", sess.Owner())
			return nil
		},
	}
}

// renderStatus prints the single-slot notification the way the UI would
// show it. The channel content is trusted markup built by this program.
func renderStatus(st *status.Channel) {
	n := st.Current()
	if n == nil {
		return
	}
	prefix := "ok"
	if n.Kind == status.KindError {
		prefix = "error"
	}
	fmt.Printf("[%s] %s\n", prefix, n.Message)
}
