// cmd/stockroom/prefs.go
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	prefdom "stockroom/internal/domain/preferences"
)

func newPrefsCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or save user preferences",
	}
	cmd.AddCommand(newPrefsShowCmd(app), newPrefsSaveCmd(app))
	return cmd
}

func newPrefsShowCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the preference record held by the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, sess, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			prefs, oerr := c.Preferences.Fetch(cmd.Context(), sess)
			renderStatus(c.Status)
			if oerr != nil {
				return nil
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(prefs)
		},
	}
}

func newPrefsSaveCmd(app *appContext) *cobra.Command {
	var (
		deepLinkEnabled bool
		deepLinkURL     string
		mailEnabled     bool
		defaultBranch   string
	)
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save the preference record",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, sess, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			saved, oerr := c.Preferences.Save(cmd.Context(), sess, prefdom.Preferences{
				TeamsDeepLinkOrderRequestEnabled: deepLinkEnabled,
				TeamsDeepLinkURLOrderRequest:     deepLinkURL,
				EmailNotifyOrderRequestEnabled:   mailEnabled,
				DefaultRequestingBranch:          defaultBranch,
			})
			renderStatus(c.Status)
			if oerr != nil {
				return nil
			}
			fmt.Printf("deep link enabled=%v url=%q mail=%v branch=%q\n",
				saved.TeamsDeepLinkOrderRequestEnabled,
				saved.TeamsDeepLinkURLOrderRequest,
				saved.EmailNotifyOrderRequestEnabled,
				saved.DefaultRequestingBranch)
			return nil
		},
	}
	cmd.Flags().BoolVar(&deepLinkEnabled, "teams-deep-link", false, "enable Teams deep-link notification after order submission")
	cmd.Flags().StringVar(&deepLinkURL, "teams-deep-link-url", "", "deep-link base URL (HTTP trigger, query string included)")
	cmd.Flags().BoolVar(&mailEnabled, "mail-notify", false, "enable the email receipt after order submission")
	cmd.Flags().StringVar(&defaultBranch, "default-branch", "", "default requesting branch")
	return cmd
}
