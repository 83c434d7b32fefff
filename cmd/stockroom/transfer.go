// cmd/stockroom/transfer.go
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"stockroom/internal/domain/submission"
	"stockroom/internal/domain/transfercart"
)

func newTransferCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Manage the local transfer cart",
	}
	cmd.AddCommand(
		newTransferShowCmd(app),
		newTransferAddCmd(app),
		newTransferRemoveCmd(app),
		newTransferSetQtyCmd(app),
		newTransferBranchesCmd(app),
		newTransferClearCmd(app),
		newTransferSubmitCmd(app),
	)
	return cmd
}

func printCart(cart *transfercart.Cart) {
	fmt.Printf("transfer %s -> %s, %d item(s)\n",
		orDash(cart.RequestingBranch), orDash(cart.DestinationBranch), cart.Len())
	for _, it := range cart.Items {
		fmt.Printf("  %s  %-18s qty=%-4d %s\n",
			it.LocalID[:8], it.MfgPartNumber, it.Quantity, it.ItemDescription)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func newTransferShowCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the local transfer cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			printCart(c.TransferCart)
			return nil
		},
	}
}

func newTransferAddCmd(app *appContext) *cobra.Command {
	var (
		mfgPart, part, description, notes string
		qty                               int
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to the local transfer cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			id := c.TransferCart.AddItem(mfgPart, part, description, qty, notes)
			fmt.Printf("added %s\n", id[:8])
			printCart(c.TransferCart)
			return nil
		},
	}
	cmd.Flags().StringVar(&mfgPart, "mfg-part", "", "manufacturer part number")
	cmd.Flags().StringVar(&part, "part", "", "internal part number")
	cmd.Flags().StringVar(&description, "description", "", "item description")
	cmd.Flags().IntVar(&qty, "qty", 1, "quantity")
	cmd.Flags().StringVar(&notes, "notes", "", "line notes")
	return cmd
}

func newTransferRemoveCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <local-id>",
		Short: "Remove a line from the local transfer cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			c.TransferCart.Remove(resolveLocalID(c.TransferCart, args[0]))
			printCart(c.TransferCart)
			return nil
		},
	}
}

func newTransferSetQtyCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-qty <local-id> <quantity>",
		Short: "Update a transfer line quantity (0 removes the line)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity must be numeric: %w", err)
			}
			c, _, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			c.TransferCart.SetQty(resolveLocalID(c.TransferCart, args[0]), qty)
			printCart(c.TransferCart)
			return nil
		},
	}
}

func newTransferBranchesCmd(app *appContext) *cobra.Command {
	var requesting, destination string
	cmd := &cobra.Command{
		Use:   "branches",
		Short: "Set the requesting and destination branch",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			c.TransferCart.SetBranches(requesting, destination)
			printCart(c.TransferCart)
			return nil
		},
	}
	cmd.Flags().StringVar(&requesting, "from", "", "requesting branch id")
	cmd.Flags().StringVar(&destination, "to", "", "destination branch id")
	return cmd
}

func newTransferClearCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the local transfer cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			c.TransferCart.Clear()
			printCart(c.TransferCart)
			return nil
		},
	}
}

func newTransferSubmitCmd(app *appContext) *cobra.Command {
	var notes string
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit the transfer cart as an inter-branch transfer request",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, sess, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			if c.Submit.StateOf(submission.KindTransfers) == submission.StateSubmitting {
				fmt.Println("a transfer submission is already in flight")
				return nil
			}
			_, _ = c.Submit.SubmitTransfer(cmd.Context(), sess, notes)
			renderStatus(c.Status)
			printCart(c.TransferCart)
			return nil
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "notes for the transfer request")
	return cmd
}

// resolveLocalID accepts a full local id or an unambiguous prefix, as the
// show output prints only the first 8 characters.
func resolveLocalID(cart *transfercart.Cart, arg string) string {
	for _, it := range cart.Items {
		if it.LocalID == arg || (len(arg) >= 4 && len(it.LocalID) > len(arg) && it.LocalID[:len(arg)] == arg) {
			return it.LocalID
		}
	}
	return arg
}
