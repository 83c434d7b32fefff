// cmd/stockroom/orders.go
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"stockroom/internal/domain/activeorder"
	"stockroom/internal/domain/submission"
)

func newOrdersCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Manage the server-held active-order cart",
	}
	cmd.AddCommand(
		newOrdersListCmd(app),
		newOrdersAddCmd(app),
		newOrdersRemoveCmd(app),
		newOrdersSetQtyCmd(app),
		newOrdersClearCmd(app),
		newOrdersSubmitCmd(app),
	)
	return cmd
}

func newOrdersListCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the authoritative active-order contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, sess, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			items, oerr := c.ActiveOrders.ListItems(cmd.Context(), sess)
			renderStatus(c.Status)
			if oerr != nil {
				return nil
			}
			printItems(items)
			return nil
		},
	}
}

func printItems(items []activeorder.Item) {
	if len(items) == 0 {
		fmt.Println("active order is empty")
		return
	}
	for _, it := range items {
		fmt.Printf("%6d  %-18s qty=%-4d %s  (%s)\n",
			it.OrderRequestItemID, it.MfgPartNumber, it.QuantityRequested,
			it.ItemDescription, it.RequestingBranch)
	}
}

func newOrdersAddCmd(app *appContext) *cobra.Command {
	var in activeorder.AddItemInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to the active order",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, sess, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			out, _ := c.ActiveOrders.AddItem(cmd.Context(), sess, in)
			renderStatus(c.Status)
			reconcile(cmd, app, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.MfgPartNumber, "mfg-part", "", "manufacturer part number")
	cmd.Flags().StringVar(&in.InternalPartNumber, "part", "", "internal part number")
	cmd.Flags().StringVar(&in.ItemDescription, "description", "", "item description")
	cmd.Flags().IntVar(&in.QuantityRequested, "qty", 1, "requested quantity")
	cmd.Flags().StringVar(&in.VendorName, "vendor", "", "vendor name")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "line notes")
	cmd.Flags().StringVar(&in.RequestingBranch, "branch", "", "requesting branch")
	return cmd
}

func newOrdersRemoveCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove an item from the active order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("item-id must be numeric: %w", err)
			}
			c, sess, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			out, _ := c.ActiveOrders.RemoveItem(cmd.Context(), sess, id)
			renderStatus(c.Status)
			reconcile(cmd, app, out)
			return nil
		},
	}
}

func newOrdersSetQtyCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-qty <item-id> <quantity>",
		Short: "Update the requested quantity of an active-order item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("item-id must be numeric: %w", err)
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity must be numeric: %w", err)
			}
			c, sess, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			out, _ := c.ActiveOrders.UpdateQuantity(cmd.Context(), sess, id, qty)
			renderStatus(c.Status)
			reconcile(cmd, app, out)
			return nil
		},
	}
}

func newOrdersClearCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every item from the active order",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, sess, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			out, _ := c.ActiveOrders.ClearAll(cmd.Context(), sess)
			renderStatus(c.Status)
			reconcile(cmd, app, out)
			return nil
		},
	}
}

func newOrdersSubmitCmd(app *appContext) *cobra.Command {
	var notes string
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit the active order as a purchase-order request",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, sess, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			if c.Submit.StateOf(submission.KindOrders) == submission.StateSubmitting {
				fmt.Println("an order submission is already in flight")
				return nil
			}
			_, _ = c.Submit.SubmitOrders(cmd.Context(), sess, submission.OrdersInput{NotesForSubmitter: notes})
			renderStatus(c.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "notes for the submitter")
	return cmd
}

// reconcile re-fetches authoritative state after a mutation, as the
// MustRefetch contract requires of the owning view.
func reconcile(cmd *cobra.Command, app *appContext, out activeorder.MutationOutcome) {
	if !out.MustRefetch {
		return
	}
	c, sess, err := app.open(cmd.Context())
	if err != nil {
		return
	}
	items, oerr := c.ActiveOrders.ListItems(cmd.Context(), sess)
	if oerr != nil {
		renderStatus(c.Status)
		return
	}
	printItems(items)
}
