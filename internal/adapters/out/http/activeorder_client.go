// internal/adapters/out/http/activeorder_client.go
package httpout

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"stockroom/internal/domain/activeorder"
)

// addItemRequest is the wire shape for POST /active-orders/item.
type addItemRequest struct {
	MfgPartNumber        string `json:"mfg_part_number"`
	InternalPartNumber   string `json:"internal_part_number,omitempty"`
	ItemDescription      string `json:"item_description"`
	QuantityRequested    int    `json:"quantity_requested"`
	VendorName           string `json:"vendor_name,omitempty"`
	Notes                string `json:"notes,omitempty"`
	RequestingBranch     string `json:"requesting_branch"`
	RequestedByUserEmail string `json:"requested_by_user_email"`
}

type updateQuantityRequest struct {
	Quantity  int    `json:"quantity"`
	UserEmail string `json:"user_email"`
}

// AddItem implements activeorder.Gateway.
func (c *APIClient) AddItem(ctx context.Context, bearer, owner string, in activeorder.AddItemInput) (*activeorder.Item, error) {
	in = in.Normalize()
	if err := c.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("httpout: add item payload: %w", err)
	}

	req := addItemRequest{
		MfgPartNumber:        in.MfgPartNumber,
		InternalPartNumber:   in.InternalPartNumber,
		ItemDescription:      in.ItemDescription,
		QuantityRequested:    in.QuantityRequested,
		VendorName:           in.VendorName,
		Notes:                in.Notes,
		RequestingBranch:     in.RequestingBranch,
		RequestedByUserEmail: owner,
	}

	var item activeorder.Item
	if err := c.do(ctx, http.MethodPost, "/active-orders/item", bearer, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem implements activeorder.Gateway. Removing an already-removed id
// is the server's concern; this layer does not retry or special-case it.
func (c *APIClient) RemoveItem(ctx context.Context, bearer, owner string, itemID int64) error {
	path := fmt.Sprintf("/active-orders/item/%d?user_email=%s", itemID, url.QueryEscape(owner))
	return c.do(ctx, http.MethodDelete, path, bearer, nil, nil)
}

// UpdateQuantity implements activeorder.Gateway. The raw requested quantity
// travels unchanged, non-positive values included; converting those into
// deletions is the server's responsibility.
func (c *APIClient) UpdateQuantity(ctx context.Context, bearer, owner string, itemID int64, quantity int) error {
	if quantity <= 0 {
		c.log.Warn("forwarding non-positive quantity update",
			"item_id", itemID, "quantity", quantity)
	}
	path := fmt.Sprintf("/active-orders/item/%d/quantity", itemID)
	return c.do(ctx, http.MethodPut, path, bearer, updateQuantityRequest{
		Quantity:  quantity,
		UserEmail: owner,
	}, nil)
}

// ClearAll implements activeorder.Gateway. Atomic from the caller's point of
// view: one call removes every item owned by the principal or fails entirely.
func (c *APIClient) ClearAll(ctx context.Context, bearer, owner string) error {
	return c.do(ctx, http.MethodDelete, "/active-orders/all?user_email="+url.QueryEscape(owner), bearer, nil, nil)
}

// ListItems implements activeorder.Gateway. This is the re-fetch half of the
// fire-and-reconcile contract.
func (c *APIClient) ListItems(ctx context.Context, bearer, owner string) ([]activeorder.Item, error) {
	var items []activeorder.Item
	if err := c.do(ctx, http.MethodGet, "/active-orders?user_email="+url.QueryEscape(owner), bearer, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}
