// internal/domain/activeorder/gateway_port.go
package activeorder

import "context"

// Gateway performs CRUD intents against the server-held active-order cart.
//
// All mutations are fire-and-reconcile: no local cache of remote contents is
// kept, and callers re-fetch via ListItems after any mutation completes.
// bearer is the access token acquired immediately before the call; owner is
// the principal's email, attached so the server can authorize.
type Gateway interface {
	AddItem(ctx context.Context, bearer, owner string, in AddItemInput) (*Item, error)
	RemoveItem(ctx context.Context, bearer, owner string, itemID int64) error
	UpdateQuantity(ctx context.Context, bearer, owner string, itemID int64, quantity int) error
	ClearAll(ctx context.Context, bearer, owner string) error
	ListItems(ctx context.Context, bearer, owner string) ([]Item, error)
}
