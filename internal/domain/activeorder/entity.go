// internal/domain/activeorder/entity.go
package activeorder

import (
	"errors"
	"strings"
)

var ErrInvalidItem = errors.New("activeorder: invalid item")

// Item is one line of the server-held active-order cart. The server assigns
// OrderRequestItemID and owns every field; the client never mutates an Item,
// it only issues intents that the server applies.
type Item struct {
	OrderRequestItemID int64  `json:"order_request_item_id"`
	MfgPartNumber      string `json:"mfg_part_number"`
	InternalPartNumber string `json:"internal_part_number"`
	ItemDescription    string `json:"item_description"`
	QuantityRequested  int    `json:"quantity_requested"`
	VendorName         string `json:"vendor_name"`
	Notes              string `json:"notes"`
	RequestingBranch   string `json:"requesting_branch"`
}

// AddItemInput is the client intent to append a line to the active order.
// Validated at the boundary before serialization.
type AddItemInput struct {
	MfgPartNumber      string `json:"mfg_part_number" validate:"required"`
	InternalPartNumber string `json:"internal_part_number"`
	ItemDescription    string `json:"item_description" validate:"required"`
	QuantityRequested  int    `json:"quantity_requested" validate:"gt=0"`
	VendorName         string `json:"vendor_name"`
	Notes              string `json:"notes"`
	RequestingBranch   string `json:"requesting_branch" validate:"required"`
}

// Normalize trims string fields in place and returns the input.
func (in AddItemInput) Normalize() AddItemInput {
	in.MfgPartNumber = strings.TrimSpace(in.MfgPartNumber)
	in.InternalPartNumber = strings.TrimSpace(in.InternalPartNumber)
	in.ItemDescription = strings.TrimSpace(in.ItemDescription)
	in.VendorName = strings.TrimSpace(in.VendorName)
	in.Notes = strings.TrimSpace(in.Notes)
	in.RequestingBranch = strings.TrimSpace(in.RequestingBranch)
	return in
}

// MutationOutcome is what every mutating active-order operation hands back
// to the owning view. MustRefetch makes the fire-and-reconcile contract
// explicit: the server is the system of record and nothing is cached here,
// so the view re-fetches authoritative state after any mutation.
type MutationOutcome struct {
	// Item is the persisted line for immediate UI use (add only).
	Item *Item

	MustRefetch bool
}
