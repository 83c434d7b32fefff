// internal/domain/transfercart/entity.go
package transfercart

import (
	"strings"

	"github.com/google/uuid"
)

// Item is one line of the local transfer cart. LocalID is client-assigned
// and ephemeral; it is never an active-order item id and never leaves the
// client except inside a submission payload snapshot.
type Item struct {
	LocalID            string `json:"local_id"`
	MfgPartNumber      string `json:"mfg_part_number"`
	InternalPartNumber string `json:"internal_part_number"`
	ItemDescription    string `json:"item_description"`
	Quantity           int    `json:"quantity"`
	Notes              string `json:"notes"`
}

// Cart is the in-memory transfer cart, exclusively owned by one session.
// No server persistence until submission; destroyed on submit-success or
// explicit clear. Operations are synchronous and always succeed; field
// validation is deferred to submission time.
type Cart struct {
	Items             []Item
	RequestingBranch  string
	DestinationBranch string
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{Items: []Item{}}
}

// AddItem appends a line and returns its assigned local id.
func (c *Cart) AddItem(mfgPart, internalPart, description string, qty int, notes string) string {
	id := uuid.NewString()
	c.Items = append(c.Items, Item{
		LocalID:            id,
		MfgPartNumber:      strings.TrimSpace(mfgPart),
		InternalPartNumber: strings.TrimSpace(internalPart),
		ItemDescription:    strings.TrimSpace(description),
		Quantity:           qty,
		Notes:              strings.TrimSpace(notes),
	})
	return id
}

// SetQty sets quantity for a local id. qty <= 0 removes the line.
func (c *Cart) SetQty(localID string, qty int) {
	idx := c.indexOf(localID)
	if idx < 0 {
		return
	}
	if qty <= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		return
	}
	c.Items[idx].Quantity = qty
}

// Remove removes a local id from the cart.
func (c *Cart) Remove(localID string) {
	c.SetQty(localID, 0)
}

// SetBranches sets the requesting/destination branch pair.
func (c *Cart) SetBranches(requesting, destination string) {
	c.RequestingBranch = strings.TrimSpace(requesting)
	c.DestinationBranch = strings.TrimSpace(destination)
}

// Clear resets the cart to its zero state.
func (c *Cart) Clear() {
	c.Items = []Item{}
	c.RequestingBranch = ""
	c.DestinationBranch = ""
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// Snapshot returns a copy of the current lines, safe to hand to a
// submission payload while the cart remains mutable.
func (c *Cart) Snapshot() []Item {
	out := make([]Item, len(c.Items))
	copy(out, c.Items)
	return out
}

func (c *Cart) indexOf(localID string) int {
	for i := range c.Items {
		if c.Items[i].LocalID == localID {
			return i
		}
	}
	return -1
}
