// internal/domain/submission/entity.go
package submission

import (
	"context"
	"strings"
)

// Kind selects which cart a submission converts into a persisted request.
type Kind string

const (
	KindOrders    Kind = "orders"
	KindTransfers Kind = "transfers"
)

// State is the coordinator's per-kind lifecycle. The consuming view reads it
// to disable the submit action while a submission is in flight; the
// coordinator itself does not serialize concurrent intents.
type State int

const (
	StateIdle State = iota
	StateAuthorizing
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateAuthorizing:
		return "authorizing"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// OrdersInput carries the order submission intent. The server already holds
// the authoritative cart contents keyed by owner, so only the owner and the
// optional submitter notes travel.
type OrdersInput struct {
	NotesForSubmitter string
}

// TransferLine is one line of the transfer payload.
type TransferLine struct {
	MfgPartNumber      string `json:"mfg_part_number"`
	InternalPartNumber string `json:"internal_part_number"`
	ItemDescription    string `json:"item_description"`
	Quantity           int    `json:"quantity"`
	Notes              string `json:"notes"`
}

// TransferInput is the full local cart contents at submission time.
type TransferInput struct {
	RequestingBranchID  string         `json:"requesting_branch_id" validate:"required"`
	DestinationBranchID string         `json:"destination_branch_id" validate:"required"`
	Items               []TransferLine `json:"items" validate:"min=1,dive"`
	Notes               string         `json:"notes"`
}

// OrdersResult is returned once per successful order submission and never
// mutated afterwards.
type OrdersResult struct {
	OrderRequestIDs []string
	Details         string
}

// JoinedIDs returns the request ids joined with ", " for display, or the
// ids joined with "," when compact is true (deep-link parameter form).
func (r OrdersResult) JoinedIDs(compact bool) string {
	if compact {
		return strings.Join(r.OrderRequestIDs, ",")
	}
	return strings.Join(r.OrderRequestIDs, ", ")
}

// TransferResult is returned once per successful transfer submission.
type TransferResult struct {
	TransferRequestID string
}

// Submitter is the outbound port converting a cart into a persisted request.
// bearer is the access token acquired immediately before the call.
type Submitter interface {
	SubmitOrders(ctx context.Context, bearer, owner string, in OrdersInput) (OrdersResult, error)
	SubmitTransfer(ctx context.Context, bearer, owner string, in TransferInput) (TransferResult, error)
}
