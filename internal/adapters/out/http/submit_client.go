// internal/adapters/out/http/submit_client.go
package httpout

import (
	"context"
	"fmt"
	"net/http"

	"stockroom/internal/domain/submission"
)

type submitOrdersRequest struct {
	UserEmail         string `json:"user_email"`
	NotesForSubmitter string `json:"notes_for_submitter,omitempty"`
}

type submitOrdersResponse struct {
	OrderRequestIDs []string `json:"order_request_ids"`
	Details         string   `json:"details"`
}

type submitTransferRequest struct {
	UserEmail           string                    `json:"user_email"`
	RequestingBranchID  string                    `json:"requesting_branch_id"`
	DestinationBranchID string                    `json:"destination_branch_id"`
	Items               []submission.TransferLine `json:"items"`
	Notes               string                    `json:"notes"`
}

type submitTransferResponse struct {
	TransferRequestID string `json:"transfer_request_id"`
}

// SubmitOrders implements submission.Submitter. The server holds the
// authoritative cart keyed by owner, so only the owner and notes travel.
func (c *APIClient) SubmitOrders(ctx context.Context, bearer, owner string, in submission.OrdersInput) (submission.OrdersResult, error) {
	var res submitOrdersResponse
	err := c.do(ctx, http.MethodPost, "/submit-orders", bearer, submitOrdersRequest{
		UserEmail:         owner,
		NotesForSubmitter: in.NotesForSubmitter,
	}, &res)
	if err != nil {
		return submission.OrdersResult{}, err
	}
	return submission.OrdersResult{
		OrderRequestIDs: res.OrderRequestIDs,
		Details:         res.Details,
	}, nil
}

// SubmitTransfer implements submission.Submitter.
func (c *APIClient) SubmitTransfer(ctx context.Context, bearer, owner string, in submission.TransferInput) (submission.TransferResult, error) {
	if err := c.validate.Struct(in); err != nil {
		return submission.TransferResult{}, fmt.Errorf("httpout: transfer payload: %w", err)
	}

	var res submitTransferResponse
	err := c.do(ctx, http.MethodPost, "/submit-transfer", bearer, submitTransferRequest{
		UserEmail:           owner,
		RequestingBranchID:  in.RequestingBranchID,
		DestinationBranchID: in.DestinationBranchID,
		Items:               in.Items,
		Notes:               in.Notes,
	}, &res)
	if err != nil {
		return submission.TransferResult{}, err
	}
	return submission.TransferResult{TransferRequestID: res.TransferRequestID}, nil
}
