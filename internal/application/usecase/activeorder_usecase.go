// internal/application/usecase/activeorder_usecase.go
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"stockroom/internal/application/status"
	"stockroom/internal/domain/activeorder"
	"stockroom/internal/domain/session"
)

// ActiveOrderUsecase orchestrates the remote active-order cart. Every
// operation follows the same sequence: acquire credential, perform the
// network exchange, interpret the response, emit exactly one status
// notification. Errors never escape past this boundary; callers get a
// tagged result plus whatever the status channel shows.
//
// All mutations are fire-and-reconcile: nothing remote is cached here, and
// the outcome's MustRefetch tells the owning view to re-fetch authoritative
// state from the server.
type ActiveOrderUsecase struct {
	gateway activeorder.Gateway
	creds   session.CredentialSource
	status  *status.Channel
	log     *slog.Logger
}

func NewActiveOrderUsecase(gateway activeorder.Gateway, creds session.CredentialSource, st *status.Channel, log *slog.Logger) *ActiveOrderUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &ActiveOrderUsecase{gateway: gateway, creds: creds, status: st, log: log}
}

// AddItem appends a line to the server-held cart. On success the persisted
// item is returned for immediate UI use and a success notification names it.
func (uc *ActiveOrderUsecase) AddItem(ctx context.Context, sess *session.Session, in activeorder.AddItemInput) (activeorder.MutationOutcome, *OpError) {
	bearer, oerr := uc.authorize(ctx, sess, "User not authenticated. Cannot add item to cart.")
	if oerr != nil {
		return activeorder.MutationOutcome{}, oerr
	}

	item, err := uc.gateway.AddItem(ctx, bearer, sess.Owner(), in)
	if err != nil {
		oerr := classifyRemote(err, "Failed to add item.", "Error adding item to cart:")
		uc.fail("add item", oerr)
		return activeorder.MutationOutcome{}, oerr
	}

	uc.status.Success(fmt.Sprintf("%s added to active order.", item.ItemDescription))
	return activeorder.MutationOutcome{Item: item, MustRefetch: true}, nil
}

// RemoveItem removes one line by its server-assigned id. Idempotent from
// the caller's perspective: removing an already-removed id is the server's
// concern and is not retried here.
func (uc *ActiveOrderUsecase) RemoveItem(ctx context.Context, sess *session.Session, itemID int64) (activeorder.MutationOutcome, *OpError) {
	bearer, oerr := uc.authorize(ctx, sess, "User not authenticated.")
	if oerr != nil {
		return activeorder.MutationOutcome{}, oerr
	}

	if err := uc.gateway.RemoveItem(ctx, bearer, sess.Owner(), itemID); err != nil {
		oerr := classifyRemote(err, "Failed to remove item.", "Error removing item:")
		uc.fail("remove item", oerr)
		return activeorder.MutationOutcome{}, oerr
	}

	uc.status.Success("Item removed from active order.")
	return activeorder.MutationOutcome{MustRefetch: true}, nil
}

// UpdateQuantity forwards the raw requested quantity, non-positive values
// included; whether those become deletions is server policy. A non-positive
// value is logged before it travels.
func (uc *ActiveOrderUsecase) UpdateQuantity(ctx context.Context, sess *session.Session, itemID int64, quantity int) (activeorder.MutationOutcome, *OpError) {
	bearer, oerr := uc.authorize(ctx, sess, "User not authenticated.")
	if oerr != nil {
		return activeorder.MutationOutcome{}, oerr
	}

	if err := uc.gateway.UpdateQuantity(ctx, bearer, sess.Owner(), itemID, quantity); err != nil {
		oerr := classifyRemote(err, "Failed to update quantity.", "Error updating quantity:")
		uc.fail("update quantity", oerr)
		return activeorder.MutationOutcome{}, oerr
	}

	uc.status.Success("Item quantity updated in active order.")
	return activeorder.MutationOutcome{MustRefetch: true}, nil
}

// ClearAll removes every line owned by the principal in one call.
func (uc *ActiveOrderUsecase) ClearAll(ctx context.Context, sess *session.Session) (activeorder.MutationOutcome, *OpError) {
	bearer, oerr := uc.authorize(ctx, sess, "User not authenticated.")
	if oerr != nil {
		return activeorder.MutationOutcome{}, oerr
	}

	if err := uc.gateway.ClearAll(ctx, bearer, sess.Owner()); err != nil {
		oerr := classifyRemote(err, "Failed to clear active order.", "Error clearing active order:")
		uc.fail("clear active order", oerr)
		return activeorder.MutationOutcome{}, oerr
	}

	uc.status.Success("Active order cleared.")
	return activeorder.MutationOutcome{MustRefetch: true}, nil
}

// ListItems fetches the authoritative cart contents. Reads publish no
// success notification; only failures reach the status channel.
func (uc *ActiveOrderUsecase) ListItems(ctx context.Context, sess *session.Session) ([]activeorder.Item, *OpError) {
	bearer, oerr := uc.authorize(ctx, sess, "User not authenticated.")
	if oerr != nil {
		return nil, oerr
	}

	items, err := uc.gateway.ListItems(ctx, bearer, sess.Owner())
	if err != nil {
		oerr := classifyRemote(err, "Failed to load active order.", "Error loading active order:")
		uc.fail("list items", oerr)
		return nil, oerr
	}
	return items, nil
}

// authorize enforces the credential-before-network sequence shared by every
// operation. A failure is published before it is returned.
func (uc *ActiveOrderUsecase) authorize(ctx context.Context, sess *session.Session, unauthenticatedMsg string) (string, *OpError) {
	if sess == nil || sess.Owner() == "" {
		oerr := opErr(KindUnauthenticated, unauthenticatedMsg)
		uc.status.Error(oerr.Detail)
		return "", oerr
	}

	cred, err := uc.creds.Acquire(ctx, sess.Principal)
	if err != nil || !cred.Valid() {
		oerr := classifyAuth(err)
		uc.log.Warn("credential acquisition failed", "user", sess.Owner(), "err", err)
		uc.status.Error(oerr.Detail)
		return "", oerr
	}
	return cred.AccessToken, nil
}

func (uc *ActiveOrderUsecase) fail(op string, oerr *OpError) {
	uc.log.Warn("active order operation failed", "op", op, "kind", string(oerr.Kind), "detail", oerr.Detail)
	uc.status.Error(oerr.Detail)
}
