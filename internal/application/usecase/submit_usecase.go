// internal/application/usecase/submit_usecase.go
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"stockroom/internal/adapters/out/mail"
	"stockroom/internal/application/status"
	"stockroom/internal/domain/session"
	"stockroom/internal/domain/submission"
	"stockroom/internal/domain/transfercart"
)

// SubmitUsecase is the submission coordinator. Each kind (orders,
// transfers) walks Idle -> Authorizing -> Submitting -> Succeeded/Failed;
// the view reads StateOf to disable the submit action while one is in
// flight. The coordinator deliberately does not serialize concurrent
// intents of the same kind.
type SubmitUsecase struct {
	submitter submission.Submitter
	creds     session.CredentialSource
	status    *status.Channel
	cart      *transfercart.Cart
	mailer    mail.SubmissionMailerPort // optional; nil disables email notify
	log       *slog.Logger

	mu     sync.Mutex
	states map[submission.Kind]submission.State
}

func NewSubmitUsecase(
	submitter submission.Submitter,
	creds session.CredentialSource,
	st *status.Channel,
	cart *transfercart.Cart,
	mailer mail.SubmissionMailerPort,
	log *slog.Logger,
) *SubmitUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &SubmitUsecase{
		submitter: submitter,
		creds:     creds,
		status:    st,
		cart:      cart,
		mailer:    mailer,
		log:       log,
		states: map[submission.Kind]submission.State{
			submission.KindOrders:    submission.StateIdle,
			submission.KindTransfers: submission.StateIdle,
		},
	}
}

// StateOf reports the current lifecycle state for a submission kind.
func (uc *SubmitUsecase) StateOf(kind submission.Kind) submission.State {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.states[kind]
}

func (uc *SubmitUsecase) setState(kind submission.Kind, s submission.State) {
	uc.mu.Lock()
	uc.states[kind] = s
	uc.mu.Unlock()
}

// SubmitOrders converts the server-held active order into a persisted
// request. The server is trusted to hold the authoritative cart keyed by
// owner; the coordinator never assumes the local view is consistent and
// relies on the owning view to re-fetch after success.
func (uc *SubmitUsecase) SubmitOrders(ctx context.Context, sess *session.Session, in submission.OrdersInput) (submission.OrdersResult, *OpError) {
	uc.setState(submission.KindOrders, submission.StateAuthorizing)

	bearer, oerr := uc.authorize(ctx, sess)
	if oerr != nil {
		uc.setState(submission.KindOrders, submission.StateFailed)
		return submission.OrdersResult{}, oerr
	}

	uc.setState(submission.KindOrders, submission.StateSubmitting)
	result, err := uc.submitter.SubmitOrders(ctx, bearer, sess.Owner(), in)
	if err != nil {
		oerr := classifyRemote(err, "Order submission failed.", "Order submission failed:")
		uc.log.Warn("order submission failed", "kind", string(oerr.Kind), "detail", oerr.Detail)
		uc.status.Error(oerr.Detail)
		uc.setState(submission.KindOrders, submission.StateFailed)
		return submission.OrdersResult{}, oerr
	}

	uc.setState(submission.KindOrders, submission.StateSucceeded)
	uc.publishOrdersSuccess(sess, result)
	uc.notifyOrdersByMail(ctx, sess, result, in.NotesForSubmitter)
	return result, nil
}

// publishOrdersSuccess composes the single success notification. Submission
// success and notification delivery are independent outcomes: a missing
// deep-link base URL downgrades the message, never the submission.
func (uc *SubmitUsecase) publishOrdersSuccess(sess *session.Session, result submission.OrdersResult) {
	prefs := sess.Preferences

	if prefs.TeamsDeepLinkOrderRequestEnabled && len(result.OrderRequestIDs) > 0 {
		idParam := result.JoinedIDs(true)
		if base := prefs.DeepLinkBase(); base != "" {
			deepLink := base +
				"&orderRequestIds=" + url.QueryEscape(idParam) +
				"&submittedBy=" + url.QueryEscape(sess.Owner())
			uc.status.Success(fmt.Sprintf(
				`Order %s submitted! <a href="%s" target="_blank" rel="noopener noreferrer">Notify Approver via Teams</a>`,
				idParam, deepLink))
			return
		}
		uc.status.Success(fmt.Sprintf(
			"Order %s submitted! Configure Teams deep link URL in preferences to enable direct notification.",
			idParam))
		return
	}

	uc.status.Success(fmt.Sprintf("Order request %s submitted successfully!", result.JoinedIDs(false)))
}

// notifyOrdersByMail sends the optional submitter receipt. Best-effort: a
// mailer failure is logged, never surfaced, and never fails the submission.
func (uc *SubmitUsecase) notifyOrdersByMail(ctx context.Context, sess *session.Session, result submission.OrdersResult, notes string) {
	if uc.mailer == nil || !sess.Preferences.EmailNotifyOrderRequestEnabled {
		return
	}
	if err := uc.mailer.SendOrderSubmitted(ctx, sess.Owner(), result, notes); err != nil {
		uc.log.Warn("order submission mail failed", "user", sess.Owner(), "err", err)
	}
}

// SubmitTransfer converts the local transfer cart into a persisted request.
// An empty cart is rejected locally before any network call, credential
// acquisition included. On success the local cart is reset exactly once;
// failure never partially clears it.
func (uc *SubmitUsecase) SubmitTransfer(ctx context.Context, sess *session.Session, notes string) (submission.TransferResult, *OpError) {
	uc.setState(submission.KindTransfers, submission.StateAuthorizing)

	if sess == nil || sess.Owner() == "" {
		oerr := opErr(KindUnauthenticated, "User not authenticated. Cannot submit request.")
		uc.status.Error(oerr.Detail)
		uc.setState(submission.KindTransfers, submission.StateFailed)
		return submission.TransferResult{}, oerr
	}

	if uc.cart.Len() == 0 {
		oerr := opErr(KindValidationLocal, "Transfer cart is empty.")
		uc.status.Error(oerr.Detail)
		uc.setState(submission.KindTransfers, submission.StateFailed)
		return submission.TransferResult{}, oerr
	}

	bearer, oerr := uc.authorize(ctx, sess)
	if oerr != nil {
		uc.setState(submission.KindTransfers, submission.StateFailed)
		return submission.TransferResult{}, oerr
	}

	in := submission.TransferInput{
		RequestingBranchID:  uc.cart.RequestingBranch,
		DestinationBranchID: uc.cart.DestinationBranch,
		Items:               transferLines(uc.cart.Snapshot()),
		Notes:               notes,
	}

	uc.setState(submission.KindTransfers, submission.StateSubmitting)
	result, err := uc.submitter.SubmitTransfer(ctx, bearer, sess.Owner(), in)
	if err != nil {
		oerr := classifyRemote(err, "Transfer submission failed.", "Transfer submission failed:")
		uc.log.Warn("transfer submission failed", "kind", string(oerr.Kind), "detail", oerr.Detail)
		uc.status.Error(oerr.Detail)
		uc.setState(submission.KindTransfers, submission.StateFailed)
		return submission.TransferResult{}, oerr
	}

	uc.cart.Clear()
	uc.setState(submission.KindTransfers, submission.StateSucceeded)
	uc.status.Success(fmt.Sprintf("Transfer request %s submitted successfully!", result.TransferRequestID))
	return result, nil
}

func (uc *SubmitUsecase) authorize(ctx context.Context, sess *session.Session) (string, *OpError) {
	if sess == nil || sess.Owner() == "" {
		oerr := opErr(KindUnauthenticated, "User not authenticated. Cannot submit request.")
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

func transferLines(items []transfercart.Item) []submission.TransferLine {
	out := make([]submission.TransferLine, 0, len(items))
	for _, it := range items {
		out = append(out, submission.TransferLine{
			MfgPartNumber:      it.MfgPartNumber,
			InternalPartNumber: it.InternalPartNumber,
			ItemDescription:    it.ItemDescription,
			Quantity:           it.Quantity,
			Notes:              it.Notes,
		})
	}
	return out
}
