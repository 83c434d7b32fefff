// internal/application/usecase/submit_usecase_test.go
package usecase

import (
	"context"
	"strings"
	"testing"

	"stockroom/internal/application/status"
	prefdom "stockroom/internal/domain/preferences"
	"stockroom/internal/domain/submission"
	"stockroom/internal/domain/transfercart"
)

func TestSubmitTransfer(t *testing.T) {
	t.Run("empty cart never issues a network call", func(t *testing.T) {
		rec := newStatusRecorder()
		sub := &fakeSubmitter{}
		creds := &fakeCreds{}
		uc := NewSubmitUsecase(sub, creds, rec.ch, transfercart.New(), nil, nil)

		_, oerr := uc.SubmitTransfer(context.Background(), testSession(t), "")
		if oerr == nil || oerr.Kind != KindValidationLocal {
			t.Fatalf("expected local validation failure, got %+v", oerr)
		}
		if sub.calls != 0 || creds.calls != 0 {
			t.Fatal("no credential or network call may happen for an empty cart")
		}
		if rec.seen[0].Message != "Transfer cart is empty." {
			t.Fatalf("unexpected message: %q", rec.seen[0].Message)
		}
		if uc.StateOf(submission.KindTransfers) != submission.StateFailed {
			t.Fatalf("unexpected state: %v", uc.StateOf(submission.KindTransfers))
		}
	})

	t.Run("success clears the cart exactly once", func(t *testing.T) {
		rec := newStatusRecorder()
		cart := transfercart.New()
		cart.AddItem("A1", "I1", "Widget", 3, "")
		cart.SetBranches("B1", "B2")
		sub := &fakeSubmitter{transferResult: submission.TransferResult{TransferRequestID: "T-9"}}
		uc := NewSubmitUsecase(sub, &fakeCreds{}, rec.ch, cart, nil, nil)

		res, oerr := uc.SubmitTransfer(context.Background(), testSession(t), "moving stock")
		if oerr != nil {
			t.Fatalf("unexpected error: %v", oerr)
		}
		if res.TransferRequestID != "T-9" {
			t.Fatalf("unexpected result: %+v", res)
		}
		if cart.Len() != 0 || cart.RequestingBranch != "" || cart.DestinationBranch != "" {
			t.Fatalf("cart not reset to zero state: %+v", cart)
		}
		if sub.lastTransfer.RequestingBranchID != "B1" || sub.lastTransfer.DestinationBranchID != "B2" {
			t.Fatalf("payload branches wrong: %+v", sub.lastTransfer)
		}
		if len(sub.lastTransfer.Items) != 1 || sub.lastTransfer.Items[0].Quantity != 3 {
			t.Fatalf("payload items wrong: %+v", sub.lastTransfer.Items)
		}
		if rec.seen[0].Message != "Transfer request T-9 submitted successfully!" {
			t.Fatalf("unexpected message: %q", rec.seen[0].Message)
		}
		if uc.StateOf(submission.KindTransfers) != submission.StateSucceeded {
			t.Fatalf("unexpected state: %v", uc.StateOf(submission.KindTransfers))
		}
	})

	t.Run("failure never touches the cart", func(t *testing.T) {
		rec := newStatusRecorder()
		cart := transfercart.New()
		cart.AddItem("A1", "", "Widget", 3, "")
		cart.SetBranches("B1", "B2")
		uc := NewSubmitUsecase(&fakeSubmitter{err: rejected(422, "destination branch is closed")}, &fakeCreds{}, rec.ch, cart, nil, nil)

		_, oerr := uc.SubmitTransfer(context.Background(), testSession(t), "")
		if oerr == nil || oerr.Kind != KindRemoteRejected {
			t.Fatalf("expected remote rejection, got %+v", oerr)
		}
		if cart.Len() != 1 || cart.RequestingBranch != "B1" {
			t.Fatalf("failure must not clear the cart: %+v", cart)
		}
		if rec.seen[0].Message != "destination branch is closed" {
			t.Fatalf("unexpected message: %q", rec.seen[0].Message)
		}
	})
}

func TestSubmitOrders(t *testing.T) {
	ids := submission.OrdersResult{OrderRequestIDs: []string{"42"}}

	newUC := func(t *testing.T) (*SubmitUsecase, *statusRecorder) {
		t.Helper()
		rec := newStatusRecorder()
		uc := NewSubmitUsecase(&fakeSubmitter{ordersResult: ids}, &fakeCreds{}, rec.ch, transfercart.New(), nil, nil)
		return uc, rec
	}

	t.Run("deep link enabled with base URL", func(t *testing.T) {
		uc, rec := newUC(t)
		sess := testSession(t)
		sess.SetPreferences(prefdom.Preferences{
			TeamsDeepLinkOrderRequestEnabled: true,
			TeamsDeepLinkURLOrderRequest:     "https://flow/x?sig=1",
		})

		_, oerr := uc.SubmitOrders(context.Background(), sess, submission.OrdersInput{})
		if oerr != nil {
			t.Fatalf("unexpected error: %v", oerr)
		}
		msg := rec.seen[0].Message
		if !strings.Contains(msg, "orderRequestIds=42") || !strings.Contains(msg, "submittedBy=u%40x.com") {
			t.Fatalf("deep link parameters missing: %q", msg)
		}
		if !strings.Contains(msg, "Notify Approver via Teams") {
			t.Fatalf("actionable link missing: %q", msg)
		}
		if uc.StateOf(submission.KindOrders) != submission.StateSucceeded {
			t.Fatalf("unexpected state: %v", uc.StateOf(submission.KindOrders))
		}
	})

	t.Run("deep link enabled without base URL still succeeds", func(t *testing.T) {
		uc, rec := newUC(t)
		sess := testSession(t)
		sess.SetPreferences(prefdom.Preferences{TeamsDeepLinkOrderRequestEnabled: true})

		res, oerr := uc.SubmitOrders(context.Background(), sess, submission.OrdersInput{})
		if oerr != nil {
			t.Fatalf("submission must succeed without a configured URL: %v", oerr)
		}
		if len(res.OrderRequestIDs) != 1 {
			t.Fatalf("unexpected result: %+v", res)
		}
		if rec.seen[0].Kind != status.KindSuccess ||
			!strings.Contains(rec.seen[0].Message, "Configure Teams deep link URL") {
			t.Fatalf("expected configuration hint, got %+v", rec.seen[0])
		}
	})

	t.Run("deep link disabled publishes plain success", func(t *testing.T) {
		uc, rec := newUC(t)
		sess := testSession(t)

		_, oerr := uc.SubmitOrders(context.Background(), sess, submission.OrdersInput{})
		if oerr != nil {
			t.Fatalf("unexpected error: %v", oerr)
		}
		if rec.seen[0].Message != "Order request 42 submitted successfully!" {
			t.Fatalf("unexpected message: %q", rec.seen[0].Message)
		}
	})

	t.Run("rejection surfaces detail and fails the state", func(t *testing.T) {
		rec := newStatusRecorder()
		sub := &fakeSubmitter{err: rejected(400, "active order is empty")}
		uc := NewSubmitUsecase(sub, &fakeCreds{}, rec.ch, transfercart.New(), nil, nil)

		_, oerr := uc.SubmitOrders(context.Background(), testSession(t), submission.OrdersInput{})
		if oerr == nil || oerr.Kind != KindRemoteRejected {
			t.Fatalf("expected remote rejection, got %+v", oerr)
		}
		if rec.seen[0].Message != "active order is empty" {
			t.Fatalf("unexpected message: %q", rec.seen[0].Message)
		}
		if uc.StateOf(submission.KindOrders) != submission.StateFailed {
			t.Fatalf("unexpected state: %v", uc.StateOf(submission.KindOrders))
		}
	})

	t.Run("nil session fails before credentials", func(t *testing.T) {
		rec := newStatusRecorder()
		creds := &fakeCreds{}
		uc := NewSubmitUsecase(&fakeSubmitter{}, creds, rec.ch, transfercart.New(), nil, nil)

		_, oerr := uc.SubmitOrders(context.Background(), nil, submission.OrdersInput{})
		if oerr == nil || oerr.Kind != KindUnauthenticated {
			t.Fatalf("expected unauthenticated, got %+v", oerr)
		}
		if creds.calls != 0 {
			t.Fatal("no credential call without a principal")
		}
	})
}

func TestSubmitOrdersMailNotification(t *testing.T) {
	ids := submission.OrdersResult{OrderRequestIDs: []string{"42"}}

	t.Run("enabled preference triggers the mailer", func(t *testing.T) {
		rec := newStatusRecorder()
		mailer := &fakeMailer{}
		uc := NewSubmitUsecase(&fakeSubmitter{ordersResult: ids}, &fakeCreds{}, rec.ch, transfercart.New(), mailer, nil)
		sess := testSession(t)
		sess.SetPreferences(prefdom.Preferences{EmailNotifyOrderRequestEnabled: true})

		_, oerr := uc.SubmitOrders(context.Background(), sess, submission.OrdersInput{})
		if oerr != nil {
			t.Fatalf("unexpected error: %v", oerr)
		}
		if mailer.calls != 1 || mailer.to != "u@x.com" {
			t.Fatalf("mailer not invoked as expected: %+v", mailer)
		}
	})

	t.Run("mailer failure never fails the submission", func(t *testing.T) {
		rec := newStatusRecorder()
		mailer := &fakeMailer{err: errBoom}
		uc := NewSubmitUsecase(&fakeSubmitter{ordersResult: ids}, &fakeCreds{}, rec.ch, transfercart.New(), mailer, nil)
		sess := testSession(t)
		sess.SetPreferences(prefdom.Preferences{EmailNotifyOrderRequestEnabled: true})

		_, oerr := uc.SubmitOrders(context.Background(), sess, submission.OrdersInput{})
		if oerr != nil {
			t.Fatalf("mail delivery is independent of submission: %v", oerr)
		}
		if rec.seen[0].Kind != status.KindSuccess {
			t.Fatalf("expected success notification, got %+v", rec.seen[0])
		}
	})

	t.Run("disabled preference skips the mailer", func(t *testing.T) {
		rec := newStatusRecorder()
		mailer := &fakeMailer{}
		uc := NewSubmitUsecase(&fakeSubmitter{ordersResult: ids}, &fakeCreds{}, rec.ch, transfercart.New(), mailer, nil)

		_, oerr := uc.SubmitOrders(context.Background(), testSession(t), submission.OrdersInput{})
		if oerr != nil {
			t.Fatalf("unexpected error: %v", oerr)
		}
		if mailer.calls != 0 {
			t.Fatal("mailer must not run when the preference is off")
		}
	})
}
