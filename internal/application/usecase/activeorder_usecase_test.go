// internal/application/usecase/activeorder_usecase_test.go
package usecase

import (
	"context"
	"testing"

	"stockroom/internal/application/status"
	"stockroom/internal/domain/activeorder"
	"stockroom/internal/domain/session"
)

func TestAddItemOrchestration(t *testing.T) {
	input := activeorder.AddItemInput{
		MfgPartNumber:     "A1",
		ItemDescription:   "Widget",
		QuantityRequested: 3,
		RequestingBranch:  "B1",
	}

	t.Run("success returns item and exactly one success notification", func(t *testing.T) {
		rec := newStatusRecorder()
		gw := &fakeGateway{item: &activeorder.Item{
			OrderRequestItemID: 101,
			MfgPartNumber:      "A1",
			ItemDescription:    "Widget",
			QuantityRequested:  3,
		}}
		uc := NewActiveOrderUsecase(gw, &fakeCreds{}, rec.ch, nil)

		out, oerr := uc.AddItem(context.Background(), testSession(t), input)
		if oerr != nil {
			t.Fatalf("unexpected error: %v", oerr)
		}
		if out.Item == nil || out.Item.MfgPartNumber != "A1" || out.Item.QuantityRequested != 3 {
			t.Fatalf("item fields do not match input: %+v", out.Item)
		}
		if !out.MustRefetch {
			t.Fatal("success must mark MustRefetch")
		}
		if len(rec.seen) != 1 {
			t.Fatalf("expected exactly one notification, got %d", len(rec.seen))
		}
		if rec.seen[0].Kind != status.KindSuccess || rec.seen[0].Message != "Widget added to active order." {
			t.Fatalf("unexpected notification: %+v", rec.seen[0])
		}
	})

	t.Run("remote rejection surfaces detail verbatim", func(t *testing.T) {
		rec := newStatusRecorder()
		gw := &fakeGateway{err: rejected(409, "item already on an open request")}
		uc := NewActiveOrderUsecase(gw, &fakeCreds{}, rec.ch, nil)

		out, oerr := uc.AddItem(context.Background(), testSession(t), input)
		if oerr == nil || oerr.Kind != KindRemoteRejected {
			t.Fatalf("expected remote rejection, got %+v", oerr)
		}
		if out.Item != nil || out.MustRefetch {
			t.Fatalf("no local state may be assumed on failure: %+v", out)
		}
		if len(rec.seen) != 1 || rec.seen[0].Kind != status.KindError {
			t.Fatalf("expected exactly one error notification, got %+v", rec.seen)
		}
		if rec.seen[0].Message != "item already on an open request" {
			t.Fatalf("detail not surfaced verbatim: %q", rec.seen[0].Message)
		}
	})

	t.Run("rejection without detail falls back to status", func(t *testing.T) {
		rec := newStatusRecorder()
		gw := &fakeGateway{err: rejected(500, "")}
		uc := NewActiveOrderUsecase(gw, &fakeCreds{}, rec.ch, nil)

		_, oerr := uc.AddItem(context.Background(), testSession(t), input)
		if oerr == nil || oerr.Detail != "Failed to add item. Status: 500" {
			t.Fatalf("unexpected detail: %+v", oerr)
		}
	})

	t.Run("nil session never reaches the gateway", func(t *testing.T) {
		rec := newStatusRecorder()
		gw := &fakeGateway{}
		creds := &fakeCreds{}
		uc := NewActiveOrderUsecase(gw, creds, rec.ch, nil)

		_, oerr := uc.AddItem(context.Background(), nil, input)
		if oerr == nil || oerr.Kind != KindUnauthenticated {
			t.Fatalf("expected unauthenticated, got %+v", oerr)
		}
		if len(gw.calls) != 0 || creds.calls != 0 {
			t.Fatal("no credential or network call may be made without a principal")
		}
		if len(rec.seen) != 1 || rec.seen[0].Message != "User not authenticated. Cannot add item to cart." {
			t.Fatalf("unexpected notification: %+v", rec.seen)
		}
	})

	t.Run("interaction required maps to unauthenticated", func(t *testing.T) {
		rec := newStatusRecorder()
		gw := &fakeGateway{}
		uc := NewActiveOrderUsecase(gw, &fakeCreds{err: session.ErrInteractionRequired}, rec.ch, nil)

		_, oerr := uc.AddItem(context.Background(), testSession(t), input)
		if oerr == nil || oerr.Kind != KindUnauthenticated {
			t.Fatalf("expected unauthenticated, got %+v", oerr)
		}
		if len(gw.calls) != 0 {
			t.Fatal("credential failure must stop the operation before the network step")
		}
	})

	t.Run("transient credential failure is retryable", func(t *testing.T) {
		rec := newStatusRecorder()
		uc := NewActiveOrderUsecase(&fakeGateway{}, &fakeCreds{err: session.ErrAuthTransient}, rec.ch, nil)

		_, oerr := uc.AddItem(context.Background(), testSession(t), input)
		if oerr == nil || oerr.Kind != KindAuthTransient {
			t.Fatalf("expected auth transient, got %+v", oerr)
		}
	})

	t.Run("transport failure is remote unreachable", func(t *testing.T) {
		rec := newStatusRecorder()
		uc := NewActiveOrderUsecase(&fakeGateway{err: errBoom}, &fakeCreds{}, rec.ch, nil)

		_, oerr := uc.AddItem(context.Background(), testSession(t), input)
		if oerr == nil || oerr.Kind != KindRemoteUnreachable {
			t.Fatalf("expected remote unreachable, got %+v", oerr)
		}
		if rec.seen[0].Message != "Error adding item to cart: connection refused" {
			t.Fatalf("unexpected message: %q", rec.seen[0].Message)
		}
	})
}

func TestRemoveUpdateClearOrchestration(t *testing.T) {
	t.Run("remove success", func(t *testing.T) {
		rec := newStatusRecorder()
		uc := NewActiveOrderUsecase(&fakeGateway{}, &fakeCreds{}, rec.ch, nil)

		out, oerr := uc.RemoveItem(context.Background(), testSession(t), 42)
		if oerr != nil || !out.MustRefetch {
			t.Fatalf("unexpected outcome: %+v %v", out, oerr)
		}
		if rec.seen[0].Message != "Item removed from active order." {
			t.Fatalf("unexpected message: %q", rec.seen[0].Message)
		}
	})

	t.Run("zero quantity is forwarded unchanged", func(t *testing.T) {
		rec := newStatusRecorder()
		gw := &fakeGateway{}
		uc := NewActiveOrderUsecase(gw, &fakeCreds{}, rec.ch, nil)

		out, oerr := uc.UpdateQuantity(context.Background(), testSession(t), 7, 0)
		if oerr != nil || !out.MustRefetch {
			t.Fatalf("unexpected outcome: %+v %v", out, oerr)
		}
		if gw.lastQty != 0 {
			t.Fatalf("quantity must travel unchanged, got %d", gw.lastQty)
		}
	})

	t.Run("clear success", func(t *testing.T) {
		rec := newStatusRecorder()
		uc := NewActiveOrderUsecase(&fakeGateway{}, &fakeCreds{}, rec.ch, nil)

		_, oerr := uc.ClearAll(context.Background(), testSession(t))
		if oerr != nil {
			t.Fatalf("unexpected error: %v", oerr)
		}
		if rec.seen[0].Message != "Active order cleared." {
			t.Fatalf("unexpected message: %q", rec.seen[0].Message)
		}
	})

	t.Run("list returns authoritative items without a success notification", func(t *testing.T) {
		rec := newStatusRecorder()
		gw := &fakeGateway{items: []activeorder.Item{{OrderRequestItemID: 1}, {OrderRequestItemID: 2}}}
		uc := NewActiveOrderUsecase(gw, &fakeCreds{}, rec.ch, nil)

		items, oerr := uc.ListItems(context.Background(), testSession(t))
		if oerr != nil || len(items) != 2 {
			t.Fatalf("unexpected result: %v %v", items, oerr)
		}
		if len(rec.seen) != 0 {
			t.Fatalf("reads must not publish success notifications: %+v", rec.seen)
		}
	})
}
