// internal/application/usecase/usecase_test.go
package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"stockroom/internal/application/status"
	"stockroom/internal/domain/activeorder"
	prefdom "stockroom/internal/domain/preferences"
	"stockroom/internal/domain/remote"
	"stockroom/internal/domain/session"
	"stockroom/internal/domain/submission"
)

// Shared fakes for the orchestration tests.

type fakeCreds struct {
	err   error
	calls int
}

func (f *fakeCreds) Acquire(_ context.Context, _ session.Principal) (session.Credential, error) {
	f.calls++
	if f.err != nil {
		return session.Credential{}, f.err
	}
	return session.Credential{AccessToken: "tok", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

type fakeGateway struct {
	item  *activeorder.Item
	items []activeorder.Item
	err   error

	calls   []string
	lastQty int
}

func (g *fakeGateway) AddItem(_ context.Context, _, _ string, _ activeorder.AddItemInput) (*activeorder.Item, error) {
	g.calls = append(g.calls, "add")
	return g.item, g.err
}

func (g *fakeGateway) RemoveItem(_ context.Context, _, _ string, _ int64) error {
	g.calls = append(g.calls, "remove")
	return g.err
}

func (g *fakeGateway) UpdateQuantity(_ context.Context, _, _ string, _ int64, qty int) error {
	g.calls = append(g.calls, "update")
	g.lastQty = qty
	return g.err
}

func (g *fakeGateway) ClearAll(_ context.Context, _, _ string) error {
	g.calls = append(g.calls, "clear")
	return g.err
}

func (g *fakeGateway) ListItems(_ context.Context, _, _ string) ([]activeorder.Item, error) {
	g.calls = append(g.calls, "list")
	return g.items, g.err
}

type fakeSubmitter struct {
	ordersResult   submission.OrdersResult
	transferResult submission.TransferResult
	err            error

	calls        int
	lastTransfer submission.TransferInput
}

func (s *fakeSubmitter) SubmitOrders(_ context.Context, _, _ string, _ submission.OrdersInput) (submission.OrdersResult, error) {
	s.calls++
	if s.err != nil {
		return submission.OrdersResult{}, s.err
	}
	return s.ordersResult, nil
}

func (s *fakeSubmitter) SubmitTransfer(_ context.Context, _, _ string, in submission.TransferInput) (submission.TransferResult, error) {
	s.calls++
	s.lastTransfer = in
	if s.err != nil {
		return submission.TransferResult{}, s.err
	}
	return s.transferResult, nil
}

type fakeStore struct {
	prefs prefdom.Preferences
	err   error
}

func (s *fakeStore) Fetch(_ context.Context, _, _ string) (prefdom.Preferences, error) {
	return s.prefs, s.err
}

func (s *fakeStore) Save(_ context.Context, _, _ string, p prefdom.Preferences) (prefdom.Preferences, error) {
	if s.err != nil {
		return prefdom.Preferences{}, s.err
	}
	s.prefs = p
	return p, nil
}

type fakeMailer struct {
	err   error
	calls int
	to    string
}

func (m *fakeMailer) SendOrderSubmitted(_ context.Context, to string, _ submission.OrdersResult, _ string) error {
	m.calls++
	m.to = to
	return m.err
}

// statusRecorder wraps a channel and counts every publication.
type statusRecorder struct {
	ch   *status.Channel
	seen []status.Notification
}

func newStatusRecorder() *statusRecorder {
	r := &statusRecorder{ch: status.NewChannel(time.Minute)}
	r.ch.Watch(func(n *status.Notification) {
		if n != nil {
			r.seen = append(r.seen, *n)
		}
	})
	return r
}

func testSession(t *testing.T) *session.Session {
	t.Helper()
	p, err := session.NewPrincipal("u@x.com", "U", "")
	if err != nil {
		t.Fatalf("principal: %v", err)
	}
	sess, err := session.NewSession(p, time.Now())
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	return sess
}

func rejected(status int, detail string) error {
	return &remote.Error{Status: status, StatusText: "x", Detail: detail}
}

var errBoom = errors.New("connection refused")
