package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"tradebinder/internal/domain"
	"tradebinder/internal/services"
)

func pendingTrade(t *testing.T, f *fixture) domain.Trade {
	t.Helper()
	tr, err := f.trade.Propose("u-alice", "u-bob", "", oneOf("card-a", 1), oneOf("card-b", 1))
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestLifecycle_AcceptOnlyByRecipient(t *testing.T) {
	f := newFixture(t)
	tr := pendingTrade(t, f)

	if _, err := f.trade.Respond(tr.ID, "u-alice", true, ""); !errors.Is(err, services.ErrUnauthorized) {
		t.Fatalf("initiator accepting own trade: want ErrUnauthorized, got %v", err)
	}
	if _, err := f.trade.Respond(tr.ID, "u-carol", true, ""); !errors.Is(err, services.ErrUnauthorized) {
		t.Fatalf("third party accepting: want ErrUnauthorized, got %v", err)
	}

	got, err := f.trade.Respond(tr.ID, "u-bob", true, "sure")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.TradeAccepted {
		t.Fatalf("want ACCEPTED, got %s", got.Status)
	}
	if got.RecipientMessage != "sure" {
		t.Fatalf("recipient message not stored, got %q", got.RecipientMessage)
	}
}

func TestLifecycle_Decline(t *testing.T) {
	f := newFixture(t)
	tr := pendingTrade(t, f)

	got, err := f.trade.Respond(tr.ID, "u-bob", false, "no thanks")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.TradeDeclined {
		t.Fatalf("want DECLINED, got %s", got.Status)
	}

	// Declined is terminal.
	if _, err := f.trade.Respond(tr.ID, "u-bob", true, ""); err == nil {
		t.Fatal("accept after decline should fail")
	} else {
		var illegal *services.IllegalTransitionError
		if !errors.As(err, &illegal) || illegal.Status != domain.TradeDeclined {
			t.Fatalf("want IllegalTransitionError on DECLINED, got %v", err)
		}
	}
}

func TestLifecycle_CancelOnlyByInitiator(t *testing.T) {
	f := newFixture(t)
	tr := pendingTrade(t, f)

	if _, err := f.trade.Cancel(tr.ID, "u-bob"); !errors.Is(err, services.ErrUnauthorized) {
		t.Fatalf("recipient cancelling: want ErrUnauthorized, got %v", err)
	}

	got, err := f.trade.Cancel(tr.ID, "u-alice")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.TradeCancelled {
		t.Fatalf("want CANCELLED, got %s", got.Status)
	}

	// Cancel only works from pending.
	if _, err := f.trade.Cancel(tr.ID, "u-alice"); err == nil {
		t.Fatal("cancel after cancel should fail")
	}
}

func TestLifecycle_CancelAfterAccept(t *testing.T) {
	f := newFixture(t)
	tr := pendingTrade(t, f)

	if _, err := f.trade.Respond(tr.ID, "u-bob", true, ""); err != nil {
		t.Fatal(err)
	}
	_, err := f.trade.Cancel(tr.ID, "u-alice")
	var illegal *services.IllegalTransitionError
	if !errors.As(err, &illegal) || illegal.Status != domain.TradeAccepted {
		t.Fatalf("cancel of accepted trade: want IllegalTransitionError on ACCEPTED, got %v", err)
	}
}

func TestLifecycle_GetOnlyForParties(t *testing.T) {
	f := newFixture(t)
	tr := pendingTrade(t, f)

	if _, _, err := f.trade.Get(tr.ID, "u-carol"); !errors.Is(err, services.ErrUnauthorized) {
		t.Fatalf("third party reading trade: want ErrUnauthorized, got %v", err)
	}
	_, items, err := f.trade.Get(tr.ID, "u-bob")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 items, got %d", len(items))
	}
}

func TestLifecycle_NotFound(t *testing.T) {
	f := newFixture(t)
	if _, err := f.trade.Respond("no-such-trade", "u-bob", true, ""); !errors.Is(err, services.ErrTradeNotFound) {
		t.Fatalf("want ErrTradeNotFound, got %v", err)
	}
}

// An expired pending trade cannot be accepted; the lazy check flips it to
// EXPIRED in passing.
func TestLifecycle_ExpiredTradeCannotBeAccepted(t *testing.T) {
	f := newFixture(t)

	stale := domain.Trade{
		ID:          uuid.NewString(),
		InitiatorID: "u-alice",
		RecipientID: "u-bob",
		Status:      domain.TradePending,
		ExpiresAt:   time.Now().UTC().Add(-time.Hour).Format(time.RFC3339),
	}
	if err := f.trades.Create(stale, []domain.TradeItem{
		{TradeID: stale.ID, OwnerID: "u-alice", CardID: "card-a", Qty: 1, Condition: domain.CondNearMint},
	}); err != nil {
		t.Fatal(err)
	}

	_, err := f.trade.Respond(stale.ID, "u-bob", true, "")
	var illegal *services.IllegalTransitionError
	if !errors.As(err, &illegal) || illegal.Status != domain.TradeExpired {
		t.Fatalf("want IllegalTransitionError on EXPIRED, got %v", err)
	}

	got, err := f.trades.Get(stale.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.TradeExpired {
		t.Fatalf("trade should be marked EXPIRED, got %s", got.Status)
	}
}

// Cancelling is a transition too: an expired pending trade flips to EXPIRED,
// it never records CANCELLED.
func TestLifecycle_ExpiredTradeCannotBeCancelled(t *testing.T) {
	f := newFixture(t)

	stale := domain.Trade{
		ID:          uuid.NewString(),
		InitiatorID: "u-alice",
		RecipientID: "u-bob",
		Status:      domain.TradePending,
		ExpiresAt:   time.Now().UTC().Add(-time.Hour).Format(time.RFC3339),
	}
	if err := f.trades.Create(stale, nil); err != nil {
		t.Fatal(err)
	}

	_, err := f.trade.Cancel(stale.ID, "u-alice")
	var illegal *services.IllegalTransitionError
	if !errors.As(err, &illegal) || illegal.Status != domain.TradeExpired {
		t.Fatalf("want IllegalTransitionError on EXPIRED, got %v", err)
	}

	got, err := f.trades.Get(stale.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.TradeExpired {
		t.Fatalf("trade should be marked EXPIRED, got %s", got.Status)
	}
}

func TestLifecycle_SweepExpired(t *testing.T) {
	f := newFixture(t)

	stale := domain.Trade{
		ID:          uuid.NewString(),
		InitiatorID: "u-alice",
		RecipientID: "u-bob",
		Status:      domain.TradePending,
		ExpiresAt:   time.Now().UTC().Add(-time.Minute).Format(time.RFC3339),
	}
	if err := f.trades.Create(stale, nil); err != nil {
		t.Fatal(err)
	}
	fresh := pendingTrade(t, f)

	n, err := f.trade.SweepExpired(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("want 1 swept trade, got %d", n)
	}

	got, _ := f.trades.Get(fresh.ID)
	if got.Status != domain.TradePending {
		t.Fatalf("fresh trade should stay PENDING, got %s", got.Status)
	}
}
