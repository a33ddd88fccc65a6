package services_test

import (
	"errors"
	"testing"

	"tradebinder/internal/domain"
	"tradebinder/internal/services"
)

func TestPropose_NotConnected(t *testing.T) {
	f := newFixture(t)

	_, err := f.trade.Propose("u-alice", "u-carol", "", oneOf("card-a", 1), nil)
	if !errors.Is(err, services.ErrNotConnected) {
		t.Fatalf("want ErrNotConnected, got %v", err)
	}
}

func TestPropose_SelfTrade(t *testing.T) {
	f := newFixture(t)

	_, err := f.trade.Propose("u-alice", "u-alice", "", oneOf("card-a", 1), nil)
	if !errors.Is(err, services.ErrSelfTrade) {
		t.Fatalf("want ErrSelfTrade, got %v", err)
	}
}

func TestPropose_UnknownCard(t *testing.T) {
	f := newFixture(t)

	_, err := f.trade.Propose("u-alice", "u-bob", "", oneOf("card-nope", 1), nil)
	if !errors.Is(err, services.ErrCardUnknown) {
		t.Fatalf("want ErrCardUnknown, got %v", err)
	}
}

func TestPropose_InsufficientOffered(t *testing.T) {
	f := newFixture(t)

	// Alice owns a single card-a.
	_, err := f.trade.Propose("u-alice", "u-bob", "", oneOf("card-a", 2), nil)
	var insufficient *services.InsufficientInventoryError
	if !errors.As(err, &insufficient) {
		t.Fatalf("want InsufficientInventoryError, got %v", err)
	}
	if insufficient.CardID != "card-a" {
		t.Fatalf("error should name card-a, got %s", insufficient.CardID)
	}
}

// Ownership is checked per card family: quantities aggregate across
// condition/variant rows.
func TestPropose_FamilyAggregation(t *testing.T) {
	f := newFixture(t)

	// Give Alice a second copy of card-a in a different condition.
	if err := f.inv.SetQty("u-alice", "card-a", domain.CondLightlyPlayed, domain.VariantNormal, 1); err != nil {
		t.Fatal(err)
	}

	tr, err := f.trade.Propose("u-alice", "u-bob", "", oneOf("card-a", 2), nil)
	if err != nil {
		t.Fatalf("aggregate of 2 copies should satisfy qty 2: %v", err)
	}
	if tr.Status != domain.TradePending {
		t.Fatalf("want PENDING, got %s", tr.Status)
	}
}

// Two lines for the same card and condition may differ only in the foil
// hint; both survive as distinct items.
func TestPropose_FoilAndPlainLinesOfSameCard(t *testing.T) {
	f := newFixture(t)

	// A second copy so the aggregate check is satisfied for qty 2.
	if err := f.inv.SetQty("u-alice", "card-a", domain.CondLightlyPlayed, domain.VariantNormal, 1); err != nil {
		t.Fatal(err)
	}

	offered := []services.ItemSpec{
		{CardID: "card-a", Qty: 1, Condition: domain.CondNearMint, Foil: false},
		{CardID: "card-a", Qty: 1, Condition: domain.CondNearMint, Foil: true},
	}
	tr, err := f.trade.Propose("u-alice", "u-bob", "", offered, nil)
	if err != nil {
		t.Fatalf("foil and plain lines of the same card should coexist: %v", err)
	}

	items, err := f.trades.Items(tr.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 items, got %d", len(items))
	}
	if items[0].Foil == items[1].Foil {
		t.Fatalf("lines should differ in foil, got %v and %v", items[0].Foil, items[1].Foil)
	}
}

// The requested side is deliberately not validated at proposal time.
func TestPropose_RequestedSideNotChecked(t *testing.T) {
	f := newFixture(t)

	// Bob owns no card-ex at all; the proposal still goes through.
	if _, err := f.trade.Propose("u-alice", "u-bob", "", oneOf("card-a", 1), oneOf("card-ex", 1)); err != nil {
		t.Fatalf("requested side should not be validated at proposal time: %v", err)
	}
}
