package services_test

import (
	"testing"

	"tradebinder/internal/domain"
	"tradebinder/internal/repos"
	"tradebinder/internal/services"
)

func TestReevaluate_GrantAndRevoke(t *testing.T) {
	f := newFixture(t)
	svc := services.NewAchievementService(f.ach, f.inv, f.trades)

	// Alice owns one card: First Card unlocks, nothing else.
	rc, err := svc.Reevaluate("u-alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(rc.Unlocked) != 1 || rc.Unlocked[0] != "First Card" {
		t.Fatalf("want [First Card] unlocked, got %v", rc.Unlocked)
	}

	// Second run is a no-op.
	rc, err = svc.Reevaluate("u-alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(rc.Unlocked) != 0 || len(rc.Revoked) != 0 {
		t.Fatalf("second run should report no deltas, got %+v", rc)
	}

	// Her collection empties out; the threshold no longer holds.
	if err := f.inv.SetQty("u-alice", "card-a", domain.CondNearMint, domain.VariantNormal, 0); err != nil {
		t.Fatal(err)
	}
	rc, err = svc.Reevaluate("u-alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(rc.Revoked) != 1 || rc.Revoked[0] != "First Card" {
		t.Fatalf("want [First Card] revoked, got %v", rc.Revoked)
	}
}

func TestReevaluate_UniqueCardsThreshold(t *testing.T) {
	f := newFixture(t)
	svc := services.NewAchievementService(f.ach, f.inv, f.trades)

	// Ten distinct cards unlock Curator.
	for i := 0; i < 10; i++ {
		id := string(rune('a'+i)) + "-card"
		if _, err := f.db.Exec(`INSERT INTO cards(id,name,set_code,number,rarity) VALUES(?,?,?,?,?)`,
			id, "Filler "+id, "SVX", "000", "Common"); err != nil {
			t.Fatal(err)
		}
		if err := f.inv.SetQty("u-carol", id, domain.CondNearMint, domain.VariantNormal, 1); err != nil {
			t.Fatal(err)
		}
	}

	rc, err := svc.Reevaluate("u-carol")
	if err != nil {
		t.Fatal(err)
	}
	held, err := f.ach.Unlocked("u-carol")
	if err != nil {
		t.Fatal(err)
	}
	if !held["ach-curator-10"] {
		t.Fatalf("carol should hold ach-curator-10, unlocked %v", rc.Unlocked)
	}
}

var _ services.AccomplishmentEngine = (*services.AchievementService)(nil)
var _ services.WishlistStore = (*repos.WishlistRepo)(nil)
var _ services.RelationshipStore = (*repos.FriendRepo)(nil)
