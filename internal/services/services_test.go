package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"tradebinder/internal/domain"
	"tradebinder/internal/repos"
	"tradebinder/internal/services"
)

// memdb builds an in-memory database with the real schema and a small cast:
// alice and bob are friends, carol is connected to nobody.
func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// One connection: each sqlite :memory: connection is its own database.
	db.SetMaxOpenConns(1)
	if err := repos.EnsureSchema(db); err != nil {
		t.Fatal(err)
	}
	if err := repos.SeedAchievements(db); err != nil {
		t.Fatal(err)
	}

	seed := `
	INSERT INTO users(id,email,name,password_hash) VALUES
	  ('u-alice','alice@test','Alice','x'),
	  ('u-bob','bob@test','Bob','x'),
	  ('u-carol','carol@test','Carol','x');
	INSERT INTO friendships(user_a,user_b,status) VALUES ('u-alice','u-bob','ACCEPTED');
	INSERT INTO cards(id,name,set_code,number,rarity) VALUES
	  ('card-a','Sprigatito','SV1','001','Common'),
	  ('card-b','Pidgey','SV1','125','Common'),
	  ('card-ex','Alakazam ex','SV1','086','Double Rare');
	INSERT INTO inventory(user_id,card_id,condition,variant,qty) VALUES
	  ('u-alice','card-a','NEAR_MINT','NORMAL',1),
	  ('u-bob','card-b','NEAR_MINT','NORMAL',2);
	INSERT INTO wishlists(user_id,card_id) VALUES ('u-bob','card-a');
	`
	if _, err := db.Exec(seed); err != nil {
		t.Fatal(err)
	}
	return db
}

type fixture struct {
	db     *sqlx.DB
	inv    *repos.InventoryRepo
	trades *repos.TradeRepo
	wish   *repos.WishlistRepo
	ach    *repos.AchievementRepo

	trade      *services.TradeService
	settlement *services.SettlementService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memdb(t)

	inv := repos.NewInventoryRepo(db)
	trades := repos.NewTradeRepo(db)
	cards := repos.NewCardRepo(db)
	wish := repos.NewWishlistRepo(db)
	friends := repos.NewFriendRepo(db)
	ach := repos.NewAchievementRepo(db)

	achSvc := services.NewAchievementService(ach, inv, trades)
	effects := services.NewSideEffectCoordinator(wish, achSvc)

	return &fixture{
		db:     db,
		inv:    inv,
		trades: trades,
		wish:   wish,
		ach:    ach,

		trade:      services.NewTradeService(trades, inv, cards, friends),
		settlement: services.NewSettlementService(db, trades, inv, cards, effects),
	}
}

func (f *fixture) qty(t *testing.T, user, card string, cond domain.Condition, v domain.Variant) int {
	t.Helper()
	n, err := f.inv.Qty(user, card, cond, v)
	if err != nil {
		return 0
	}
	return n
}

func oneOf(card string, qty int) []services.ItemSpec {
	return []services.ItemSpec{{CardID: card, Qty: qty, Condition: domain.CondNearMint}}
}
