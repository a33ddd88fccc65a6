package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo users/cards/collections if DB is empty (idempotent).
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	if err := SeedAchievements(db); err != nil {
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates all tables; exported so tests can run it against an
// in-memory database.
func EnsureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Friendships: one row per accepted connection, stored both directions
-- are NOT duplicated; AreConnected checks (a,b) OR (b,a).
CREATE TABLE IF NOT EXISTS friendships(
  user_a TEXT NOT NULL REFERENCES users(id),
  user_b TEXT NOT NULL REFERENCES users(id),
  status TEXT NOT NULL DEFAULT 'ACCEPTED' CHECK (status IN ('PENDING','ACCEPTED')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY(user_a, user_b)
);

-- Card catalog (populated by the upstream sync job; seeded here for demo)
CREATE TABLE IF NOT EXISTS cards(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  set_code TEXT NOT NULL,
  number TEXT NOT NULL,
  rarity TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_cards_name ON cards(LOWER(name));

-- Inventory: one row per (owner, card, condition, variant); qty 0 rows
-- are deleted, never stored.
CREATE TABLE IF NOT EXISTS inventory(
  user_id TEXT NOT NULL REFERENCES users(id),
  card_id TEXT NOT NULL REFERENCES cards(id),
  condition TEXT NOT NULL CHECK (condition IN
    ('MINT','NEAR_MINT','LIGHTLY_PLAYED','MODERATELY_PLAYED','HEAVILY_PLAYED','DAMAGED')),
  variant TEXT NOT NULL CHECK (variant IN
    ('NORMAL','HOLO','REVERSE_HOLO','POKEBALL_PATTERN','MASTERBALL_PATTERN','FIRST_EDITION')),
  qty INTEGER NOT NULL CHECK (qty > 0),
  PRIMARY KEY(user_id, card_id, condition, variant)
);
CREATE INDEX IF NOT EXISTS idx_inventory_user ON inventory(user_id);
CREATE INDEX IF NOT EXISTS idx_inventory_card ON inventory(card_id);

-- Wishlists
CREATE TABLE IF NOT EXISTS wishlists(
  user_id TEXT NOT NULL REFERENCES users(id),
  card_id TEXT NOT NULL REFERENCES cards(id),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY(user_id, card_id)
);

-- Trades are audit rows: status changes, never deletes.
CREATE TABLE IF NOT EXISTS trades(
  id TEXT PRIMARY KEY,
  initiator_id TEXT NOT NULL REFERENCES users(id),
  recipient_id TEXT NOT NULL REFERENCES users(id),
  status TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN
    ('PENDING','ACCEPTED','DECLINED','CANCELLED','EXPIRED','COMPLETED')),
  initiator_message TEXT NOT NULL DEFAULT '',
  recipient_message TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
  expires_at TEXT NOT NULL,
  CHECK (initiator_id <> recipient_id)
);
CREATE INDEX IF NOT EXISTS idx_trades_initiator ON trades(initiator_id);
CREATE INDEX IF NOT EXISTS idx_trades_recipient ON trades(recipient_id);
CREATE INDEX IF NOT EXISTS idx_trades_status ON trades(status);

CREATE TABLE IF NOT EXISTS trade_items(
  trade_id TEXT NOT NULL REFERENCES trades(id),
  owner_id TEXT NOT NULL REFERENCES users(id),
  card_id TEXT NOT NULL REFERENCES cards(id),
  qty INTEGER NOT NULL CHECK (qty >= 1),
  condition TEXT NOT NULL,
  foil INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY (trade_id, owner_id, card_id, condition, foil)
);

-- Accomplishments
CREATE TABLE IF NOT EXISTS achievements(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  kind TEXT NOT NULL CHECK (kind IN ('TOTAL_CARDS','UNIQUE_CARDS','TRADES_COMPLETED')),
  threshold INTEGER NOT NULL CHECK (threshold >= 1)
);

CREATE TABLE IF NOT EXISTS user_achievements(
  user_id TEXT NOT NULL REFERENCES users(id),
  achievement_id TEXT NOT NULL REFERENCES achievements(id),
  unlocked_at TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY(user_id, achievement_id)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo users/cards/collections")

	type u struct {
		ID, Email, Name, Hash string
	}
	mk := func(id, email, name, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Hash: string(h)}
	}
	users := []u{
		mk("u-alice", "alice@tradebinder.test", "Alice", "Passw0rd!"),
		mk("u-bob", "bob@tradebinder.test", "Bob", "Passw0rd!"),
		mk("u-carol", "carol@tradebinder.test", "Carol", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`INSERT INTO users(id,email,name,password_hash) VALUES(?,?,?,?)`,
			x.ID, x.Email, x.Name, x.Hash); err != nil {
			return err
		}
	}

	tx.MustExec(`INSERT INTO friendships(user_a,user_b,status) VALUES
	  ('u-alice','u-bob','ACCEPTED'),
	  ('u-bob','u-carol','ACCEPTED')`)

	tx.MustExec(`INSERT INTO cards(id,name,set_code,number,rarity) VALUES
	  ('sv1-001','Sprigatito','SV1','001','Common'),
	  ('sv1-086','Alakazam ex','SV1','086','Double Rare'),
	  ('sv1-125','Pidgey','SV1','125','Common'),
	  ('sv2-023','Charizard','SV2','023','Rare Holo'),
	  ('sv3-201','Gardevoir','SV3','201','Special Illustration Rare'),
	  ('sv3-091','Iono','SV3','091','Ultra Rare'),
	  ('bs-004','Machamp','BS','004','Rare Holo')`)

	tx.MustExec(`INSERT INTO inventory(user_id,card_id,condition,variant,qty) VALUES
	  ('u-alice','sv1-001','NEAR_MINT','NORMAL',3),
	  ('u-alice','sv1-086','MINT','HOLO',1),
	  ('u-alice','sv2-023','LIGHTLY_PLAYED','HOLO',2),
	  ('u-bob','sv1-125','NEAR_MINT','NORMAL',4),
	  ('u-bob','sv3-091','MINT','HOLO',1),
	  ('u-carol','bs-004','HEAVILY_PLAYED','HOLO',1)`)

	tx.MustExec(`INSERT INTO wishlists(user_id,card_id) VALUES
	  ('u-alice','sv3-091'),
	  ('u-bob','sv1-086'),
	  ('u-bob','sv2-023')`)

	return tx.Commit()
}

// SeedAchievements ensures the baseline accomplishment definitions exist.
// Safe to run on every startup (idempotent).
func SeedAchievements(db *sqlx.DB) error {
	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	rows := []struct {
		id, name, desc, kind string
		threshold            int
	}{
		{"ach-first-card", "First Card", "Own at least one card", "TOTAL_CARDS", 1},
		{"ach-collector-25", "Collector", "Own 25 cards", "TOTAL_CARDS", 25},
		{"ach-hoarder-100", "Hoarder", "Own 100 cards", "TOTAL_CARDS", 100},
		{"ach-curator-10", "Curator", "Own 10 distinct cards", "UNIQUE_CARDS", 10},
		{"ach-first-trade", "Dealmaker", "Complete a trade", "TRADES_COMPLETED", 1},
		{"ach-trader-10", "Merchant", "Complete 10 trades", "TRADES_COMPLETED", 10},
	}
	for _, a := range rows {
		if _, err := tx.Exec(`
			INSERT INTO achievements(id,name,description,kind,threshold)
			VALUES(?,?,?,?,?)
			ON CONFLICT(id) DO NOTHING
		`, a.id, a.name, a.desc, a.kind, a.threshold); err != nil {
			return err
		}
	}

	return tx.Commit()
}
