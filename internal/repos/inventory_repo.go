package repos

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"tradebinder/internal/domain"
)

// ErrInsufficient means a conditional decrement found fewer copies than
// requested (or no row at all).
var ErrInsufficient = errors.New("insufficient inventory")

type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// Row used by collection pages: inventory joined with card names.
type InventoryRow struct {
	CardID    string `db:"card_id"`
	Name      string `db:"name"`
	SetCode   string `db:"set_code"`
	Condition string `db:"condition"`
	Variant   string `db:"variant"`
	Qty       int    `db:"qty"`
}

// ListByUser returns a user's full collection with card titles.
func (r *InventoryRepo) ListByUser(userID string) ([]InventoryRow, error) {
	var rows []InventoryRow
	err := r.db.Select(&rows, `
		SELECT i.card_id, c.name, c.set_code, i.condition, i.variant, i.qty
		FROM inventory i
		JOIN cards c ON c.id = i.card_id
		WHERE i.user_id = ?
		ORDER BY c.name, i.condition, i.variant
	`, userID)
	return rows, err
}

// Qty returns current quantity for an exact (owner, card, condition, variant)
// row. If no row exists, it returns sql.ErrNoRows from sqlx.Get.
func (r *InventoryRepo) Qty(userID, cardID string, cond domain.Condition, v domain.Variant) (int, error) {
	var qty int
	err := r.db.Get(&qty, `
		SELECT qty FROM inventory
		WHERE user_id = ? AND card_id = ? AND condition = ? AND variant = ?
	`, userID, cardID, cond, v)
	if err != nil {
		return 0, err
	}
	return qty, nil
}

// FamilyQty sums a user's quantity of a card across all condition/variant
// rows. Absence is zero, not an error.
func (r *InventoryRepo) FamilyQty(userID, cardID string) (int, error) {
	var qty int
	err := r.db.Get(&qty, `
		SELECT COALESCE(SUM(qty), 0) FROM inventory
		WHERE user_id = ? AND card_id = ?
	`, userID, cardID)
	if err != nil {
		return 0, err
	}
	return qty, nil
}

// Decrement atomically subtracts "by" copies if enough exist, deleting the
// row when it reaches zero. The quantity check and the write are a single
// conditional UPDATE, so concurrent settlements cannot over-commit.
// q may be the DB or an open transaction.
func (r *InventoryRepo) Decrement(q sqlx.Ext, userID, cardID string, cond domain.Condition, v domain.Variant, by int) error {
	res, err := q.Exec(`
		UPDATE inventory
		SET qty = qty - ?
		WHERE user_id = ? AND card_id = ? AND condition = ? AND variant = ? AND qty > ?
	`, by, userID, cardID, cond, v, by)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	// Exact depletion: the row must go away, never sit at zero.
	res, err = q.Exec(`
		DELETE FROM inventory
		WHERE user_id = ? AND card_id = ? AND condition = ? AND variant = ? AND qty = ?
	`, userID, cardID, cond, v, by)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s has fewer than %d of %s", ErrInsufficient, userID, by, cardID)
	}
	return nil
}

// Add upsert-merges "by" copies into the matching row, creating it if absent.
func (r *InventoryRepo) Add(q sqlx.Ext, userID, cardID string, cond domain.Condition, v domain.Variant, by int) error {
	_, err := q.Exec(`
		INSERT INTO inventory(user_id, card_id, condition, variant, qty)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, card_id, condition, variant)
		DO UPDATE SET qty = inventory.qty + excluded.qty
	`, userID, cardID, cond, v, by)
	return err
}

// SetQty sets the quantity for a row outright; zero deletes it.
func (r *InventoryRepo) SetQty(userID, cardID string, cond domain.Condition, v domain.Variant, qty int) error {
	if qty <= 0 {
		_, err := r.db.Exec(`
			DELETE FROM inventory
			WHERE user_id = ? AND card_id = ? AND condition = ? AND variant = ?
		`, userID, cardID, cond, v)
		return err
	}
	_, err := r.db.Exec(`
		INSERT INTO inventory(user_id, card_id, condition, variant, qty)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, card_id, condition, variant)
		DO UPDATE SET qty = excluded.qty
	`, userID, cardID, cond, v, qty)
	return err
}

// Counts used by the accomplishment engine.
func (r *InventoryRepo) TotalCards(userID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COALESCE(SUM(qty),0) FROM inventory WHERE user_id = ?`, userID)
	return n, err
}

func (r *InventoryRepo) UniqueCards(userID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(DISTINCT card_id) FROM inventory WHERE user_id = ?`, userID)
	return n, err
}
