package repos

import (
	"github.com/jmoiron/sqlx"
)

type WishlistRepo struct{ db *sqlx.DB }

func NewWishlistRepo(db *sqlx.DB) *WishlistRepo { return &WishlistRepo{db: db} }

func (r *WishlistRepo) Add(userID, cardID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO wishlists(user_id, card_id, created_at)
	  VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(user_id, card_id) DO NOTHING
	`, userID, cardID)
	return err
}

// RemoveIfPresent deletes the entry and reports whether one existed.
func (r *WishlistRepo) RemoveIfPresent(userID, cardID string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM wishlists WHERE user_id = ? AND card_id = ?`, userID, cardID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

type WishlistRow struct {
	CardID  string `db:"card_id"`
	Name    string `db:"name"`
	SetCode string `db:"set_code"`
	Rarity  string `db:"rarity"`
}

func (r *WishlistRepo) List(userID string) ([]WishlistRow, error) {
	var out []WishlistRow
	err := r.db.Select(&out, `
	  SELECT w.card_id, c.name, c.set_code, c.rarity
	  FROM wishlists w
	  JOIN cards c ON c.id = w.card_id
	  WHERE w.user_id = ?
	  ORDER BY c.name
	`, userID)
	return out, err
}
