package repos

import (
	"github.com/jmoiron/sqlx"
)

type FriendRepo struct{ db *sqlx.DB }

func NewFriendRepo(db *sqlx.DB) *FriendRepo { return &FriendRepo{db: db} }

// AreConnected reports whether an accepted friendship exists between the two
// users, in either direction.
func (r *FriendRepo) AreConnected(userA, userB string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
		SELECT COUNT(*) FROM friendships
		WHERE status = 'ACCEPTED'
		  AND ((user_a = ? AND user_b = ?) OR (user_a = ? AND user_b = ?))
	`, userA, userB, userB, userA)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Connect records an accepted friendship (idempotent). Friend-request
// negotiation lives elsewhere; this is the accepted-state primitive.
func (r *FriendRepo) Connect(userA, userB string) error {
	_, err := r.db.Exec(`
		INSERT INTO friendships(user_a, user_b, status)
		VALUES(?, ?, 'ACCEPTED')
		ON CONFLICT(user_a, user_b) DO UPDATE SET status = 'ACCEPTED'
	`, userA, userB)
	return err
}
