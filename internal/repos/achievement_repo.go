package repos

import (
	"github.com/jmoiron/sqlx"
)

type AchievementRepo struct{ db *sqlx.DB }

func NewAchievementRepo(db *sqlx.DB) *AchievementRepo { return &AchievementRepo{db: db} }

type AchievementDef struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Kind      string `db:"kind"`
	Threshold int    `db:"threshold"`
}

func (r *AchievementRepo) Definitions() ([]AchievementDef, error) {
	var out []AchievementDef
	err := r.db.Select(&out, `SELECT id, name, kind, threshold FROM achievements ORDER BY kind, threshold`)
	return out, err
}

// Unlocked returns the ids of achievements the user currently holds.
func (r *AchievementRepo) Unlocked(userID string) (map[string]bool, error) {
	var ids []string
	if err := r.db.Select(&ids, `SELECT achievement_id FROM user_achievements WHERE user_id = ?`, userID); err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (r *AchievementRepo) Grant(userID, achievementID string) error {
	_, err := r.db.Exec(`
		INSERT INTO user_achievements(user_id, achievement_id)
		VALUES(?, ?)
		ON CONFLICT(user_id, achievement_id) DO NOTHING
	`, userID, achievementID)
	return err
}

func (r *AchievementRepo) Revoke(userID, achievementID string) error {
	_, err := r.db.Exec(`DELETE FROM user_achievements WHERE user_id = ? AND achievement_id = ?`, userID, achievementID)
	return err
}
