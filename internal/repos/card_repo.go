package repos

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"tradebinder/internal/domain"
)

type CardRepo struct{ db *sqlx.DB }

func NewCardRepo(db *sqlx.DB) *CardRepo { return &CardRepo{db: db} }

func (r *CardRepo) Get(id string) (domain.Card, error) {
	var c domain.Card
	err := r.db.Get(&c, `
	  SELECT id, name, set_code, number, rarity
	  FROM cards
	  WHERE id = ?
	`, id)
	return c, err
}

// Search filters the catalog by name substring and/or set code.
func (r *CardRepo) Search(q, setCode string, limit, offset int) ([]domain.Card, error) {
	where := `1=1`
	args := []any{}
	if q != "" {
		where += ` AND LOWER(name) LIKE ?`
		args = append(args, "%"+strings.ToLower(q)+"%")
	}
	if setCode != "" {
		where += ` AND set_code = ?`
		args = append(args, setCode)
	}

	sql := `
	  SELECT id, name, set_code, number, rarity
	  FROM cards
	  WHERE ` + where + `
	  ORDER BY set_code, number
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Card
	err := r.db.Select(&out, sql, args...)
	return out, err
}
