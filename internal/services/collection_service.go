package services

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"tradebinder/internal/domain"
	"tradebinder/internal/repos"
	"tradebinder/internal/variant"
)

// CollectionService handles direct edits to a user's collection: adding
// pulls/purchases and removing cards. It uses the same inventory primitives
// as settlement, so the uniqueness and delete-at-zero invariants hold on
// both paths.
type CollectionService struct {
	DB    *sqlx.DB
	Inv   *repos.InventoryRepo
	Cards *repos.CardRepo
}

func NewCollectionService(db *sqlx.DB, inv *repos.InventoryRepo, cards *repos.CardRepo) *CollectionService {
	return &CollectionService{DB: db, Inv: inv, Cards: cards}
}

func (s *CollectionService) Add(userID, cardID string, cond domain.Condition, foil bool, qty int) error {
	card, err := s.Cards.Get(cardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCardUnknown
		}
		return err
	}
	v := variant.Resolve(card, foil)
	return s.Inv.Add(s.DB, userID, cardID, cond, v, qty)
}

func (s *CollectionService) Remove(userID, cardID string, cond domain.Condition, foil bool, qty int) error {
	card, err := s.Cards.Get(cardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCardUnknown
		}
		return err
	}
	v := variant.Resolve(card, foil)
	if err := s.Inv.Decrement(s.DB, userID, cardID, cond, v, qty); err != nil {
		if errors.Is(err, repos.ErrInsufficient) {
			return &InsufficientInventoryError{CardID: cardID}
		}
		return err
	}
	return nil
}

func (s *CollectionService) List(userID string) ([]repos.InventoryRow, error) {
	return s.Inv.ListByUser(userID)
}
