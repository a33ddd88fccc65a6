package services

import (
	"database/sql"
	"errors"

	"tradebinder/internal/repos"
)

type WishlistService struct {
	Repo  *repos.WishlistRepo
	Cards *repos.CardRepo
}

func NewWishlistService(r *repos.WishlistRepo, cards *repos.CardRepo) *WishlistService {
	return &WishlistService{Repo: r, Cards: cards}
}

func (s *WishlistService) Save(userID, cardID string) error {
	if _, err := s.Cards.Get(cardID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCardUnknown
		}
		return err
	}
	return s.Repo.Add(userID, cardID)
}

func (s *WishlistService) Unsave(userID, cardID string) error {
	_, err := s.Repo.RemoveIfPresent(userID, cardID)
	return err
}

func (s *WishlistService) List(userID string) ([]repos.WishlistRow, error) {
	return s.Repo.List(userID)
}
