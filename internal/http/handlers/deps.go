package handlers

import (
	"github.com/jmoiron/sqlx"

	"tradebinder/internal/repos"
	"tradebinder/internal/services"
)

type Deps struct {
	AuthHandler       *AuthHandler
	CardHandler       *CardHandler
	CollectionHandler *CollectionHandler
	WishlistHandler   *WishlistHandler
	TradeHandler      *TradeHandler

	TradeService *services.TradeService
}

func NewDeps(db *sqlx.DB, auth *services.AuthService) *Deps {
	cardRepo := repos.NewCardRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	tradeRepo := repos.NewTradeRepo(db)
	wishRepo := repos.NewWishlistRepo(db)
	friendRepo := repos.NewFriendRepo(db)
	achRepo := repos.NewAchievementRepo(db)

	collectionSvc := services.NewCollectionService(db, invRepo, cardRepo)
	wishSvc := services.NewWishlistService(wishRepo, cardRepo)
	tradeSvc := services.NewTradeService(tradeRepo, invRepo, cardRepo, friendRepo)
	achSvc := services.NewAchievementService(achRepo, invRepo, tradeRepo)
	effects := services.NewSideEffectCoordinator(wishRepo, achSvc)
	settleSvc := services.NewSettlementService(db, tradeRepo, invRepo, cardRepo, effects)

	return &Deps{
		AuthHandler:       &AuthHandler{Auth: auth},
		CardHandler:       &CardHandler{Cards: cardRepo},
		CollectionHandler: &CollectionHandler{Collection: collectionSvc},
		WishlistHandler:   &WishlistHandler{Wish: wishSvc},
		TradeHandler:      &TradeHandler{Trades: tradeSvc, Settlement: settleSvc},

		TradeService: tradeSvc,
	}
}
