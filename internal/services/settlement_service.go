package services

import (
	"errors"

	"github.com/jmoiron/sqlx"

	"tradebinder/internal/domain"
	"tradebinder/internal/repos"
	"tradebinder/internal/variant"
)

// TransferRecord is one executed move inside a settlement, for caller-facing
// confirmation.
type TransferRecord struct {
	CardID    string           `json:"card_id"`
	CardName  string           `json:"card_name"`
	Qty       int              `json:"qty"`
	Condition domain.Condition `json:"condition"`
	Variant   domain.Variant   `json:"variant"`
	FromUser  string           `json:"from_user"`
	ToUser    string           `json:"to_user"`
}

type SettlementReport struct {
	TradeID     string           `json:"trade_id"`
	InitiatorID string           `json:"initiator_id"`
	RecipientID string           `json:"recipient_id"`
	Transfers   []TransferRecord `json:"transfers"`
}

// SettlementService executes the bidirectional inventory transfer for an
// accepted trade. All transfers plus the status flip run in ONE transaction:
// either every item moves and the trade is completed, or nothing changes and
// the trade stays accepted so the parties can retry. The per-item quantity
// check is a conditional UPDATE, so two settlements racing over the same row
// cannot over-commit.
type SettlementService struct {
	DB      *sqlx.DB
	Trades  *repos.TradeRepo
	Inv     *repos.InventoryRepo
	Cards   *repos.CardRepo
	Effects *SideEffectCoordinator
}

func NewSettlementService(db *sqlx.DB, trades *repos.TradeRepo, inv *repos.InventoryRepo, cards *repos.CardRepo, effects *SideEffectCoordinator) *SettlementService {
	return &SettlementService{DB: db, Trades: trades, Inv: inv, Cards: cards, Effects: effects}
}

// Settle may be called by either party once the trade is accepted ("mark as
// completed" semantics). Settling anything but an accepted trade fails the
// state guard, which also makes a second settle of a completed trade a no-op
// error rather than a double transfer.
func (s *SettlementService) Settle(tradeID, callerID string) (*SettlementReport, error) {
	t, err := s.Trades.Get(tradeID)
	if err != nil {
		return nil, ErrTradeNotFound
	}
	if callerID != t.InitiatorID && callerID != t.RecipientID {
		return nil, ErrUnauthorized
	}
	if t.Status != domain.TradeAccepted {
		return nil, &IllegalTransitionError{Status: t.Status, Action: "settle"}
	}

	items, err := s.Trades.Items(tradeID)
	if err != nil {
		return nil, err
	}

	// Resolve catalog data before opening the transaction; reads don't need
	// to hold it.
	cards := make(map[string]domain.Card, len(items))
	for _, it := range items {
		if _, ok := cards[it.CardID]; ok {
			continue
		}
		c, err := s.Cards.Get(it.CardID)
		if err != nil {
			return nil, err
		}
		cards[it.CardID] = c
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	report := &SettlementReport{TradeID: tradeID, InitiatorID: t.InitiatorID, RecipientID: t.RecipientID}
	for _, it := range items {
		giver := it.OwnerID
		receiver := t.InitiatorID
		if giver == t.InitiatorID {
			receiver = t.RecipientID
		}

		card := cards[it.CardID]
		v := variant.Resolve(card, it.Foil)

		if err := s.Inv.Decrement(tx, giver, it.CardID, it.Condition, v, it.Qty); err != nil {
			if errors.Is(err, repos.ErrInsufficient) {
				return nil, &SettlementShortfallError{CardID: it.CardID, OwnerID: giver}
			}
			return nil, err
		}
		if err := s.Inv.Add(tx, receiver, it.CardID, it.Condition, v, it.Qty); err != nil {
			return nil, err
		}

		report.Transfers = append(report.Transfers, TransferRecord{
			CardID: it.CardID, CardName: card.Name, Qty: it.Qty,
			Condition: it.Condition, Variant: v,
			FromUser: giver, ToUser: receiver,
		})
	}

	ok, err := s.Trades.UpdateStatusIn(tx, tradeID, domain.TradeAccepted, domain.TradeCompleted)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Another settlement won the race while we were working.
		return nil, &IllegalTransitionError{Status: domain.TradeCompleted, Action: "settle"}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	// Inventory truth is durable; wishlist pruning and accomplishment
	// re-checks can only log their failures, never unwind the settlement.
	s.Effects.AfterSettlement(report)

	return report, nil
}
