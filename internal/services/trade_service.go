package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"tradebinder/internal/domain"
	"tradebinder/internal/repos"
)

// TradeTTL is how long a proposal stays open before it expires.
const TradeTTL = 7 * 24 * time.Hour

// RelationshipStore is the external connection graph; trades are only
// proposed between connected users.
type RelationshipStore interface {
	AreConnected(userA, userB string) (bool, error)
}

// ItemSpec is one proposed line: a card, how many copies, and in what shape.
type ItemSpec struct {
	CardID    string           `json:"card_id"`
	Qty       int              `json:"qty"`
	Condition domain.Condition `json:"condition"`
	Foil      bool             `json:"foil"`
}

type TradeService struct {
	Trades  *repos.TradeRepo
	Inv     *repos.InventoryRepo
	Cards   *repos.CardRepo
	Friends RelationshipStore
}

func NewTradeService(trades *repos.TradeRepo, inv *repos.InventoryRepo, cards *repos.CardRepo, friends RelationshipStore) *TradeService {
	return &TradeService{Trades: trades, Inv: inv, Cards: cards, Friends: friends}
}

// Propose validates and creates a new pending trade. Offered items are
// checked against the initiator's aggregate holdings per card; the requested
// side is NOT checked here — settlement re-validates it, so a proposal never
// blocks on the recipient's current collection.
func (s *TradeService) Propose(initiatorID, recipientID, message string, offered, requested []ItemSpec) (domain.Trade, error) {
	if initiatorID == recipientID {
		return domain.Trade{}, ErrSelfTrade
	}
	connected, err := s.Friends.AreConnected(initiatorID, recipientID)
	if err != nil {
		return domain.Trade{}, err
	}
	if !connected {
		return domain.Trade{}, ErrNotConnected
	}

	for _, spec := range append(append([]ItemSpec{}, offered...), requested...) {
		if spec.Qty < 1 {
			return domain.Trade{}, &InsufficientInventoryError{CardID: spec.CardID}
		}
		if _, err := s.Cards.Get(spec.CardID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.Trade{}, ErrCardUnknown
			}
			return domain.Trade{}, err
		}
	}

	// Aggregate per card: the same card may appear on several lines.
	need := map[string]int{}
	for _, spec := range offered {
		need[spec.CardID] += spec.Qty
	}
	for cardID, qty := range need {
		have, err := s.Inv.FamilyQty(initiatorID, cardID)
		if err != nil {
			return domain.Trade{}, err
		}
		if have < qty {
			return domain.Trade{}, &InsufficientInventoryError{CardID: cardID}
		}
	}

	now := time.Now().UTC()
	t := domain.Trade{
		ID:               uuid.NewString(),
		InitiatorID:      initiatorID,
		RecipientID:      recipientID,
		Status:           domain.TradePending,
		InitiatorMessage: message,
		ExpiresAt:        now.Add(TradeTTL).Format(time.RFC3339),
	}

	items := make([]domain.TradeItem, 0, len(offered)+len(requested))
	for _, spec := range offered {
		items = append(items, domain.TradeItem{
			TradeID: t.ID, OwnerID: initiatorID,
			CardID: spec.CardID, Qty: spec.Qty, Condition: spec.Condition, Foil: spec.Foil,
		})
	}
	for _, spec := range requested {
		items = append(items, domain.TradeItem{
			TradeID: t.ID, OwnerID: recipientID,
			CardID: spec.CardID, Qty: spec.Qty, Condition: spec.Condition, Foil: spec.Foil,
		})
	}

	if err := s.Trades.Create(t, items); err != nil {
		return domain.Trade{}, err
	}
	return s.Trades.Get(t.ID)
}

// Respond lets the recipient accept or decline a pending trade.
func (s *TradeService) Respond(tradeID, responderID string, accept bool, message string) (domain.Trade, error) {
	action := "decline"
	to := domain.TradeDeclined
	if accept {
		action = "accept"
		to = domain.TradeAccepted
	}

	t, err := s.load(tradeID)
	if err != nil {
		return domain.Trade{}, err
	}
	if responderID != t.RecipientID {
		return domain.Trade{}, ErrUnauthorized
	}
	if t.Status != domain.TradePending {
		return domain.Trade{}, &IllegalTransitionError{Status: t.Status, Action: action}
	}
	if expired, err := s.lazyExpire(t); err != nil {
		return domain.Trade{}, err
	} else if expired {
		return domain.Trade{}, &IllegalTransitionError{Status: domain.TradeExpired, Action: action}
	}

	ok, err := s.Trades.UpdateStatus(tradeID, domain.TradePending, to)
	if err != nil {
		return domain.Trade{}, err
	}
	if !ok {
		// Lost a race: report the actual current status.
		return domain.Trade{}, &IllegalTransitionError{Status: s.raceStatus(tradeID, t.Status), Action: action}
	}
	if message != "" {
		if err := s.Trades.SetRecipientMessage(tradeID, message); err != nil {
			return domain.Trade{}, err
		}
	}
	return s.Trades.Get(tradeID)
}

// Cancel withdraws a pending trade; only the initiator may do this.
func (s *TradeService) Cancel(tradeID, callerID string) (domain.Trade, error) {
	t, err := s.load(tradeID)
	if err != nil {
		return domain.Trade{}, err
	}
	if callerID != t.InitiatorID {
		return domain.Trade{}, ErrUnauthorized
	}
	if t.Status != domain.TradePending {
		return domain.Trade{}, &IllegalTransitionError{Status: t.Status, Action: "cancel"}
	}
	if expired, err := s.lazyExpire(t); err != nil {
		return domain.Trade{}, err
	} else if expired {
		return domain.Trade{}, &IllegalTransitionError{Status: domain.TradeExpired, Action: "cancel"}
	}

	ok, err := s.Trades.UpdateStatus(tradeID, domain.TradePending, domain.TradeCancelled)
	if err != nil {
		return domain.Trade{}, err
	}
	if !ok {
		return domain.Trade{}, &IllegalTransitionError{Status: s.raceStatus(tradeID, t.Status), Action: "cancel"}
	}
	return s.Trades.Get(tradeID)
}

// Get returns a trade with its items; only the two parties may read it.
func (s *TradeService) Get(tradeID, callerID string) (domain.Trade, []domain.TradeItem, error) {
	t, err := s.load(tradeID)
	if err != nil {
		return domain.Trade{}, nil, err
	}
	if callerID != t.InitiatorID && callerID != t.RecipientID {
		return domain.Trade{}, nil, ErrUnauthorized
	}
	items, err := s.Trades.Items(tradeID)
	if err != nil {
		return domain.Trade{}, nil, err
	}
	return t, items, nil
}

func (s *TradeService) ListByUser(userID string) ([]domain.Trade, error) {
	return s.Trades.ListByUser(userID)
}

// SweepExpired marks stale pending trades expired; run periodically.
func (s *TradeService) SweepExpired(now time.Time) (int64, error) {
	return s.Trades.ExpirePending(now)
}

func (s *TradeService) load(tradeID string) (domain.Trade, error) {
	t, err := s.Trades.Get(tradeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Trade{}, ErrTradeNotFound
		}
		return domain.Trade{}, err
	}
	return t, nil
}

// raceStatus reloads a trade's status after a guarded update lost its race;
// if the reload itself fails, the status observed before the update is the
// best answer left.
func (s *TradeService) raceStatus(tradeID string, observed domain.TradeStatus) domain.TradeStatus {
	if t, err := s.Trades.Get(tradeID); err == nil {
		return t.Status
	}
	return observed
}

// lazyExpire checks a pending trade's expiry at the transition point and, if
// passed, flips it to expired so the sweep and the guard agree.
func (s *TradeService) lazyExpire(t domain.Trade) (bool, error) {
	exp, err := time.Parse(time.RFC3339, t.ExpiresAt)
	if err != nil {
		return false, err
	}
	if time.Now().UTC().Before(exp) {
		return false, nil
	}
	_, err = s.Trades.UpdateStatus(t.ID, domain.TradePending, domain.TradeExpired)
	return true, err
}
