package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"tradebinder/internal/domain"
)

type TradeRepo struct{ db *sqlx.DB }

func NewTradeRepo(db *sqlx.DB) *TradeRepo { return &TradeRepo{db: db} }

// Create inserts the trade header and all its line items in one transaction;
// items are immutable afterwards.
func (r *TradeRepo) Create(t domain.Trade, items []domain.TradeItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO trades(id, initiator_id, recipient_id, status, initiator_message, expires_at)
		VALUES(?, ?, ?, ?, ?, ?)
	`, t.ID, t.InitiatorID, t.RecipientID, t.Status, t.InitiatorMessage, t.ExpiresAt); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := tx.Exec(`
			INSERT INTO trade_items(trade_id, owner_id, card_id, qty, condition, foil)
			VALUES(?, ?, ?, ?, ?, ?)
		`, t.ID, it.OwnerID, it.CardID, it.Qty, it.Condition, it.Foil); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *TradeRepo) Get(tradeID string) (domain.Trade, error) {
	var t domain.Trade
	err := r.db.Get(&t, `
		SELECT id, initiator_id, recipient_id, status, initiator_message,
		       recipient_message, created_at, updated_at, expires_at
		FROM trades WHERE id = ?
	`, tradeID)
	return t, err
}

func (r *TradeRepo) Items(tradeID string) ([]domain.TradeItem, error) {
	var items []domain.TradeItem
	err := r.db.Select(&items, `
		SELECT trade_id, owner_id, card_id, qty, condition, foil
		FROM trade_items WHERE trade_id = ?
		ORDER BY owner_id, card_id
	`, tradeID)
	return items, err
}

// ListByUser returns trades where the user is either side, newest first.
func (r *TradeRepo) ListByUser(userID string) ([]domain.Trade, error) {
	var out []domain.Trade
	err := r.db.Select(&out, `
		SELECT id, initiator_id, recipient_id, status, initiator_message,
		       recipient_message, created_at, updated_at, expires_at
		FROM trades
		WHERE initiator_id = ? OR recipient_id = ?
		ORDER BY datetime(created_at) DESC
	`, userID, userID)
	return out, err
}

// UpdateStatus moves a trade from one status to another, guarded: the row is
// only touched if it is still in the expected status. Returns false when the
// guard rejected the write (someone else transitioned first).
func (r *TradeRepo) UpdateStatus(tradeID string, from, to domain.TradeStatus) (bool, error) {
	return r.UpdateStatusIn(r.db, tradeID, from, to)
}

// UpdateStatusIn is UpdateStatus against a caller-supplied executor, so the
// settlement transaction can flip the status atomically with the transfers.
func (r *TradeRepo) UpdateStatusIn(q sqlx.Ext, tradeID string, from, to domain.TradeStatus) (bool, error) {
	res, err := q.Exec(`
		UPDATE trades SET status = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`, to, time.Now().UTC().Format(time.RFC3339), tradeID, from)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// SetRecipientMessage attaches the recipient's free-text reply.
func (r *TradeRepo) SetRecipientMessage(tradeID, msg string) error {
	_, err := r.db.Exec(`UPDATE trades SET recipient_message = ? WHERE id = ?`, msg, tradeID)
	return err
}

// ExpirePending marks every pending trade whose expiry has passed. Used by
// the background sweeper; returns how many rows were swept.
func (r *TradeRepo) ExpirePending(now time.Time) (int64, error) {
	res, err := r.db.Exec(`
		UPDATE trades SET status = ?, updated_at = ?
		WHERE status = ? AND expires_at < ?
	`, domain.TradeExpired, now.UTC().Format(time.RFC3339), domain.TradePending, now.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CompletedCount is used by the accomplishment engine.
func (r *TradeRepo) CompletedCount(userID string) (int, error) {
	var n int
	err := r.db.Get(&n, `
		SELECT COUNT(*) FROM trades
		WHERE status = ? AND (initiator_id = ? OR recipient_id = ?)
	`, domain.TradeCompleted, userID, userID)
	return n, err
}
