package services

import (
	"errors"
	"fmt"

	"tradebinder/internal/domain"
)

var (
	ErrTradeNotFound = errors.New("trade not found")
	ErrUnauthorized  = errors.New("caller is not allowed to act on this trade")
	ErrSelfTrade     = errors.New("initiator and recipient must differ")
	ErrNotConnected  = errors.New("users are not connected")
	ErrCardUnknown   = errors.New("unknown card")
)

// InsufficientInventoryError is the proposal-time ownership failure. It names
// the card only; row-level detail stays internal.
type InsufficientInventoryError struct {
	CardID string
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory of %s", e.CardID)
}

// SettlementShortfallError is the settlement-time counterpart: the giver's
// exact (card, condition, variant) row came up short when the transfer ran.
// Distinct from InsufficientInventoryError because proposal validation
// deliberately defers the requested side to this point.
type SettlementShortfallError struct {
	CardID  string
	OwnerID string
}

func (e *SettlementShortfallError) Error() string {
	return fmt.Sprintf("settlement failed: %s no longer holds enough of %s", e.OwnerID, e.CardID)
}

// IllegalTransitionError names the trade's current status and the action that
// was attempted against it.
type IllegalTransitionError struct {
	Status domain.TradeStatus
	Action string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a %s trade", e.Action, e.Status)
}
