package services

import (
	applog "tradebinder/internal/log"
)

// WishlistStore is the external want-list: settlement only ever removes.
type WishlistStore interface {
	RemoveIfPresent(userID, cardID string) (bool, error)
}

// Recheck is what the accomplishment engine reports back; inspected for
// logging only.
type Recheck struct {
	Unlocked []string `json:"unlocked"`
	Revoked  []string `json:"revoked"`
}

// AccomplishmentEngine is the external gamification black box.
type AccomplishmentEngine interface {
	Reevaluate(userID string) (Recheck, error)
}

// SideEffectCoordinator runs the non-authoritative follow-ups after a
// settlement commits: prune received cards from the receiver's wishlist
// ("you wanted it, now you have it"), then re-check accomplishments for both
// parties. Every failure here is logged and swallowed — inventory truth
// outranks gamification freshness.
type SideEffectCoordinator struct {
	Wishlists       WishlistStore
	Accomplishments AccomplishmentEngine
}

func NewSideEffectCoordinator(w WishlistStore, a AccomplishmentEngine) *SideEffectCoordinator {
	return &SideEffectCoordinator{Wishlists: w, Accomplishments: a}
}

func (c *SideEffectCoordinator) AfterSettlement(rep *SettlementReport) {
	for _, tr := range rep.Transfers {
		pruned, err := c.Wishlists.RemoveIfPresent(tr.ToUser, tr.CardID)
		if err != nil {
			applog.Error(nil, "settlement.wishlist.prune.fail", err,
				map[string]any{"trade": rep.TradeID, "user": tr.ToUser, "card": tr.CardID})
			continue
		}
		if pruned {
			applog.Info(nil, "settlement.wishlist.pruned",
				map[string]any{"trade": rep.TradeID, "user": tr.ToUser, "card": tr.CardID})
		}
	}

	// Both parties completed the trade, even when one (or both) sides moved
	// no cards, so the re-check never keys off the transfer list.
	for _, userID := range []string{rep.InitiatorID, rep.RecipientID} {
		rc, err := c.Accomplishments.Reevaluate(userID)
		if err != nil {
			applog.Error(nil, "settlement.accomplishments.fail", err,
				map[string]any{"trade": rep.TradeID, "user": userID})
			continue
		}
		if len(rc.Unlocked) > 0 || len(rc.Revoked) > 0 {
			applog.Info(nil, "settlement.accomplishments.recheck",
				map[string]any{"trade": rep.TradeID, "user": userID,
					"unlocked": rc.Unlocked, "revoked": rc.Revoked})
		}
	}
}
