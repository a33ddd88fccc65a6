package services

import (
	"fmt"

	"tradebinder/internal/repos"
)

// AchievementService grades threshold accomplishments (collection size,
// distinct cards, trades completed) against a user's current state. It
// satisfies AccomplishmentEngine; revokes happen when a transfer drops a
// user back under a threshold.
type AchievementService struct {
	Achievements *repos.AchievementRepo
	Inv          *repos.InventoryRepo
	Trades       *repos.TradeRepo
}

func NewAchievementService(ach *repos.AchievementRepo, inv *repos.InventoryRepo, trades *repos.TradeRepo) *AchievementService {
	return &AchievementService{Achievements: ach, Inv: inv, Trades: trades}
}

func (s *AchievementService) Reevaluate(userID string) (Recheck, error) {
	defs, err := s.Achievements.Definitions()
	if err != nil {
		return Recheck{}, err
	}
	held, err := s.Achievements.Unlocked(userID)
	if err != nil {
		return Recheck{}, err
	}

	total, err := s.Inv.TotalCards(userID)
	if err != nil {
		return Recheck{}, err
	}
	unique, err := s.Inv.UniqueCards(userID)
	if err != nil {
		return Recheck{}, err
	}
	completed, err := s.Trades.CompletedCount(userID)
	if err != nil {
		return Recheck{}, err
	}

	var rc Recheck
	for _, def := range defs {
		var metric int
		switch def.Kind {
		case "TOTAL_CARDS":
			metric = total
		case "UNIQUE_CARDS":
			metric = unique
		case "TRADES_COMPLETED":
			metric = completed
		default:
			return Recheck{}, fmt.Errorf("unknown achievement kind %q", def.Kind)
		}

		met := metric >= def.Threshold
		switch {
		case met && !held[def.ID]:
			if err := s.Achievements.Grant(userID, def.ID); err != nil {
				return Recheck{}, err
			}
			rc.Unlocked = append(rc.Unlocked, def.Name)
		case !met && held[def.ID]:
			if err := s.Achievements.Revoke(userID, def.ID); err != nil {
				return Recheck{}, err
			}
			rc.Revoked = append(rc.Revoked, def.Name)
		}
	}
	return rc, nil
}
