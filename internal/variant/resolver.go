// Package variant classifies a card's physical print variant from its
// catalog attributes. The rules are a best-effort heuristic, not an
// authoritative print database: real sets have reverse-holo and pattern
// prints this table cannot see. Keep everything behind Resolve so the
// table can be swapped for catalog data without touching settlement.
package variant

import (
	"strings"

	"tradebinder/internal/domain"
)

// overrides pins known misclassified cards by exact (lower-cased) name.
var overrides = map[string]domain.Variant{
	"pikachu with grey felt hat": domain.VariantHolo,
	"radiant charizard":          domain.VariantHolo,
	"zacian v (promo)":           domain.VariantHolo,
}

// Resolve maps a card plus an explicit foil hint to a variant tag.
// Rules are applied in priority order, first match wins; the fallback is
// always NORMAL, so Resolve is total.
func Resolve(card domain.Card, foilHint bool) domain.Variant {
	name := strings.ToLower(strings.TrimSpace(card.Name))
	rarity := strings.ToLower(strings.TrimSpace(card.Rarity))

	if v, ok := overrides[name]; ok {
		return v
	}
	if strings.HasSuffix(name, " ex") || strings.Contains(rarity, "ex") {
		return domain.VariantHolo
	}
	if strings.Contains(rarity, "special illustration") ||
		strings.Contains(rarity, "ultra rare") ||
		strings.Contains(rarity, "secret rare") ||
		strings.Contains(rarity, "ace spec") {
		return domain.VariantHolo
	}
	if foilHint {
		return domain.VariantHolo
	}
	if strings.Contains(rarity, "rare holo") {
		return domain.VariantHolo
	}
	if rarity == "rare" {
		return domain.VariantHolo
	}
	return domain.VariantNormal
}
