package domain

// Condition grades how worn a physical card is.
type Condition string

const (
	CondMint             Condition = "MINT"
	CondNearMint         Condition = "NEAR_MINT"
	CondLightlyPlayed    Condition = "LIGHTLY_PLAYED"
	CondModeratelyPlayed Condition = "MODERATELY_PLAYED"
	CondHeavilyPlayed    Condition = "HEAVILY_PLAYED"
	CondDamaged          Condition = "DAMAGED"
)

// Variant is the physical print classification of a card.
type Variant string

const (
	VariantNormal       Variant = "NORMAL"
	VariantHolo         Variant = "HOLO"
	VariantReverseHolo  Variant = "REVERSE_HOLO"
	VariantPokeball     Variant = "POKEBALL_PATTERN"
	VariantMasterball   Variant = "MASTERBALL_PATTERN"
	VariantFirstEdition Variant = "FIRST_EDITION"
)

// TradeStatus is the lifecycle state of a trade.
// pending -> accepted | declined | cancelled | expired; accepted -> completed.
// declined, cancelled, expired and completed are terminal.
type TradeStatus string

const (
	TradePending   TradeStatus = "PENDING"
	TradeAccepted  TradeStatus = "ACCEPTED"
	TradeDeclined  TradeStatus = "DECLINED"
	TradeCancelled TradeStatus = "CANCELLED"
	TradeExpired   TradeStatus = "EXPIRED"
	TradeCompleted TradeStatus = "COMPLETED"
)

type Card struct {
	ID      string `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	SetCode string `db:"set_code" json:"set_code"`
	Number  string `db:"number" json:"number"`
	Rarity  string `db:"rarity" json:"rarity"`
}

// InventoryEntry is the atomic unit of ownership: at most one row per
// (owner, card, condition, variant). A quantity of zero means the row is
// deleted, never stored.
type InventoryEntry struct {
	UserID    string    `db:"user_id" json:"user_id"`
	CardID    string    `db:"card_id" json:"card_id"`
	Condition Condition `db:"condition" json:"condition"`
	Variant   Variant   `db:"variant" json:"variant"`
	Qty       int       `db:"qty" json:"qty"`
}

// Trade is a two-party negotiation. Trades are audit rows: they move only
// through lifecycle transitions and are never physically deleted.
type Trade struct {
	ID               string      `db:"id" json:"id"`
	InitiatorID      string      `db:"initiator_id" json:"initiator_id"`
	RecipientID      string      `db:"recipient_id" json:"recipient_id"`
	Status           TradeStatus `db:"status" json:"status"`
	InitiatorMessage string      `db:"initiator_message" json:"initiator_message,omitempty"`
	RecipientMessage string      `db:"recipient_message" json:"recipient_message,omitempty"`
	CreatedAt        string      `db:"created_at" json:"created_at"`
	UpdatedAt        string      `db:"updated_at" json:"updated_at"`
	ExpiresAt        string      `db:"expires_at" json:"expires_at"`
}

// TradeItem is one line of a trade, immutable once the trade is created.
// OwnerID is the giving side and must be the trade's initiator or recipient.
type TradeItem struct {
	TradeID   string    `db:"trade_id" json:"trade_id"`
	OwnerID   string    `db:"owner_id" json:"owner_id"`
	CardID    string    `db:"card_id" json:"card_id"`
	Qty       int       `db:"qty" json:"qty"`
	Condition Condition `db:"condition" json:"condition"`
	Foil      bool      `db:"foil" json:"foil"`
}

type WishlistEntry struct {
	UserID    string `db:"user_id" json:"user_id"`
	CardID    string `db:"card_id" json:"card_id"`
	CreatedAt string `db:"created_at" json:"created_at"`
}
