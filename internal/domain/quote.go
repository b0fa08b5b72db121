package domain

import "time"

type QuoteStatus string

const (
	QuoteDraft     QuoteStatus = "draft"
	QuoteFinalized QuoteStatus = "finalized"
	QuoteConverted QuoteStatus = "converted"
	QuoteCancelled QuoteStatus = "cancelled"
)

type PricingTier string

const (
	TierDaily   PricingTier = "daily"
	TierWeekly  PricingTier = "weekly"
	TierMonthly PricingTier = "monthly"
)

// Quote is a client's draft collection of desired rentals. Items may only be
// added or removed while the quote is in draft; the total is recomputed and
// persisted on every item change.
type Quote struct {
	ID        int64       `json:"id" gorm:"primaryKey"`
	ClientID  int64       `json:"client_id" gorm:"not null;index"`
	Status    QuoteStatus `json:"status" gorm:"size:20;not null;default:'draft'"`
	Notes     string      `json:"notes,omitempty" gorm:"type:text"`
	Total     float64     `json:"total" gorm:"not null;default:0"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	Client *User       `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Items  []QuoteItem `json:"items,omitempty" gorm:"foreignKey:QuoteID"`
}

// Editable reports whether line items may still be added or removed.
func (q *Quote) Editable() bool {
	return q.Status == QuoteDraft
}

// QuoteItem is one rental line inside a quote. The unit price is snapshotted
// from the equipment's tier price at save time; (QuoteID, EquipmentID) is
// unique within a quote.
type QuoteItem struct {
	ID          int64       `json:"id" gorm:"primaryKey"`
	QuoteID     int64       `json:"quote_id" gorm:"not null;uniqueIndex:idx_quote_equipment"`
	EquipmentID int64       `json:"equipment_id" gorm:"not null;uniqueIndex:idx_quote_equipment"`
	Quantity    int         `json:"quantity" gorm:"not null"`
	Tier        PricingTier `json:"tier" gorm:"size:20;not null"`
	Period      int         `json:"period" gorm:"not null"`
	UseDate     time.Time   `json:"use_date" gorm:"not null"`
	UnitPrice   float64     `json:"unit_price" gorm:"not null"`
	Total       float64     `json:"total" gorm:"not null"`
	CreatedAt   time.Time   `json:"created_at"`

	Equipment *Equipment `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
}
