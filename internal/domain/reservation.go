package domain

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationApproved  ReservationStatus = "approved"
	ReservationRejected  ReservationStatus = "rejected"
	ReservationActive    ReservationStatus = "active"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation is a commitment to rent equipment on a specific date, subject
// to staff approval. It is created directly or derived from a finalized
// quote; its line items are frozen snapshots so historical reservations stay
// immutable when equipment pricing changes.
type Reservation struct {
	ID       int64             `json:"id" gorm:"primaryKey"`
	ClientID int64             `json:"client_id" gorm:"not null;index"`
	QuoteID  *int64            `json:"quote_id,omitempty" gorm:"index;constraint:OnDelete:SET NULL"`
	Status   ReservationStatus `json:"status" gorm:"size:20;not null;default:'pending'"`

	UseDate       time.Time `json:"use_date" gorm:"not null"`
	EventLocation string    `json:"event_location" gorm:"size:300;not null"`
	Notes         string    `json:"notes,omitempty" gorm:"type:text"`
	Total         float64   `json:"total" gorm:"not null"`

	ApprovedByID *int64     `json:"approved_by_id,omitempty"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Client     *User             `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	ApprovedBy *User             `json:"approved_by,omitempty" gorm:"foreignKey:ApprovedByID"`
	Items      []ReservationItem `json:"items,omitempty" gorm:"foreignKey:ReservationID"`
}

// ReservationItem snapshots one rental line at reservation creation time.
type ReservationItem struct {
	ID            int64       `json:"id" gorm:"primaryKey"`
	ReservationID int64       `json:"reservation_id" gorm:"not null;index"`
	EquipmentID   int64       `json:"equipment_id" gorm:"not null;index"`
	Quantity      int         `json:"quantity" gorm:"not null"`
	Tier          PricingTier `json:"tier" gorm:"size:20;not null"`
	Period        int         `json:"period" gorm:"not null"`
	UnitPrice     float64     `json:"unit_price" gorm:"not null"`
	Total         float64     `json:"total" gorm:"not null"`
	CreatedAt     time.Time   `json:"created_at"`

	Equipment *Equipment `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
}
