package domain

import "time"

type EquipmentState string

const (
	EquipmentAvailable   EquipmentState = "available"
	EquipmentRented      EquipmentState = "rented"
	EquipmentMaintenance EquipmentState = "maintenance"
	EquipmentInactive    EquipmentState = "inactive"
)

type Equipment struct {
	ID          int64          `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"size:200;not null"`
	CategoryID  int64          `json:"category_id" gorm:"not null;index"`
	Description string         `json:"description" gorm:"type:text"`
	Brand       string         `json:"brand" gorm:"size:100"`
	Model       string         `json:"model" gorm:"size:100"`

	TechnicalSpecs map[string]any `json:"technical_specs,omitempty" gorm:"serializer:json"`

	DailyPrice   float64  `json:"daily_price" gorm:"not null"`
	WeeklyPrice  *float64 `json:"weekly_price,omitempty"`
	MonthlyPrice *float64 `json:"monthly_price,omitempty"`

	State          EquipmentState `json:"state" gorm:"size:20;not null;default:'available'"`
	AvailableCount int            `json:"available_count" gorm:"not null;default:1"`
	TotalCount     int            `json:"total_count" gorm:"not null;default:1"`

	SerialNumber *string `json:"serial_number,omitempty" gorm:"uniqueIndex;size:100"`
	Notes        string  `json:"notes,omitempty" gorm:"type:text"`

	MainImageURL     string   `json:"main_image_url,omitempty" gorm:"size:500"`
	AdditionalImages []string `json:"additional_images,omitempty" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// Rentable reports whether the equipment can currently be added to a quote
// or reservation.
func (e *Equipment) Rentable() bool {
	return e.State == EquipmentAvailable && e.AvailableCount > 0
}

// TierPrice returns the unit price for the given pricing tier, or false when
// the equipment has no price defined for that tier.
func (e *Equipment) TierPrice(tier PricingTier) (float64, bool) {
	switch tier {
	case TierDaily:
		return e.DailyPrice, true
	case TierWeekly:
		if e.WeeklyPrice == nil {
			return 0, false
		}
		return *e.WeeklyPrice, true
	case TierMonthly:
		if e.MonthlyPrice == nil {
			return 0, false
		}
		return *e.MonthlyPrice, true
	}
	return 0, false
}
