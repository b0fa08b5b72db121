package catalog

import "equiprent/internal/domain"

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Active      *bool  `json:"active"`
}

type EquipmentRequest struct {
	Name           string         `json:"name" validate:"required,min=2,max=200"`
	CategoryID     int64          `json:"category_id" validate:"required,gt=0"`
	Description    string         `json:"description" validate:"omitempty,max=5000"`
	Brand          string         `json:"brand" validate:"omitempty,max=100"`
	Model          string         `json:"model" validate:"omitempty,max=100"`
	TechnicalSpecs map[string]any `json:"technical_specs"`

	DailyPrice   float64  `json:"daily_price" validate:"required,gt=0"`
	WeeklyPrice  *float64 `json:"weekly_price" validate:"omitempty,gt=0"`
	MonthlyPrice *float64 `json:"monthly_price" validate:"omitempty,gt=0"`

	State          string `json:"state" validate:"omitempty,oneof=available rented maintenance inactive"`
	AvailableCount *int   `json:"available_count" validate:"omitempty,gte=0"`
	TotalCount     *int   `json:"total_count" validate:"omitempty,gte=1"`

	SerialNumber     *string  `json:"serial_number" validate:"omitempty,max=100"`
	Notes            string   `json:"notes" validate:"omitempty,max=5000"`
	MainImageURL     string   `json:"main_image_url" validate:"omitempty,url,max=500"`
	AdditionalImages []string `json:"additional_images" validate:"omitempty,dive,url"`
}

type CalculateRequest struct {
	EquipmentID int64 `json:"equipment_id" validate:"required,gt=0"`
	Days        int   `json:"days" validate:"required,gt=0"`
	Quantity    int   `json:"quantity" validate:"omitempty,gte=1"`
}

type CalculateResult struct {
	EquipmentID   int64                 `json:"equipment_id"`
	EquipmentName string                `json:"equipment_name"`
	Days          int                   `json:"days"`
	Quantity      int                   `json:"quantity"`
	Segments      []domain.PriceSegment `json:"segments"`
	UnitTotal     float64               `json:"unit_total"`
	Total         float64               `json:"total"`
}

type AvailabilityCheckRequest struct {
	UseDate string                  `json:"use_date" validate:"required"`
	Items   []AvailabilityCheckItem `json:"items" validate:"required,min=1,dive"`
}

type AvailabilityCheckItem struct {
	EquipmentID int64 `json:"equipment_id" validate:"required,gt=0"`
	Quantity    int   `json:"quantity" validate:"required,gte=1"`
}

type AvailabilityResult struct {
	EquipmentID        int64  `json:"equipment_id"`
	EquipmentName      string `json:"equipment_name,omitempty"`
	RequestedQuantity  int    `json:"requested_quantity"`
	AvailableQuantity  int    `json:"available_quantity"`
	Available          bool   `json:"available"`
	Reason             string `json:"reason"`
}
