package quote

type CreateQuoteRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=5000"`
}

type AddItemRequest struct {
	EquipmentID int64  `json:"equipment_id" validate:"required,gt=0"`
	Quantity    int    `json:"quantity" validate:"required,gte=1"`
	Tier        string `json:"tier" validate:"required,oneof=daily weekly monthly"`
	Period      int    `json:"period" validate:"required,gte=1"`
	UseDate     string `json:"use_date" validate:"required"`
}

type ReserveRequest struct {
	UseDate       string `json:"use_date" validate:"required"`
	EventLocation string `json:"event_location" validate:"required,min=3,max=500"`
	Notes         string `json:"notes" validate:"omitempty,max=5000"`
}
