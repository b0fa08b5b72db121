package reservation

type CreateRequest struct {
	UseDate       string              `json:"use_date" validate:"required"`
	EventLocation string              `json:"event_location" validate:"required,min=3,max=500"`
	Notes         string              `json:"notes" validate:"omitempty,max=5000"`
	Items         []CreateRequestItem `json:"items" validate:"required,min=1,dive"`
}

type CreateRequestItem struct {
	EquipmentID int64  `json:"equipment_id" validate:"required,gt=0"`
	Quantity    int    `json:"quantity" validate:"required,gte=1"`
	Tier        string `json:"tier" validate:"required,oneof=daily weekly monthly"`
	Period      int    `json:"period" validate:"required,gte=1"`
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=2000"`
}
