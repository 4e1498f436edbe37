package request

type CheckInRequest struct {
	ConfirmationNumber string `json:"confirmation_number" validate:"required"`
	DocumentType       string `json:"document_type" validate:"required,oneof=PASSPORT NATIONAL_ID DRIVER_LICENSE OTHER"`
	DocumentNumber     string `json:"document_number" validate:"required,min=3,max=50"`
	KeyCards           int    `json:"key_cards" validate:"omitempty,gte=1,lte=4"`
	Notes              string `json:"notes" validate:"omitempty,max=500"`
}

type ChargeItem struct {
	Description string  `json:"description" validate:"required,max=200"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	ChargeType  string  `json:"charge_type" validate:"required,oneof=MINIBAR ROOM_SERVICE LAUNDRY DAMAGE OTHER"`
	Quantity    int     `json:"quantity" validate:"omitempty,gte=1"`
}

type CheckOutRequest struct {
	ConfirmationNumber string       `json:"confirmation_number" validate:"required"`
	AdditionalCharges  []ChargeItem `json:"additional_charges" validate:"omitempty,dive"`
	DamageReported     bool         `json:"damage_reported"`
	DamageDescription  string       `json:"damage_description" validate:"omitempty,max=500"`
	Notes              string       `json:"notes" validate:"omitempty,max=500"`
}

// CheckOutPreviewRequest prices a check-out without applying it.
type CheckOutPreviewRequest struct {
	ConfirmationNumber string       `json:"confirmation_number" validate:"required"`
	AdditionalCharges  []ChargeItem `json:"additional_charges" validate:"omitempty,dive"`
}
