package request

type CreateReservationRequest struct {
	RoomID          string `json:"room_id" validate:"required,uuid"`
	CheckInDate     string `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate    string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	Adults          int    `json:"adults" validate:"required,gte=1"`
	Children        int    `json:"children" validate:"gte=0"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=500"`
	PaymentMethod   string `json:"payment_method" validate:"omitempty,oneof=CREDIT_CARD DEBIT_CARD CASH TRANSFER"`
}

// UpdateReservationRequest carries only the fields being changed.
// Date or room changes are allowed in PRE_RESERVATION only.
type UpdateReservationRequest struct {
	RoomID          *string `json:"room_id" validate:"omitempty,uuid"`
	CheckInDate     *string `json:"check_in_date" validate:"omitempty,datetime=2006-01-02"`
	CheckOutDate    *string `json:"check_out_date" validate:"omitempty,datetime=2006-01-02"`
	Adults          *int    `json:"adults" validate:"omitempty,gte=1"`
	Children        *int    `json:"children" validate:"omitempty,gte=0"`
	SpecialRequests *string `json:"special_requests" validate:"omitempty,max=500"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type ConfirmReservationRequest struct {
	PaymentReference string `json:"payment_reference" validate:"required"`
}
