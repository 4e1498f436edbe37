package response

import "time"

type ReservationResponse struct {
	ID                 string    `json:"id"`
	ConfirmationNumber string    `json:"confirmation_number"`
	GuestID            string    `json:"guest_id"`
	RoomID             string    `json:"room_id"`
	CheckInDate        string    `json:"check_in_date"`
	CheckOutDate       string    `json:"check_out_date"`
	Nights             int       `json:"nights"`
	Adults             int       `json:"adults"`
	Children           int       `json:"children"`
	TotalAmount        float64   `json:"total_amount"`
	Currency           string    `json:"currency"`
	Status             string    `json:"status"`
	SpecialRequests    string    `json:"special_requests,omitempty"`
	CancellationFee    float64   `json:"cancellation_fee,omitempty"`
	RefundAmount       float64   `json:"refund_amount,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

type SweepResult struct {
	MarkedNoShow  int      `json:"marked_no_show"`
	Confirmations []string `json:"confirmation_numbers,omitempty"`
}
