package response

import "time"

type CheckInResponse struct {
	Reservation    ReservationResponse `json:"reservation"`
	CheckInTime    time.Time           `json:"check_in_time"`
	DepositAmount  float64             `json:"deposit_amount"`
	KeyCardsIssued int                 `json:"key_cards_issued"`
}

type CheckOutResponse struct {
	Reservation       ReservationResponse `json:"reservation"`
	CheckOutTime      time.Time           `json:"check_out_time"`
	AdditionalCharges float64             `json:"additional_charges"`
	LateCheckOutFee   float64             `json:"late_check_out_fee"`
	FinalAmount       float64             `json:"final_amount"`
	DepositRefund     float64             `json:"deposit_refund"`
}

type CheckOutPreviewResponse struct {
	ConfirmationNumber string  `json:"confirmation_number"`
	StayTotal          float64 `json:"stay_total"`
	AdditionalCharges  float64 `json:"additional_charges"`
	LateCheckOutFee    float64 `json:"late_check_out_fee"`
	FinalAmount        float64 `json:"final_amount"`
}
