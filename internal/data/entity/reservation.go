package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	StatusPreReservation ReservationStatus = "PRE_RESERVATION"
	StatusPendingPayment ReservationStatus = "PENDING_PAYMENT"
	StatusConfirmed      ReservationStatus = "CONFIRMED"
	StatusCheckedIn      ReservationStatus = "CHECKED_IN"
	StatusCheckedOut     ReservationStatus = "CHECKED_OUT"
	StatusCancelled      ReservationStatus = "CANCELLED"
	StatusNoShow         ReservationStatus = "NO_SHOW"
)

// transitions is the complete state machine. A status absent from the map
// is terminal.
var transitions = map[ReservationStatus][]ReservationStatus{
	StatusPreReservation: {StatusPendingPayment, StatusConfirmed, StatusCancelled},
	StatusPendingPayment: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn:      {StatusCheckedOut},
}

// CanTransition reports whether moving from s to target is legal.
func (s ReservationStatus) CanTransition(target ReservationStatus) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// SourcesOf returns every status from which target is reachable.
func SourcesOf(target ReservationStatus) []ReservationStatus {
	var sources []ReservationStatus
	for _, from := range AllStatuses() {
		if from.CanTransition(target) {
			sources = append(sources, from)
		}
	}
	return sources
}

// AllStatuses returns the statuses in declaration order.
func AllStatuses() []ReservationStatus {
	return []ReservationStatus{
		StatusPreReservation,
		StatusPendingPayment,
		StatusConfirmed,
		StatusCheckedIn,
		StatusCheckedOut,
		StatusCancelled,
		StatusNoShow,
	}
}

// IsBlocking reports whether the status holds the room against other
// bookings for its date range.
func (s ReservationStatus) IsBlocking() bool {
	return s == StatusPreReservation || s == StatusConfirmed || s == StatusCheckedIn
}

// BlockingStatuses is the set used by the conflict query.
func BlockingStatuses() []ReservationStatus {
	return []ReservationStatus{StatusPreReservation, StatusConfirmed, StatusCheckedIn}
}

// CancellationPolicy is an immutable snapshot taken at booking time.
type CancellationPolicy struct {
	PolicyType               string     `json:"policy_type"`
	FreeCancellationHours    int        `json:"free_cancellation_hours"`
	FreeCancellationDeadline *time.Time `json:"free_cancellation_deadline,omitempty"`
	FeePercent               *float64   `json:"fee_percent,omitempty"`
	FeeFixed                 *float64   `json:"fee_fixed,omitempty"`
	Terms                    string     `json:"terms,omitempty"`
}

// AdditionalCharge records an amount added to the folio during the stay.
type AdditionalCharge struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	ChargeType  string    `json:"charge_type"`
	Quantity    int       `json:"quantity"`
	ChargedAt   time.Time `json:"charged_at"`
	ChargedBy   uuid.UUID `json:"charged_by"`
}

// CheckInDetails captures the front-desk check-in record.
type CheckInDetails struct {
	ActualCheckInTime time.Time `json:"actual_check_in_time"`
	ProcessedBy       uuid.UUID `json:"processed_by"`
	DocumentType      string    `json:"document_type"`
	DocumentNumber    string    `json:"document_number"`
	DepositAmount     float64   `json:"deposit_amount"`
	KeyCardsIssued    int       `json:"key_cards_issued"`
	Notes             string    `json:"notes,omitempty"`
}

// CheckOutDetails captures the front-desk check-out record.
type CheckOutDetails struct {
	ActualCheckOutTime time.Time `json:"actual_check_out_time"`
	ProcessedBy        uuid.UUID `json:"processed_by"`
	AdditionalCharges  float64   `json:"additional_charges"`
	LateCheckOutFee    float64   `json:"late_check_out_fee"`
	FinalAmount        float64   `json:"final_amount"`
	DepositRefund      float64   `json:"deposit_refund"`
	DamageReported     bool      `json:"damage_reported"`
	DamageDescription  string    `json:"damage_description,omitempty"`
	Notes              string    `json:"notes,omitempty"`
}

type Reservation struct {
	Base
	ConfirmationNumber string              `db:"confirmation_number"`
	GuestID            uuid.UUID           `db:"guest_id"`
	RoomID             uuid.UUID           `db:"room_id"`
	CheckInDate        time.Time           `db:"check_in_date"`
	CheckOutDate       time.Time           `db:"check_out_date"`
	Adults             int                 `db:"adults"`
	Children           int                 `db:"children"`
	TotalAmount        float64             `db:"total_amount"`
	Currency           string              `db:"currency"`
	Status             ReservationStatus   `db:"status"`
	SpecialRequests    string              `db:"special_requests"`
	BookingSource      string              `db:"booking_source"`
	PaymentMethod      string              `db:"payment_method"`
	PaymentReference   string              `db:"payment_reference"`
	CancellationPolicy *CancellationPolicy `db:"cancellation_policy"`
	CancellationFee    float64             `db:"cancellation_fee"`
	RefundAmount       float64             `db:"refund_amount"`
	CancelledAt        *time.Time          `db:"cancelled_at"`
	CancelledBy        *uuid.UUID          `db:"cancelled_by"`
	CancellationReason string              `db:"cancellation_reason"`
	CheckIn            *CheckInDetails     `db:"check_in_details"`
	CheckOut           *CheckOutDetails    `db:"check_out_details"`
	AdditionalCharges  []AdditionalCharge  `db:"additional_charges"`
}

// Nights returns the stay length in nights.
func (r *Reservation) Nights() int {
	return int(r.CheckOutDate.Sub(r.CheckInDate).Hours() / 24)
}

// TotalGuests returns adults plus children.
func (r *Reservation) TotalGuests() int {
	return r.Adults + r.Children
}

// TotalAdditionalCharges sums the folio charges.
func (r *Reservation) TotalAdditionalCharges() float64 {
	var total float64
	for _, c := range r.AdditionalCharges {
		total += c.Amount
	}
	return total
}

// Overlaps reports whether the reservation's half-open date range
// intersects [checkIn, checkOut). The checkout day itself is free.
func (r *Reservation) Overlaps(checkIn, checkOut time.Time) bool {
	return r.CheckInDate.Before(checkOut) && checkIn.Before(r.CheckOutDate)
}
