package usecase

import (
	"math"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/pkg/utils"
)

// PricingEngine computes stay totals, cancellation fees and check-out
// totals. Pure arithmetic over entities and config; the injected clock
// is the only time source. Hour-of-day cutoffs are anchored to the
// hotel timezone, not UTC.
type PricingEngine struct {
	hotel    utils.HotelConfig
	clock    utils.Clock
	location *time.Location
}

func NewPricingEngine(hotel utils.HotelConfig, clock utils.Clock) *PricingEngine {
	return &PricingEngine{hotel: hotel, clock: clock, location: hotelLocation(hotel)}
}

// RoundAmount rounds half-up to whole currency units. COP carries no
// subunits in practice.
func RoundAmount(amount float64) float64 {
	return math.Floor(amount + 0.5)
}

// PriceStay prices a stay: nights x base rate, at most one whole-stay
// seasonal window, early-bird discount, extra-bed fees.
func (p *PricingEngine) PriceStay(room *entity.Room, checkIn, checkOut time.Time, guests int) float64 {
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}

	total := room.BasePrice * float64(nights)
	total = p.applySeasonalPricing(total, room, checkIn, checkOut, nights)

	if p.isEarlyBird(checkIn) {
		total = total * (1 - p.hotel.EarlyBirdPercent/100)
	}

	if extra := guests - room.Capacity; extra > 0 {
		if room.Rules != nil && room.Rules.AllowExtraBed {
			total += room.Rules.ExtraBedCharge * float64(extra) * float64(nights)
		}
	}

	return RoundAmount(total)
}

// applySeasonalPricing applies the first window that covers the whole
// stay. Stays spanning a season boundary keep the base rate; there is
// no per-night proration.
func (p *PricingEngine) applySeasonalPricing(baseTotal float64, room *entity.Room, checkIn, checkOut time.Time, nights int) float64 {
	for _, seasonal := range room.SeasonalPricing {
		if !seasonal.Covers(checkIn, checkOut) {
			continue
		}
		switch seasonal.ModifierType {
		case entity.ModifierPercentage:
			return baseTotal * seasonal.PriceModifier
		case entity.ModifierFixedAmount:
			return baseTotal + seasonal.PriceModifier*float64(nights)
		}
	}
	return baseTotal
}

func (p *PricingEngine) isEarlyBird(checkIn time.Time) bool {
	threshold := utils.DateOnly(p.clock.Now()).AddDate(0, 0, p.hotel.EarlyBirdDays)
	return checkIn.After(threshold)
}

// SnapshotCancellationPolicy builds the immutable policy attached to a
// new reservation. The free-cancellation deadline counts back from
// hotel-local midnight on the check-in date.
func (p *PricingEngine) SnapshotCancellationPolicy(checkIn time.Time) *entity.CancellationPolicy {
	arrival := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, p.location)
	deadline := arrival.Add(-time.Duration(p.hotel.FreeCancellationHours) * time.Hour)
	percent := p.hotel.CancellationFeePercent
	return &entity.CancellationPolicy{
		PolicyType:               "FLEXIBLE",
		FreeCancellationHours:    p.hotel.FreeCancellationHours,
		FreeCancellationDeadline: &deadline,
		FeePercent:               &percent,
		Terms:                    "Free cancellation up to 24 hours before check-in",
	}
}

// CancellationFee is zero before the snapshot deadline, else the fixed
// fee if set, else the percentage of the total. Never exceeds the total.
func (p *PricingEngine) CancellationFee(reservation *entity.Reservation) float64 {
	policy := reservation.CancellationPolicy
	if policy == nil {
		return 0
	}

	now := p.clock.Now()
	if policy.FreeCancellationDeadline != nil && now.Before(*policy.FreeCancellationDeadline) {
		return 0
	}

	var fee float64
	switch {
	case policy.FeeFixed != nil:
		fee = *policy.FeeFixed
	case policy.FeePercent != nil:
		fee = reservation.TotalAmount * *policy.FeePercent / 100
	}

	if fee > reservation.TotalAmount {
		fee = reservation.TotalAmount
	}
	return RoundAmount(fee)
}

// RefundAmount is the total minus the fee, never negative.
func (p *PricingEngine) RefundAmount(reservation *entity.Reservation, fee float64) float64 {
	refund := reservation.TotalAmount - fee
	if refund < 0 {
		refund = 0
	}
	return RoundAmount(refund)
}

// LateCheckOutFee applies when the actual check-out is past the standard
// check-out hour, hotel-local, on the scheduled date.
func (p *PricingEngine) LateCheckOutFee(reservation *entity.Reservation, actualOut time.Time) float64 {
	out := reservation.CheckOutDate
	cutoff := time.Date(out.Year(), out.Month(), out.Day(), p.hotel.CheckOutHour, 0, 0, 0, p.location)
	if actualOut.After(cutoff) {
		return p.hotel.LateCheckOutFee
	}
	return 0
}

// CheckOutTotal is the stay total plus folio charges plus any late fee.
func (p *PricingEngine) CheckOutTotal(reservation *entity.Reservation, charges []entity.AdditionalCharge, actualOut time.Time) float64 {
	total := reservation.TotalAmount
	for _, c := range charges {
		total += c.Amount
	}
	total += p.LateCheckOutFee(reservation, actualOut)
	return RoundAmount(total)
}

// DepositRefund returns what remains of the deposit after folio charges.
func (p *PricingEngine) DepositRefund(deposit, additionalCharges float64) float64 {
	refund := deposit - additionalCharges
	if refund < 0 {
		refund = 0
	}
	return RoundAmount(refund)
}
