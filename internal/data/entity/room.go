package entity

import "time"

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "AVAILABLE"
	RoomStatusOccupied    RoomStatus = "OCCUPIED"
	RoomStatusMaintenance RoomStatus = "MAINTENANCE"
	RoomStatusCleaning    RoomStatus = "CLEANING"
	RoomStatusOutOfOrder  RoomStatus = "OUT_OF_ORDER"
	RoomStatusReserved    RoomStatus = "RESERVED"
	RoomStatusBlocked     RoomStatus = "BLOCKED"
)

type PriceBand string

const (
	PriceBandLow    PriceBand = "LOW"
	PriceBandMedium PriceBand = "MEDIUM"
	PriceBandHigh   PriceBand = "HIGH"
	PriceBandLuxury PriceBand = "LUXURY"
)

// BandForPrice classifies a nightly base price.
func BandForPrice(price float64) PriceBand {
	switch {
	case price <= 300000:
		return PriceBandLow
	case price <= 600000:
		return PriceBandMedium
	case price <= 1000000:
		return PriceBandHigh
	default:
		return PriceBandLuxury
	}
}

type SeasonalModifierType string

const (
	ModifierPercentage  SeasonalModifierType = "PERCENTAGE"
	ModifierFixedAmount SeasonalModifierType = "FIXED_AMOUNT"
)

// SeasonalPricing adjusts the nightly rate inside a date window.
type SeasonalPricing struct {
	SeasonName    string               `json:"season_name"`
	StartDate     time.Time            `json:"start_date"`
	EndDate       time.Time            `json:"end_date"`
	PriceModifier float64              `json:"price_modifier"`
	ModifierType  SeasonalModifierType `json:"modifier_type"`
}

// Covers reports whether the whole stay falls inside the window.
func (s SeasonalPricing) Covers(checkIn, checkOut time.Time) bool {
	return !checkIn.Before(s.StartDate) && !checkOut.After(s.EndDate)
}

// RoomRules holds per-room business restrictions.
type RoomRules struct {
	MaxOccupancy      int     `json:"max_occupancy"`
	MaxChildren       int     `json:"max_children"`
	AllowExtraBed     bool    `json:"allow_extra_bed"`
	ExtraBedCharge    float64 `json:"extra_bed_charge"`
	AllowLateCheckOut bool    `json:"allow_late_check_out"`
	CancellationHours int     `json:"cancellation_hours"`
	Refundable        bool    `json:"refundable"`
}

type Room struct {
	Base
	RoomNumber      string            `db:"room_number"`
	RoomType        string            `db:"room_type"`
	Capacity        int               `db:"capacity"`
	BedType         string            `db:"bed_type"`
	BasePrice       float64           `db:"base_price"`
	Description     string            `db:"description"`
	Amenities       []string          `db:"amenities"`
	Floor           int               `db:"floor"`
	Accessible      bool              `db:"accessible"`
	Status          RoomStatus        `db:"status"`
	Active          bool              `db:"active"`
	SeasonalPricing []SeasonalPricing `db:"seasonal_pricing"`
	Rules           *RoomRules        `db:"rules"`
}

// IsBookable reports whether the room can take new reservations.
func (r *Room) IsBookable() bool {
	return r.Active && r.Status == RoomStatusAvailable
}

// MaxOccupancy prefers the rules cap, falling back to physical capacity.
func (r *Room) MaxOccupancy() int {
	if r.Rules != nil && r.Rules.MaxOccupancy > 0 {
		return r.Rules.MaxOccupancy
	}
	return r.Capacity
}

// HasAmenities reports whether the room offers every requested amenity.
func (r *Room) HasAmenities(required []string) bool {
	for _, want := range required {
		found := false
		for _, have := range r.Amenities {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
