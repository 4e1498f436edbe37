package request

// SearchAvailabilityRequest comes from query parameters on the search
// endpoint. Dates use YYYY-MM-DD.
type SearchAvailabilityRequest struct {
	CheckInDate  string   `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate string   `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	Adults       int      `json:"adults" validate:"required,gte=1"`
	Children     int      `json:"children" validate:"gte=0"`
	RoomType     string   `json:"room_type" validate:"omitempty"`
	PriceBand    string   `json:"price_band" validate:"omitempty,oneof=LOW MEDIUM HIGH LUXURY"`
	Amenities    []string `json:"amenities" validate:"omitempty"`
	Accessible   *bool    `json:"accessible"`
}

type RoomAvailabilityRequest struct {
	CheckInDate  string `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
}
