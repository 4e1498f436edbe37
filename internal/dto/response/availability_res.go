package response

type AvailableRoomResponse struct {
	RoomID     string   `json:"room_id"`
	RoomNumber string   `json:"room_number"`
	RoomType   string   `json:"room_type"`
	Capacity   int      `json:"capacity"`
	BedType    string   `json:"bed_type"`
	BasePrice  float64  `json:"base_price"`
	TotalPrice float64  `json:"total_price"`
	Nights     int      `json:"nights"`
	PriceBand  string   `json:"price_band"`
	Amenities  []string `json:"amenities,omitempty"`
	Accessible bool     `json:"accessible"`
	Available  bool     `json:"available"`
}

type RoomAvailabilityResponse struct {
	RoomID       string   `json:"room_id"`
	RoomNumber   string   `json:"room_number"`
	CheckInDate  string   `json:"check_in_date"`
	CheckOutDate string   `json:"check_out_date"`
	Available    bool     `json:"available"`
	TotalPrice   *float64 `json:"total_price,omitempty"`
}
