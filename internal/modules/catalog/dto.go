package catalog

type CreateRoomRequest struct {
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
	ImageURL      string `json:"image_url"`
	PricePerNight int64  `json:"price_per_night" validate:"gte=0"`
}

type UpdateRoomRequest struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`
	PricePerNight *int64  `json:"price_per_night,omitempty"`
}
