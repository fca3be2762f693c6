package domain

import "time"

// Room is a bookable unit. PricePerNight is in the smallest currency unit.
type Room struct {
	ID            int64  `json:"id"`
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	PricePerNight int64  `json:"price_per_night" validate:"gte=0"`

	IsReserved      bool       `json:"is_reserved"`
	ReservedTo      *int64     `json:"reserved_to,omitempty"`
	ReservationEnds *time.Time `json:"reservation_ends,omitempty"`

	OwnerID   int64     `json:"owner_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OccupancyConsistent reports whether the reservation flag agrees with the
// occupancy fields: reserved rooms carry both occupant and deadline, free
// rooms carry neither.
func (r *Room) OccupancyConsistent() bool {
	occupied := r.ReservedTo != nil && r.ReservationEnds != nil
	vacant := r.ReservedTo == nil && r.ReservationEnds == nil
	if r.IsReserved {
		return occupied
	}
	return vacant
}
