package reservation

import "time"

type EventType string

const (
	EventOrderCreated     EventType = "order_created"
	EventOrderCompleted   EventType = "order_completed"
	EventOrderExpired     EventType = "order_expired"
	EventReservationEnded EventType = "reservation_ended"
)

type Event struct {
	Type          EventType `json:"type"`
	RoomID        int64     `json:"room_id"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	PayerID       int64     `json:"payer_id,omitempty"`
	At            time.Time `json:"at"`
}

// EventSink receives lifecycle notifications. Delivery is best-effort and
// must never block or fail an operation.
type EventSink interface {
	Publish(e Event)
}
