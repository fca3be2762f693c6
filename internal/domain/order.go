package domain

import "time"

type OrderStatus string

const (
	OrderPaymentPending OrderStatus = "payment_pending"
	OrderCompleted      OrderStatus = "completed"
)

// ReservationOrder tracks a priced obligation from creation to settlement.
// Amount is frozen at creation (nights × price + holding fee) and is never
// recomputed afterwards; completion verifies the ledger transfer against it.
type ReservationOrder struct {
	CorrelationID string      `json:"correlation_id"`
	RoomID        int64       `json:"room_id"`
	Amount        int64       `json:"amount"`
	Nights        int64       `json:"nights"`
	Status        OrderStatus `json:"status"`

	PayerID      int64  `json:"payer_id"`
	PayerAddress string `json:"payer_address"`

	ConfirmedBlock *uint64    `json:"confirmed_block,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	SettledAt      *time.Time `json:"settled_at,omitempty"`
}
