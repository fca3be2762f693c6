package reservation

import (
	"context"
	"time"

	"roomledger/internal/domain"
)

// RoomStore is the room-state slice of the engine's persistence. Reserve and
// Release are guarded single-row writes: they succeed only when the room is
// still in the expected state, which is what makes re-checks after ledger
// calls safe.
type RoomStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	Reserve(ctx context.Context, roomID, userID int64, ends time.Time) (bool, error)
	Release(ctx context.Context, roomID, userID int64) (bool, error)
}

// OrderStore holds pending orders keyed by correlation id and the permanent
// settled-order audit trail keyed by payer. RemovePending and Settle must be
// atomic per key; their boolean results decide the completion/expiry race.
// Settle removes the pending order and writes the settled record as one unit,
// so a verified payment can never lose its audit entry.
type OrderStore interface {
	InsertPending(ctx context.Context, o *domain.ReservationOrder) error
	GetPending(ctx context.Context, correlationID string) (*domain.ReservationOrder, error)
	RemovePending(ctx context.Context, correlationID string) (bool, error)
	Settle(ctx context.Context, o *domain.ReservationOrder) (bool, error)
	ListSettledByPayer(ctx context.Context, payerID int64) ([]domain.ReservationOrder, error)
}
