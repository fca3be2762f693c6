package catalog

import (
	"context"

	"roomledger/internal/domain"
)

// RoomRepository defines the room-store operations the catalog needs.
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, onlyActive bool, limit, offset int) ([]domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
}
