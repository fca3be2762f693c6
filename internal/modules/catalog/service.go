package catalog

import (
	"context"

	"roomledger/internal/domain"
)

type Service struct {
	rooms RoomRepository
}

func NewService(rooms RoomRepository) *Service {
	return &Service{rooms: rooms}
}

func (s *Service) ListRooms(ctx context.Context, limit, offset int) ([]domain.Room, error) {
	return s.rooms.List(ctx, true, limit, offset)
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

func (s *Service) CreateRoom(ctx context.Context, user *domain.User, req CreateRoomRequest) (*domain.Room, error) {
	if user.Role != domain.RoleHost {
		return nil, ErrForbidden
	}
	if req.Name == "" || req.PricePerNight < 0 {
		return nil, ErrValidation
	}

	room := &domain.Room{
		Name:          req.Name,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		PricePerNight: req.PricePerNight,
		OwnerID:       user.ID,
		IsActive:      true,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, userID, roomID int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.OwnerID != userID {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrValidation
		}
		room.Name = *req.Name
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.ImageURL != nil {
		room.ImageURL = *req.ImageURL
	}
	if req.PricePerNight != nil {
		if *req.PricePerNight < 0 {
			return nil, ErrValidation
		}
		room.PricePerNight = *req.PricePerNight
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// DeactivateRoom pulls a room from the listing. Reserved rooms stay live
// until the reservation ends.
func (s *Service) DeactivateRoom(ctx context.Context, userID, roomID int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.OwnerID != userID {
		return nil, ErrForbidden
	}
	if room.IsReserved {
		return nil, ErrReserved
	}

	room.IsActive = false
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}
