package repository

import (
	"context"
	"time"

	"roomledger/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	Name            string     `gorm:"column:name"`
	Description     string     `gorm:"column:description"`
	ImageURL        string     `gorm:"column:image_url"`
	PricePerNight   int64      `gorm:"column:price_per_night"`
	IsReserved      bool       `gorm:"column:is_reserved"`
	ReservedTo      *int64     `gorm:"column:reserved_to"`
	ReservationEnds *time.Time `gorm:"column:reservation_ends"`
	OwnerID         int64      `gorm:"column:owner_id"`
	IsActive        bool       `gorm:"column:is_active"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	return &domain.Room{
		ID:              m.ID,
		Name:            m.Name,
		Description:     m.Description,
		ImageURL:        m.ImageURL,
		PricePerNight:   m.PricePerNight,
		IsReserved:      m.IsReserved,
		ReservedTo:      m.ReservedTo,
		ReservationEnds: m.ReservationEnds,
		OwnerID:         m.OwnerID,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toRoomModel(r *domain.Room) roomModel {
	return roomModel{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		ImageURL:        r.ImageURL,
		PricePerNight:   r.PricePerNight,
		IsReserved:      r.IsReserved,
		ReservedTo:      r.ReservedTo,
		ReservationEnds: r.ReservationEnds,
		OwnerID:         r.OwnerID,
		IsActive:        r.IsActive,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) List(ctx context.Context, onlyActive bool, limit, offset int) ([]domain.Room, error) {
	q := r.db.WithContext(ctx).Model(&roomModel{}).Order("id")
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var rows []roomModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Room, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	return r.db.WithContext(ctx).Save(&m).Error
}

// Reserve marks the room occupied if and only if it is currently free.
// The guarded single UPDATE is the atomic commit point for completeOrder:
// a false return means another completion won while the ledger call was in
// flight.
func (r *RoomRepository) Reserve(ctx context.Context, roomID, userID int64, ends time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&roomModel{}).
		Where("id = ? AND is_reserved = ?", roomID, false).
		Updates(map[string]any{
			"is_reserved":      true,
			"reserved_to":      userID,
			"reservation_ends": ends,
			"updated_at":       time.Now().UTC(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// Release frees the room if it is still reserved by the given occupant.
func (r *RoomRepository) Release(ctx context.Context, roomID, userID int64) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&roomModel{}).
		Where("id = ? AND is_reserved = ? AND reserved_to = ?", roomID, true, userID).
		Updates(map[string]any{
			"is_reserved":      false,
			"reserved_to":      nil,
			"reservation_ends": nil,
			"updated_at":       time.Now().UTC(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
