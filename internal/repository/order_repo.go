package repository

import (
	"context"
	"time"

	"roomledger/internal/domain"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

type pendingOrderModel struct {
	CorrelationID string    `gorm:"column:correlation_id;primaryKey"`
	RoomID        int64     `gorm:"column:room_id;index"`
	Amount        int64     `gorm:"column:amount"`
	Nights        int64     `gorm:"column:nights"`
	PayerID       int64     `gorm:"column:payer_id"`
	PayerAddress  string    `gorm:"column:payer_address"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (pendingOrderModel) TableName() string { return "pending_orders" }

type settledOrderModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	CorrelationID  string    `gorm:"column:correlation_id;uniqueIndex"`
	RoomID         int64     `gorm:"column:room_id"`
	Amount         int64     `gorm:"column:amount"`
	Nights         int64     `gorm:"column:nights"`
	PayerID        int64     `gorm:"column:payer_id;index"`
	PayerAddress   string    `gorm:"column:payer_address"`
	ConfirmedBlock uint64    `gorm:"column:confirmed_block"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	SettledAt      time.Time `gorm:"column:settled_at"`
}

func (settledOrderModel) TableName() string { return "settled_orders" }

func toDomainPending(m pendingOrderModel) *domain.ReservationOrder {
	return &domain.ReservationOrder{
		CorrelationID: m.CorrelationID,
		RoomID:        m.RoomID,
		Amount:        m.Amount,
		Nights:        m.Nights,
		Status:        domain.OrderPaymentPending,
		PayerID:       m.PayerID,
		PayerAddress:  m.PayerAddress,
		CreatedAt:     m.CreatedAt,
	}
}

func toDomainSettled(m settledOrderModel) domain.ReservationOrder {
	block := m.ConfirmedBlock
	settledAt := m.SettledAt
	return domain.ReservationOrder{
		CorrelationID:  m.CorrelationID,
		RoomID:         m.RoomID,
		Amount:         m.Amount,
		Nights:         m.Nights,
		Status:         domain.OrderCompleted,
		PayerID:        m.PayerID,
		PayerAddress:   m.PayerAddress,
		ConfirmedBlock: &block,
		CreatedAt:      m.CreatedAt,
		SettledAt:      &settledAt,
	}
}

func (r *OrderRepository) InsertPending(ctx context.Context, o *domain.ReservationOrder) error {
	m := pendingOrderModel{
		CorrelationID: o.CorrelationID,
		RoomID:        o.RoomID,
		Amount:        o.Amount,
		Nights:        o.Nights,
		PayerID:       o.PayerID,
		PayerAddress:  o.PayerAddress,
		CreatedAt:     o.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *OrderRepository) GetPending(ctx context.Context, correlationID string) (*domain.ReservationOrder, error) {
	var m pendingOrderModel
	tx := r.db.WithContext(ctx).Where("correlation_id = ?", correlationID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPending(m), nil
}

// RemovePending deletes the pending order and reports whether this caller
// observed it present. The single DELETE is the linearization point that
// decides the completion/expiry race: exactly one caller gets true.
func (r *OrderRepository) RemovePending(ctx context.Context, correlationID string) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("correlation_id = ?", correlationID).
		Delete(&pendingOrderModel{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// Settle deletes the pending order and inserts the settled record inside one
// transaction. The guarded DELETE keeps the completion/expiry race decisive
// (exactly one caller gets true) while the shared transaction guarantees the
// audit trail entry commits with the removal or not at all.
func (r *OrderRepository) Settle(ctx context.Context, o *domain.ReservationOrder) (bool, error) {
	var block uint64
	if o.ConfirmedBlock != nil {
		block = *o.ConfirmedBlock
	}
	settledAt := time.Now().UTC()
	if o.SettledAt != nil {
		settledAt = *o.SettledAt
	}

	won := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("correlation_id = ?", o.CorrelationID).Delete(&pendingOrderModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		won = true
		m := settledOrderModel{
			CorrelationID:  o.CorrelationID,
			RoomID:         o.RoomID,
			Amount:         o.Amount,
			Nights:         o.Nights,
			PayerID:        o.PayerID,
			PayerAddress:   o.PayerAddress,
			ConfirmedBlock: block,
			CreatedAt:      o.CreatedAt,
			SettledAt:      settledAt,
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return false, err
	}
	return won, nil
}

func (r *OrderRepository) ListSettledByPayer(ctx context.Context, payerID int64) ([]domain.ReservationOrder, error) {
	var rows []settledOrderModel
	tx := r.db.WithContext(ctx).
		Where("payer_id = ?", payerID).
		Order("settled_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.ReservationOrder, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainSettled(m))
	}
	return out, nil
}
