package reservation

import (
	"context"
	"errors"
	"time"

	"roomledger/internal/domain"
	"roomledger/internal/pkg/ledger"
	"roomledger/internal/pkg/timeout"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Config is the engine's slice of the runtime configuration, fixed at
// construction. HoldingFee == 0 means the fee was never configured and every
// fee-dependent operation refuses to run.
type Config struct {
	HoldingFee int64
	// NightDuration converts reserved nights into a clock interval.
	NightDuration time.Duration
	// GracePeriod is how long an unpaid pending order survives.
	GracePeriod time.Duration
	// ServiceAddress is the ledger address payments must be sent to.
	ServiceAddress string
}

// Payer identifies the caller on both sides of the boundary: the user id for
// room occupancy, the ledger address for payment verification and refunds.
type Payer struct {
	UserID        int64
	LedgerAddress string
}

// Receipt confirms a finished reservation and its holding-fee refund.
type Receipt struct {
	RoomID       int64  `json:"room_id"`
	RefundAmount int64  `json:"refund_amount"`
	RefundBlock  uint64 `json:"refund_block"`
}

type Service struct {
	rooms  RoomStore
	orders OrderStore
	ledger ledger.Client
	timers timeout.Scheduler
	events EventSink
	cfg    Config
	log    *zap.Logger
	now    func() time.Time
}

type ServiceOption func(*Service)

// WithClock overrides the engine's time source. Primarily for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithEventSink attaches a lifecycle event receiver.
func WithEventSink(sink EventSink) ServiceOption {
	return func(s *Service) { s.events = sink }
}

func NewService(
	rooms RoomStore,
	orders OrderStore,
	ledgerClient ledger.Client,
	timers timeout.Scheduler,
	cfg Config,
	log *zap.Logger,
	opts ...ServiceOption,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		rooms:  rooms,
		orders: orders,
		ledger: ledgerClient,
		timers: timers,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HoldingFee returns the configured refundable deposit, 0 when unset.
func (s *Service) HoldingFee() int64 {
	return s.cfg.HoldingFee
}

// CreateOrder opens a pending payment obligation for the room. The amount is
// frozen here; the scheduled expiry discards the order if it is not completed
// within the grace period.
func (s *Service) CreateOrder(ctx context.Context, payer Payer, roomID, nights int64) (*domain.ReservationOrder, error) {
	if nights < 1 {
		return nil, ErrValidation
	}
	if s.cfg.HoldingFee <= 0 {
		return nil, ErrFeeNotConfigured
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if room.IsReserved {
		return nil, ErrBooked
	}

	order := &domain.ReservationOrder{
		CorrelationID: uuid.NewString(),
		RoomID:        room.ID,
		Amount:        nights*room.PricePerNight + s.cfg.HoldingFee,
		Nights:        nights,
		Status:        domain.OrderPaymentPending,
		PayerID:       payer.UserID,
		PayerAddress:  payer.LedgerAddress,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.orders.InsertPending(ctx, order); err != nil {
		return nil, err
	}

	correlationID := order.CorrelationID
	expiredRoomID := room.ID
	s.timers.Schedule(s.cfg.GracePeriod, func() {
		s.expireOrder(correlationID, expiredRoomID)
	})

	s.log.Info("reservation order created",
		zap.String("correlation_id", order.CorrelationID),
		zap.Int64("room_id", room.ID),
		zap.Int64("payer_id", payer.UserID),
		zap.Int64("amount", order.Amount),
		zap.Int64("nights", nights),
	)
	s.publish(Event{Type: EventOrderCreated, RoomID: room.ID, CorrelationID: order.CorrelationID, PayerID: payer.UserID, At: s.now()})
	return order, nil
}

// expireOrder runs on the scheduler's execution context after the grace
// period. Finding the pending entry already gone means completion won the
// race; that is a silent no-op.
func (s *Service) expireOrder(correlationID string, roomID int64) {
	ctx := context.Background()
	removed, err := s.orders.RemovePending(ctx, correlationID)
	if err != nil {
		s.log.Error("failed to expire pending order",
			zap.String("correlation_id", correlationID),
			zap.Error(err),
		)
		return
	}
	if !removed {
		return
	}
	s.log.Info("pending order expired",
		zap.String("correlation_id", correlationID),
		zap.Int64("room_id", roomID),
	)
	s.publish(Event{Type: EventOrderExpired, RoomID: roomID, CorrelationID: correlationID, At: s.now()})
}

// CompleteOrder verifies the claimed ledger payment against the stored order
// and, on success, settles the order and reserves the room. Verification uses
// the amount frozen at creation time; current room price and fee are
// irrelevant here. The ledger query runs with no store state held; the
// pending-order removal afterwards is the linearization point against expiry.
func (s *Service) CompleteOrder(ctx context.Context, payer Payer, roomID, nights int64, ledgerBlock uint64, correlationID string) (*domain.ReservationOrder, error) {
	if correlationID == "" {
		return nil, ErrValidation
	}
	if s.cfg.HoldingFee <= 0 {
		return nil, ErrFeeNotConfigured
	}

	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	order, err := s.orders.GetPending(ctx, correlationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.RoomID != roomID || order.PayerID != payer.UserID || order.Nights != nights {
		return nil, ErrNotFound
	}

	verified, err := s.verifyPayment(ctx, order, payer.LedgerAddress, ledgerBlock)
	if err != nil {
		s.log.Error("ledger block query failed",
			zap.String("correlation_id", correlationID),
			zap.Uint64("ledger_block", ledgerBlock),
			zap.Error(err),
		)
		return nil, ErrPaymentFailed
	}
	if !verified {
		s.log.Warn("payment verification failed",
			zap.String("correlation_id", correlationID),
			zap.Uint64("ledger_block", ledgerBlock),
		)
		return nil, ErrNotFound
	}

	// Linearization point: Settle removes the pending entry and writes the
	// settled record in one transaction. Whoever removes the entry proceeds,
	// the other side observes absence and fails.
	now := s.now().UTC()
	order.Status = domain.OrderCompleted
	order.ConfirmedBlock = &ledgerBlock
	order.SettledAt = &now
	settled, err := s.orders.Settle(ctx, order)
	if err != nil {
		return nil, err
	}
	if !settled {
		return nil, ErrNotFound
	}

	ends := now.Add(time.Duration(order.Nights) * s.cfg.NightDuration)
	reserved, err := s.rooms.Reserve(ctx, roomID, payer.UserID, ends)
	if err != nil {
		return nil, err
	}
	if !reserved {
		// Another order for the same room completed while we were
		// verifying. The payment stands in the settled trail; occupancy
		// conflicts are resolved operationally.
		s.log.Warn("room reserved by a concurrent completion",
			zap.Int64("room_id", roomID),
			zap.String("correlation_id", correlationID),
		)
		return nil, ErrBooked
	}

	s.log.Info("reservation order completed",
		zap.String("correlation_id", correlationID),
		zap.Int64("room_id", roomID),
		zap.Uint64("confirmed_block", ledgerBlock),
		zap.Time("reservation_ends", ends),
	)
	s.publish(Event{Type: EventOrderCompleted, RoomID: roomID, CorrelationID: correlationID, PayerID: payer.UserID, At: now})
	return order, nil
}

func (s *Service) verifyPayment(ctx context.Context, order *domain.ReservationOrder, payerAddress string, ledgerBlock uint64) (bool, error) {
	blocks, err := s.ledger.QueryBlocks(ctx, ledgerBlock, 1)
	if err != nil {
		return false, err
	}
	for _, b := range blocks {
		if b.Index != ledgerBlock || b.Transfer == nil {
			continue
		}
		t := b.Transfer
		if t.Memo == order.CorrelationID &&
			t.From == payerAddress &&
			t.To == s.cfg.ServiceAddress &&
			t.Amount == order.Amount {
			return true, nil
		}
	}
	return false, nil
}

// EndReservation refunds the holding fee (minus the ledger transfer fee) to
// the occupant once the reservation window has elapsed, then frees the room.
// A ledger failure leaves the reservation untouched so the caller can retry.
func (s *Service) EndReservation(ctx context.Context, caller Payer, roomID int64) (*Receipt, error) {
	if s.cfg.HoldingFee <= 0 {
		return nil, ErrFeeNotConfigured
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !room.IsReserved || !room.OccupancyConsistent() {
		return nil, ErrNotBooked
	}
	if *room.ReservedTo != caller.UserID {
		return nil, ErrBooked
	}
	if s.now().Before(*room.ReservationEnds) {
		return nil, ErrBooked
	}

	transferFee, err := s.ledger.TransferFee(ctx)
	if err != nil {
		s.log.Error("failed to read ledger transfer fee", zap.Error(err))
		return nil, ErrPaymentFailed
	}
	refund := s.cfg.HoldingFee - transferFee
	if refund <= 0 {
		s.log.Error("transfer fee exceeds holding fee",
			zap.Int64("holding_fee", s.cfg.HoldingFee),
			zap.Int64("transfer_fee", transferFee),
		)
		return nil, ErrPaymentFailed
	}

	block, err := s.ledger.Transfer(ctx, caller.LedgerAddress, refund, transferFee)
	if err != nil {
		s.log.Error("holding fee refund transfer failed",
			zap.Int64("room_id", roomID),
			zap.Int64("payer_id", caller.UserID),
			zap.Error(err),
		)
		return nil, ErrPaymentFailed
	}

	released, err := s.rooms.Release(ctx, roomID, caller.UserID)
	if err != nil {
		return nil, err
	}
	if !released {
		// Room state changed while the transfer was in flight. The refund
		// already went out; surface the inconsistency instead of retrying.
		s.log.Warn("room already released after refund",
			zap.Int64("room_id", roomID),
			zap.Int64("payer_id", caller.UserID),
		)
		return nil, ErrNotBooked
	}

	s.log.Info("reservation ended",
		zap.Int64("room_id", roomID),
		zap.Int64("payer_id", caller.UserID),
		zap.Int64("refund_amount", refund),
		zap.Uint64("refund_block", block),
	)
	s.publish(Event{Type: EventReservationEnded, RoomID: roomID, PayerID: caller.UserID, At: s.now()})
	return &Receipt{RoomID: roomID, RefundAmount: refund, RefundBlock: block}, nil
}

// MyOrders returns the caller's settled orders, newest first.
func (s *Service) MyOrders(ctx context.Context, payerID int64) ([]domain.ReservationOrder, error) {
	return s.orders.ListSettledByPayer(ctx, payerID)
}

func (s *Service) publish(e Event) {
	if s.events != nil {
		s.events.Publish(e)
	}
}
