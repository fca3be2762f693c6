package reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"roomledger/internal/domain"
	"roomledger/internal/pkg/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock stores

type MockRoomStore struct {
	mock.Mock
}

func (m *MockRoomStore) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomStore) Reserve(ctx context.Context, roomID, userID int64, ends time.Time) (bool, error) {
	args := m.Called(ctx, roomID, userID, ends)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoomStore) Release(ctx context.Context, roomID, userID int64) (bool, error) {
	args := m.Called(ctx, roomID, userID)
	return args.Bool(0), args.Error(1)
}

type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) InsertPending(ctx context.Context, o *domain.ReservationOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderStore) GetPending(ctx context.Context, correlationID string) (*domain.ReservationOrder, error) {
	args := m.Called(ctx, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationOrder), args.Error(1)
}

func (m *MockOrderStore) RemovePending(ctx context.Context, correlationID string) (bool, error) {
	args := m.Called(ctx, correlationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderStore) Settle(ctx context.Context, o *domain.ReservationOrder) (bool, error) {
	args := m.Called(ctx, o)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderStore) ListSettledByPayer(ctx context.Context, payerID int64) ([]domain.ReservationOrder, error) {
	args := m.Called(ctx, payerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReservationOrder), args.Error(1)
}

type MockLedgerClient struct {
	mock.Mock
}

func (m *MockLedgerClient) Transfer(ctx context.Context, to string, amount, fee int64) (uint64, error) {
	args := m.Called(ctx, to, amount, fee)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockLedgerClient) QueryBlocks(ctx context.Context, start uint64, length uint32) ([]ledger.Block, error) {
	args := m.Called(ctx, start, length)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Block), args.Error(1)
}

func (m *MockLedgerClient) TransferFee(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// manualScheduler records callbacks so tests can fire expiry deterministically.
type manualScheduler struct {
	mu        sync.Mutex
	delays    []time.Duration
	callbacks []func()
}

func (m *manualScheduler) Schedule(delay time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delays = append(m.delays, delay)
	m.callbacks = append(m.callbacks, fn)
}

func (m *manualScheduler) fireAll() {
	m.mu.Lock()
	cbs := m.callbacks
	m.callbacks = nil
	m.mu.Unlock()
	for _, fn := range cbs {
		fn()
	}
}

// recordingSink captures published lifecycle events for inspection.
type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingSink) Publish(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingSink) byType(t EventType) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

const (
	testServiceAddr = "ldg-service"
	testPayerAddr   = "ldg-guest-1"
)

var testClock = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func testConfig() Config {
	return Config{
		HoldingFee:     5,
		NightDuration:  time.Minute, // compressed night for tests
		GracePeriod:    2 * time.Second,
		ServiceAddress: testServiceAddr,
	}
}

func newTestService(rooms *MockRoomStore, orders *MockOrderStore, lc *MockLedgerClient, sched *manualScheduler, cfg Config) *Service {
	return NewService(rooms, orders, lc, sched, cfg, nil, WithClock(func() time.Time { return testClock }))
}

func freeRoom() *domain.Room {
	return &domain.Room{
		ID:            10,
		Name:          "Seaside loft",
		PricePerNight: 10,
		IsReserved:    false,
		OwnerID:       1,
		IsActive:      true,
	}
}

func reservedRoom(occupant int64, ends time.Time) *domain.Room {
	return &domain.Room{
		ID:              10,
		Name:            "Seaside loft",
		PricePerNight:   10,
		IsReserved:      true,
		ReservedTo:      &occupant,
		ReservationEnds: &ends,
		OwnerID:         1,
		IsActive:        true,
	}
}

func testPayer() Payer {
	return Payer{UserID: 99, LedgerAddress: testPayerAddr}
}

func TestCreateOrder_Success(t *testing.T) {
	rooms := new(MockRoomStore)
	orders := new(MockOrderStore)
	lc := new(MockLedgerClient)
	sched := &manualScheduler{}

	rooms.On("GetByID", mock.Anything, int64(10)).Return(freeRoom(), nil)
	orders.On("InsertPending", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(rooms, orders, lc, sched, testConfig())

	order, err := service.CreateOrder(context.Background(), testPayer(), 10, 3)

	assert.NoError(t, err)
	assert.NotNil(t, order)
	// 3 nights x 10 per night + 5 holding fee
	assert.Equal(t, int64(35), order.Amount)
	assert.Equal(t, domain.OrderPaymentPending, order.Status)
	assert.Equal(t, int64(99), order.PayerID)
	assert.NotEmpty(t, order.CorrelationID)

	// exactly one scheduled expiry, at the configured grace period
	assert.Len(t, sched.callbacks, 1)
	assert.Equal(t, 2*time.Second, sched.delays[0])
}

func TestCreateOrder_RoomAlreadyReserved(t *testing.T) {
	rooms := new(MockRoomStore)
	orders := new(MockOrderStore)
	lc := new(MockLedgerClient)
	sched := &manualScheduler{}

	ends := testClock.Add(time.Hour)
	rooms.On("GetByID", mock.Anything, int64(10)).Return(reservedRoom(7, ends), nil)

	service := newTestService(rooms, orders, lc, sched, testConfig())

	_, err := service.CreateOrder(context.Background(), testPayer(), 10, 2)

	assert.ErrorIs(t, err, ErrBooked)
	orders.AssertNotCalled(t, "InsertPending", mock.Anything, mock.Anything)
	assert.Empty(t, sched.callbacks)
}

func TestCreateOrder_ZeroNightsRejected(t *testing.T) {
	service := newTestService(new(MockRoomStore), new(MockOrderStore), new(MockLedgerClient), &manualScheduler{}, testConfig())

	_, err := service.CreateOrder(context.Background(), testPayer(), 10, 0)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateOrder_FeeNotConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.HoldingFee = 0
	service := newTestService(new(MockRoomStore), new(MockOrderStore), new(MockLedgerClient), &manualScheduler{}, cfg)

	_, err := service.CreateOrder(context.Background(), testPayer(), 10, 2)

	assert.ErrorIs(t, err, ErrFeeNotConfigured)
}

func TestCreateOrder_RoomNotFound(t *testing.T) {
	rooms := new(MockRoomStore)
	rooms.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(rooms, new(MockOrderStore), new(MockLedgerClient), &manualScheduler{}, testConfig())

	_, err := service.CreateOrder(context.Background(), testPayer(), 404, 2)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpiry_RemovesPendingOrder(t *testing.T) {
	rooms := new(MockRoomStore)
	orders := new(MockOrderStore)
	sched := &manualScheduler{}

	rooms.On("GetByID", mock.Anything, int64(10)).Return(freeRoom(), nil)
	orders.On("InsertPending", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(rooms, orders, new(MockLedgerClient), sched, testConfig())

	order, err := service.CreateOrder(context.Background(), testPayer(), 10, 3)
	assert.NoError(t, err)

	orders.On("RemovePending", mock.Anything, order.CorrelationID).Return(true, nil)
	sched.fireAll()

	orders.AssertCalled(t, "RemovePending", mock.Anything, order.CorrelationID)
}

func TestExpiry_AfterCompletionIsNoOp(t *testing.T) {
	rooms := new(MockRoomStore)
	orders := new(MockOrderStore)
	sched := &manualScheduler{}

	rooms.On("GetByID", mock.Anything, int64(10)).Return(freeRoom(), nil)
	orders.On("InsertPending", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(rooms, orders, new(MockLedgerClient), sched, testConfig())

	order, err := service.CreateOrder(context.Background(), testPayer(), 10, 3)
	assert.NoError(t, err)

	// entry already gone: the callback must swallow it silently
	orders.On("RemovePending", mock.Anything, order.CorrelationID).Return(false, nil)
	sched.fireAll()

	orders.AssertCalled(t, "RemovePending", mock.Anything, order.CorrelationID)
	orders.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything)
}

func TestExpiry_EventCarriesRoomID(t *testing.T) {
	rooms := new(MockRoomStore)
	orders := new(MockOrderStore)
	sched := &manualScheduler{}
	sink := &recordingSink{}

	rooms.On("GetByID", mock.Anything, int64(10)).Return(freeRoom(), nil)
	orders.On("InsertPending", mock.Anything, mock.Anything).Return(nil)

	service := NewService(rooms, orders, new(MockLedgerClient), sched, testConfig(), nil,
		WithClock(func() time.Time { return testClock }),
		WithEventSink(sink),
	)

	order, err := service.CreateOrder(context.Background(), testPayer(), 10, 3)
	assert.NoError(t, err)

	orders.On("RemovePending", mock.Anything, order.CorrelationID).Return(true, nil)
	sched.fireAll()

	expired := sink.byType(EventOrderExpired)
	assert.Len(t, expired, 1)
	assert.Equal(t, int64(10), expired[0].RoomID)
	assert.Equal(t, order.CorrelationID, expired[0].CorrelationID)
}

func pendingOrder(correlationID string) *domain.ReservationOrder {
	return &domain.ReservationOrder{
		CorrelationID: correlationID,
		RoomID:        10,
		Amount:        35,
		Nights:        3,
		Status:        domain.OrderPaymentPending,
		PayerID:       99,
		PayerAddress:  testPayerAddr,
		CreatedAt:     testClock.Add(-30 * time.Second),
	}
}

func matchingBlock(correlationID string, index uint64, amount int64) []ledger.Block {
	return []ledger.Block{{
		Index: index,
		Transfer: &ledger.TransferOp{
			From:   testPayerAddr,
			To:     testServiceAddr,
			Amount: amount,
			Memo:   correlationID,
		},
	}}
}

func TestCompleteOrder_Success(t *testing.T) {
	rooms := new(MockRoomStore)
	orders := new(MockOrderStore)
	lc := new(MockLedgerClient)

	corrID := "corr-1"
	rooms.On("GetByID", mock.Anything, int64(10)).Return(freeRoom(), nil)
	orders.On("GetPending", mock.Anything, corrID).Return(pendingOrder(corrID), nil)
	lc.On("QueryBlocks", mock.Anything, uint64(42), uint32(1)).Return(matchingBlock(corrID, 42, 35), nil)
	orders.On("Settle", mock.Anything, mock.Anything).Return(true, nil)

	wantEnds := testClock.UTC().Add(3 * time.Minute)
	rooms.On("Reserve", mock.Anything, int64(10), int64(99), wantEnds).Return(true, nil)

	service := newTestService(rooms, orders, lc, &manualScheduler{}, testConfig())

	order, err := service.CompleteOrder(context.Background(), testPayer(), 10, 3, 42, corrID)

	assert.NoError(t, err)
	assert.Equal(t, domain.OrderCompleted, order.Status)
	assert.NotNil(t, order.ConfirmedBlock)
	assert.Equal(t, uint64(42), *order.ConfirmedBlock)
	rooms.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestCompleteOrder_VerificationUsesFrozenAmount(t *testing.T) {
	rooms := new(MockRoomStore)
	orders := new(MockOrderStore)
	lc := new(MockLedgerClient)

	corrID := "corr-frozen"
	// room price changed since order creation; the frozen amount still rules
	room := freeRoom()
	room.PricePerNight = 999
	rooms.On("GetByID", mock.Anything, int64(10)).Return(room, nil)
	orders.On("GetPending", mock.Anything, corrID).Return(pendingOrder(corrID), nil)
	lc.On("QueryBlocks", mock.Anything, uint64(42), uint32(1)).Return(matchingBlock(corrID, 42, 35), nil)
	orders.On("Settle", mock.Anything, mock.Anything).Return(true, nil)
	rooms.On("Reserve", mock.Anything, int64(10), int64(99), mock.Anything).Return(true, nil)

	service := newTestService(rooms, orders, lc, &manualScheduler{}, testConfig())

	_, err := service.CompleteOrder(context.Background(), testPayer(), 10, 3, 42, corrID)

	assert.NoError(t, err)
}

func TestCompleteOrder_FabricatedBlock(t *testing.T) {
	rooms := new(MockRoomStore)
	orders := new(MockOrderStore)
	lc := new(MockLedgerClient)

	corrID := "corr-2"
	rooms.On("GetByID", mock.Anything, int64(10)).Return(freeRoom(), nil)
	orders.On("GetPending", mock.Anything, corrID).Return(pendingOrder(corrID), nil)
	lc.On("QueryBlocks", mock.Anything, uint64(77), uint32(1)).Return([]ledger.Block{{Index: 77}}, nil)

	service := newTestService(rooms, orders, lc, &manualScheduler{}, testConfig())

	_, err := service.CompleteOrder(context.Background(), testPayer(), 10, 3, 77, corrID)

	assert.ErrorIs(t, err, ErrNotFound)
	orders.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything)
	rooms.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteOrder_AmountMismatch(t *testing.T) {
	rooms := new(MockRoomStore)
	orders := new(MockOrderStore)
	lc := new(MockLedgerClient)

	corrID := "corr-3"
	rooms.On("GetByID", mock.Anything, int64(10)).Return(freeRoom(), nil)
	orders.On("GetPending", mock.Anything, corrID).Return(pendingOrder(corrID), nil)
	lc.On("QueryBlocks", mock.Anything, uint64(42), uint32(1)).Return(matchingBlock(corrID, 42, 34), nil)

	service := newTestService(rooms, orders, lc, &manualScheduler{}, testConfig())

	_, err := service.CompleteOrder(context.Background(), testPayer(), 10, 3, 42, corrID)

	assert.ErrorIs(t, err, ErrNotFound)
	orders.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything)
}

func TestCompleteOrder_ExpiredOrderGone(t *testing.T) {
	rooms := new(MockRoomStore)
	orders := new(MockOrderStore)

	rooms.On("GetByID", mock.Anything, int64(10)).Return(freeRoom(), nil)
	orders.On("GetPending", mock.Anything, "corr-expired").Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(rooms, orders, new(MockLedgerClient), &manualScheduler{}, testConfig())

	_, err := service.CompleteOrder(context.Background(), testPayer(), 10, 3, 42, "corr-expired")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteOrder_LosesRaceToExpiry(t *testing.T) {
	rooms := new(MockRoomStore)
	orders := new(MockOrderStore)
	lc := new(MockLedgerClient)

	corrID := "corr-race"
	rooms.On("GetByID", mock.Anything, int64(10)).Return(freeRoom(), nil)
	orders.On("GetPending", mock.Anything, corrID).Return(pendingOrder(corrID), nil)
	lc.On("QueryBlocks", mock.Anything, uint64(42), uint32(1)).Return(matchingBlock(corrID, 42, 35), nil)
	// expiry removed the entry while verification was in flight
	orders.On("Settle", mock.Anything, mock.Anything).Return(false, nil)

	service := newTestService(rooms, orders, lc, &manualScheduler{}, testConfig())

	_, err := service.CompleteOrder(context.Background(), testPayer(), 10, 3, 42, corrID)

	assert.ErrorIs(t, err, ErrNotFound)
	rooms.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteOrder_LedgerQueryFailure(t *testing.T) {
	rooms := new(MockRoomStore)
	orders := new(MockOrderStore)
	lc := new(MockLedgerClient)

	corrID := "corr-down"
	rooms.On("GetByID", mock.Anything, int64(10)).Return(freeRoom(), nil)
	orders.On("GetPending", mock.Anything, corrID).Return(pendingOrder(corrID), nil)
	lc.On("QueryBlocks", mock.Anything, uint64(42), uint32(1)).Return(nil, assert.AnError)

	service := newTestService(rooms, orders, lc, &manualScheduler{}, testConfig())

	_, err := service.CompleteOrder(context.Background(), testPayer(), 10, 3, 42, corrID)

	// gateway trouble is a retryable payment failure, never a raw error
	assert.ErrorIs(t, err, ErrPaymentFailed)
	orders.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything)
	rooms.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteOrder_RoomTakenDuringVerification(t *testing.T) {
	rooms := new(MockRoomStore)
	orders := new(MockOrderStore)
	lc := new(MockLedgerClient)

	corrID := "corr-taken"
	rooms.On("GetByID", mock.Anything, int64(10)).Return(freeRoom(), nil)
	orders.On("GetPending", mock.Anything, corrID).Return(pendingOrder(corrID), nil)
	lc.On("QueryBlocks", mock.Anything, uint64(42), uint32(1)).Return(matchingBlock(corrID, 42, 35), nil)
	orders.On("Settle", mock.Anything, mock.Anything).Return(true, nil)
	rooms.On("Reserve", mock.Anything, int64(10), int64(99), mock.Anything).Return(false, nil)

	service := newTestService(rooms, orders, lc, &manualScheduler{}, testConfig())

	_, err := service.CompleteOrder(context.Background(), testPayer(), 10, 3, 42, corrID)

	assert.ErrorIs(t, err, ErrBooked)
}

func TestCompleteOrder_WrongCaller(t *testing.T) {
	rooms := new(MockRoomStore)
	orders := new(MockOrderStore)

	corrID := "corr-alien"
	rooms.On("GetByID", mock.Anything, int64(10)).Return(freeRoom(), nil)
	orders.On("GetPending", mock.Anything, corrID).Return(pendingOrder(corrID), nil)

	service := newTestService(rooms, orders, new(MockLedgerClient), &manualScheduler{}, testConfig())

	intruder := Payer{UserID: 1000, LedgerAddress: "ldg-other"}
	_, err := service.CompleteOrder(context.Background(), intruder, 10, 3, 42, corrID)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEndReservation_BeforeDeadline(t *testing.T) {
	rooms := new(MockRoomStore)
	lc := new(MockLedgerClient)

	ends := testClock.Add(2 * time.Minute)
	rooms.On("GetByID", mock.Anything, int64(10)).Return(reservedRoom(99, ends), nil)

	service := newTestService(rooms, new(MockOrderStore), lc, &manualScheduler{}, testConfig())

	_, err := service.EndReservation(context.Background(), testPayer(), 10)

	assert.ErrorIs(t, err, ErrBooked)
	lc.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEndReservation_NotTheOccupant(t *testing.T) {
	rooms := new(MockRoomStore)
	lc := new(MockLedgerClient)

	ends := testClock.Add(-time.Minute)
	rooms.On("GetByID", mock.Anything, int64(10)).Return(reservedRoom(7, ends), nil)

	service := newTestService(rooms, new(MockOrderStore), lc, &manualScheduler{}, testConfig())

	_, err := service.EndReservation(context.Background(), testPayer(), 10)

	assert.ErrorIs(t, err, ErrBooked)
	lc.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEndReservation_RoomNotReserved(t *testing.T) {
	rooms := new(MockRoomStore)
	rooms.On("GetByID", mock.Anything, int64(10)).Return(freeRoom(), nil)

	service := newTestService(rooms, new(MockOrderStore), new(MockLedgerClient), &manualScheduler{}, testConfig())

	_, err := service.EndReservation(context.Background(), testPayer(), 10)

	assert.ErrorIs(t, err, ErrNotBooked)
}

func TestEndReservation_InconsistentOccupancy(t *testing.T) {
	rooms := new(MockRoomStore)
	room := freeRoom()
	room.IsReserved = true // flag set but occupant and deadline missing
	rooms.On("GetByID", mock.Anything, int64(10)).Return(room, nil)

	service := newTestService(rooms, new(MockOrderStore), new(MockLedgerClient), &manualScheduler{}, testConfig())

	_, err := service.EndReservation(context.Background(), testPayer(), 10)

	assert.ErrorIs(t, err, ErrNotBooked)
}

func TestEndReservation_LedgerFailureLeavesRoomReserved(t *testing.T) {
	rooms := new(MockRoomStore)
	lc := new(MockLedgerClient)

	ends := testClock.Add(-time.Minute)
	rooms.On("GetByID", mock.Anything, int64(10)).Return(reservedRoom(99, ends), nil)
	lc.On("TransferFee", mock.Anything).Return(int64(1), nil)
	lc.On("Transfer", mock.Anything, testPayerAddr, int64(4), int64(1)).Return(uint64(0), assert.AnError)

	service := newTestService(rooms, new(MockOrderStore), lc, &manualScheduler{}, testConfig())

	_, err := service.EndReservation(context.Background(), testPayer(), 10)

	assert.ErrorIs(t, err, ErrPaymentFailed)
	rooms.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
}

func TestEndReservation_Success(t *testing.T) {
	rooms := new(MockRoomStore)
	lc := new(MockLedgerClient)

	ends := testClock.Add(-time.Minute)
	rooms.On("GetByID", mock.Anything, int64(10)).Return(reservedRoom(99, ends), nil)
	lc.On("TransferFee", mock.Anything).Return(int64(1), nil)
	// refund = 5 holding fee - 1 transfer fee
	lc.On("Transfer", mock.Anything, testPayerAddr, int64(4), int64(1)).Return(uint64(55), nil)
	rooms.On("Release", mock.Anything, int64(10), int64(99)).Return(true, nil)

	service := newTestService(rooms, new(MockOrderStore), lc, &manualScheduler{}, testConfig())

	receipt, err := service.EndReservation(context.Background(), testPayer(), 10)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), receipt.RefundAmount)
	assert.Equal(t, uint64(55), receipt.RefundBlock)
	lc.AssertNumberOfCalls(t, "Transfer", 1)
	rooms.AssertExpectations(t)
}

func TestEndReservation_ReleasedWhileRefunding(t *testing.T) {
	rooms := new(MockRoomStore)
	lc := new(MockLedgerClient)

	ends := testClock.Add(-time.Minute)
	rooms.On("GetByID", mock.Anything, int64(10)).Return(reservedRoom(99, ends), nil)
	lc.On("TransferFee", mock.Anything).Return(int64(1), nil)
	lc.On("Transfer", mock.Anything, testPayerAddr, int64(4), int64(1)).Return(uint64(55), nil)
	rooms.On("Release", mock.Anything, int64(10), int64(99)).Return(false, nil)

	service := newTestService(rooms, new(MockOrderStore), lc, &manualScheduler{}, testConfig())

	_, err := service.EndReservation(context.Background(), testPayer(), 10)

	assert.ErrorIs(t, err, ErrNotBooked)
}

func TestHoldingFee(t *testing.T) {
	service := newTestService(new(MockRoomStore), new(MockOrderStore), new(MockLedgerClient), &manualScheduler{}, testConfig())
	assert.Equal(t, int64(5), service.HoldingFee())

	cfg := testConfig()
	cfg.HoldingFee = 0
	unset := newTestService(new(MockRoomStore), new(MockOrderStore), new(MockLedgerClient), &manualScheduler{}, cfg)
	assert.Equal(t, int64(0), unset.HoldingFee())
}
