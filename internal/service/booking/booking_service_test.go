package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/flightdeck/internal/domain"
	"github.com/Domenick1991/flightdeck/internal/inventory"
	"github.com/Domenick1991/flightdeck/internal/ticket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByTicketID(ctx context.Context, ticketID string) (*domain.Booking, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) TicketExists(ctx context.Context, ticketID string) (bool, error) {
	args := m.Called(ctx, ticketID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, payment domain.PaymentStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, status, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.FlightDetails, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.FlightDetails), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetDetails(ctx context.Context, id int64) (*domain.FlightDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightDetails), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Update(ctx context.Context, flight *domain.Flight) (*domain.Flight, error) {
	args := m.Called(ctx, flight)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// stubIssuer avoids mock bookkeeping in concurrency tests.
type stubIssuer struct {
	err error
}

func (s *stubIssuer) Issue(ctx context.Context, flightID int64) (*ticket.Issued, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ticket.Issued{
		TicketID:      uuid.NewString(),
		QRCode:        []byte{0x89, 0x50, 0x4e, 0x47},
		QRContentType: "image/png",
	}, nil
}

func memInventory(flightID int64, totalSeats int) *inventory.MemoryManager {
	m := inventory.NewMemoryManager()
	m.AddFlight(flightID, totalSeats)
	return m
}

func available(t *testing.T, m *inventory.MemoryManager, flightID int64) int {
	t.Helper()
	n, err := m.Available(flightID)
	assert.NoError(t, err)
	return n
}

func TestBookingService_CreateBooking_Success(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockFlightRepo := &MockFlightRepository{}
	mockProducer := &MockProducer{}
	mockCache := &MockCache{}
	inv := memInventory(4, 10)

	service := &BookingService{
		bookings:     mockBookingRepo,
		flights:      mockFlightRepo,
		inventory:    inv,
		issuer:       &stubIssuer{},
		cache:        mockCache,
		producer:     mockProducer,
		bookingTopic: "booking_events",
	}

	ctx := context.Background()
	principal := domain.Principal{UserID: "u1", Role: domain.RoleUser}

	flight := &domain.Flight{ID: 4, TotalSeats: 10, AvailableSeats: 10, PriceCents: 10000}
	mockFlightRepo.On("GetByID", ctx, int64(4)).Return(flight, nil).Once()
	mockBookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking_events", mock.Anything, mock.Anything).Return(nil).Once()

	booking, err := service.CreateBooking(ctx, principal, CreateBookingInput{FlightID: 4, Seats: 2})

	assert.NoError(t, err)
	assert.NotNil(t, booking)
	assert.Equal(t, domain.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, domain.PaymentStatusPending, booking.PaymentStatus)
	assert.Equal(t, "u1", booking.UserID)
	assert.Equal(t, int64(20000), booking.TotalPriceCents)
	assert.Equal(t, []int32{1, 2}, booking.SeatNumbers)
	assert.NotEmpty(t, booking.TicketID)
	assert.NotEmpty(t, booking.QRCode)
	assert.Equal(t, 8, available(t, inv, 4))

	mockBookingRepo.AssertExpectations(t)
	mockFlightRepo.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestBookingService_CreateBooking_InvalidCount(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockFlightRepo := &MockFlightRepository{}
	inv := memInventory(4, 10)

	service := &BookingService{
		bookings:  mockBookingRepo,
		flights:   mockFlightRepo,
		inventory: inv,
		issuer:    &stubIssuer{},
	}

	ctx := context.Background()
	principal := domain.Principal{UserID: "u1", Role: domain.RoleUser}

	for _, seats := range []int{0, -3} {
		booking, err := service.CreateBooking(ctx, principal, CreateBookingInput{FlightID: 4, Seats: seats})
		assert.ErrorIs(t, err, domain.ErrInvalidSeatCount)
		assert.Nil(t, booking)
	}

	assert.Equal(t, 10, available(t, inv, 4))
	mockFlightRepo.AssertNotCalled(t, "GetByID")
	mockBookingRepo.AssertNotCalled(t, "Create")
}

func TestBookingService_CreateBooking_FlightNotFound(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockFlightRepo := &MockFlightRepository{}

	service := &BookingService{
		bookings:  mockBookingRepo,
		flights:   mockFlightRepo,
		inventory: inventory.NewMemoryManager(),
		issuer:    &stubIssuer{},
	}

	ctx := context.Background()
	mockFlightRepo.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrFlightNotFound).Once()

	booking, err := service.CreateBooking(ctx, domain.Principal{UserID: "u1"}, CreateBookingInput{FlightID: 99, Seats: 1})

	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
	assert.Nil(t, booking)
	mockBookingRepo.AssertNotCalled(t, "Create")
}

func TestBookingService_CreateBooking_SoldOut(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockFlightRepo := &MockFlightRepository{}
	inv := memInventory(4, 1)

	service := &BookingService{
		bookings:  mockBookingRepo,
		flights:   mockFlightRepo,
		inventory: inv,
		issuer:    &stubIssuer{},
	}

	ctx := context.Background()
	flight := &domain.Flight{ID: 4, TotalSeats: 1, AvailableSeats: 1, PriceCents: 5000}
	mockFlightRepo.On("GetByID", ctx, int64(4)).Return(flight, nil).Once()

	booking, err := service.CreateBooking(ctx, domain.Principal{UserID: "u1"}, CreateBookingInput{FlightID: 4, Seats: 2})

	assert.ErrorIs(t, err, domain.ErrSoldOut)
	assert.Nil(t, booking)
	assert.Equal(t, 1, available(t, inv, 4))
	mockBookingRepo.AssertNotCalled(t, "Create")
}

func TestBookingService_CreateBooking_TicketFailureReleasesSeats(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockFlightRepo := &MockFlightRepository{}
	inv := memInventory(4, 10)

	service := &BookingService{
		bookings:  mockBookingRepo,
		flights:   mockFlightRepo,
		inventory: inv,
		issuer:    &stubIssuer{err: errors.New("qr renderer down")},
	}

	ctx := context.Background()
	flight := &domain.Flight{ID: 4, TotalSeats: 10, AvailableSeats: 10, PriceCents: 5000}
	mockFlightRepo.On("GetByID", ctx, int64(4)).Return(flight, nil).Once()

	booking, err := service.CreateBooking(ctx, domain.Principal{UserID: "u1"}, CreateBookingInput{FlightID: 4, Seats: 3})

	assert.ErrorIs(t, err, domain.ErrTicketIssuance)
	assert.Nil(t, booking)
	// The compensating release returned every reserved seat.
	assert.Equal(t, 10, available(t, inv, 4))
	mockBookingRepo.AssertNotCalled(t, "Create")
}

func TestBookingService_CreateBooking_PersistFailureReleasesSeats(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockFlightRepo := &MockFlightRepository{}
	inv := memInventory(4, 10)

	service := &BookingService{
		bookings:  mockBookingRepo,
		flights:   mockFlightRepo,
		inventory: inv,
		issuer:    &stubIssuer{},
	}

	ctx := context.Background()
	flight := &domain.Flight{ID: 4, TotalSeats: 10, AvailableSeats: 10, PriceCents: 5000}
	mockFlightRepo.On("GetByID", ctx, int64(4)).Return(flight, nil).Once()

	expectedErr := errors.New("database error")
	mockBookingRepo.On("Create", ctx, mock.Anything).Return(expectedErr).Once()

	booking, err := service.CreateBooking(ctx, domain.Principal{UserID: "u1"}, CreateBookingInput{FlightID: 4, Seats: 2})

	assert.ErrorIs(t, err, expectedErr)
	assert.Nil(t, booking)
	assert.Equal(t, 10, available(t, inv, 4))
}

// Two users race for the last seat: exactly one Confirmed booking, the
// other gets SoldOut, and availability ends at zero.
func TestBookingService_CreateBooking_LastSeatRace(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockFlightRepo := &MockFlightRepository{}
	inv := memInventory(4, 1)

	service := &BookingService{
		bookings:  mockBookingRepo,
		flights:   mockFlightRepo,
		inventory: inv,
		issuer:    &stubIssuer{},
	}

	ctx := context.Background()
	flight := &domain.Flight{ID: 4, TotalSeats: 1, AvailableSeats: 1, PriceCents: 5000}
	mockFlightRepo.On("GetByID", ctx, int64(4)).Return(flight, nil)
	mockBookingRepo.On("Create", ctx, mock.Anything).Return(nil)

	var wg sync.WaitGroup
	results := make([]error, 2)
	users := []string{"u1", "u2"}
	for i := range users {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = service.CreateBooking(ctx,
				domain.Principal{UserID: users[i], Role: domain.RoleUser},
				CreateBookingInput{FlightID: 4, Seats: 1})
		}(i)
	}
	wg.Wait()

	var won, soldOut int
	for _, err := range results {
		switch {
		case err == nil:
			won++
		case errors.Is(err, domain.ErrSoldOut):
			soldOut++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, 1, soldOut)
	assert.Equal(t, 0, available(t, inv, 4))
}

func TestBookingService_CancelBooking_Success(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockFlightRepo := &MockFlightRepository{}
	inv := memInventory(4, 10)

	service := &BookingService{
		bookings:  mockBookingRepo,
		flights:   mockFlightRepo,
		inventory: inv,
		issuer:    &stubIssuer{},
	}

	ctx := context.Background()
	seats, err := inv.Reserve(ctx, 4, 2)
	assert.NoError(t, err)
	assert.Equal(t, 8, available(t, inv, 4))

	confirmed := &domain.Booking{
		ID:          1,
		TicketID:    "t-1",
		UserID:      "u1",
		FlightID:    4,
		Seats:       2,
		SeatNumbers: seats,
		Status:      domain.BookingStatusConfirmed,
		CreatedAt:   time.Now(),
	}
	cancelled := *confirmed
	cancelled.Status = domain.BookingStatusCancelled
	cancelled.PaymentStatus = domain.PaymentStatusCancelled

	mockBookingRepo.On("GetByID", ctx, int64(1)).Return(confirmed, nil).Once()
	mockBookingRepo.On("UpdateStatus", ctx, int64(1), domain.BookingStatusCancelled, domain.PaymentStatusCancelled).Return(&cancelled, nil).Once()

	got, err := service.CancelBooking(ctx, domain.Principal{UserID: "u1", Role: domain.RoleUser}, 1)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, got.Status)
	// Seats are back in the pool.
	assert.Equal(t, 10, available(t, inv, 4))

	mockBookingRepo.AssertExpectations(t)
}

func TestBookingService_CancelBooking_AlreadyCancelled(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	inv := memInventory(4, 10)

	service := &BookingService{
		bookings:  mockBookingRepo,
		inventory: inv,
	}

	ctx := context.Background()
	cancelled := &domain.Booking{
		ID:          1,
		UserID:      "u1",
		FlightID:    4,
		Seats:       2,
		SeatNumbers: []int32{1, 2},
		Status:      domain.BookingStatusCancelled,
	}
	mockBookingRepo.On("GetByID", ctx, int64(1)).Return(cancelled, nil).Once()

	got, err := service.CancelBooking(ctx, domain.Principal{UserID: "u1"}, 1)

	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	assert.Nil(t, got)
	assert.Equal(t, 10, available(t, inv, 4))
	mockBookingRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestBookingService_CancelBooking_NotOwner(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}

	service := &BookingService{
		bookings:  mockBookingRepo,
		inventory: inventory.NewMemoryManager(),
	}

	ctx := context.Background()
	confirmed := &domain.Booking{ID: 1, UserID: "u1", FlightID: 4, Status: domain.BookingStatusConfirmed}
	mockBookingRepo.On("GetByID", ctx, int64(1)).Return(confirmed, nil).Once()

	got, err := service.CancelBooking(ctx, domain.Principal{UserID: "u2", Role: domain.RoleUser}, 1)

	assert.ErrorIs(t, err, domain.ErrNotOwner)
	assert.Nil(t, got)
	mockBookingRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestBookingService_CancelBooking_OperatorMayCancel(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	inv := memInventory(4, 10)

	service := &BookingService{
		bookings:  mockBookingRepo,
		inventory: inv,
	}

	ctx := context.Background()
	seats, err := inv.Reserve(ctx, 4, 1)
	assert.NoError(t, err)

	confirmed := &domain.Booking{ID: 1, UserID: "u1", FlightID: 4, Seats: 1, SeatNumbers: seats, Status: domain.BookingStatusConfirmed}
	cancelled := *confirmed
	cancelled.Status = domain.BookingStatusCancelled
	cancelled.PaymentStatus = domain.PaymentStatusCancelled

	mockBookingRepo.On("GetByID", ctx, int64(1)).Return(confirmed, nil).Once()
	mockBookingRepo.On("UpdateStatus", ctx, int64(1), domain.BookingStatusCancelled, domain.PaymentStatusCancelled).Return(&cancelled, nil).Once()

	got, err := service.CancelBooking(ctx, domain.Principal{UserID: "op", Role: domain.RoleOperator}, 1)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, got.Status)
}

func TestBookingService_CancelBooking_NotFound(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}

	service := &BookingService{bookings: mockBookingRepo}

	ctx := context.Background()
	mockBookingRepo.On("GetByID", ctx, int64(42)).Return(nil, domain.ErrNotFound).Once()

	got, err := service.CancelBooking(ctx, domain.Principal{UserID: "u1"}, 42)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, got)
}

func TestBookingService_ListBookingsForUser(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}

	service := &BookingService{bookings: mockBookingRepo}

	ctx := context.Background()
	bookings := []domain.Booking{
		{ID: 2, UserID: "u1", CreatedAt: time.Now()},
		{ID: 1, UserID: "u1", CreatedAt: time.Now().Add(-time.Hour)},
	}
	mockBookingRepo.On("ListByUser", ctx, "u1").Return(bookings, nil).Once()

	got, err := service.ListBookingsForUser(ctx, domain.Principal{UserID: "u1"})

	assert.NoError(t, err)
	assert.Equal(t, bookings, got)
}
