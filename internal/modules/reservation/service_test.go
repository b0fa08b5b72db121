package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"equiprent/internal/domain"
	"equiprent/internal/repository"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByIDForClient(ctx context.Context, id, clientID int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetAllForClient(ctx context.Context, clientID int64) ([]domain.Reservation, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetAll(ctx context.Context, f repository.ReservationFilters) ([]domain.Reservation, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Reservation), args.Get(1).(int64), args.Error(2)
}

func (m *MockReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	res.ID = 3
	return args.Error(0)
}

func (m *MockReservationRepository) Approve(ctx context.Context, reservationID, approverID int64) (*domain.Reservation, error) {
	args := m.Called(ctx, reservationID, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Reject(ctx context.Context, reservationID, approverID int64, reason string) (*domain.Reservation, error) {
	args := m.Called(ctx, reservationID, approverID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) CancelByClient(ctx context.Context, reservationID, clientID int64) (*domain.Reservation, error) {
	args := m.Called(ctx, reservationID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Stats(ctx context.Context) (*repository.ReservationStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ReservationStats), args.Error(1)
}

type MockEquipmentGetter struct {
	mock.Mock
}

func (m *MockEquipmentGetter) GetByIDs(ctx context.Context, ids []int64) ([]domain.Equipment, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}

type recordingNotifier struct {
	created  []*domain.Reservation
	approved []*domain.Reservation
	rejected []*domain.Reservation
}

func (n *recordingNotifier) ReservationCreated(res *domain.Reservation)  { n.created = append(n.created, res) }
func (n *recordingNotifier) ReservationApproved(res *domain.Reservation) { n.approved = append(n.approved, res) }
func (n *recordingNotifier) ReservationRejected(res *domain.Reservation) { n.rejected = append(n.rejected, res) }

func newReservationService() (*Service, *MockReservationRepository, *MockEquipmentGetter, *recordingNotifier) {
	reservations := new(MockReservationRepository)
	equipment := new(MockEquipmentGetter)
	notifier := &recordingNotifier{}
	return NewService(reservations, equipment, notifier), reservations, equipment, notifier
}

func floatPtr(v float64) *float64 { return &v }

func futureDateStr() string {
	return time.Now().UTC().AddDate(0, 0, 14).Format("2006-01-02")
}

func TestCreate_SnapshotsItemsAndTotals(t *testing.T) {
	service, reservations, equipment, notifier := newReservationService()

	equipment.On("GetByIDs", mock.Anything, []int64{10, 11}).Return([]domain.Equipment{
		{ID: 10, Name: "Speaker", State: domain.EquipmentAvailable, AvailableCount: 5, DailyPrice: 10, WeeklyPrice: floatPtr(60)},
		{ID: 11, Name: "Mixer", State: domain.EquipmentAvailable, AvailableCount: 2, DailyPrice: 25},
	}, nil)
	reservations.On("Create", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil)

	res, err := service.Create(context.Background(), 7, CreateRequest{
		UseDate:       futureDateStr(),
		EventLocation: "Centro, Salvador",
		Items: []CreateRequestItem{
			{EquipmentID: 10, Quantity: 2, Tier: "weekly", Period: 1},
			{EquipmentID: 11, Quantity: 1, Tier: "daily", Period: 3},
		},
	})

	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, 60.0, res.Items[0].UnitPrice)
	assert.Equal(t, 120.0, res.Items[0].Total)
	assert.Equal(t, 75.0, res.Items[1].Total)
	assert.Equal(t, 195.0, res.Total)
	assert.Equal(t, domain.ReservationPending, res.Status)
	require.Len(t, notifier.created, 1)
}

func TestCreate_RejectsUnknownEquipment(t *testing.T) {
	service, reservations, equipment, _ := newReservationService()

	equipment.On("GetByIDs", mock.Anything, []int64{99}).Return([]domain.Equipment{}, nil)

	_, err := service.Create(context.Background(), 7, CreateRequest{
		UseDate:       futureDateStr(),
		EventLocation: "Centro, Salvador",
		Items:         []CreateRequestItem{{EquipmentID: 99, Quantity: 1, Tier: "daily", Period: 1}},
	})

	assert.ErrorIs(t, err, ErrNotRentable)
	reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_RejectsExcessiveQuantity(t *testing.T) {
	service, _, equipment, _ := newReservationService()

	equipment.On("GetByIDs", mock.Anything, []int64{10}).Return([]domain.Equipment{
		{ID: 10, Name: "Speaker", State: domain.EquipmentAvailable, AvailableCount: 1, DailyPrice: 10},
	}, nil)

	_, err := service.Create(context.Background(), 7, CreateRequest{
		UseDate:       futureDateStr(),
		EventLocation: "Centro, Salvador",
		Items:         []CreateRequestItem{{EquipmentID: 10, Quantity: 2, Tier: "daily", Period: 1}},
	})

	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCreate_RejectsPastUseDate(t *testing.T) {
	service, _, equipment, _ := newReservationService()

	_, err := service.Create(context.Background(), 7, CreateRequest{
		UseDate:       "2020-01-01",
		EventLocation: "Centro, Salvador",
		Items:         []CreateRequestItem{{EquipmentID: 10, Quantity: 1, Tier: "daily", Period: 1}},
	})

	assert.ErrorIs(t, err, ErrPastUseDate)
	equipment.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestCreate_RejectsTodayAsUseDate(t *testing.T) {
	service, _, equipment, _ := newReservationService()

	today := time.Now().UTC().Format("2006-01-02")
	_, err := service.Create(context.Background(), 7, CreateRequest{
		UseDate:       today,
		EventLocation: "Centro, Salvador",
		Items:         []CreateRequestItem{{EquipmentID: 10, Quantity: 1, Tier: "daily", Period: 1}},
	})

	assert.ErrorIs(t, err, ErrPastUseDate)
	equipment.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestApprove_NotifiesStaff(t *testing.T) {
	service, reservations, _, notifier := newReservationService()

	approved := &domain.Reservation{ID: 3, Status: domain.ReservationApproved}
	reservations.On("Approve", mock.Anything, int64(3), int64(2)).Return(approved, nil)

	res, err := service.Approve(context.Background(), 3, 2)

	require.NoError(t, err)
	assert.Equal(t, domain.ReservationApproved, res.Status)
	require.Len(t, notifier.approved, 1)
}

func TestApprove_PropagatesNotPending(t *testing.T) {
	service, reservations, _, notifier := newReservationService()

	reservations.On("Approve", mock.Anything, int64(3), int64(2)).
		Return(nil, repository.ErrReservationNotPending)

	_, err := service.Approve(context.Background(), 3, 2)

	assert.ErrorIs(t, err, repository.ErrReservationNotPending)
	assert.Empty(t, notifier.approved)
}

func TestReject_TrimsReasonAndNotifies(t *testing.T) {
	service, reservations, _, notifier := newReservationService()

	rejected := &domain.Reservation{ID: 3, Status: domain.ReservationRejected}
	reservations.On("Reject", mock.Anything, int64(3), int64(2), "equipment double booked").
		Return(rejected, nil)

	res, err := service.Reject(context.Background(), 3, 2, "  equipment double booked  ")

	require.NoError(t, err)
	assert.Equal(t, domain.ReservationRejected, res.Status)
	require.Len(t, notifier.rejected, 1)
}
