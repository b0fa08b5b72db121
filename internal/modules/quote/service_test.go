package quote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"equiprent/internal/domain"
)

type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) Create(ctx context.Context, q *domain.Quote) error {
	args := m.Called(ctx, q)
	q.ID = 1
	return args.Error(0)
}

func (m *MockQuoteRepository) GetByIDForClient(ctx context.Context, id, clientID int64) (*domain.Quote, error) {
	args := m.Called(ctx, id, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteRepository) GetAllForClient(ctx context.Context, clientID int64) ([]domain.Quote, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quote), args.Error(1)
}

func (m *MockQuoteRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.QuoteStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuoteRepository) AddItem(ctx context.Context, item *domain.QuoteItem) error {
	args := m.Called(ctx, item)
	item.ID = 5
	return args.Error(0)
}

func (m *MockQuoteRepository) RemoveItem(ctx context.Context, quoteID, itemID int64) (bool, error) {
	args := m.Called(ctx, quoteID, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuoteRepository) HasItemForEquipment(ctx context.Context, quoteID, equipmentID int64) (bool, error) {
	args := m.Called(ctx, quoteID, equipmentID)
	return args.Bool(0), args.Error(1)
}

type MockEquipmentGetter struct {
	mock.Mock
}

func (m *MockEquipmentGetter) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

type MockQuoteConverter struct {
	mock.Mock
}

func (m *MockQuoteConverter) ConvertQuote(ctx context.Context, quoteID, clientID int64, useDate time.Time, location, notes string) (*domain.Reservation, error) {
	args := m.Called(ctx, quoteID, clientID, useDate, location, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

type recordingNotifier struct {
	created []*domain.Reservation
}

func (n *recordingNotifier) ReservationCreated(res *domain.Reservation) {
	n.created = append(n.created, res)
}

func newQuoteService() (*Service, *MockQuoteRepository, *MockEquipmentGetter, *MockQuoteConverter, *recordingNotifier) {
	quotes := new(MockQuoteRepository)
	equipment := new(MockEquipmentGetter)
	converter := new(MockQuoteConverter)
	notifier := &recordingNotifier{}
	return NewService(quotes, equipment, converter, notifier), quotes, equipment, converter, notifier
}

func floatPtr(v float64) *float64 { return &v }

func futureDateStr() string {
	return time.Now().UTC().AddDate(0, 0, 14).Format("2006-01-02")
}

func draftQuote() *domain.Quote {
	return &domain.Quote{ID: 1, ClientID: 7, Status: domain.QuoteDraft}
}

func TestAddItem_SnapshotsTierPrice(t *testing.T) {
	service, quotes, equipment, _, _ := newQuoteService()

	quotes.On("GetByIDForClient", mock.Anything, int64(1), int64(7)).Return(draftQuote(), nil)
	equipment.On("GetByID", mock.Anything, int64(10)).Return(&domain.Equipment{
		ID:             10,
		Name:           "Speaker",
		State:          domain.EquipmentAvailable,
		AvailableCount: 5,
		DailyPrice:     10,
		WeeklyPrice:    floatPtr(60),
	}, nil)
	quotes.On("HasItemForEquipment", mock.Anything, int64(1), int64(10)).Return(false, nil)
	quotes.On("AddItem", mock.Anything, mock.AnythingOfType("*domain.QuoteItem")).Return(nil)

	item, err := service.AddItem(context.Background(), 1, 7, AddItemRequest{
		EquipmentID: 10,
		Quantity:    2,
		Tier:        "weekly",
		Period:      3,
		UseDate:     futureDateStr(),
	})

	require.NoError(t, err)
	assert.Equal(t, 60.0, item.UnitPrice)
	assert.Equal(t, 360.0, item.Total)
	assert.Equal(t, domain.TierWeekly, item.Tier)
	quotes.AssertExpectations(t)
}

func TestAddItem_RejectsNonDraftQuote(t *testing.T) {
	service, quotes, equipment, _, _ := newQuoteService()

	quotes.On("GetByIDForClient", mock.Anything, int64(1), int64(7)).
		Return(&domain.Quote{ID: 1, ClientID: 7, Status: domain.QuoteFinalized}, nil)

	_, err := service.AddItem(context.Background(), 1, 7, AddItemRequest{
		EquipmentID: 10, Quantity: 1, Tier: "daily", Period: 1, UseDate: futureDateStr(),
	})

	assert.ErrorIs(t, err, ErrQuoteNotEditable)
	equipment.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAddItem_RejectsMissingTierPrice(t *testing.T) {
	service, quotes, equipment, _, _ := newQuoteService()

	quotes.On("GetByIDForClient", mock.Anything, int64(1), int64(7)).Return(draftQuote(), nil)
	equipment.On("GetByID", mock.Anything, int64(10)).Return(&domain.Equipment{
		ID:             10,
		State:          domain.EquipmentAvailable,
		AvailableCount: 5,
		DailyPrice:     10,
	}, nil)

	_, err := service.AddItem(context.Background(), 1, 7, AddItemRequest{
		EquipmentID: 10, Quantity: 1, Tier: "monthly", Period: 1, UseDate: futureDateStr(),
	})

	assert.ErrorIs(t, err, ErrTierUnavailable)
}

func TestAddItem_RejectsDuplicateEquipment(t *testing.T) {
	service, quotes, equipment, _, _ := newQuoteService()

	quotes.On("GetByIDForClient", mock.Anything, int64(1), int64(7)).Return(draftQuote(), nil)
	equipment.On("GetByID", mock.Anything, int64(10)).Return(&domain.Equipment{
		ID:             10,
		State:          domain.EquipmentAvailable,
		AvailableCount: 5,
		DailyPrice:     10,
	}, nil)
	quotes.On("HasItemForEquipment", mock.Anything, int64(1), int64(10)).Return(true, nil)

	_, err := service.AddItem(context.Background(), 1, 7, AddItemRequest{
		EquipmentID: 10, Quantity: 1, Tier: "daily", Period: 1, UseDate: futureDateStr(),
	})

	assert.ErrorIs(t, err, ErrDuplicateEquipment)
	quotes.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything)
}

func TestAddItem_RejectsExcessiveQuantity(t *testing.T) {
	service, quotes, equipment, _, _ := newQuoteService()

	quotes.On("GetByIDForClient", mock.Anything, int64(1), int64(7)).Return(draftQuote(), nil)
	equipment.On("GetByID", mock.Anything, int64(10)).Return(&domain.Equipment{
		ID:             10,
		State:          domain.EquipmentAvailable,
		AvailableCount: 2,
		DailyPrice:     10,
	}, nil)

	_, err := service.AddItem(context.Background(), 1, 7, AddItemRequest{
		EquipmentID: 10, Quantity: 3, Tier: "daily", Period: 1, UseDate: futureDateStr(),
	})

	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestAddItem_RejectsPastUseDate(t *testing.T) {
	service, quotes, _, _, _ := newQuoteService()

	quotes.On("GetByIDForClient", mock.Anything, int64(1), int64(7)).Return(draftQuote(), nil)

	_, err := service.AddItem(context.Background(), 1, 7, AddItemRequest{
		EquipmentID: 10, Quantity: 1, Tier: "daily", Period: 1, UseDate: "2020-01-01",
	})

	assert.ErrorIs(t, err, ErrPastUseDate)
}

func TestAddItem_RejectsTodayAsUseDate(t *testing.T) {
	service, quotes, _, _, _ := newQuoteService()

	quotes.On("GetByIDForClient", mock.Anything, int64(1), int64(7)).Return(draftQuote(), nil)

	today := time.Now().UTC().Format("2006-01-02")
	_, err := service.AddItem(context.Background(), 1, 7, AddItemRequest{
		EquipmentID: 10, Quantity: 1, Tier: "daily", Period: 1, UseDate: today,
	})

	assert.ErrorIs(t, err, ErrPastUseDate)
}

func TestAddItem_AcceptsTomorrowAsUseDate(t *testing.T) {
	service, quotes, equipment, _, _ := newQuoteService()

	quotes.On("GetByIDForClient", mock.Anything, int64(1), int64(7)).Return(draftQuote(), nil)
	equipment.On("GetByID", mock.Anything, int64(10)).Return(&domain.Equipment{
		ID:             10,
		State:          domain.EquipmentAvailable,
		AvailableCount: 5,
		DailyPrice:     10,
	}, nil)
	quotes.On("HasItemForEquipment", mock.Anything, int64(1), int64(10)).Return(false, nil)
	quotes.On("AddItem", mock.Anything, mock.AnythingOfType("*domain.QuoteItem")).Return(nil)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	item, err := service.AddItem(context.Background(), 1, 7, AddItemRequest{
		EquipmentID: 10, Quantity: 1, Tier: "daily", Period: 1, UseDate: tomorrow,
	})

	require.NoError(t, err)
	assert.Equal(t, tomorrow, item.UseDate.Format("2006-01-02"))
}

func TestFinalize_RequiresItems(t *testing.T) {
	service, quotes, _, _, _ := newQuoteService()

	quotes.On("GetByIDForClient", mock.Anything, int64(1), int64(7)).Return(draftQuote(), nil)

	_, err := service.Finalize(context.Background(), 1, 7)

	assert.ErrorIs(t, err, ErrQuoteEmpty)
	quotes.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFinalize_Success(t *testing.T) {
	service, quotes, _, _, _ := newQuoteService()

	q := draftQuote()
	q.Items = []domain.QuoteItem{{ID: 5, QuoteID: 1, EquipmentID: 10, Quantity: 1}}
	quotes.On("GetByIDForClient", mock.Anything, int64(1), int64(7)).Return(q, nil)
	quotes.On("UpdateStatus", mock.Anything, int64(1), domain.QuoteDraft, domain.QuoteFinalized).Return(true, nil)

	result, err := service.Finalize(context.Background(), 1, 7)

	require.NoError(t, err)
	assert.Equal(t, domain.QuoteFinalized, result.Status)
}

func TestFinalize_LostRace(t *testing.T) {
	service, quotes, _, _, _ := newQuoteService()

	q := draftQuote()
	q.Items = []domain.QuoteItem{{ID: 5}}
	quotes.On("GetByIDForClient", mock.Anything, int64(1), int64(7)).Return(q, nil)
	quotes.On("UpdateStatus", mock.Anything, int64(1), domain.QuoteDraft, domain.QuoteFinalized).Return(false, nil)

	_, err := service.Finalize(context.Background(), 1, 7)

	assert.ErrorIs(t, err, ErrQuoteNotEditable)
}

func TestCancel_FromFinalized(t *testing.T) {
	service, quotes, _, _, _ := newQuoteService()

	quotes.On("GetByIDForClient", mock.Anything, int64(1), int64(7)).
		Return(&domain.Quote{ID: 1, ClientID: 7, Status: domain.QuoteFinalized}, nil)
	quotes.On("UpdateStatus", mock.Anything, int64(1), domain.QuoteDraft, domain.QuoteCancelled).Return(false, nil)
	quotes.On("UpdateStatus", mock.Anything, int64(1), domain.QuoteFinalized, domain.QuoteCancelled).Return(true, nil)

	err := service.Cancel(context.Background(), 1, 7)

	assert.NoError(t, err)
}

func TestCancel_ConvertedQuote(t *testing.T) {
	service, quotes, _, _, _ := newQuoteService()

	quotes.On("GetByIDForClient", mock.Anything, int64(1), int64(7)).
		Return(&domain.Quote{ID: 1, ClientID: 7, Status: domain.QuoteConverted}, nil)
	quotes.On("UpdateStatus", mock.Anything, int64(1), mock.Anything, domain.QuoteCancelled).Return(false, nil)

	err := service.Cancel(context.Background(), 1, 7)

	assert.ErrorIs(t, err, ErrQuoteNotCancelable)
}

func TestReserve_NotifiesStaff(t *testing.T) {
	service, _, _, converter, notifier := newQuoteService()

	res := &domain.Reservation{ID: 3, ClientID: 7, Status: domain.ReservationPending}
	converter.On("ConvertQuote", mock.Anything, int64(1), int64(7), mock.AnythingOfType("time.Time"), "Centro, Salvador", "").
		Return(res, nil)

	result, err := service.Reserve(context.Background(), 1, 7, ReserveRequest{
		UseDate:       futureDateStr(),
		EventLocation: "Centro, Salvador",
	})

	require.NoError(t, err)
	assert.Equal(t, res, result)
	require.Len(t, notifier.created, 1)
	assert.Equal(t, int64(3), notifier.created[0].ID)
}
