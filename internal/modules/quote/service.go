package quote

import (
	"context"
	"strings"
	"time"

	"equiprent/internal/domain"
)

type Service struct {
	quotes    QuoteRepository
	equipment EquipmentGetter
	converter QuoteConverter
	notifier  Notifier
}

func NewService(quotes QuoteRepository, equipment EquipmentGetter, converter QuoteConverter, notifier Notifier) *Service {
	return &Service{quotes: quotes, equipment: equipment, converter: converter, notifier: notifier}
}

func (s *Service) Create(ctx context.Context, clientID int64, req CreateQuoteRequest) (*domain.Quote, error) {
	q := &domain.Quote{
		ClientID: clientID,
		Status:   domain.QuoteDraft,
		Notes:    strings.TrimSpace(req.Notes),
	}
	if err := s.quotes.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *Service) List(ctx context.Context, clientID int64) ([]domain.Quote, error) {
	return s.quotes.GetAllForClient(ctx, clientID)
}

func (s *Service) Get(ctx context.Context, id, clientID int64) (*domain.Quote, error) {
	return s.quotes.GetByIDForClient(ctx, id, clientID)
}

// AddItem appends a rental line to a draft quote. The unit price is
// snapshotted from the equipment's current tier price so later catalog edits
// do not silently change an existing quote.
func (s *Service) AddItem(ctx context.Context, quoteID, clientID int64, req AddItemRequest) (*domain.QuoteItem, error) {
	q, err := s.quotes.GetByIDForClient(ctx, quoteID, clientID)
	if err != nil {
		return nil, err
	}
	if !q.Editable() {
		return nil, ErrQuoteNotEditable
	}

	useDate, err := parseFutureDate(req.UseDate)
	if err != nil {
		return nil, err
	}

	eq, err := s.equipment.GetByID(ctx, req.EquipmentID)
	if err != nil {
		return nil, err
	}
	if !eq.Rentable() {
		return nil, ErrNotRentable
	}
	if req.Quantity > eq.AvailableCount {
		return nil, ErrInsufficientStock
	}

	tier := domain.PricingTier(req.Tier)
	unitPrice, ok := eq.TierPrice(tier)
	if !ok {
		return nil, ErrTierUnavailable
	}

	exists, err := s.quotes.HasItemForEquipment(ctx, quoteID, req.EquipmentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEquipment
	}

	item := &domain.QuoteItem{
		QuoteID:     quoteID,
		EquipmentID: req.EquipmentID,
		Quantity:    req.Quantity,
		Tier:        tier,
		Period:      req.Period,
		UseDate:     useDate,
		UnitPrice:   unitPrice,
		Total:       domain.LineTotal(unitPrice, req.Period, req.Quantity),
	}
	if err := s.quotes.AddItem(ctx, item); err != nil {
		return nil, err
	}
	item.Equipment = eq
	return item, nil
}

func (s *Service) RemoveItem(ctx context.Context, quoteID, clientID, itemID int64) error {
	q, err := s.quotes.GetByIDForClient(ctx, quoteID, clientID)
	if err != nil {
		return err
	}
	if !q.Editable() {
		return ErrQuoteNotEditable
	}

	removed, err := s.quotes.RemoveItem(ctx, quoteID, itemID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrItemNotFound
	}
	return nil
}

// Finalize locks a draft quote so it can be converted into a reservation.
func (s *Service) Finalize(ctx context.Context, quoteID, clientID int64) (*domain.Quote, error) {
	q, err := s.quotes.GetByIDForClient(ctx, quoteID, clientID)
	if err != nil {
		return nil, err
	}
	if len(q.Items) == 0 {
		return nil, ErrQuoteEmpty
	}

	updated, err := s.quotes.UpdateStatus(ctx, quoteID, domain.QuoteDraft, domain.QuoteFinalized)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrQuoteNotEditable
	}

	q.Status = domain.QuoteFinalized
	return q, nil
}

// Cancel abandons a quote that has not yet been converted.
func (s *Service) Cancel(ctx context.Context, quoteID, clientID int64) error {
	if _, err := s.quotes.GetByIDForClient(ctx, quoteID, clientID); err != nil {
		return err
	}

	for _, from := range []domain.QuoteStatus{domain.QuoteDraft, domain.QuoteFinalized} {
		updated, err := s.quotes.UpdateStatus(ctx, quoteID, from, domain.QuoteCancelled)
		if err != nil {
			return err
		}
		if updated {
			return nil
		}
	}
	return ErrQuoteNotCancelable
}

// Reserve converts a finalized quote into a pending reservation.
func (s *Service) Reserve(ctx context.Context, quoteID, clientID int64, req ReserveRequest) (*domain.Reservation, error) {
	useDate, err := parseFutureDate(req.UseDate)
	if err != nil {
		return nil, err
	}

	res, err := s.converter.ConvertQuote(ctx, quoteID, clientID, useDate,
		strings.TrimSpace(req.EventLocation), strings.TrimSpace(req.Notes))
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.ReservationCreated(res)
	}
	return res, nil
}

func parseFutureDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, ErrPastUseDate
	}
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !t.After(today) {
		return time.Time{}, ErrPastUseDate
	}
	return t, nil
}
