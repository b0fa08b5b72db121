package reservation

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"equiprent/internal/domain"
	"equiprent/internal/repository"
)

type Service struct {
	reservations ReservationRepository
	equipment    EquipmentGetter
	notifier     Notifier
}

func NewService(reservations ReservationRepository, equipment EquipmentGetter, notifier Notifier) *Service {
	return &Service{reservations: reservations, equipment: equipment, notifier: notifier}
}

/* ---------- client side ---------- */

func (s *Service) ListForClient(ctx context.Context, clientID int64) ([]domain.Reservation, error) {
	return s.reservations.GetAllForClient(ctx, clientID)
}

func (s *Service) GetForClient(ctx context.Context, id, clientID int64) (*domain.Reservation, error) {
	return s.reservations.GetByIDForClient(ctx, id, clientID)
}

// Create books a reservation directly, without going through a quote. Line
// items are validated against the current catalog and snapshotted with the
// tier price in effect right now.
func (s *Service) Create(ctx context.Context, clientID int64, req CreateRequest) (*domain.Reservation, error) {
	useDate, err := parseFutureDate(req.UseDate)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.EquipmentID)
	}
	equipment, err := s.equipment.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*domain.Equipment, len(equipment))
	for i := range equipment {
		byID[equipment[i].ID] = &equipment[i]
	}

	res := &domain.Reservation{
		ClientID:      clientID,
		Status:        domain.ReservationPending,
		UseDate:       useDate,
		EventLocation: strings.TrimSpace(req.EventLocation),
		Notes:         strings.TrimSpace(req.Notes),
	}

	for _, item := range req.Items {
		eq, ok := byID[item.EquipmentID]
		if !ok {
			return nil, fmt.Errorf("equipment %d: %w", item.EquipmentID, ErrNotRentable)
		}
		if !eq.Rentable() {
			return nil, fmt.Errorf("equipment %q: %w", eq.Name, ErrNotRentable)
		}
		if item.Quantity > eq.AvailableCount {
			return nil, fmt.Errorf("equipment %q: %w", eq.Name, ErrInsufficientStock)
		}

		tier := domain.PricingTier(item.Tier)
		unitPrice, ok := eq.TierPrice(tier)
		if !ok {
			return nil, fmt.Errorf("equipment %q: %w", eq.Name, ErrTierUnavailable)
		}

		lineTotal := domain.LineTotal(unitPrice, item.Period, item.Quantity)
		res.Items = append(res.Items, domain.ReservationItem{
			EquipmentID: item.EquipmentID,
			Quantity:    item.Quantity,
			Tier:        tier,
			Period:      item.Period,
			UnitPrice:   unitPrice,
			Total:       lineTotal,
		})
		res.Total = math.Round((res.Total+lineTotal)*100) / 100
	}
	if len(res.Items) == 0 {
		return nil, ErrNoItems
	}

	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.ReservationCreated(res)
	}
	return res, nil
}

func (s *Service) CancelByClient(ctx context.Context, id, clientID int64) (*domain.Reservation, error) {
	return s.reservations.CancelByClient(ctx, id, clientID)
}

/* ---------- staff side ---------- */

func (s *Service) ListAll(ctx context.Context, f repository.ReservationFilters) ([]domain.Reservation, int64, error) {
	return s.reservations.GetAll(ctx, f)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.reservations.GetByID(ctx, id)
}

func (s *Service) Approve(ctx context.Context, id, approverID int64) (*domain.Reservation, error) {
	res, err := s.reservations.Approve(ctx, id, approverID)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.ReservationApproved(res)
	}
	return res, nil
}

func (s *Service) Reject(ctx context.Context, id, approverID int64, reason string) (*domain.Reservation, error) {
	res, err := s.reservations.Reject(ctx, id, approverID, strings.TrimSpace(reason))
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.ReservationRejected(res)
	}
	return res, nil
}

func (s *Service) Stats(ctx context.Context) (*repository.ReservationStats, error) {
	return s.reservations.Stats(ctx)
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
