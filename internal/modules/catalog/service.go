package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"equiprent/internal/domain"
	"equiprent/internal/repository"
)

type Service struct {
	categories CategoryRepository
	equipment  EquipmentRepository
}

func NewService(categories CategoryRepository, equipment EquipmentRepository) *Service {
	return &Service{categories: categories, equipment: equipment}
}

/* ---------- categories ---------- */

func (s *Service) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	return s.categories.GetAll(ctx, activeOnly)
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *Service) CreateCategory(ctx context.Context, req CategoryRequest) (*domain.Category, error) {
	cat := &domain.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Active:      true,
	}
	if req.Active != nil {
		cat.Active = *req.Active
	}

	if err := s.categories.Create(ctx, cat); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCategoryNameTaken
		}
		return nil, err
	}
	return cat, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, req CategoryRequest) (*domain.Category, error) {
	cat, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cat.Name = strings.TrimSpace(req.Name)
	cat.Description = strings.TrimSpace(req.Description)
	if req.Active != nil {
		cat.Active = *req.Active
	}

	if err := s.categories.Update(ctx, cat); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCategoryNameTaken
		}
		return nil, err
	}
	return cat, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.categories.Delete(ctx, id)
}

/* ---------- equipment ---------- */

func (s *Service) ListEquipment(ctx context.Context, f repository.EquipmentFilters) ([]domain.Equipment, int64, error) {
	return s.equipment.GetAll(ctx, f)
}

func (s *Service) GetEquipment(ctx context.Context, id int64) (*domain.Equipment, error) {
	return s.equipment.GetByID(ctx, id)
}

func (s *Service) ListAvailableEquipment(ctx context.Context) ([]domain.Equipment, error) {
	return s.equipment.GetAvailable(ctx)
}

func (s *Service) ListEquipmentByCategory(ctx context.Context, categoryID int64, availableOnly bool) (*domain.Category, []domain.Equipment, error) {
	cat, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, nil, err
	}
	if !cat.Active {
		return nil, nil, ErrCategoryInactive
	}

	equipment, err := s.equipment.GetByCategory(ctx, categoryID, availableOnly)
	if err != nil {
		return nil, nil, err
	}
	return cat, equipment, nil
}

// CreateEquipment validates the request, persists the equipment and returns
// non-blocking pricing warnings (tier prices that are not actually a
// discount over the daily rate).
func (s *Service) CreateEquipment(ctx context.Context, req EquipmentRequest) (*domain.Equipment, []string, error) {
	if err := s.validateEquipment(ctx, req); err != nil {
		return nil, nil, err
	}

	eq := equipmentFromRequest(req)
	if err := s.equipment.Create(ctx, eq); err != nil {
		if isUniqueViolation(err) {
			return nil, nil, ErrSerialNumberTaken
		}
		return nil, nil, err
	}
	return eq, pricingWarnings(eq), nil
}

func (s *Service) UpdateEquipment(ctx context.Context, id int64, req EquipmentRequest) (*domain.Equipment, []string, error) {
	existing, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := s.validateEquipment(ctx, req); err != nil {
		return nil, nil, err
	}

	eq := equipmentFromRequest(req)
	eq.ID = existing.ID
	eq.CreatedAt = existing.CreatedAt
	if req.AvailableCount == nil {
		eq.AvailableCount = existing.AvailableCount
	}
	if req.TotalCount == nil {
		eq.TotalCount = existing.TotalCount
	}
	if eq.AvailableCount > eq.TotalCount {
		return nil, nil, FieldErrors{"available_count": "cannot exceed total_count"}
	}

	if err := s.equipment.Update(ctx, eq); err != nil {
		if isUniqueViolation(err) {
			return nil, nil, ErrSerialNumberTaken
		}
		return nil, nil, err
	}
	eq.Category = nil
	return eq, pricingWarnings(eq), nil
}

func (s *Service) DeleteEquipment(ctx context.Context, id int64) error {
	return s.equipment.Delete(ctx, id)
}

// CanDeleteEquipment reports whether the deletion guard would allow removal
// right now, and how many reservations block it.
func (s *Service) CanDeleteEquipment(ctx context.Context, id int64) (*domain.Equipment, bool, int64, error) {
	eq, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		return nil, false, 0, err
	}
	count, err := s.equipment.BlockingReservations(ctx, id)
	if err != nil {
		return nil, false, 0, err
	}
	return eq, count == 0, count, nil
}

/* ---------- pricing & availability ---------- */

func (s *Service) Calculate(ctx context.Context, req CalculateRequest) (*CalculateResult, error) {
	eq, err := s.equipment.GetByID(ctx, req.EquipmentID)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	unitTotal, segments := domain.RentalCost(req.Days, eq.DailyPrice, eq.WeeklyPrice, eq.MonthlyPrice)
	return &CalculateResult{
		EquipmentID:   eq.ID,
		EquipmentName: eq.Name,
		Days:          req.Days,
		Quantity:      quantity,
		Segments:      segments,
		UnitTotal:     unitTotal,
		Total:         domain.LineTotal(unitTotal, 1, quantity),
	}, nil
}

// CheckAvailability reports, item by item, whether the requested quantities
// can currently be served. It is informational only; the binding checks
// happen at conversion and approval time.
func (s *Service) CheckAvailability(ctx context.Context, req AvailabilityCheckRequest) ([]AvailabilityResult, bool, error) {
	if _, err := time.Parse("2006-01-02", req.UseDate); err != nil {
		return nil, false, FieldErrors{"use_date": "must be a date in YYYY-MM-DD format"}
	}

	ids := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.EquipmentID)
	}
	equipment, err := s.equipment.GetByIDs(ctx, ids)
	if err != nil {
		return nil, false, err
	}
	byID := make(map[int64]*domain.Equipment, len(equipment))
	for i := range equipment {
		byID[equipment[i].ID] = &equipment[i]
	}

	results := make([]AvailabilityResult, 0, len(req.Items))
	allAvailable := true
	for _, item := range req.Items {
		eq, ok := byID[item.EquipmentID]
		if !ok {
			allAvailable = false
			results = append(results, AvailabilityResult{
				EquipmentID:       item.EquipmentID,
				RequestedQuantity: item.Quantity,
				Available:         false,
				Reason:            "Equipment not found",
			})
			continue
		}

		available := eq.State == domain.EquipmentAvailable && eq.AvailableCount >= item.Quantity
		reason := "Available"
		if !available {
			allAvailable = false
			reason = "Insufficient quantity or equipment unavailable"
		}
		results = append(results, AvailabilityResult{
			EquipmentID:       eq.ID,
			EquipmentName:     eq.Name,
			RequestedQuantity: item.Quantity,
			AvailableQuantity: eq.AvailableCount,
			Available:         available,
			Reason:            reason,
		})
	}
	return results, allAvailable, nil
}

/* ---------- helpers ---------- */

func (s *Service) validateEquipment(ctx context.Context, req EquipmentRequest) error {
	cat, err := s.categories.GetByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	if !cat.Active {
		return ErrCategoryInactive
	}

	if req.AvailableCount != nil && req.TotalCount != nil && *req.AvailableCount > *req.TotalCount {
		return FieldErrors{"available_count": "cannot exceed total_count"}
	}
	return nil
}

func equipmentFromRequest(req EquipmentRequest) *domain.Equipment {
	eq := &domain.Equipment{
		Name:             strings.TrimSpace(req.Name),
		CategoryID:       req.CategoryID,
		Description:      strings.TrimSpace(req.Description),
		Brand:            strings.TrimSpace(req.Brand),
		Model:            strings.TrimSpace(req.Model),
		TechnicalSpecs:   req.TechnicalSpecs,
		DailyPrice:       req.DailyPrice,
		WeeklyPrice:      req.WeeklyPrice,
		MonthlyPrice:     req.MonthlyPrice,
		State:            domain.EquipmentAvailable,
		AvailableCount:   1,
		TotalCount:       1,
		SerialNumber:     req.SerialNumber,
		Notes:            req.Notes,
		MainImageURL:     req.MainImageURL,
		AdditionalImages: req.AdditionalImages,
	}
	if req.State != "" {
		eq.State = domain.EquipmentState(req.State)
	}
	if req.AvailableCount != nil {
		eq.AvailableCount = *req.AvailableCount
	}
	if req.TotalCount != nil {
		eq.TotalCount = *req.TotalCount
	}
	return eq
}

// pricingWarnings flags tier prices that make the longer tier more expensive
// than paying the daily rate. A soft check: the catalog accepts the values
// anyway.
func pricingWarnings(eq *domain.Equipment) []string {
	var warnings []string
	if eq.WeeklyPrice != nil && *eq.WeeklyPrice >= eq.DailyPrice*7 {
		warnings = append(warnings, fmt.Sprintf(
			"weekly price %.2f is not cheaper than 7 daily rentals (%.2f)",
			*eq.WeeklyPrice, eq.DailyPrice*7))
	}
	if eq.MonthlyPrice != nil && *eq.MonthlyPrice >= eq.DailyPrice*30 {
		warnings = append(warnings, fmt.Sprintf(
			"monthly price %.2f is not cheaper than 30 daily rentals (%.2f)",
			*eq.MonthlyPrice, eq.DailyPrice*30))
	}
	return warnings
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// the sqlite driver reports constraint violations as plain strings
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
