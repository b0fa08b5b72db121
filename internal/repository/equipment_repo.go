package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"equiprent/internal/domain"
)

// ErrEquipmentReserved is returned when deleting equipment that is still
// referenced by a pending, approved or active reservation dated today or
// later.
var ErrEquipmentReserved = errors.New("equipment is referenced by active or future reservations")

// blockingStatuses are the reservation states that pin equipment in the
// catalog.
var blockingStatuses = []domain.ReservationStatus{
	domain.ReservationPending,
	domain.ReservationApproved,
	domain.ReservationActive,
}

type EquipmentFilters struct {
	Query      string
	CategoryID int64
	State      string
	Brand      string
	PriceMin   float64
	PriceMax   float64
	Available  *bool
	OrderBy    string
	Limit      int
	Offset     int
}

// orderings whitelists the sortable columns exposed by the catalog listing.
var orderings = map[string]string{
	"name":         "name",
	"-name":        "name DESC",
	"daily_price":  "daily_price",
	"-daily_price": "daily_price DESC",
	"created_at":   "created_at",
	"-created_at":  "created_at DESC",
}

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) GetAll(ctx context.Context, f EquipmentFilters) ([]domain.Equipment, int64, error) {
	var equipment []domain.Equipment
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Equipment{})

	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(model) LIKE ?",
			like, like, like, like,
		)
	}
	if f.CategoryID > 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.State != "" {
		q = q.Where("state = ?", f.State)
	}
	if f.Brand != "" {
		q = q.Where("LOWER(brand) LIKE ?", "%"+strings.ToLower(f.Brand)+"%")
	}
	if f.PriceMin > 0 {
		q = q.Where("daily_price >= ?", f.PriceMin)
	}
	if f.PriceMax > 0 {
		q = q.Where("daily_price <= ?", f.PriceMax)
	}
	if f.Available != nil {
		if *f.Available {
			q = q.Where("state = ? AND available_count > 0", domain.EquipmentAvailable)
		} else {
			q = q.Where("state <> ? OR available_count = 0", domain.EquipmentAvailable)
		}
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "name"
	if o, ok := orderings[f.OrderBy]; ok {
		order = o
	}

	err := q.
		Preload("Category").
		Order(order).
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&equipment).Error

	return equipment, total, err
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	var eq domain.Equipment
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&eq, id).Error
	if err != nil {
		return nil, err
	}
	return &eq, nil
}

func (r *EquipmentRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Equipment, error) {
	var equipment []domain.Equipment
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&equipment).Error
	return equipment, err
}

func (r *EquipmentRepository) GetByCategory(ctx context.Context, categoryID int64, availableOnly bool) ([]domain.Equipment, error) {
	var equipment []domain.Equipment
	q := r.db.WithContext(ctx).Where("category_id = ?", categoryID)
	if availableOnly {
		q = q.Where("state = ? AND available_count > 0", domain.EquipmentAvailable)
	}
	err := q.Order("name").Find(&equipment).Error
	return equipment, err
}

func (r *EquipmentRepository) GetAvailable(ctx context.Context) ([]domain.Equipment, error) {
	var equipment []domain.Equipment
	err := r.db.WithContext(ctx).
		Where("state = ? AND available_count > 0", domain.EquipmentAvailable).
		Preload("Category").
		Order("name").
		Find(&equipment).Error
	return equipment, err
}

func (r *EquipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	return r.db.WithContext(ctx).Create(eq).Error
}

func (r *EquipmentRepository) Update(ctx context.Context, eq *domain.Equipment) error {
	return r.db.WithContext(ctx).Save(eq).Error
}

// BlockingReservations counts pending/approved/active reservations dated
// today or later that reference the equipment.
func (r *EquipmentRepository) BlockingReservations(ctx context.Context, equipmentID int64) (int64, error) {
	return blockingReservations(r.db.WithContext(ctx), equipmentID)
}

// Delete removes equipment unless it is pinned by active or future
// reservations. The guard runs inside the delete transaction so a concurrent
// approval cannot slip between check and delete.
func (r *EquipmentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var eq domain.Equipment
		if err := tx.First(&eq, id).Error; err != nil {
			return err
		}

		count, err := blockingReservations(tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %d reservation(s)", ErrEquipmentReserved, count)
		}

		return tx.Delete(&domain.Equipment{}, id).Error
	})
}

func blockingReservations(tx *gorm.DB, equipmentID int64) (int64, error) {
	today := startOfToday()

	var count int64
	err := tx.Model(&domain.ReservationItem{}).
		Joins("JOIN reservations ON reservations.id = reservation_items.reservation_id").
		Where("reservation_items.equipment_id = ?", equipmentID).
		Where("reservations.status IN ?", blockingStatuses).
		Where("reservations.use_date >= ?", today).
		Count(&count).Error
	return count, err
}

func startOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
