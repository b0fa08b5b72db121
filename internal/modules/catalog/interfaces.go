package catalog

import (
	"context"

	"equiprent/internal/domain"
	"equiprent/internal/repository"
)

type CategoryRepository interface {
	GetAll(ctx context.Context, activeOnly bool) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, cat *domain.Category) error
	Update(ctx context.Context, cat *domain.Category) error
	Delete(ctx context.Context, id int64) error
}

type EquipmentRepository interface {
	GetAll(ctx context.Context, f repository.EquipmentFilters) ([]domain.Equipment, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Equipment, error)
	GetByCategory(ctx context.Context, categoryID int64, availableOnly bool) ([]domain.Equipment, error)
	GetAvailable(ctx context.Context) ([]domain.Equipment, error)
	Create(ctx context.Context, eq *domain.Equipment) error
	Update(ctx context.Context, eq *domain.Equipment) error
	Delete(ctx context.Context, id int64) error
	BlockingReservations(ctx context.Context, equipmentID int64) (int64, error)
}
