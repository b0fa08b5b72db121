package reservation

import (
	"context"

	"equiprent/internal/domain"
	"equiprent/internal/repository"
)

type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByIDForClient(ctx context.Context, id, clientID int64) (*domain.Reservation, error)
	GetAllForClient(ctx context.Context, clientID int64) ([]domain.Reservation, error)
	GetAll(ctx context.Context, f repository.ReservationFilters) ([]domain.Reservation, int64, error)
	Create(ctx context.Context, res *domain.Reservation) error
	Approve(ctx context.Context, reservationID, approverID int64) (*domain.Reservation, error)
	Reject(ctx context.Context, reservationID, approverID int64, reason string) (*domain.Reservation, error)
	CancelByClient(ctx context.Context, reservationID, clientID int64) (*domain.Reservation, error)
	Stats(ctx context.Context) (*repository.ReservationStats, error)
}

type EquipmentGetter interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Equipment, error)
}

// Notifier pushes reservation lifecycle events to connected staff.
// Implementations must tolerate having no listeners.
type Notifier interface {
	ReservationCreated(res *domain.Reservation)
	ReservationApproved(res *domain.Reservation)
	ReservationRejected(res *domain.Reservation)
}
