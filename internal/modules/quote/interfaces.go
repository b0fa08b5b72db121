package quote

import (
	"context"
	"time"

	"equiprent/internal/domain"
)

type QuoteRepository interface {
	Create(ctx context.Context, q *domain.Quote) error
	GetByIDForClient(ctx context.Context, id, clientID int64) (*domain.Quote, error)
	GetAllForClient(ctx context.Context, clientID int64) ([]domain.Quote, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.QuoteStatus) (bool, error)
	AddItem(ctx context.Context, item *domain.QuoteItem) error
	RemoveItem(ctx context.Context, quoteID, itemID int64) (bool, error)
	HasItemForEquipment(ctx context.Context, quoteID, equipmentID int64) (bool, error)
}

type EquipmentGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
}

type QuoteConverter interface {
	ConvertQuote(ctx context.Context, quoteID, clientID int64, useDate time.Time, location, notes string) (*domain.Reservation, error)
}

// Notifier pushes reservation events to connected staff. Implementations
// must tolerate having no listeners.
type Notifier interface {
	ReservationCreated(res *domain.Reservation)
}
