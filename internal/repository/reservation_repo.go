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

var (
	// ErrQuoteNotFinalized is returned when converting a quote that is not
	// in the finalized state.
	ErrQuoteNotFinalized = errors.New("quote is not finalized")
	// ErrQuoteEmpty is returned when converting or finalizing a quote with
	// no line items.
	ErrQuoteEmpty = errors.New("quote has no items")
	// ErrReservationNotPending is returned when approving, rejecting or
	// cancelling a reservation that already left the pending state.
	ErrReservationNotPending = errors.New("reservation is not pending")
)

// StockError reports that an equipment row cannot cover the requested
// quantity. It aborts the surrounding transaction.
type StockError struct {
	EquipmentID   int64
	EquipmentName string
	Requested     int
	Available     int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("equipment %q: requested %d, available %d",
		e.EquipmentName, e.Requested, e.Available)
}

type ReservationFilters struct {
	Status   string
	ClientID int64
	From     time.Time
	To       time.Time
	Limit    int
	Offset   int
}

// ReservationStats is the staff statistics payload: counts by status and the
// approval percentage over all decided and undecided reservations.
type ReservationStats struct {
	Total              int64   `json:"total"`
	Pending            int64   `json:"pending"`
	Approved           int64   `json:"approved"`
	Rejected           int64   `json:"rejected"`
	Cancelled          int64   `json:"cancelled"`
	ApprovalPercentage float64 `json:"approval_percentage"`
}

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var res domain.Reservation
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Equipment").
		Preload("Client").
		Preload("ApprovedBy").
		First(&res, id).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepository) GetByIDForClient(ctx context.Context, id, clientID int64) (*domain.Reservation, error) {
	var res domain.Reservation
	err := r.db.WithContext(ctx).
		Where("id = ? AND client_id = ?", id, clientID).
		Preload("Items").
		Preload("Items.Equipment").
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepository) GetAllForClient(ctx context.Context, clientID int64) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Preload("Items").
		Order("created_at DESC").
		Find(&reservations).Error
	return reservations, err
}

func (r *ReservationRepository) GetAll(ctx context.Context, f ReservationFilters) ([]domain.Reservation, int64, error) {
	var reservations []domain.Reservation
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Reservation{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ClientID > 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at <= ?", f.To)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.
		Preload("Items").
		Preload("Client").
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&reservations).Error
	return reservations, total, err
}

// Create persists a directly-created reservation with its item snapshots,
// verifying each equipment's current availability inside the transaction.
func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range res.Items {
			if err := checkStock(tx, res.Items[i].EquipmentID, res.Items[i].Quantity); err != nil {
				return err
			}
		}
		return tx.Create(res).Error
	})
}

// ConvertQuote turns a finalized quote into a pending reservation in a
// single transaction: re-check every item's equipment availability, create
// the reservation with frozen item snapshots, then mark the quote converted.
// Any failure rolls back the whole operation.
func (r *ReservationRepository) ConvertQuote(ctx context.Context, quoteID, clientID int64, useDate time.Time, location, notes string) (*domain.Reservation, error) {
	var created *domain.Reservation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var quote domain.Quote
		if err := tx.Where("id = ? AND client_id = ?", quoteID, clientID).
			Preload("Items").
			First(&quote).Error; err != nil {
			return err
		}

		if quote.Status != domain.QuoteFinalized {
			return ErrQuoteNotFinalized
		}
		if len(quote.Items) == 0 {
			return ErrQuoteEmpty
		}

		// Availability may have changed since the quote was drafted;
		// never trust the quote-time check.
		for _, item := range quote.Items {
			if err := checkStock(tx, item.EquipmentID, item.Quantity); err != nil {
				return err
			}
		}

		reservation := &domain.Reservation{
			ClientID:      clientID,
			QuoteID:       &quote.ID,
			Status:        domain.ReservationPending,
			UseDate:       useDate,
			EventLocation: location,
			Notes:         notes,
			Total:         quote.Total,
		}
		for _, item := range quote.Items {
			reservation.Items = append(reservation.Items, domain.ReservationItem{
				EquipmentID: item.EquipmentID,
				Quantity:    item.Quantity,
				Tier:        item.Tier,
				Period:      item.Period,
				UnitPrice:   item.UnitPrice,
				Total:       item.Total,
			})
		}

		if err := tx.Create(reservation).Error; err != nil {
			return err
		}

		res := tx.Model(&domain.Quote{}).
			Where("id = ? AND status = ?", quote.ID, domain.QuoteFinalized).
			Update("status", domain.QuoteConverted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrQuoteNotFinalized
		}

		created = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Approve moves a pending reservation to approved and decrements each
// referenced equipment's available count, all in one transaction. The
// decrement is a compare-and-swap (UPDATE ... WHERE available_count >= qty)
// so two concurrent approvals cannot drive availability below zero.
func (r *ReservationRepository) Approve(ctx context.Context, reservationID, approverID int64) (*domain.Reservation, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reservation domain.Reservation
		if err := tx.Preload("Items").First(&reservation, reservationID).Error; err != nil {
			return err
		}
		if reservation.Status != domain.ReservationPending {
			return ErrReservationNotPending
		}

		for _, item := range reservation.Items {
			res := tx.Model(&domain.Equipment{}).
				Where("id = ? AND available_count >= ?", item.EquipmentID, item.Quantity).
				Update("available_count", gorm.Expr("available_count - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return stockError(tx, item.EquipmentID, item.Quantity)
			}
		}

		now := time.Now().UTC()
		res := tx.Model(&domain.Reservation{}).
			Where("id = ? AND status = ?", reservationID, domain.ReservationPending).
			Updates(map[string]any{
				"status":         domain.ReservationApproved,
				"approved_by_id": approverID,
				"approved_at":    now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrReservationNotPending
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, reservationID)
}

// Reject moves a pending reservation to rejected, records the deciding staff
// member and appends the reason to the notes. Stock is not touched.
func (r *ReservationRepository) Reject(ctx context.Context, reservationID, approverID int64, reason string) (*domain.Reservation, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reservation domain.Reservation
		if err := tx.First(&reservation, reservationID).Error; err != nil {
			return err
		}
		if reservation.Status != domain.ReservationPending {
			return ErrReservationNotPending
		}

		notes := reservation.Notes
		if reason != "" {
			notes = strings.TrimSpace(notes + "\n\nRejection reason: " + reason)
		}

		return tx.Model(&domain.Reservation{}).
			Where("id = ?", reservationID).
			Updates(map[string]any{
				"status":         domain.ReservationRejected,
				"approved_by_id": approverID,
				"notes":          notes,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, reservationID)
}

// CancelByClient lets the owning client withdraw a reservation that is still
// pending.
func (r *ReservationRepository) CancelByClient(ctx context.Context, reservationID, clientID int64) (*domain.Reservation, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reservation domain.Reservation
		if err := tx.Where("id = ? AND client_id = ?", reservationID, clientID).
			First(&reservation).Error; err != nil {
			return err
		}
		if reservation.Status != domain.ReservationPending {
			return ErrReservationNotPending
		}

		return tx.Model(&domain.Reservation{}).
			Where("id = ?", reservationID).
			Update("status", domain.ReservationCancelled).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, reservationID)
}

func (r *ReservationRepository) Stats(ctx context.Context) (*ReservationStats, error) {
	stats := &ReservationStats{}

	type statusCount struct {
		Status domain.ReservationStatus
		Count  int64
	}
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case domain.ReservationPending:
			stats.Pending = row.Count
		case domain.ReservationApproved:
			stats.Approved = row.Count
		case domain.ReservationRejected:
			stats.Rejected = row.Count
		case domain.ReservationCancelled:
			stats.Cancelled = row.Count
		}
	}

	if stats.Total > 0 {
		pct := float64(stats.Approved) / float64(stats.Total) * 100
		stats.ApprovalPercentage = float64(int(pct*100+0.5)) / 100
	}
	return stats, nil
}

// checkStock verifies inside the current transaction that the equipment is
// rentable and covers the requested quantity.
func checkStock(tx *gorm.DB, equipmentID int64, quantity int) error {
	var eq domain.Equipment
	if err := tx.First(&eq, equipmentID).Error; err != nil {
		return err
	}
	if eq.State != domain.EquipmentAvailable || eq.AvailableCount < quantity {
		return &StockError{
			EquipmentID:   eq.ID,
			EquipmentName: eq.Name,
			Requested:     quantity,
			Available:     eq.AvailableCount,
		}
	}
	return nil
}

func stockError(tx *gorm.DB, equipmentID int64, quantity int) error {
	var eq domain.Equipment
	if err := tx.First(&eq, equipmentID).Error; err != nil {
		return err
	}
	return &StockError{
		EquipmentID:   eq.ID,
		EquipmentName: eq.Name,
		Requested:     quantity,
		Available:     eq.AvailableCount,
	}
}
