package repository

import (
	"context"

	"gorm.io/gorm"

	"equiprent/internal/domain"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, q *domain.Quote) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *QuoteRepository) GetByID(ctx context.Context, id int64) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Equipment").
		First(&quote, id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// GetByIDForClient fetches a quote only when it belongs to the client.
func (r *QuoteRepository) GetByIDForClient(ctx context.Context, id, clientID int64) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).
		Where("id = ? AND client_id = ?", id, clientID).
		Preload("Items").
		Preload("Items.Equipment").
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *QuoteRepository) GetAllForClient(ctx context.Context, clientID int64) ([]domain.Quote, error) {
	var quotes []domain.Quote
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Preload("Items").
		Order("created_at DESC").
		Find(&quotes).Error
	return quotes, err
}

// UpdateStatus moves a quote from one status to another with a
// compare-and-swap so two concurrent transitions cannot both win. It reports
// whether the row was updated.
func (r *QuoteRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.QuoteStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Quote{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected == 1, res.Error
}

// AddItem persists a new line item and recomputes the parent quote's total
// in the same transaction.
func (r *QuoteRepository) AddItem(ctx context.Context, item *domain.QuoteItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return recomputeQuoteTotal(tx, item.QuoteID)
	})
}

// RemoveItem deletes a line item and recomputes the parent quote's total in
// the same transaction. It reports whether the item existed.
func (r *QuoteRepository) RemoveItem(ctx context.Context, quoteID, itemID int64) (bool, error) {
	removed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND quote_id = ?", itemID, quoteID).
			Delete(&domain.QuoteItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		removed = true
		return recomputeQuoteTotal(tx, quoteID)
	})
	return removed, err
}

func (r *QuoteRepository) HasItemForEquipment(ctx context.Context, quoteID, equipmentID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.QuoteItem{}).
		Where("quote_id = ? AND equipment_id = ?", quoteID, equipmentID).
		Count(&count).Error
	return count > 0, err
}

// recomputeQuoteTotal persists total = SUM(item totals). Keeping this a
// single UPDATE makes the cross-aggregate side effect auditable in one
// place.
func recomputeQuoteTotal(tx *gorm.DB, quoteID int64) error {
	return tx.Model(&domain.Quote{}).
		Where("id = ?", quoteID).
		Update("total", tx.Model(&domain.QuoteItem{}).
			Select("COALESCE(SUM(total), 0)").
			Where("quote_id = ?", quoteID),
		).Error
}
