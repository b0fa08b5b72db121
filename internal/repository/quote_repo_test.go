package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equiprent/internal/domain"
)

func TestQuoteRepository_AddAndRemoveItemRecomputesTotal(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	client := seedClient(t, db)
	mixer := seedEquipment(t, db, "Mixer", 5, 5)
	lights := seedEquipment(t, db, "Lights", 5, 5)

	repo := NewQuoteRepository(db)

	quote := &domain.Quote{ClientID: client.ID, Status: domain.QuoteDraft}
	require.NoError(t, repo.Create(ctx, quote))

	first := &domain.QuoteItem{
		QuoteID: quote.ID, EquipmentID: mixer.ID, Quantity: 2,
		Tier: domain.TierDaily, Period: 3, UseDate: futureDate(5),
		UnitPrice: 100, Total: domain.LineTotal(100, 3, 2),
	}
	require.NoError(t, repo.AddItem(ctx, first))

	reloaded, err := repo.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, 600.0, reloaded.Total)

	second := &domain.QuoteItem{
		QuoteID: quote.ID, EquipmentID: lights.ID, Quantity: 1,
		Tier: domain.TierDaily, Period: 2, UseDate: futureDate(5),
		UnitPrice: 50, Total: domain.LineTotal(50, 2, 1),
	}
	require.NoError(t, repo.AddItem(ctx, second))

	reloaded, err = repo.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, 700.0, reloaded.Total)

	// total always equals the sum of the remaining items
	removed, err := repo.RemoveItem(ctx, quote.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	reloaded, err = repo.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, reloaded.Total)
}

func TestQuoteRepository_RemoveMissingItem(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	client := seedClient(t, db)

	repo := NewQuoteRepository(db)
	quote := &domain.Quote{ClientID: client.ID, Status: domain.QuoteDraft}
	require.NoError(t, repo.Create(ctx, quote))

	removed, err := repo.RemoveItem(ctx, quote.ID, 12345)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestQuoteRepository_UpdateStatusCompareAndSwap(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	client := seedClient(t, db)

	repo := NewQuoteRepository(db)
	quote := &domain.Quote{ClientID: client.ID, Status: domain.QuoteDraft}
	require.NoError(t, repo.Create(ctx, quote))

	updated, err := repo.UpdateStatus(ctx, quote.ID, domain.QuoteDraft, domain.QuoteFinalized)
	require.NoError(t, err)
	assert.True(t, updated)

	// a second finalize loses the swap
	updated, err = repo.UpdateStatus(ctx, quote.ID, domain.QuoteDraft, domain.QuoteFinalized)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestQuoteRepository_HasItemForEquipment(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	client := seedClient(t, db)
	eq := seedEquipment(t, db, "Fog Machine", 2, 2)

	repo := NewQuoteRepository(db)
	quote := &domain.Quote{ClientID: client.ID, Status: domain.QuoteDraft}
	require.NoError(t, repo.Create(ctx, quote))

	has, err := repo.HasItemForEquipment(ctx, quote.ID, eq.ID)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, repo.AddItem(ctx, &domain.QuoteItem{
		QuoteID: quote.ID, EquipmentID: eq.ID, Quantity: 1,
		Tier: domain.TierDaily, Period: 1, UseDate: futureDate(2),
		UnitPrice: 40, Total: 40,
	}))

	has, err = repo.HasItemForEquipment(ctx, quote.ID, eq.ID)
	require.NoError(t, err)
	assert.True(t, has)
}
