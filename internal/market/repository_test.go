package market

import (
	"context"
	"encoding/json"
	"testing"

	"souq-be/internal/events"
	"souq-be/internal/product"
	"souq-be/internal/storage"
	"souq-be/internal/store"
	"souq-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	bus := events.NewBus()
	s := store.New(storage.NewMemory(), bus)
	repo := NewRepository(s)

	var got []events.Event
	sub := bus.Subscribe(func(e events.Event) { got = append(got, e) }, events.TopicMarketplace)
	defer sub.Close()

	created, err := repo.Create(ctx, Item{
		Product:  product.Product{Name: "Dates", Price: 50, Stock: 10, Status: product.StatusActive},
		Type:     TypeProduct,
		Provider: supplier,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, events.KindCreated, got[0].Kind)
	assert.Equal(t, created.ID, got[0].EntityID)

	t.Run("PersistedShape", func(t *testing.T) {
		raw, ok, err := s.Raw(ctx, CollectionName)
		require.NoError(t, err)
		require.True(t, ok)

		var stored []map[string]any
		require.NoError(t, json.Unmarshal(raw, &stored))
		require.Len(t, stored, 1)
		assert.Equal(t, "product", stored[0]["type"])
		assert.Equal(t, "supplier", stored[0]["provider"].(map[string]any)["type"])
		assert.Equal(t, created.ID, stored[0]["id"])
		assert.Contains(t, stored[0], "createdAt")
	})

	t.Run("Update", func(t *testing.T) {
		offer := TypeOffer
		updated, err := repo.Update(ctx, created.ID, UpdateItem{
			UpdateProduct: product.UpdateProduct{Price: utils.Ptr(45.0)},
			Type:          &offer,
		})
		require.NoError(t, err)
		assert.Equal(t, 45.0, updated.Price)
		assert.Equal(t, TypeOffer, updated.Type)
		assert.Equal(t, "Dates", updated.Name)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, created.ID))
		_, err := repo.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, ErrItemNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, created.ID), store.ErrNotFound)
	})
}
