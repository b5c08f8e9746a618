package product

import (
	"context"
	"math"
	"testing"
	"time"

	"souq-be/internal/events"
	"souq-be/internal/storage"
	"souq-be/internal/store"
	"souq-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) (Repository, *store.Store) {
	t.Helper()
	s := store.New(storage.NewMemory(), events.NewBus(), store.WithClock(func() time.Time { return fixedNow }))
	return NewRepository(s), s
}

func TestRepository_AddThenGetAll(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	in := Product{
		Name:        "X",
		Price:       10,
		Stock:       5,
		Category:    "C",
		Description: "desc",
		Images:      []string{"https://cdn.example/x.png"},
		SKU:         "SKU-1",
		Weight:      1.5,
		Dimensions:  "10x10x5",
		Status:      StatusActive,
	}
	created, err := repo.Create(ctx, in)
	require.NoError(t, err)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	got := all[0]
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, got.CreatedAt.Equal(fixedNow))

	got.Meta = store.Meta{}
	assert.Equal(t, in, got)
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	created, err := repo.Create(ctx, Product{Name: "Tea", Price: 8, Stock: 4, Category: "Drinks", Status: StatusActive})
	require.NoError(t, err)

	t.Run("MergesGivenFields", func(t *testing.T) {
		updated, err := repo.Update(ctx, created.ID, UpdateProduct{Price: utils.Ptr(9.5)})
		require.NoError(t, err)
		assert.Equal(t, 9.5, updated.Price)
		assert.Equal(t, "Tea", updated.Name)
		assert.Equal(t, 4, updated.Stock)
		assert.Equal(t, created.ID, updated.ID)
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	})

	t.Run("RejectsInvalidMerge", func(t *testing.T) {
		bad := Status("gone")
		_, err := repo.Update(ctx, created.ID, UpdateProduct{Status: &bad})
		assert.ErrorIs(t, err, ErrInvalidStatus)

		p, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusActive, p.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := repo.Update(ctx, "missing", UpdateProduct{Price: utils.Ptr(1.0)})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_AdjustStock(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	created, err := repo.Create(ctx, Product{Name: "Rice", Stock: 3, Status: StatusActive})
	require.NoError(t, err)

	p, err := repo.AdjustStock(ctx, created.ID, -2)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock)

	_, err = repo.AdjustStock(ctx, created.ID, -2)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = repo.AdjustStock(ctx, created.ID, math.MaxInt)
	assert.ErrorIs(t, err, ErrInvalidStock)

	p, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock)

	p, err = repo.AdjustStock(ctx, created.ID, math.MaxInt-1)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, p.Stock)
}

func TestRepository_DeleteNotifies(t *testing.T) {
	ctx := context.Background()
	repo, s := newTestRepo(t)

	var kinds []events.Kind
	sub := s.Bus().Subscribe(func(e events.Event) { kinds = append(kinds, e.Kind) }, events.TopicProducts)
	defer sub.Close()

	created, err := repo.Create(ctx, Product{Name: "Salt", Status: StatusActive})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrProductNotFound)

	assert.Equal(t, []events.Kind{events.KindCreated, events.KindDeleted}, kinds)
}
