package order

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"souq-be/internal/events"
	"souq-be/internal/market"
	"souq-be/internal/party"
	"souq-be/internal/storage"
	"souq-be/internal/store"
	"souq-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyBackend fails writes to keys ending in failSuffix while fail is set.
type flakyBackend struct {
	*storage.Memory
	mu         sync.Mutex
	fail       bool
	failSuffix string
}

func (f *flakyBackend) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	fail := f.fail && strings.HasSuffix(key, f.failSuffix)
	f.mu.Unlock()
	if fail {
		return errors.New("quota exceeded")
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *flakyBackend) setFail(v bool) {
	f.mu.Lock()
	f.fail = v
	f.mu.Unlock()
}

type fixture struct {
	svc      Service
	repo     Repository
	listings market.Repository
	store    *store.Store
}

func newFixture(t *testing.T, backend storage.Backend) fixture {
	t.Helper()
	if backend == nil {
		backend = storage.NewMemory()
	}
	s := store.New(backend, events.NewBus())
	repo := NewRepository(s)
	listings := market.NewRepository(s)
	return fixture{svc: NewService(repo, listings), repo: repo, listings: listings, store: s}
}

var jeddahStore = party.Merchant{ID: "m-1", Name: "Jeddah Store", Verified: utils.Ptr(true)}

func listingsFrom(t *testing.T, f fixture, orderID string) []market.Item {
	t.Helper()
	all, err := f.listings.GetAll(context.Background())
	require.NoError(t, err)
	var out []market.Item
	for _, it := range all {
		if it.SourceOrderID == orderID {
			out = append(out, it)
		}
	}
	return out
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	t.Run("ForcesOpen", func(t *testing.T) {
		o, err := f.svc.Create(ctx, CreateInput{
			Title:    " Office chairs ",
			Budget:   2500,
			Deadline: "2025-09-01",
			Merchant: jeddahStore,
			Products: []OrderProduct{{ProductID: "p1", Name: "Chair", Price: 250, Quantity: 10}},
		})
		require.NoError(t, err)
		assert.Equal(t, StatusOpen, o.Status)
		assert.Equal(t, "Office chairs", o.Title)
		assert.NotEmpty(t, o.ID)
		assert.Nil(t, o.PublishedAt)
		assert.Equal(t, 2500.0, Total(*o))
	})

	t.Run("BlankShippingIsNil", func(t *testing.T) {
		o, err := f.svc.Create(ctx, CreateInput{Title: "T", Merchant: jeddahStore, ShippingServiceID: utils.Ptr(" ")})
		require.NoError(t, err)
		assert.Nil(t, o.ShippingServiceID)
	})

	invalid := []struct {
		name  string
		input CreateInput
		err   error
	}{
		{"NoTitle", CreateInput{Merchant: jeddahStore}, ErrInvalidTitle},
		{"NegativeBudget", CreateInput{Title: "T", Budget: -1, Merchant: jeddahStore}, ErrInvalidBudget},
		{"NoMerchant", CreateInput{Title: "T"}, ErrInvalidMerchant},
		{"BadDeadline", CreateInput{Title: "T", Merchant: jeddahStore, Deadline: "01/09/2025"}, ErrInvalidDeadline},
		{"ZeroQuantity", CreateInput{Title: "T", Merchant: jeddahStore, Products: []OrderProduct{{Name: "x", Quantity: 0}}}, ErrInvalidLineItem},
		{"MerchantRatingAboveFive", CreateInput{Title: "T", Merchant: party.Merchant{ID: "m-2", Name: "Ratings Inc", Rating: utils.Ptr(7.5)}}, ErrInvalidMerchant},
		{"MerchantRatingNegative", CreateInput{Title: "T", Merchant: party.Merchant{ID: "m-2", Name: "Ratings Inc", Rating: utils.Ptr(-1.0)}}, ErrInvalidMerchant},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tc.input)
			assert.ErrorIs(t, err, tc.err)
			assert.ErrorIs(t, err, utils.ErrInvalidInput)
		})
	}
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("CancelledIsTerminal", func(t *testing.T) {
		f := newFixture(t, nil)
		o, err := f.svc.Create(ctx, CreateInput{Title: "Rice", Budget: 100, Merchant: jeddahStore})
		require.NoError(t, err)

		updated, err := f.svc.UpdateStatus(ctx, o.ID, StatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, updated.Status)

		_, err = f.svc.UpdateStatus(ctx, o.ID, StatusInProgress)
		assert.ErrorIs(t, err, ErrInvalidTransition)

		stored, err := f.svc.Get(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, stored.Status)
	})

	t.Run("StoreItselfIsPermissive", func(t *testing.T) {
		f := newFixture(t, nil)
		o, err := f.svc.Create(ctx, CreateInput{Title: "Rice", Merchant: jeddahStore})
		require.NoError(t, err)
		_, err = f.svc.UpdateStatus(ctx, o.ID, StatusCancelled)
		require.NoError(t, err)

		c := store.NewCollection[MerchantOrder](f.store, store.CollectionConfig{Name: CollectionName})
		raw, err := c.Update(ctx, o.ID, map[string]any{"status": "in_progress"})
		require.NoError(t, err)
		assert.Equal(t, StatusInProgress, raw.Status)
	})

	transitions := []struct {
		from, to Status
		ok       bool
	}{
		{StatusOpen, StatusInProgress, true},
		{StatusOpen, StatusCancelled, true},
		{StatusOpen, StatusCompleted, false},
		{StatusOpen, StatusOpen, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusOpen, false},
		{StatusCompleted, StatusOpen, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusOpen, false},
	}
	for _, tt := range transitions {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransition(tt.to))
		})
	}

	t.Run("UnknownStatus", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.svc.UpdateStatus(ctx, "whatever", "shipped")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.svc.UpdateStatus(ctx, "missing", StatusCancelled)
		assert.ErrorIs(t, err, ErrOrderNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestService_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("Idempotent", func(t *testing.T) {
		f := newFixture(t, nil)
		o, err := f.svc.Create(ctx, CreateInput{Title: "Bulk rice", Budget: 1000, Merchant: jeddahStore})
		require.NoError(t, err)
		require.Nil(t, o.ShippingServiceID)

		item, err := f.svc.Publish(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, 1000.0, item.Price)
		assert.Equal(t, party.RoleMerchant, item.Provider.Role)
		assert.Equal(t, market.TypeOffer, item.Type)
		assert.Equal(t, 1, item.Stock)
		assert.True(t, item.Provider.Verified)

		raw, err := json.Marshal(item)
		require.NoError(t, err)
		var shape struct {
			Provider map[string]any `json:"provider"`
		}
		require.NoError(t, json.Unmarshal(raw, &shape))
		assert.Equal(t, "merchant", shape.Provider["type"])

		again, err := f.svc.Publish(ctx, o.ID)
		assert.ErrorIs(t, err, ErrAlreadyPublished)
		require.NotNil(t, again)
		assert.Equal(t, item.ID, again.ID)

		assert.Len(t, listingsFrom(t, f, o.ID), 1)

		published, err := f.svc.IsPublished(ctx, o.ID)
		require.NoError(t, err)
		assert.True(t, published)

		_, err = f.svc.IsPublished(ctx, "mo-missing")
		assert.ErrorIs(t, err, ErrOrderNotFound)

		stored, err := f.svc.Get(ctx, o.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.PublishedAt)
	})

	t.Run("RatedMerchantPublishes", func(t *testing.T) {
		f := newFixture(t, nil)
		rated := party.Merchant{ID: "m-3", Name: "Top Rated", Rating: utils.Ptr(4.5)}
		o, err := f.svc.Create(ctx, CreateInput{Title: "Spices", Budget: 300, Merchant: rated})
		require.NoError(t, err)

		item, err := f.svc.Publish(ctx, o.ID)
		require.NoError(t, err)
		require.NotNil(t, item.Provider.Rating)
		assert.Equal(t, 4.5, *item.Provider.Rating)
	})

	t.Run("Notifications", func(t *testing.T) {
		f := newFixture(t, nil)
		o, err := f.svc.Create(ctx, CreateInput{Title: "Dates", Budget: 800, Merchant: jeddahStore})
		require.NoError(t, err)

		var mu sync.Mutex
		var marketplace, orders, products []events.Event
		record := func(dst *[]events.Event) events.Handler {
			return func(e events.Event) {
				mu.Lock()
				*dst = append(*dst, e)
				mu.Unlock()
			}
		}
		bus := f.store.Bus()
		defer bus.Subscribe(record(&marketplace), events.TopicMarketplace).Close()
		defer bus.Subscribe(record(&orders), events.TopicOrders).Close()
		defer bus.Subscribe(record(&products), events.TopicProducts).Close()

		item, err := f.svc.Publish(ctx, o.ID)
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, marketplace, 1)
		assert.Equal(t, events.KindCreated, marketplace[0].Kind)
		assert.Equal(t, market.CollectionName, marketplace[0].Collection)
		assert.Equal(t, item.ID, marketplace[0].EntityID)
		assert.Empty(t, products)

		var touched []string
		for _, e := range orders {
			assert.Equal(t, events.TopicOrders, e.Topic)
			touched = append(touched, e.Collection)
		}
		assert.Contains(t, touched, CollectionName)
		assert.Contains(t, touched, PublishedIndexName)
	})

	t.Run("StockFromLineItems", func(t *testing.T) {
		f := newFixture(t, nil)
		o, err := f.svc.Create(ctx, CreateInput{
			Title:    "Coffee",
			Budget:   300,
			Merchant: jeddahStore,
			Products: []OrderProduct{{Name: "Beans", Price: 20, Quantity: 10}, {Name: "Filters", Price: 5, Quantity: 4}},
		})
		require.NoError(t, err)

		item, err := f.svc.Publish(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, 14, item.Stock)
		assert.Equal(t, o.ID, item.SourceOrderID)
	})

	t.Run("Concurrent", func(t *testing.T) {
		f := newFixture(t, nil)
		o, err := f.svc.Create(ctx, CreateInput{Title: "Tea", Budget: 50, Merchant: jeddahStore})
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.svc.Publish(ctx, o.ID)
				if err != nil {
					assert.ErrorIs(t, err, ErrAlreadyPublished)
				}
			}()
		}
		wg.Wait()

		assert.Len(t, listingsFrom(t, f, o.ID), 1)
	})

	t.Run("CancelledOrder", func(t *testing.T) {
		f := newFixture(t, nil)
		o, err := f.svc.Create(ctx, CreateInput{Title: "Tea", Merchant: jeddahStore})
		require.NoError(t, err)
		_, err = f.svc.UpdateStatus(ctx, o.ID, StatusCancelled)
		require.NoError(t, err)

		_, err = f.svc.Publish(ctx, o.ID)
		assert.ErrorIs(t, err, ErrOrderClosed)
		assert.Empty(t, listingsFrom(t, f, o.ID))
	})

	t.Run("StampFailureRemovesListing", func(t *testing.T) {
		backend := &flakyBackend{Memory: storage.NewMemory(), failSuffix: ":" + CollectionName}
		f := newFixture(t, backend)
		o, err := f.svc.Create(ctx, CreateInput{Title: "Tea", Budget: 50, Merchant: jeddahStore})
		require.NoError(t, err)

		backend.setFail(true)
		_, err = f.svc.Publish(ctx, o.ID)
		assert.ErrorIs(t, err, store.ErrWriteFailed)
		backend.setFail(false)

		assert.Empty(t, listingsFrom(t, f, o.ID))
		published, err := f.svc.IsPublished(ctx, o.ID)
		require.NoError(t, err)
		assert.False(t, published)

		stored, err := f.svc.Get(ctx, o.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.PublishedAt)

		// a retry succeeds once storage recovers
		_, err = f.svc.Publish(ctx, o.ID)
		require.NoError(t, err)
		assert.Len(t, listingsFrom(t, f, o.ID), 1)
	})

	t.Run("ListingDeletedAfterPublish", func(t *testing.T) {
		f := newFixture(t, nil)
		o, err := f.svc.Create(ctx, CreateInput{Title: "Tea", Merchant: jeddahStore})
		require.NoError(t, err)
		item, err := f.svc.Publish(ctx, o.ID)
		require.NoError(t, err)
		require.NoError(t, f.listings.Delete(ctx, item.ID))

		again, err := f.svc.Publish(ctx, o.ID)
		assert.ErrorIs(t, err, ErrAlreadyPublished)
		assert.Nil(t, again)
	})
}

func TestService_UpdateAndShipping(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	o, err := f.svc.Create(ctx, CreateInput{Title: "Tea", Budget: 10, Merchant: jeddahStore})
	require.NoError(t, err)

	t.Run("Update", func(t *testing.T) {
		updated, err := f.svc.Update(ctx, o.ID, UpdateInput{Budget: utils.Ptr(20.0)})
		require.NoError(t, err)
		assert.Equal(t, 20.0, updated.Budget)
		assert.Equal(t, "Tea", updated.Title)

		_, err = f.svc.Update(ctx, o.ID, UpdateInput{Title: utils.Ptr("  ")})
		assert.ErrorIs(t, err, ErrInvalidTitle)

		_, err = f.svc.Update(ctx, o.ID, UpdateInput{})
		assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	})

	t.Run("AssignAndClear", func(t *testing.T) {
		updated, err := f.svc.AssignShipping(ctx, o.ID, utils.Ptr("shp-404"))
		require.NoError(t, err)
		require.NotNil(t, updated.ShippingServiceID)
		assert.Equal(t, "shp-404", *updated.ShippingServiceID)

		updated, err = f.svc.AssignShipping(ctx, o.ID, nil)
		require.NoError(t, err)
		assert.Nil(t, updated.ShippingServiceID)
	})

	t.Run("ListFilters", func(t *testing.T) {
		other, err := f.svc.Create(ctx, CreateInput{Title: "Sugar", Merchant: party.Merchant{ID: "m-2", Name: "Dammam Mart"}})
		require.NoError(t, err)
		_, err = f.svc.Publish(ctx, other.ID)
		require.NoError(t, err)

		byMerchant, err := f.svc.List(ctx, ListOptions{MerchantID: "m-2"})
		require.NoError(t, err)
		require.Len(t, byMerchant, 1)
		assert.Equal(t, other.ID, byMerchant[0].ID)

		unpublished, err := f.svc.List(ctx, ListOptions{Published: utils.Ptr(false)})
		require.NoError(t, err)
		require.Len(t, unpublished, 1)
		assert.Equal(t, o.ID, unpublished[0].ID)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, f.svc.Delete(ctx, o.ID))
		assert.ErrorIs(t, f.svc.Delete(ctx, o.ID), ErrOrderNotFound)
	})
}
