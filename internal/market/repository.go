package market

import (
	"context"
	"errors"

	"souq-be/internal/events"
	"souq-be/internal/store"
)

const CollectionName = "market_items"

type Repository interface {
	GetAll(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, it Item) (*Item, error)
	Update(ctx context.Context, id string, input UpdateItem) (*Item, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	items *store.Collection[Item, *Item]
}

func NewRepository(s *store.Store) Repository {
	return &repository{
		items: store.NewCollection[Item](s, store.CollectionConfig{
			Name:     CollectionName,
			Topic:    events.TopicMarketplace,
			IDPrefix: "mkt",
		}),
	}
}

func (r *repository) GetAll(ctx context.Context) ([]Item, error) {
	return r.items.GetAll(ctx)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Item, error) {
	it, err := r.items.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &it, nil
}

func (r *repository) Create(ctx context.Context, it Item) (*Item, error) {
	created, err := r.items.Add(ctx, it)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) Update(ctx context.Context, id string, input UpdateItem) (*Item, error) {
	updated, err := r.items.Mutate(ctx, id, func(it *Item) error {
		next := input.Apply(*it)
		if err := Validate(next); err != nil {
			return err
		}
		*it = next
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	removed, err := r.items.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrItemNotFound
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrItemNotFound
	}
	return err
}
