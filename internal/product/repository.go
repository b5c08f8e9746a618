package product

import (
	"context"
	"errors"
	"fmt"
	"math"

	"souq-be/internal/events"
	"souq-be/internal/store"
)

const CollectionName = "products"

type Repository interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p Product) (*Product, error)
	Update(ctx context.Context, id string, input UpdateProduct) (*Product, error)
	AdjustStock(ctx context.Context, id string, delta int) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	products *store.Collection[Product, *Product]
}

func NewRepository(s *store.Store) Repository {
	return &repository{
		products: store.NewCollection[Product](s, store.CollectionConfig{
			Name:     CollectionName,
			Topic:    events.TopicProducts,
			IDPrefix: "prd",
		}),
	}
}

func (r *repository) GetAll(ctx context.Context) ([]Product, error) {
	return r.products.GetAll(ctx)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	p, err := r.products.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p Product) (*Product, error) {
	created, err := r.products.Add(ctx, p)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies input and re-validates the merged record before it is
// written, so a concurrent update cannot slip an invalid state in between.
func (r *repository) Update(ctx context.Context, id string, input UpdateProduct) (*Product, error) {
	updated, err := r.products.Mutate(ctx, id, func(p *Product) error {
		next := input.Apply(*p)
		if err := Validate(next); err != nil {
			return err
		}
		*p = next
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &updated, nil
}

func (r *repository) AdjustStock(ctx context.Context, id string, delta int) (*Product, error) {
	updated, err := r.products.Mutate(ctx, id, func(p *Product) error {
		if delta > 0 && delta > math.MaxInt-p.Stock {
			return fmt.Errorf("%w: adjustment overflows", ErrInvalidStock)
		}
		if p.Stock+delta < 0 {
			return ErrInsufficientStock
		}
		p.Stock += delta
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	removed, err := r.products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrProductNotFound
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}
