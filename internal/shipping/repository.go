package shipping

import (
	"context"
	"errors"

	"souq-be/internal/events"
	"souq-be/internal/store"
)

const CollectionName = "shipping_services"

type Repository interface {
	GetAll(ctx context.Context) ([]Service, error)
	GetByID(ctx context.Context, id string) (*Service, error)
	Create(ctx context.Context, svc Service) (*Service, error)
	// Mutate applies fn under the store lock; nothing is written when fn
	// returns an error.
	Mutate(ctx context.Context, id string, fn func(*Service) error) (*Service, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	services *store.Collection[Service, *Service]
}

func NewRepository(s *store.Store) Repository {
	return &repository{
		services: store.NewCollection[Service](s, store.CollectionConfig{
			Name:     CollectionName,
			Topic:    events.TopicMarketplace,
			IDPrefix: "shp",
		}),
	}
}

func (r *repository) GetAll(ctx context.Context) ([]Service, error) {
	return r.services.GetAll(ctx)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Service, error) {
	svc, err := r.services.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &svc, nil
}

func (r *repository) Create(ctx context.Context, svc Service) (*Service, error) {
	created, err := r.services.Add(ctx, svc)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) Mutate(ctx context.Context, id string, fn func(*Service) error) (*Service, error) {
	updated, err := r.services.Mutate(ctx, id, fn)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	removed, err := r.services.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrServiceNotFound
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrServiceNotFound
	}
	return err
}
