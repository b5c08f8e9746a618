package order

import (
	"context"
	"errors"

	"souq-be/internal/events"
	"souq-be/internal/store"
)

const (
	CollectionName = "merchant_orders"
	// PublishedIndexName holds order id -> market item id for every
	// published order.
	PublishedIndexName = "published_orders"
)

type Repository interface {
	GetAll(ctx context.Context) ([]MerchantOrder, error)
	GetByID(ctx context.Context, id string) (*MerchantOrder, error)
	Create(ctx context.Context, o MerchantOrder) (*MerchantOrder, error)
	// Mutate applies fn atomically; nothing is written when fn fails.
	Mutate(ctx context.Context, id string, fn func(*MerchantOrder) error) (*MerchantOrder, error)
	Delete(ctx context.Context, id string) error

	PublishedItemID(ctx context.Context, orderID string) (string, bool, error)
	// RecordPublished stores orderID -> itemID unless orderID is already
	// indexed, in which case the existing item id and ErrAlreadyPublished
	// are returned.
	RecordPublished(ctx context.Context, orderID, itemID string) (string, error)
	ForgetPublished(ctx context.Context, orderID string) error
}

type repository struct {
	orders    *store.Collection[MerchantOrder, *MerchantOrder]
	published *store.Document[map[string]string]
}

func NewRepository(s *store.Store) Repository {
	return &repository{
		orders: store.NewCollection[MerchantOrder](s, store.CollectionConfig{
			Name:     CollectionName,
			Topic:    events.TopicOrders,
			IDPrefix: "mo",
		}),
		published: store.NewDocument[map[string]string](s, PublishedIndexName, events.TopicOrders),
	}
}

func (r *repository) GetAll(ctx context.Context) ([]MerchantOrder, error) {
	return r.orders.GetAll(ctx)
}

func (r *repository) GetByID(ctx context.Context, id string) (*MerchantOrder, error) {
	o, err := r.orders.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &o, nil
}

func (r *repository) Create(ctx context.Context, o MerchantOrder) (*MerchantOrder, error) {
	created, err := r.orders.Add(ctx, o)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) Mutate(ctx context.Context, id string, fn func(*MerchantOrder) error) (*MerchantOrder, error) {
	updated, err := r.orders.Mutate(ctx, id, fn)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	removed, err := r.orders.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) PublishedItemID(ctx context.Context, orderID string) (string, bool, error) {
	index, err := r.published.Load(ctx)
	if err != nil {
		return "", false, err
	}
	itemID, ok := index[orderID]
	return itemID, ok, nil
}

func (r *repository) RecordPublished(ctx context.Context, orderID, itemID string) (string, error) {
	var existing string
	_, err := r.published.Mutate(ctx, func(index *map[string]string) error {
		if *index == nil {
			*index = make(map[string]string)
		}
		if prev, ok := (*index)[orderID]; ok {
			existing = prev
			return ErrAlreadyPublished
		}
		(*index)[orderID] = itemID
		return nil
	})
	if err != nil {
		return existing, err
	}
	return itemID, nil
}

func (r *repository) ForgetPublished(ctx context.Context, orderID string) error {
	_, err := r.published.Mutate(ctx, func(index *map[string]string) error {
		delete(*index, orderID)
		return nil
	})
	return err
}

func mapNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrOrderNotFound
	}
	return err
}
