package market

import (
	"context"
	"sort"
	"strings"

	"souq-be/internal/logger"
	"souq-be/internal/product"
	"souq-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, opts ListOptions) ([]Item, error)
	ListByProvider(ctx context.Context, providerID string) ([]Item, error)
	Get(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, it Item) (*Item, error)
	Update(ctx context.Context, id string, input UpdateItem) (*Item, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
	)
	log.Debug("List started")

	if opts.MinPrice != nil && opts.MaxPrice != nil && *opts.MinPrice > *opts.MaxPrice {
		return nil, ErrInvalidPrice
	}

	all, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error("failed to get market items", zap.Error(err))
		return nil, err
	}

	res := make([]Item, 0, len(all))
	for _, it := range all {
		if matches(it, opts) {
			res = append(res, it)
		}
	}
	sortItems(res, opts.Sort)

	log.Debug("List success", zap.Int("count", len(res)))
	return res, nil
}

func (s *service) ListByProvider(ctx context.Context, providerID string) ([]Item, error) {
	if strings.TrimSpace(providerID) == "" {
		return nil, ErrInvalidProvider
	}
	return s.List(ctx, ListOptions{ProviderID: providerID})
}

func matches(it Item, opts ListOptions) bool {
	if opts.Type != "" && it.Type != opts.Type {
		return false
	}
	if opts.Category != "" && !strings.EqualFold(it.Category, opts.Category) {
		return false
	}
	if opts.ProviderRole != "" && it.Provider.Role != opts.ProviderRole {
		return false
	}
	if opts.ProviderID != "" && it.Provider.ID != opts.ProviderID {
		return false
	}
	if opts.MinPrice != nil && it.Price < *opts.MinPrice {
		return false
	}
	if opts.MaxPrice != nil && it.Price > *opts.MaxPrice {
		return false
	}
	return utils.ContainsFold(opts.Search, it.Name, it.Description, it.Category, it.Provider.Name)
}

func sortItems(items []Item, by SortField) {
	switch by {
	case SortNewest:
		sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price < items[j].Price })
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price > items[j].Price })
	case SortRating:
		// unrated providers sort last
		sort.SliceStable(items, func(i, j int) bool {
			return utils.PtrFloat64(items[i].Provider.Rating) > utils.PtrFloat64(items[j].Provider.Rating)
		})
	}
}

func (s *service) Get(ctx context.Context, id string) (*Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to get market item",
			zap.String("layer", "service"),
			zap.String("item_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return it, nil
}

func (s *service) Create(ctx context.Context, it Item) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("name", it.Name),
	)
	log.Info("Create started")

	it.Name = strings.TrimSpace(it.Name)
	if it.Type == "" {
		it.Type = TypeProduct
	}
	if it.Status == "" {
		it.Status = product.StatusActive
	}
	if err := Validate(it); err != nil {
		log.Warn("invalid market item", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Create(ctx, it)
	if err != nil {
		log.Error("failed to create market item", zap.Error(err))
		return nil, err
	}

	log.Info("Create success", zap.String("item_id", created.ID))
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateItem) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.String("item_id", id),
	)
	log.Info("Update started")

	if !input.HasAnyField() {
		return nil, ErrNoFieldsToUpdate
	}

	updated, err := s.repo.Update(ctx, id, input)
	if err != nil {
		log.Error("failed to update market item", zap.Error(err))
		return nil, err
	}

	log.Info("Update success")
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Delete"),
		zap.String("item_id", id),
	)
	log.Info("Delete started")

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete market item", zap.Error(err))
		return err
	}

	log.Info("Delete success")
	return nil
}
