package product

import (
	"context"
	"sort"
	"strings"

	"souq-be/internal/logger"
	"souq-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, opts ListOptions) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p Product) (*Product, error)
	Update(ctx context.Context, id string, input UpdateProduct) (*Product, error)
	AdjustStock(ctx context.Context, id string, delta int) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
	)
	log.Debug("List started")

	all, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error("failed to get products", zap.Error(err))
		return nil, err
	}

	res := make([]Product, 0, len(all))
	for _, p := range all {
		if Matches(p, opts) {
			res = append(res, p)
		}
	}
	SortProducts(res, opts.Sort)

	log.Debug("List success", zap.Int("count", len(res)))
	return res, nil
}

// Matches reports whether p passes every filter set in opts.
func Matches(p Product, opts ListOptions) bool {
	if opts.Category != "" && !strings.EqualFold(p.Category, opts.Category) {
		return false
	}
	if opts.Status != "" && p.Status != opts.Status {
		return false
	}
	if opts.InStock && p.Stock <= 0 {
		return false
	}
	return utils.ContainsFold(opts.Search, p.Name, p.Description, p.SKU, p.Category)
}

// SortProducts orders items in place. The natural order is insertion order
// and is kept for ties.
func SortProducts(items []Product, by SortField) {
	switch by {
	case SortNewest:
		sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price < items[j].Price })
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price > items[j].Price })
	case SortName:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	}
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Get"),
		zap.String("product_id", id),
	)

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Warn("failed to get product", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, p Product) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("name", p.Name),
	)
	log.Info("Create started")

	p.Name = strings.TrimSpace(p.Name)
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if err := Validate(p); err != nil {
		log.Warn("invalid product", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("Create success", zap.String("product_id", created.ID))
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateProduct) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.String("product_id", id),
	)
	log.Info("Update started")

	if !input.HasAnyField() {
		return nil, ErrNoFieldsToUpdate
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		input.Name = &name
	}

	updated, err := s.repo.Update(ctx, id, input)
	if err != nil {
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}

	log.Info("Update success")
	return updated, nil
}

func (s *service) AdjustStock(ctx context.Context, id string, delta int) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AdjustStock"),
		zap.String("product_id", id),
		zap.Int("delta", delta),
	)
	log.Info("AdjustStock started")

	updated, err := s.repo.AdjustStock(ctx, id, delta)
	if err != nil {
		log.Error("failed to adjust stock", zap.Error(err))
		return nil, err
	}

	log.Info("AdjustStock success", zap.Int("stock", updated.Stock))
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Delete"),
		zap.String("product_id", id),
	)
	log.Info("Delete started")

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete product", zap.Error(err))
		return err
	}

	log.Info("Delete success")
	return nil
}
