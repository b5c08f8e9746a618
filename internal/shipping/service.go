package shipping

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"souq-be/internal/logger"
	"souq-be/internal/party"
	"souq-be/internal/utils"

	"go.uber.org/zap"
)

type Catalog interface {
	List(ctx context.Context, opts ListOptions) ([]Service, error)
	Get(ctx context.Context, id string) (*Service, error)
	Create(ctx context.Context, svc Service) (*Service, error)
	Update(ctx context.Context, id string, input UpdateService) (*Service, error)
	// Delete never touches merchant orders referencing the service.
	Delete(ctx context.Context, id string) error
	Quote(ctx context.Context, id string, weightKg float64) (*Quote, error)
}

type catalog struct {
	repo Repository
}

func NewCatalog(repo Repository) Catalog {
	return &catalog{repo: repo}
}

func validate(svc Service) error {
	if strings.TrimSpace(svc.Name) == "" {
		return ErrInvalidName
	}
	if svc.PricePerKg < 0 {
		return ErrInvalidPricePerKg
	}
	if svc.Rating != nil && (*svc.Rating < 0 || *svc.Rating > 5) {
		return ErrInvalidRating
	}
	if svc.Provider.Role != party.RoleShippingCompany {
		return ErrInvalidProvider
	}
	if err := svc.Provider.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProvider, err)
	}
	return nil
}

func (c *catalog) List(ctx context.Context, opts ListOptions) ([]Service, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
	)

	all, err := c.repo.GetAll(ctx)
	if err != nil {
		log.Error("failed to get shipping services", zap.Error(err))
		return nil, err
	}

	res := make([]Service, 0, len(all))
	for _, svc := range all {
		if opts.Category != "" && !strings.EqualFold(svc.Category, opts.Category) {
			continue
		}
		if opts.ProviderID != "" && svc.Provider.ID != opts.ProviderID {
			continue
		}
		if !utils.ContainsFold(opts.Search, svc.Name, svc.Description, svc.Coverage, svc.Provider.Name) {
			continue
		}
		res = append(res, svc)
	}

	switch opts.Sort {
	case SortPriceAsc:
		sort.SliceStable(res, func(i, j int) bool { return res[i].PricePerKg < res[j].PricePerKg })
	case SortRating:
		sort.SliceStable(res, func(i, j int) bool {
			return utils.PtrFloat64(res[i].Rating) > utils.PtrFloat64(res[j].Rating)
		})
	}

	log.Debug("List success", zap.Int("count", len(res)))
	return res, nil
}

func (c *catalog) Get(ctx context.Context, id string) (*Service, error) {
	return c.repo.GetByID(ctx, id)
}

func (c *catalog) Create(ctx context.Context, svc Service) (*Service, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("name", svc.Name),
	)
	log.Info("Create started")

	svc.Name = strings.TrimSpace(svc.Name)
	if err := validate(svc); err != nil {
		log.Warn("invalid shipping service", zap.Error(err))
		return nil, err
	}

	created, err := c.repo.Create(ctx, svc)
	if err != nil {
		log.Error("failed to create shipping service", zap.Error(err))
		return nil, err
	}

	log.Info("Create success", zap.String("service_id", created.ID))
	return created, nil
}

func (c *catalog) Update(ctx context.Context, id string, input UpdateService) (*Service, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.String("service_id", id),
	)
	log.Info("Update started")

	if !input.HasAnyField() {
		return nil, ErrNoFieldsToUpdate
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		input.Name = &name
	}

	updated, err := c.repo.Mutate(ctx, id, func(svc *Service) error {
		next := merge(*svc, input)
		if err := validate(next); err != nil {
			return err
		}
		*svc = next
		return nil
	})
	if err != nil {
		log.Warn("failed to update shipping service", zap.Error(err))
		return nil, err
	}

	log.Info("Update success")
	return updated, nil
}

func merge(svc Service, u UpdateService) Service {
	if u.Name != nil {
		svc.Name = *u.Name
	}
	if u.Description != nil {
		svc.Description = *u.Description
	}
	if u.PricePerKg != nil {
		svc.PricePerKg = *u.PricePerKg
	}
	if u.DeliveryTime != nil {
		svc.DeliveryTime = *u.DeliveryTime
	}
	if u.Coverage != nil {
		svc.Coverage = *u.Coverage
	}
	if u.Rating != nil {
		svc.Rating = u.Rating
	}
	if u.Verified != nil {
		svc.Verified = u.Verified
	}
	if u.Provider != nil {
		svc.Provider = *u.Provider
	}
	if u.Category != nil {
		svc.Category = *u.Category
	}
	return svc
}

func (c *catalog) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Delete"),
		zap.String("service_id", id),
	)
	log.Info("Delete started")

	if err := c.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete shipping service", zap.Error(err))
		return err
	}

	log.Info("Delete success")
	return nil
}

func (c *catalog) Quote(ctx context.Context, id string, weightKg float64) (*Quote, error) {
	if weightKg <= 0 || math.IsNaN(weightKg) || math.IsInf(weightKg, 0) {
		return nil, ErrInvalidWeight
	}

	svc, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Quote{
		ServiceID:  svc.ID,
		WeightKg:   weightKg,
		PricePerKg: svc.PricePerKg,
		// rounded to halalas
		Total: math.Round(svc.PricePerKg*weightKg*100) / 100,
	}, nil
}
