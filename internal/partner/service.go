package partner

import (
	"context"
	"errors"
	"strings"

	"souq-be/internal/logger"
	"souq-be/internal/store"
	"souq-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, opts ListOptions) ([]Partner, error)
	Get(ctx context.Context, id string) (*Partner, error)
	Create(ctx context.Context, p Partner) (*Partner, error)
	Update(ctx context.Context, id string, input UpdatePartner) (*Partner, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// all reads the normalized collection. A failed write-back is logged and
// the normalized view is still served.
func (s *service) all(ctx context.Context, log *zap.Logger) ([]Partner, error) {
	partners, err := s.repo.Normalize(ctx)
	if err != nil {
		if partners != nil && errors.Is(err, store.ErrWriteFailed) {
			log.Warn("partner type write-back failed", zap.Error(err))
			return partners, nil
		}
		log.Error("failed to get partners", zap.Error(err))
		return nil, err
	}
	return partners, nil
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]Partner, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
	)

	partners, err := s.all(ctx, log)
	if err != nil {
		return nil, err
	}

	filterType := NormalizeType(string(opts.Type))
	res := make([]Partner, 0, len(partners))
	for _, p := range partners {
		if opts.Type != "" && p.Type != filterType {
			continue
		}
		if opts.City != "" && !strings.EqualFold(strings.TrimSpace(p.City), strings.TrimSpace(opts.City)) {
			continue
		}
		if !utils.ContainsFold(opts.Search, p.Name, p.Email, p.Phone, p.City, p.Category) {
			continue
		}
		res = append(res, p)
	}

	log.Debug("List success", zap.Int("count", len(res)))
	return res, nil
}

func (s *service) Get(ctx context.Context, id string) (*Partner, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Get"),
		zap.String("partner_id", id),
	)

	partners, err := s.all(ctx, log)
	if err != nil {
		return nil, err
	}
	for i := range partners {
		if partners[i].ID == id {
			return &partners[i], nil
		}
	}
	return nil, ErrPartnerNotFound
}

func (s *service) Create(ctx context.Context, p Partner) (*Partner, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("name", p.Name),
	)
	log.Info("Create started")

	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Type = NormalizeType(string(p.Type))

	if p.Name == "" {
		return nil, ErrInvalidName
	}
	if !p.Type.Valid() {
		log.Warn("unknown partner type", zap.String("type", string(p.Type)))
		return nil, ErrInvalidPartnerType
	}

	created, err := s.repo.CreateUnique(ctx, p)
	if err != nil {
		if errors.Is(err, ErrDuplicatePartner) {
			log.Info("duplicate partner rejected", zap.Error(err))
			return nil, err
		}
		log.Error("failed to create partner", zap.Error(err))
		return nil, err
	}

	log.Info("Create success", zap.String("partner_id", created.ID))
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, input UpdatePartner) (*Partner, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.String("partner_id", id),
	)
	log.Info("Update started")

	if !input.HasAnyField() {
		return nil, ErrNoFieldsToUpdate
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidName
		}
		input.Name = &name
	}
	if input.Type != nil {
		t := NormalizeType(string(*input.Type))
		if !t.Valid() {
			return nil, ErrInvalidPartnerType
		}
		input.Type = &t
	}

	updated, err := s.repo.Update(ctx, id, input)
	if err != nil {
		log.Error("failed to update partner", zap.Error(err))
		return nil, err
	}
	updated.Type = NormalizeType(string(updated.Type))

	log.Info("Update success")
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Delete"),
		zap.String("partner_id", id),
	)
	log.Info("Delete started")

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete partner", zap.Error(err))
		return err
	}

	log.Info("Delete success")
	return nil
}
