package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"souq-be/internal/logger"
	"souq-be/internal/market"
	"souq-be/internal/product"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input CreateInput) (*MerchantOrder, error)
	Get(ctx context.Context, id string) (*MerchantOrder, error)
	List(ctx context.Context, opts ListOptions) ([]MerchantOrder, error)
	Update(ctx context.Context, id string, input UpdateInput) (*MerchantOrder, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, to Status) (*MerchantOrder, error)
	AssignShipping(ctx context.Context, id string, serviceID *string) (*MerchantOrder, error)
	// Publish mirrors the order into the marketplace. A second call for the
	// same order returns the existing listing with ErrAlreadyPublished.
	Publish(ctx context.Context, id string) (*market.Item, error)
	IsPublished(ctx context.Context, id string) (bool, error)
}

type service struct {
	repo     Repository
	listings market.Repository
	now      func() time.Time
}

func NewService(repo Repository, listings market.Repository) Service {
	return &service{repo: repo, listings: listings, now: time.Now}
}

func (s *service) Create(ctx context.Context, input CreateInput) (*MerchantOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("merchant_id", input.Merchant.ID),
	)
	log.Info("Create started")

	o := MerchantOrder{
		Title:             strings.TrimSpace(input.Title),
		Description:       input.Description,
		Category:          input.Category,
		Budget:            input.Budget,
		Deadline:          input.Deadline,
		Status:            StatusOpen,
		Merchant:          input.Merchant,
		Products:          input.Products,
		ShippingServiceID: normalizeServiceID(input.ShippingServiceID),
	}
	if err := validate(o); err != nil {
		log.Warn("invalid merchant order", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Create(ctx, o)
	if err != nil {
		log.Error("failed to create merchant order", zap.Error(err))
		return nil, err
	}

	log.Info("Create success", zap.String("order_id", created.ID))
	return created, nil
}

func (s *service) Get(ctx context.Context, id string) (*MerchantOrder, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]MerchantOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
	)

	all, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error("failed to get merchant orders", zap.Error(err))
		return nil, err
	}

	res := make([]MerchantOrder, 0, len(all))
	for _, o := range all {
		if opts.Status != "" && o.Status != opts.Status {
			continue
		}
		if opts.MerchantID != "" && o.Merchant.ID != opts.MerchantID {
			continue
		}
		if opts.Published != nil && (o.PublishedAt != nil) != *opts.Published {
			continue
		}
		res = append(res, o)
	}

	log.Debug("List success", zap.Int("count", len(res)))
	return res, nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateInput) (*MerchantOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.String("order_id", id),
	)
	log.Info("Update started")

	if !input.HasAnyField() {
		return nil, ErrNoFieldsToUpdate
	}

	updated, err := s.repo.Mutate(ctx, id, func(o *MerchantOrder) error {
		next := *o
		input.apply(&next)
		if err := validate(next); err != nil {
			return err
		}
		*o = next
		return nil
	})
	if err != nil {
		log.Error("failed to update merchant order", zap.Error(err))
		return nil, err
	}

	log.Info("Update success")
	return updated, nil
}

// Delete removes the order only. A listing published from it stays in the
// marketplace.
func (s *service) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Delete"),
		zap.String("order_id", id),
	)
	log.Info("Delete started")

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete merchant order", zap.Error(err))
		return err
	}

	log.Info("Delete success")
	return nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, to Status) (*MerchantOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", id),
		zap.String("to", string(to)),
	)
	log.Info("UpdateStatus started")

	if !to.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}

	updated, err := s.repo.Mutate(ctx, id, func(o *MerchantOrder) error {
		if !o.Status.CanTransition(to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
		}
		o.Status = to
		return nil
	})
	if err != nil {
		log.Warn("status not updated", zap.Error(err))
		return nil, err
	}

	log.Info("UpdateStatus success")
	return updated, nil
}

// AssignShipping sets or clears the shipping service. The id is not checked
// against the shipping collection.
func (s *service) AssignShipping(ctx context.Context, id string, serviceID *string) (*MerchantOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AssignShipping"),
		zap.String("order_id", id),
	)

	serviceID = normalizeServiceID(serviceID)
	updated, err := s.repo.Mutate(ctx, id, func(o *MerchantOrder) error {
		o.ShippingServiceID = serviceID
		return nil
	})
	if err != nil {
		log.Error("failed to assign shipping", zap.Error(err))
		return nil, err
	}

	log.Info("AssignShipping success", zap.Bool("assigned", serviceID != nil))
	return updated, nil
}

func (s *service) Publish(ctx context.Context, id string) (*market.Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Publish"),
		zap.String("order_id", id),
	)
	log.Info("Publish started")

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Warn("order not found", zap.Error(err))
		return nil, err
	}

	if itemID, ok, err := s.repo.PublishedItemID(ctx, id); err != nil {
		log.Error("failed to read published index", zap.Error(err))
		return nil, err
	} else if ok {
		log.Info("order already published", zap.String("item_id", itemID))
		return s.existingListing(ctx, itemID)
	}

	if o.Status.Terminal() {
		return nil, fmt.Errorf("%w: %s", ErrOrderClosed, o.Status)
	}

	listing := listingFor(*o)
	if err := market.Validate(listing); err != nil {
		log.Warn("order cannot be listed", zap.Error(err))
		return nil, err
	}

	created, err := s.listings.Create(ctx, listing)
	if err != nil {
		log.Error("failed to create listing", zap.Error(err))
		return nil, err
	}
	log = log.With(zap.String("item_id", created.ID))

	if existing, err := s.repo.RecordPublished(ctx, id, created.ID); err != nil {
		s.discardListing(ctx, log, created.ID)
		if errors.Is(err, ErrAlreadyPublished) {
			log.Info("order published concurrently", zap.String("existing_item_id", existing))
			return s.existingListing(ctx, existing)
		}
		log.Error("failed to record published order", zap.Error(err))
		return nil, err
	}

	publishedAt := s.now().UTC()
	_, err = s.repo.Mutate(ctx, id, func(o *MerchantOrder) error {
		o.PublishedAt = &publishedAt
		return nil
	})
	if err != nil {
		log.Error("failed to stamp published order", zap.Error(err))
		if ferr := s.repo.ForgetPublished(ctx, id); ferr != nil {
			log.Error("failed to roll back published index", zap.Error(ferr))
		}
		s.discardListing(ctx, log, created.ID)
		return nil, err
	}

	log.Info("Publish success")
	return created, nil
}

func (s *service) IsPublished(ctx context.Context, id string) (bool, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return false, err
	}
	_, ok, err := s.repo.PublishedItemID(ctx, id)
	return ok, err
}

// existingListing returns the listing already published for an order. The
// listing may have been deleted since, in which case only the error is
// returned.
func (s *service) existingListing(ctx context.Context, itemID string) (*market.Item, error) {
	item, err := s.listings.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, market.ErrItemNotFound) {
			return nil, ErrAlreadyPublished
		}
		return nil, err
	}
	return item, ErrAlreadyPublished
}

func (s *service) discardListing(ctx context.Context, log *zap.Logger, itemID string) {
	if err := s.listings.Delete(ctx, itemID); err != nil {
		log.Error("failed to remove orphan listing", zap.Error(err))
	}
}

func listingFor(o MerchantOrder) market.Item {
	stock := Quantity(o)
	if stock == 0 {
		stock = 1
	}
	return market.Item{
		Product: product.Product{
			Name:        o.Title,
			Price:       o.Budget,
			Stock:       stock,
			Category:    o.Category,
			Description: o.Description,
			Status:      product.StatusActive,
		},
		Type:          market.TypeOffer,
		Provider:      o.Merchant.AsProvider(),
		SourceOrderID: o.ID,
	}
}

func normalizeServiceID(id *string) *string {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	return &trimmed
}
