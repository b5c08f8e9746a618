package partner

import (
	"context"
	"errors"
	"fmt"

	"souq-be/internal/events"
	"souq-be/internal/store"
	"souq-be/internal/utils"
)

const CollectionName = "partners"

type Repository interface {
	// Normalize returns every partner with its type normalized, writing the
	// collection back when a stored type changed. When only the write-back
	// fails the normalized list is returned together with the error.
	Normalize(ctx context.Context) ([]Partner, error)
	// CreateUnique inserts p unless a duplicate exists.
	CreateUnique(ctx context.Context, p Partner) (*Partner, error)
	Update(ctx context.Context, id string, input UpdatePartner) (*Partner, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	partners *store.Collection[Partner, *Partner]
}

func NewRepository(s *store.Store) Repository {
	return &repository{
		partners: store.NewCollection[Partner](s, store.CollectionConfig{
			Name:     CollectionName,
			Topic:    events.TopicPartners,
			IDPrefix: "ptn",
		}),
	}
}

func (r *repository) Normalize(ctx context.Context) ([]Partner, error) {
	return r.partners.Rewrite(ctx, func(items []Partner) bool {
		changed := false
		for i := range items {
			if t := NormalizeType(string(items[i].Type)); t != items[i].Type {
				items[i].Type = t
				changed = true
			}
		}
		return changed
	})
}

func (r *repository) CreateUnique(ctx context.Context, p Partner) (*Partner, error) {
	created, err := r.partners.AddChecked(ctx, p, func(existing []Partner) error {
		if dup, field, ok := duplicateOf(p, existing); ok {
			return fmt.Errorf("%w: same %s as %s", ErrDuplicatePartner, field, dup.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) Update(ctx context.Context, id string, input UpdatePartner) (*Partner, error) {
	// Only the contact fields being changed are checked, so editing a city
	// never trips over an older duplicate.
	changed := Partner{
		Name:  utils.PtrString(input.Name),
		Email: utils.PtrString(input.Email),
		Phone: utils.PtrString(input.Phone),
	}
	updated, err := r.partners.UpdateChecked(ctx, id, input, func(_ Partner, others []Partner) error {
		if dup, field, ok := duplicateOf(changed, others); ok {
			return fmt.Errorf("%w: same %s as %s", ErrDuplicatePartner, field, dup.ID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	removed, err := r.partners.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrPartnerNotFound
	}
	return nil
}
