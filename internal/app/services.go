// Package app wires the entity repositories and services over one store.
package app

import (
	"souq-be/internal/fleet"
	"souq-be/internal/market"
	"souq-be/internal/order"
	"souq-be/internal/partner"
	"souq-be/internal/preference"
	"souq-be/internal/product"
	"souq-be/internal/shipping"
	"souq-be/internal/store"
)

type Services struct {
	Products    product.Service
	Market      market.Service
	Orders      order.Service
	Shipping    shipping.Catalog
	Partners    partner.Service
	Fleet       fleet.Service
	Preferences preference.Service
}

func NewServices(s *store.Store) Services {
	listings := market.NewRepository(s)
	return Services{
		Products:    product.NewService(product.NewRepository(s)),
		Market:      market.NewService(listings),
		Orders:      order.NewService(order.NewRepository(s), listings),
		Shipping:    shipping.NewCatalog(shipping.NewRepository(s)),
		Partners:    partner.NewService(partner.NewRepository(s)),
		Fleet:       fleet.NewService(fleet.NewRepository(s)),
		Preferences: preference.NewService(s),
	}
}
