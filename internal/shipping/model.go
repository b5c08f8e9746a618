package shipping

import (
	"souq-be/internal/party"
	"souq-be/internal/store"
)

// Service is a shipping offer by a shipping company. PricePerKg is in SAR.
type Service struct {
	store.Meta
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	PricePerKg   float64        `json:"pricePerKg"`
	DeliveryTime string         `json:"deliveryTime"`
	Coverage     string         `json:"coverage"`
	Rating       *float64       `json:"rating,omitempty"`
	Verified     *bool          `json:"verified,omitempty"`
	Provider     party.Provider `json:"provider"`
	Category     string         `json:"category"`
}

type UpdateService struct {
	Name         *string         `json:"name,omitempty"`
	Description  *string         `json:"description,omitempty"`
	PricePerKg   *float64        `json:"pricePerKg,omitempty"`
	DeliveryTime *string         `json:"deliveryTime,omitempty"`
	Coverage     *string         `json:"coverage,omitempty"`
	Rating       *float64        `json:"rating,omitempty"`
	Verified     *bool           `json:"verified,omitempty"`
	Provider     *party.Provider `json:"provider,omitempty"`
	Category     *string         `json:"category,omitempty"`
}

func (u UpdateService) HasAnyField() bool {
	return u.Name != nil ||
		u.Description != nil ||
		u.PricePerKg != nil ||
		u.DeliveryTime != nil ||
		u.Coverage != nil ||
		u.Rating != nil ||
		u.Verified != nil ||
		u.Provider != nil ||
		u.Category != nil
}

type SortField string

const (
	SortNatural  SortField = ""
	SortPriceAsc SortField = "price_asc"
	SortRating   SortField = "rating"
)

type ListOptions struct {
	Category   string
	ProviderID string
	Search     string
	Sort       SortField
}

// Quote is the price of shipping WeightKg with one service.
type Quote struct {
	ServiceID  string  `json:"serviceId"`
	WeightKg   float64 `json:"weightKg"`
	PricePerKg float64 `json:"pricePerKg"`
	Total      float64 `json:"total"`
}
