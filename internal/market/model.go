package market

import (
	"fmt"
	"strings"

	"souq-be/internal/party"
	"souq-be/internal/product"
)

type ItemType string

const (
	TypeProduct ItemType = "product"
	TypeService ItemType = "service"
	TypeOffer   ItemType = "offer"
)

func (t ItemType) Valid() bool {
	switch t {
	case TypeProduct, TypeService, TypeOffer:
		return true
	}
	return false
}

func ParseItemType(s string) (ItemType, error) {
	t := ItemType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidItemType, s)
	}
	return t, nil
}

// Item is a listing in the shared marketplace. It carries every product
// field plus who offers it. SourceOrderID is set on listings published from
// a merchant order.
type Item struct {
	product.Product
	Type          ItemType       `json:"type"`
	Provider      party.Provider `json:"provider"`
	SourceOrderID string         `json:"sourceOrderId,omitempty"`
}

type UpdateItem struct {
	product.UpdateProduct
	Type     *ItemType       `json:"type,omitempty"`
	Provider *party.Provider `json:"provider,omitempty"`
}

func (u UpdateItem) HasAnyField() bool {
	return u.UpdateProduct.HasAnyField() || u.Type != nil || u.Provider != nil
}

func (u UpdateItem) Apply(it Item) Item {
	it.Product = u.UpdateProduct.Apply(it.Product)
	if u.Type != nil {
		it.Type = *u.Type
	}
	if u.Provider != nil {
		it.Provider = *u.Provider
	}
	return it
}

type SortField string

const (
	SortNatural   SortField = ""
	SortNewest    SortField = "newest"
	SortPriceAsc  SortField = "price_asc"
	SortPriceDesc SortField = "price_desc"
	SortRating    SortField = "rating"
)

type ListOptions struct {
	Type         ItemType
	Category     string
	ProviderRole party.Role
	ProviderID   string
	Search       string
	MinPrice     *float64
	MaxPrice     *float64
	Sort         SortField
}
