package product

import (
	"fmt"
	"strings"

	"souq-be/internal/store"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDraft    Status = "draft"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDraft:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// Product is a catalog entry owned by one seller. Price is in SAR.
type Product struct {
	store.Meta
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	SKU         string   `json:"sku"`
	Weight      float64  `json:"weight"`
	Dimensions  string   `json:"dimensions"`
	Status      Status   `json:"status"`
}

// UpdateProduct is a partial update; nil fields are left untouched.
type UpdateProduct struct {
	Name        *string   `json:"name,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Stock       *int      `json:"stock,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Description *string   `json:"description,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	SKU         *string   `json:"sku,omitempty"`
	Weight      *float64  `json:"weight,omitempty"`
	Dimensions  *string   `json:"dimensions,omitempty"`
	Status      *Status   `json:"status,omitempty"`
}

func (u UpdateProduct) HasAnyField() bool {
	return u.Name != nil ||
		u.Price != nil ||
		u.Stock != nil ||
		u.Category != nil ||
		u.Description != nil ||
		u.Images != nil ||
		u.SKU != nil ||
		u.Weight != nil ||
		u.Dimensions != nil ||
		u.Status != nil
}

// Apply returns p with the non-nil fields of u applied.
func (u UpdateProduct) Apply(p Product) Product {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Images != nil {
		p.Images = *u.Images
	}
	if u.SKU != nil {
		p.SKU = *u.SKU
	}
	if u.Weight != nil {
		p.Weight = *u.Weight
	}
	if u.Dimensions != nil {
		p.Dimensions = *u.Dimensions
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	return p
}

type SortField string

const (
	SortNatural   SortField = ""
	SortNewest    SortField = "newest"
	SortPriceAsc  SortField = "price_asc"
	SortPriceDesc SortField = "price_desc"
	SortName      SortField = "name"
)

type ListOptions struct {
	Category string
	Status   Status
	Search   string
	InStock  bool
	Sort     SortField
}
