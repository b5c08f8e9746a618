package partner

import (
	"strings"

	"souq-be/internal/store"
)

type Type string

const (
	TypeRetailer        Type = "retailer"
	TypeSupplier        Type = "supplier"
	TypeShippingCompany Type = "shipping_company"
)

// legacyLabels maps the Arabic labels older records were saved with.
var legacyLabels = map[string]Type{
	"تاجر تجزئة": TypeRetailer,
	"مورد":       TypeSupplier,
	"شركة شحن":   TypeShippingCompany,
}

func (t Type) Valid() bool {
	switch t {
	case TypeRetailer, TypeSupplier, TypeShippingCompany:
		return true
	}
	return false
}

// NormalizeType maps a stored type to its canonical code. Canonical codes
// (in any case) and the legacy labels normalize; anything else is returned
// unchanged. NormalizeType(NormalizeType(s)) == NormalizeType(s).
func NormalizeType(s string) Type {
	trimmed := strings.TrimSpace(s)
	if t := Type(strings.ToLower(trimmed)); t.Valid() {
		return t
	}
	if t, ok := legacyLabels[trimmed]; ok {
		return t
	}
	return Type(s)
}

type Partner struct {
	store.Meta
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Type     Type   `json:"type"`
	City     string `json:"city"`
	Category string `json:"category"`
}

type UpdatePartner struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Type     *Type   `json:"type,omitempty"`
	City     *string `json:"city,omitempty"`
	Category *string `json:"category,omitempty"`
}

func (u UpdatePartner) HasAnyField() bool {
	return u.Name != nil ||
		u.Email != nil ||
		u.Phone != nil ||
		u.Type != nil ||
		u.City != nil ||
		u.Category != nil
}

type ListOptions struct {
	Type   Type
	City   string
	Search string
}
