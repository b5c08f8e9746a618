// Package party defines the marketplace roles and the provider/merchant
// descriptors embedded in listings and orders.
package party

import (
	"errors"
	"fmt"
	"strings"

	"souq-be/internal/utils"
)

type Role string

const (
	RoleMerchant        Role = "merchant"
	RoleSupplier        Role = "supplier"
	RoleShippingCompany Role = "shipping_company"
)

var ErrInvalidRole = fmt.Errorf("%w: invalid role", utils.ErrInvalidInput)

func (r Role) Valid() bool {
	switch r {
	case RoleMerchant, RoleSupplier, RoleShippingCompany:
		return true
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// Provider identifies who offers a market item or shipping service.
type Provider struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Role     Role     `json:"type"`
	Rating   *float64 `json:"rating,omitempty"`
	Verified bool     `json:"verified"`
}

func (p Provider) Validate() error {
	if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Name) == "" {
		return errors.New("provider id and name are required")
	}
	if !p.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, p.Role)
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		return errors.New("provider rating must be between 0 and 5")
	}
	return nil
}

// Merchant is the owner of a merchant order.
type Merchant struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Rating   *float64 `json:"rating,omitempty"`
	Verified *bool    `json:"verified,omitempty"`
}

// AsProvider turns a merchant into the provider of a published listing.
func (m Merchant) AsProvider() Provider {
	p := Provider{ID: m.ID, Name: m.Name, Role: RoleMerchant, Rating: m.Rating}
	if m.Verified != nil {
		p.Verified = *m.Verified
	}
	return p
}
