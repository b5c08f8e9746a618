package product

import "strings"

// Validate checks the fields shared by products and market items.
func Validate(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrInvalidStock
	}
	if p.Weight < 0 {
		return ErrInvalidWeight
	}
	if !p.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}
