package order

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const deadlineLayout = "2006-01-02"

func validate(o MerchantOrder) error {
	if strings.TrimSpace(o.Title) == "" {
		return ErrInvalidTitle
	}
	if o.Budget < 0 {
		return ErrInvalidBudget
	}
	if strings.TrimSpace(o.Merchant.ID) == "" || strings.TrimSpace(o.Merchant.Name) == "" {
		return ErrInvalidMerchant
	}
	if r := o.Merchant.Rating; r != nil && (math.IsNaN(*r) || *r < 0 || *r > 5) {
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrInvalidMerchant)
	}
	if o.Deadline != "" {
		if _, err := time.Parse(deadlineLayout, o.Deadline); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDeadline, o.Deadline)
		}
	}
	for i, p := range o.Products {
		if strings.TrimSpace(p.Name) == "" || p.Price < 0 || p.Quantity <= 0 {
			return fmt.Errorf("%w: item %d", ErrInvalidLineItem, i)
		}
	}
	return nil
}
