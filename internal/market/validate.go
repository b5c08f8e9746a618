package market

import (
	"fmt"

	"souq-be/internal/product"
)

func Validate(it Item) error {
	if !it.Type.Valid() {
		return ErrInvalidItemType
	}
	if err := it.Provider.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProvider, err)
	}
	return product.Validate(it.Product)
}
