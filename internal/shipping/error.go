package shipping

import (
	"fmt"

	"souq-be/internal/store"
	"souq-be/internal/utils"
)

var (
	ErrServiceNotFound = fmt.Errorf("shipping service: %w", store.ErrNotFound)

	ErrInvalidName       = fmt.Errorf("%w: name cannot be empty", utils.ErrInvalidInput)
	ErrInvalidPricePerKg = fmt.Errorf("%w: price per kg cannot be negative", utils.ErrInvalidInput)
	ErrInvalidProvider   = fmt.Errorf("%w: provider must be a shipping company", utils.ErrInvalidInput)
	ErrInvalidRating     = fmt.Errorf("%w: rating must be between 0 and 5", utils.ErrInvalidInput)
	ErrInvalidWeight     = fmt.Errorf("%w: weight must be positive", utils.ErrInvalidInput)
	ErrNoFieldsToUpdate  = fmt.Errorf("%w: no fields to update", utils.ErrInvalidInput)
)
