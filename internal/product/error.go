package product

import (
	"errors"
	"fmt"

	"souq-be/internal/store"
	"souq-be/internal/utils"
)

var (
	ErrProductNotFound = fmt.Errorf("product: %w", store.ErrNotFound)

	ErrInvalidName       = fmt.Errorf("%w: name cannot be empty", utils.ErrInvalidInput)
	ErrInvalidPrice      = fmt.Errorf("%w: price cannot be negative", utils.ErrInvalidInput)
	ErrInvalidStock      = fmt.Errorf("%w: stock cannot be negative", utils.ErrInvalidInput)
	ErrInvalidStatus     = fmt.Errorf("%w: status must be active, inactive or draft", utils.ErrInvalidInput)
	ErrInvalidWeight     = fmt.Errorf("%w: weight cannot be negative", utils.ErrInvalidInput)
	ErrNoFieldsToUpdate  = fmt.Errorf("%w: no fields to update", utils.ErrInvalidInput)
	ErrInsufficientStock = errors.New("insufficient stock")
)
