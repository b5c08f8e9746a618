package order

import (
	"errors"
	"fmt"

	"souq-be/internal/store"
	"souq-be/internal/utils"
)

var (
	ErrOrderNotFound = fmt.Errorf("merchant order: %w", store.ErrNotFound)

	ErrInvalidTitle     = fmt.Errorf("%w: title cannot be empty", utils.ErrInvalidInput)
	ErrInvalidBudget    = fmt.Errorf("%w: budget cannot be negative", utils.ErrInvalidInput)
	ErrInvalidStatus    = fmt.Errorf("%w: unknown order status", utils.ErrInvalidInput)
	ErrInvalidMerchant  = fmt.Errorf("%w: merchant id and name are required", utils.ErrInvalidInput)
	ErrInvalidLineItem  = fmt.Errorf("%w: line items need a name, a non-negative price and a positive quantity", utils.ErrInvalidInput)
	ErrInvalidDeadline  = fmt.Errorf("%w: deadline must be YYYY-MM-DD", utils.ErrInvalidInput)
	ErrNoFieldsToUpdate = fmt.Errorf("%w: no fields to update", utils.ErrInvalidInput)

	ErrInvalidTransition = errors.New("invalid status transition")
	ErrOrderClosed       = errors.New("order is closed")
	ErrAlreadyPublished  = errors.New("order already published")
)
