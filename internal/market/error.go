package market

import (
	"fmt"

	"souq-be/internal/store"
	"souq-be/internal/utils"
)

var (
	ErrItemNotFound = fmt.Errorf("market item: %w", store.ErrNotFound)

	ErrInvalidItemType  = fmt.Errorf("%w: type must be product, service or offer", utils.ErrInvalidInput)
	ErrInvalidProvider  = fmt.Errorf("%w: provider", utils.ErrInvalidInput)
	ErrInvalidPrice     = fmt.Errorf("%w: price range", utils.ErrInvalidInput)
	ErrNoFieldsToUpdate = fmt.Errorf("%w: no fields to update", utils.ErrInvalidInput)
)
