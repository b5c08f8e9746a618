package partner

import (
	"errors"
	"fmt"

	"souq-be/internal/store"
	"souq-be/internal/utils"
)

var (
	ErrPartnerNotFound = fmt.Errorf("partner: %w", store.ErrNotFound)

	ErrInvalidName        = fmt.Errorf("%w: name cannot be empty", utils.ErrInvalidInput)
	ErrInvalidPartnerType = fmt.Errorf("%w: type must be retailer, supplier or shipping_company", utils.ErrInvalidInput)
	ErrNoFieldsToUpdate   = fmt.Errorf("%w: no fields to update", utils.ErrInvalidInput)

	ErrDuplicatePartner = errors.New("partner already exists")
)
