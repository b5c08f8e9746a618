package fleet

import (
	"fmt"

	"souq-be/internal/store"
	"souq-be/internal/utils"
)

var (
	ErrDriverNotFound   = fmt.Errorf("driver: %w", store.ErrNotFound)
	ErrVehicleNotFound  = fmt.Errorf("vehicle: %w", store.ErrNotFound)
	ErrShipmentNotFound = fmt.Errorf("shipment: %w", store.ErrNotFound)

	ErrInvalidDriver   = fmt.Errorf("%w: driver needs a name and a known status", utils.ErrInvalidInput)
	ErrInvalidVehicle  = fmt.Errorf("%w: vehicle needs a plate number, a non-negative capacity and a known status", utils.ErrInvalidInput)
	ErrInvalidShipment = fmt.Errorf("%w: shipment needs an origin, a destination, a non-negative weight and a known status", utils.ErrInvalidInput)
)
