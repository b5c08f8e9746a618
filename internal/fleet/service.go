package fleet

import (
	"context"
	"strings"
	"time"

	"souq-be/internal/logger"
	"souq-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	ListDrivers(ctx context.Context) ([]Driver, error)
	GetDriver(ctx context.Context, id string) (*Driver, error)
	CreateDriver(ctx context.Context, d Driver) (*Driver, error)
	UpdateDriver(ctx context.Context, id string, input UpdateDriver) (*Driver, error)
	DeleteDriver(ctx context.Context, id string) error

	ListVehicles(ctx context.Context) ([]Vehicle, error)
	GetVehicle(ctx context.Context, id string) (*Vehicle, error)
	CreateVehicle(ctx context.Context, v Vehicle) (*Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, input UpdateVehicle) (*Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error

	ListShipments(ctx context.Context) ([]Shipment, error)
	GetShipment(ctx context.Context, id string) (*Shipment, error)
	CreateShipment(ctx context.Context, sh Shipment) (*Shipment, error)
	UpdateShipment(ctx context.Context, id string, input UpdateShipment) (*Shipment, error)
	DeleteShipment(ctx context.Context, id string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func serviceLog(ctx context.Context, method string) *zap.Logger {
	return logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", method),
	)
}

// --- drivers ---

func validDriver(d Driver) error {
	if strings.TrimSpace(d.Name) == "" || !d.Status.Valid() {
		return ErrInvalidDriver
	}
	return nil
}

func (s *service) ListDrivers(ctx context.Context) ([]Driver, error) {
	return s.repo.Drivers(ctx)
}

func (s *service) GetDriver(ctx context.Context, id string) (*Driver, error) {
	return s.repo.Driver(ctx, id)
}

func (s *service) CreateDriver(ctx context.Context, d Driver) (*Driver, error) {
	log := serviceLog(ctx, "CreateDriver")

	if d.Status == "" {
		d.Status = DriverAvailable
	}
	if err := validDriver(d); err != nil {
		return nil, err
	}
	created, err := s.repo.AddDriver(ctx, d)
	if err != nil {
		log.Error("failed to create driver", zap.Error(err))
		return nil, err
	}

	log.Info("CreateDriver success", zap.String("driver_id", created.ID))
	return created, nil
}

func (s *service) UpdateDriver(ctx context.Context, id string, input UpdateDriver) (*Driver, error) {
	updated, err := s.repo.MutateDriver(ctx, id, func(d *Driver) error {
		next := *d
		if input.Name != nil {
			next.Name = *input.Name
		}
		if input.Phone != nil {
			next.Phone = *input.Phone
		}
		if input.LicenseNumber != nil {
			next.LicenseNumber = *input.LicenseNumber
		}
		if input.Status != nil {
			next.Status = *input.Status
		}
		if err := validDriver(next); err != nil {
			return err
		}
		*d = next
		return nil
	})
	if err != nil {
		serviceLog(ctx, "UpdateDriver").Warn("driver not updated", zap.String("driver_id", id), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (s *service) DeleteDriver(ctx context.Context, id string) error {
	return s.repo.RemoveDriver(ctx, id)
}

// --- vehicles ---

func validVehicle(v Vehicle) error {
	if strings.TrimSpace(v.PlateNumber) == "" || v.CapacityKg < 0 || !v.Status.Valid() {
		return ErrInvalidVehicle
	}
	return nil
}

func (s *service) ListVehicles(ctx context.Context) ([]Vehicle, error) {
	return s.repo.Vehicles(ctx)
}

func (s *service) GetVehicle(ctx context.Context, id string) (*Vehicle, error) {
	return s.repo.Vehicle(ctx, id)
}

func (s *service) CreateVehicle(ctx context.Context, v Vehicle) (*Vehicle, error) {
	log := serviceLog(ctx, "CreateVehicle")

	v.PlateNumber = strings.ToUpper(strings.TrimSpace(v.PlateNumber))
	if v.Status == "" {
		v.Status = VehicleActive
	}
	v.DriverID = optionalID(v.DriverID)
	if err := validVehicle(v); err != nil {
		return nil, err
	}
	created, err := s.repo.AddVehicle(ctx, v)
	if err != nil {
		log.Error("failed to create vehicle", zap.Error(err))
		return nil, err
	}

	log.Info("CreateVehicle success", zap.String("vehicle_id", created.ID))
	return created, nil
}

func (s *service) UpdateVehicle(ctx context.Context, id string, input UpdateVehicle) (*Vehicle, error) {
	updated, err := s.repo.MutateVehicle(ctx, id, func(v *Vehicle) error {
		next := *v
		if input.PlateNumber != nil {
			next.PlateNumber = strings.ToUpper(strings.TrimSpace(*input.PlateNumber))
		}
		if input.Model != nil {
			next.Model = *input.Model
		}
		if input.CapacityKg != nil {
			next.CapacityKg = *input.CapacityKg
		}
		if input.Status != nil {
			next.Status = *input.Status
		}
		if input.DriverID != nil {
			next.DriverID = optionalID(input.DriverID)
		}
		if err := validVehicle(next); err != nil {
			return err
		}
		*v = next
		return nil
	})
	if err != nil {
		serviceLog(ctx, "UpdateVehicle").Warn("vehicle not updated", zap.String("vehicle_id", id), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (s *service) DeleteVehicle(ctx context.Context, id string) error {
	return s.repo.RemoveVehicle(ctx, id)
}

// --- shipments ---

func validShipment(sh Shipment) error {
	if strings.TrimSpace(sh.Origin) == "" || strings.TrimSpace(sh.Destination) == "" ||
		sh.WeightKg < 0 || !sh.Status.Valid() {
		return ErrInvalidShipment
	}
	return nil
}

// trackingNumber looks like TRK-LZ8K3J2A-1F2E3D4C.
func (s *service) trackingNumber() string {
	return strings.ToUpper(utils.GenerateID("TRK", s.now()))
}

func (s *service) ListShipments(ctx context.Context) ([]Shipment, error) {
	return s.repo.Shipments(ctx)
}

func (s *service) GetShipment(ctx context.Context, id string) (*Shipment, error) {
	return s.repo.Shipment(ctx, id)
}

func (s *service) CreateShipment(ctx context.Context, sh Shipment) (*Shipment, error) {
	log := serviceLog(ctx, "CreateShipment")

	if strings.TrimSpace(sh.TrackingNumber) == "" {
		sh.TrackingNumber = s.trackingNumber()
	}
	if sh.Status == "" {
		sh.Status = ShipmentPending
	}
	sh.DriverID = optionalID(sh.DriverID)
	sh.VehicleID = optionalID(sh.VehicleID)
	if err := validShipment(sh); err != nil {
		return nil, err
	}
	created, err := s.repo.AddShipment(ctx, sh)
	if err != nil {
		log.Error("failed to create shipment", zap.Error(err))
		return nil, err
	}

	log.Info("CreateShipment success",
		zap.String("shipment_id", created.ID),
		zap.String("tracking_number", created.TrackingNumber),
	)
	return created, nil
}

func (s *service) UpdateShipment(ctx context.Context, id string, input UpdateShipment) (*Shipment, error) {
	updated, err := s.repo.MutateShipment(ctx, id, func(sh *Shipment) error {
		next := *sh
		if input.Customer != nil {
			next.Customer = *input.Customer
		}
		if input.Origin != nil {
			next.Origin = *input.Origin
		}
		if input.Destination != nil {
			next.Destination = *input.Destination
		}
		if input.WeightKg != nil {
			next.WeightKg = *input.WeightKg
		}
		if input.Status != nil {
			next.Status = *input.Status
		}
		if input.DriverID != nil {
			next.DriverID = optionalID(input.DriverID)
		}
		if input.VehicleID != nil {
			next.VehicleID = optionalID(input.VehicleID)
		}
		if err := validShipment(next); err != nil {
			return err
		}
		*sh = next
		return nil
	})
	if err != nil {
		serviceLog(ctx, "UpdateShipment").Warn("shipment not updated", zap.String("shipment_id", id), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (s *service) DeleteShipment(ctx context.Context, id string) error {
	return s.repo.RemoveShipment(ctx, id)
}

// optionalID turns a blank reference into nil. An update passing "" clears
// the reference.
func optionalID(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
