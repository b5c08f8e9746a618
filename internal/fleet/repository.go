package fleet

import (
	"context"
	"errors"

	"souq-be/internal/events"
	"souq-be/internal/store"
)

const (
	DriversCollection  = "drivers"
	VehiclesCollection = "vehicles"
	// ShipmentsCollection keeps the key the first tracking screens used.
	ShipmentsCollection = "orders"
)

type Repository interface {
	Drivers(ctx context.Context) ([]Driver, error)
	Driver(ctx context.Context, id string) (*Driver, error)
	AddDriver(ctx context.Context, d Driver) (*Driver, error)
	MutateDriver(ctx context.Context, id string, fn func(*Driver) error) (*Driver, error)
	RemoveDriver(ctx context.Context, id string) error

	Vehicles(ctx context.Context) ([]Vehicle, error)
	Vehicle(ctx context.Context, id string) (*Vehicle, error)
	AddVehicle(ctx context.Context, v Vehicle) (*Vehicle, error)
	MutateVehicle(ctx context.Context, id string, fn func(*Vehicle) error) (*Vehicle, error)
	RemoveVehicle(ctx context.Context, id string) error

	Shipments(ctx context.Context) ([]Shipment, error)
	Shipment(ctx context.Context, id string) (*Shipment, error)
	AddShipment(ctx context.Context, sh Shipment) (*Shipment, error)
	MutateShipment(ctx context.Context, id string, fn func(*Shipment) error) (*Shipment, error)
	RemoveShipment(ctx context.Context, id string) error
}

type repository struct {
	drivers   *store.Collection[Driver, *Driver]
	vehicles  *store.Collection[Vehicle, *Vehicle]
	shipments *store.Collection[Shipment, *Shipment]
}

func NewRepository(s *store.Store) Repository {
	return &repository{
		drivers: store.NewCollection[Driver](s, store.CollectionConfig{
			Name: DriversCollection, Topic: events.TopicFleet, IDPrefix: "drv",
		}),
		vehicles: store.NewCollection[Vehicle](s, store.CollectionConfig{
			Name: VehiclesCollection, Topic: events.TopicFleet, IDPrefix: "veh",
		}),
		shipments: store.NewCollection[Shipment](s, store.CollectionConfig{
			Name: ShipmentsCollection, Topic: events.TopicFleet, IDPrefix: "ord",
		}),
	}
}

func notFound(err, target error) error {
	if errors.Is(err, store.ErrNotFound) {
		return target
	}
	return err
}

func removed(ok bool, err, target error) error {
	if err != nil {
		return err
	}
	if !ok {
		return target
	}
	return nil
}

// --- drivers ---

func (r *repository) Drivers(ctx context.Context) ([]Driver, error) {
	return r.drivers.GetAll(ctx)
}

func (r *repository) Driver(ctx context.Context, id string) (*Driver, error) {
	d, err := r.drivers.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrDriverNotFound)
	}
	return &d, nil
}

func (r *repository) AddDriver(ctx context.Context, d Driver) (*Driver, error) {
	created, err := r.drivers.Add(ctx, d)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) MutateDriver(ctx context.Context, id string, fn func(*Driver) error) (*Driver, error) {
	d, err := r.drivers.Mutate(ctx, id, fn)
	if err != nil {
		return nil, notFound(err, ErrDriverNotFound)
	}
	return &d, nil
}

func (r *repository) RemoveDriver(ctx context.Context, id string) error {
	ok, err := r.drivers.Delete(ctx, id)
	return removed(ok, err, ErrDriverNotFound)
}

// --- vehicles ---

func (r *repository) Vehicles(ctx context.Context) ([]Vehicle, error) {
	return r.vehicles.GetAll(ctx)
}

func (r *repository) Vehicle(ctx context.Context, id string) (*Vehicle, error) {
	v, err := r.vehicles.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrVehicleNotFound)
	}
	return &v, nil
}

func (r *repository) AddVehicle(ctx context.Context, v Vehicle) (*Vehicle, error) {
	created, err := r.vehicles.Add(ctx, v)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) MutateVehicle(ctx context.Context, id string, fn func(*Vehicle) error) (*Vehicle, error) {
	v, err := r.vehicles.Mutate(ctx, id, fn)
	if err != nil {
		return nil, notFound(err, ErrVehicleNotFound)
	}
	return &v, nil
}

func (r *repository) RemoveVehicle(ctx context.Context, id string) error {
	ok, err := r.vehicles.Delete(ctx, id)
	return removed(ok, err, ErrVehicleNotFound)
}

// --- shipments ---

func (r *repository) Shipments(ctx context.Context) ([]Shipment, error) {
	return r.shipments.GetAll(ctx)
}

func (r *repository) Shipment(ctx context.Context, id string) (*Shipment, error) {
	sh, err := r.shipments.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrShipmentNotFound)
	}
	return &sh, nil
}

func (r *repository) AddShipment(ctx context.Context, sh Shipment) (*Shipment, error) {
	created, err := r.shipments.Add(ctx, sh)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) MutateShipment(ctx context.Context, id string, fn func(*Shipment) error) (*Shipment, error) {
	sh, err := r.shipments.Mutate(ctx, id, fn)
	if err != nil {
		return nil, notFound(err, ErrShipmentNotFound)
	}
	return &sh, nil
}

func (r *repository) RemoveShipment(ctx context.Context, id string) error {
	ok, err := r.shipments.Delete(ctx, id)
	return removed(ok, err, ErrShipmentNotFound)
}
