package fleet

import (
	"context"
	"regexp"
	"testing"

	"souq-be/internal/events"
	"souq-be/internal/storage"
	"souq-be/internal/store"
	"souq-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, *store.Store) {
	t.Helper()
	s := store.New(storage.NewMemory(), events.NewBus())
	return NewService(NewRepository(s)), s
}

func TestDrivers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	d, err := svc.CreateDriver(ctx, Driver{Name: "Fahad", Phone: "0550000000"})
	require.NoError(t, err)
	assert.Equal(t, DriverAvailable, d.Status)

	_, err = svc.CreateDriver(ctx, Driver{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidDriver)

	onTrip := DriverOnTrip
	updated, err := svc.UpdateDriver(ctx, d.ID, UpdateDriver{Status: &onTrip})
	require.NoError(t, err)
	assert.Equal(t, DriverOnTrip, updated.Status)
	assert.Equal(t, "Fahad", updated.Name)

	bad := DriverStatus("sleeping")
	_, err = svc.UpdateDriver(ctx, d.ID, UpdateDriver{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidDriver)

	require.NoError(t, svc.DeleteDriver(ctx, d.ID))
	assert.ErrorIs(t, svc.DeleteDriver(ctx, d.ID), ErrDriverNotFound)
	_, err = svc.GetDriver(ctx, d.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestVehicles(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	v, err := svc.CreateVehicle(ctx, Vehicle{PlateNumber: " abc 1234 ", Model: "Hilux", CapacityKg: 900, DriverID: utils.Ptr("")})
	require.NoError(t, err)
	assert.Equal(t, "ABC 1234", v.PlateNumber)
	assert.Equal(t, VehicleActive, v.Status)
	assert.Nil(t, v.DriverID)

	// referenced driver does not have to exist
	updated, err := svc.UpdateVehicle(ctx, v.ID, UpdateVehicle{DriverID: utils.Ptr("drv-ghost")})
	require.NoError(t, err)
	require.NotNil(t, updated.DriverID)
	assert.Equal(t, "drv-ghost", *updated.DriverID)

	cleared, err := svc.UpdateVehicle(ctx, v.ID, UpdateVehicle{DriverID: utils.Ptr("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.DriverID)

	_, err = svc.UpdateVehicle(ctx, v.ID, UpdateVehicle{CapacityKg: utils.Ptr(-5.0)})
	assert.ErrorIs(t, err, ErrInvalidVehicle)

	all, err := svc.ListVehicles(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestShipments(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestService(t)

	var got []events.Event
	sub := s.Bus().Subscribe(func(e events.Event) { got = append(got, e) }, events.TopicFleet)
	defer sub.Close()

	sh, err := svc.CreateShipment(ctx, Shipment{Customer: "Noura", Origin: "Riyadh", Destination: "Jeddah", WeightKg: 12})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^TRK-[0-9A-Z]+-[0-9A-F]{8}$`), sh.TrackingNumber)
	assert.Equal(t, ShipmentPending, sh.Status)

	kept, err := svc.CreateShipment(ctx, Shipment{TrackingNumber: "LEGACY-1", Origin: "A", Destination: "B"})
	require.NoError(t, err)
	assert.Equal(t, "LEGACY-1", kept.TrackingNumber)

	_, err = svc.CreateShipment(ctx, Shipment{Origin: "A"})
	assert.ErrorIs(t, err, ErrInvalidShipment)

	delivered := ShipmentDelivered
	updated, err := svc.UpdateShipment(ctx, sh.ID, UpdateShipment{Status: &delivered})
	require.NoError(t, err)
	assert.Equal(t, ShipmentDelivered, updated.Status)
	assert.Equal(t, sh.TrackingNumber, updated.TrackingNumber)

	_, err = svc.UpdateShipment(ctx, "missing", UpdateShipment{Status: &delivered})
	assert.ErrorIs(t, err, ErrShipmentNotFound)

	raw, ok, err := s.Raw(ctx, ShipmentsCollection)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(raw), "LEGACY-1")
	assert.Equal(t, "souq:orders", s.Key(ShipmentsCollection))

	require.Len(t, got, 3)
	assert.Equal(t, events.KindUpdated, got[2].Kind)
}
