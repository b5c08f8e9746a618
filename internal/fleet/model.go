// Package fleet holds the legacy shipment tracking records. Drivers,
// vehicles and shipments reference each other by id only; nothing checks
// that the referenced record exists.
package fleet

import "souq-be/internal/store"

type DriverStatus string

const (
	DriverAvailable DriverStatus = "available"
	DriverOnTrip    DriverStatus = "on_trip"
	DriverOffDuty   DriverStatus = "off_duty"
)

func (s DriverStatus) Valid() bool {
	return s == DriverAvailable || s == DriverOnTrip || s == DriverOffDuty
}

type VehicleStatus string

const (
	VehicleActive      VehicleStatus = "active"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleRetired     VehicleStatus = "retired"
)

func (s VehicleStatus) Valid() bool {
	return s == VehicleActive || s == VehicleMaintenance || s == VehicleRetired
}

type ShipmentStatus string

const (
	ShipmentPending   ShipmentStatus = "pending"
	ShipmentInTransit ShipmentStatus = "in_transit"
	ShipmentDelivered ShipmentStatus = "delivered"
	ShipmentCancelled ShipmentStatus = "cancelled"
)

func (s ShipmentStatus) Valid() bool {
	switch s {
	case ShipmentPending, ShipmentInTransit, ShipmentDelivered, ShipmentCancelled:
		return true
	}
	return false
}

type Driver struct {
	store.Meta
	Name          string       `json:"name"`
	Phone         string       `json:"phone"`
	LicenseNumber string       `json:"licenseNumber"`
	Status        DriverStatus `json:"status"`
}

type UpdateDriver struct {
	Name          *string       `json:"name,omitempty"`
	Phone         *string       `json:"phone,omitempty"`
	LicenseNumber *string       `json:"licenseNumber,omitempty"`
	Status        *DriverStatus `json:"status,omitempty"`
}

type Vehicle struct {
	store.Meta
	PlateNumber string        `json:"plateNumber"`
	Model       string        `json:"model"`
	CapacityKg  float64       `json:"capacityKg"`
	Status      VehicleStatus `json:"status"`
	DriverID    *string       `json:"driverId,omitempty"`
}

type UpdateVehicle struct {
	PlateNumber *string        `json:"plateNumber,omitempty"`
	Model       *string        `json:"model,omitempty"`
	CapacityKg  *float64       `json:"capacityKg,omitempty"`
	Status      *VehicleStatus `json:"status,omitempty"`
	DriverID    *string        `json:"driverId,omitempty"`
}

// Shipment is stored under the legacy "orders" key.
type Shipment struct {
	store.Meta
	TrackingNumber string         `json:"trackingNumber"`
	Customer       string         `json:"customer"`
	Origin         string         `json:"origin"`
	Destination    string         `json:"destination"`
	WeightKg       float64        `json:"weightKg"`
	Status         ShipmentStatus `json:"status"`
	DriverID       *string        `json:"driverId,omitempty"`
	VehicleID      *string        `json:"vehicleId,omitempty"`
}

type UpdateShipment struct {
	Customer    *string         `json:"customer,omitempty"`
	Origin      *string         `json:"origin,omitempty"`
	Destination *string         `json:"destination,omitempty"`
	WeightKg    *float64        `json:"weightKg,omitempty"`
	Status      *ShipmentStatus `json:"status,omitempty"`
	DriverID    *string         `json:"driverId,omitempty"`
	VehicleID   *string         `json:"vehicleId,omitempty"`
}
