// Package seed loads demo fixtures into a fresh store through the entity
// services, so every record goes through the same validation and stamping
// as API writes.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"souq-be/internal/app"
	"souq-be/internal/fleet"
	"souq-be/internal/logger"
	"souq-be/internal/market"
	"souq-be/internal/order"
	"souq-be/internal/party"
	"souq-be/internal/partner"
	"souq-be/internal/product"
	"souq-be/internal/shipping"
	"souq-be/internal/store"
	"souq-be/internal/utils"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Fixture struct {
	Products         []Product         `yaml:"products"`
	MarketItems      []MarketItem      `yaml:"marketItems"`
	ShippingServices []ShippingService `yaml:"shippingServices"`
	Partners         []Partner         `yaml:"partners"`
	Orders           []Order           `yaml:"orders"`
	Drivers          []Driver          `yaml:"drivers"`
	Vehicles         []Vehicle         `yaml:"vehicles"`
	Shipments        []Shipment        `yaml:"shipments"`
}

type Product struct {
	Name     string  `yaml:"name"`
	Price    float64 `yaml:"price"`
	Stock    int     `yaml:"stock"`
	Category string  `yaml:"category"`
	SKU      string  `yaml:"sku"`
	Status   string  `yaml:"status"`
}

type MarketItem struct {
	Name         string   `yaml:"name"`
	Type         string   `yaml:"type"`
	Price        float64  `yaml:"price"`
	Stock        int      `yaml:"stock"`
	Category     string   `yaml:"category"`
	ProviderID   string   `yaml:"providerId"`
	ProviderName string   `yaml:"providerName"`
	ProviderRole string   `yaml:"providerRole"`
	Rating       *float64 `yaml:"rating"`
}

type ShippingService struct {
	Name         string   `yaml:"name"`
	PricePerKg   float64  `yaml:"pricePerKg"`
	DeliveryTime string   `yaml:"deliveryTime"`
	Coverage     string   `yaml:"coverage"`
	Rating       *float64 `yaml:"rating"`
	Company      string   `yaml:"company"`
	CompanyID    string   `yaml:"companyId"`
}

// Partner.Type accepts canonical codes and the legacy Arabic labels.
type Partner struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Phone string `yaml:"phone"`
	Type  string `yaml:"type"`
	City  string `yaml:"city"`
}

type Order struct {
	Title        string      `yaml:"title"`
	Category     string      `yaml:"category"`
	Budget       float64     `yaml:"budget"`
	Deadline     string      `yaml:"deadline"`
	MerchantID   string      `yaml:"merchantId"`
	MerchantName string      `yaml:"merchantName"`
	Lines        []OrderLine `yaml:"lines"`
	// Shipping names a shipping service from the same fixture.
	Shipping string `yaml:"shipping"`
	Publish  bool   `yaml:"publish"`
}

type OrderLine struct {
	Name     string  `yaml:"name"`
	Price    float64 `yaml:"price"`
	Quantity int     `yaml:"quantity"`
}

type Driver struct {
	Name          string `yaml:"name"`
	Phone         string `yaml:"phone"`
	LicenseNumber string `yaml:"licenseNumber"`
}

type Vehicle struct {
	PlateNumber string  `yaml:"plateNumber"`
	Model       string  `yaml:"model"`
	CapacityKg  float64 `yaml:"capacityKg"`
}

type Shipment struct {
	Customer    string  `yaml:"customer"`
	Origin      string  `yaml:"origin"`
	Destination string  `yaml:"destination"`
	WeightKg    float64 `yaml:"weightKg"`
}

// Counts reports how many records of each kind were created.
type Counts struct {
	Products         int `json:"products"`
	MarketItems      int `json:"marketItems"`
	ShippingServices int `json:"shippingServices"`
	Partners         int `json:"partners"`
	Orders           int `json:"orders"`
	Published        int `json:"published"`
	Drivers          int `json:"drivers"`
	Vehicles         int `json:"vehicles"`
	Shipments        int `json:"shipments"`
}

// Decode reads a YAML fixture. Unknown keys are rejected.
func Decode(r io.Reader) (*Fixture, error) {
	var fx Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		if errors.Is(err, io.EOF) {
			return &fx, nil
		}
		return nil, fmt.Errorf("%w: fixture: %w", utils.ErrInvalidInput, err)
	}
	return &fx, nil
}

func LoadFile(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Apply clears the store and recreates everything in fx.
func Apply(ctx context.Context, s *store.Store, svc app.Services, fx *Fixture) (Counts, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "seed"), zap.String("method", "Apply"))
	log.Info("Apply started")

	var c Counts
	if err := s.ResetAll(ctx); err != nil {
		return c, err
	}

	for _, p := range fx.Products {
		_, err := svc.Products.Create(ctx, product.Product{
			Name:     p.Name,
			Price:    p.Price,
			Stock:    p.Stock,
			Category: p.Category,
			SKU:      p.SKU,
			Status:   product.Status(p.Status),
		})
		if err != nil {
			return c, fmt.Errorf("product %q: %w", p.Name, err)
		}
		c.Products++
	}

	for _, m := range fx.MarketItems {
		_, err := svc.Market.Create(ctx, market.Item{
			Product: product.Product{
				Name:     m.Name,
				Price:    m.Price,
				Stock:    m.Stock,
				Category: m.Category,
			},
			Type: market.ItemType(m.Type),
			Provider: party.Provider{
				ID:     m.ProviderID,
				Name:   m.ProviderName,
				Role:   party.Role(m.ProviderRole),
				Rating: m.Rating,
			},
		})
		if err != nil {
			return c, fmt.Errorf("market item %q: %w", m.Name, err)
		}
		c.MarketItems++
	}

	shippingIDs := make(map[string]string, len(fx.ShippingServices))
	for _, ss := range fx.ShippingServices {
		created, err := svc.Shipping.Create(ctx, shipping.Service{
			Name:         ss.Name,
			PricePerKg:   ss.PricePerKg,
			DeliveryTime: ss.DeliveryTime,
			Coverage:     ss.Coverage,
			Rating:       ss.Rating,
			Provider: party.Provider{
				ID:   ss.CompanyID,
				Name: ss.Company,
				Role: party.RoleShippingCompany,
			},
		})
		if err != nil {
			return c, fmt.Errorf("shipping service %q: %w", ss.Name, err)
		}
		shippingIDs[ss.Name] = created.ID
		c.ShippingServices++
	}

	for _, p := range fx.Partners {
		_, err := svc.Partners.Create(ctx, partner.Partner{
			Name:  p.Name,
			Email: p.Email,
			Phone: p.Phone,
			Type:  partner.Type(p.Type),
			City:  p.City,
		})
		if err != nil {
			return c, fmt.Errorf("partner %q: %w", p.Name, err)
		}
		c.Partners++
	}

	for _, o := range fx.Orders {
		in := order.CreateInput{
			Title:    o.Title,
			Category: o.Category,
			Budget:   o.Budget,
			Deadline: o.Deadline,
			Merchant: party.Merchant{ID: o.MerchantID, Name: o.MerchantName},
		}
		for _, l := range o.Lines {
			in.Products = append(in.Products, order.OrderProduct{Name: l.Name, Price: l.Price, Quantity: l.Quantity})
		}
		if o.Shipping != "" {
			id, ok := shippingIDs[o.Shipping]
			if !ok {
				return c, fmt.Errorf("%w: order %q: unknown shipping service %q", utils.ErrInvalidInput, o.Title, o.Shipping)
			}
			in.ShippingServiceID = &id
		}

		created, err := svc.Orders.Create(ctx, in)
		if err != nil {
			return c, fmt.Errorf("order %q: %w", o.Title, err)
		}
		c.Orders++

		if o.Publish {
			if _, err := svc.Orders.Publish(ctx, created.ID); err != nil {
				return c, fmt.Errorf("publish %q: %w", o.Title, err)
			}
			c.Published++
		}
	}

	for _, d := range fx.Drivers {
		if _, err := svc.Fleet.CreateDriver(ctx, fleet.Driver{Name: d.Name, Phone: d.Phone, LicenseNumber: d.LicenseNumber}); err != nil {
			return c, fmt.Errorf("driver %q: %w", d.Name, err)
		}
		c.Drivers++
	}

	for _, v := range fx.Vehicles {
		if _, err := svc.Fleet.CreateVehicle(ctx, fleet.Vehicle{PlateNumber: v.PlateNumber, Model: v.Model, CapacityKg: v.CapacityKg}); err != nil {
			return c, fmt.Errorf("vehicle %q: %w", v.PlateNumber, err)
		}
		c.Vehicles++
	}

	for _, sh := range fx.Shipments {
		_, err := svc.Fleet.CreateShipment(ctx, fleet.Shipment{
			Customer:    sh.Customer,
			Origin:      sh.Origin,
			Destination: sh.Destination,
			WeightKg:    sh.WeightKg,
		})
		if err != nil {
			return c, fmt.Errorf("shipment to %q: %w", sh.Destination, err)
		}
		c.Shipments++
	}

	log.Info("Apply success",
		zap.Int("products", c.Products),
		zap.Int("partners", c.Partners),
		zap.Int("orders", c.Orders),
		zap.Int("published", c.Published),
	)
	return c, nil
}
