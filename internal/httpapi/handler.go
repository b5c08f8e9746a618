// Package httpapi exposes the entity services as a JSON API. Every response
// is an Envelope; failures carry a Notice the client shows as a toast.
package httpapi

import (
	"net/http"

	"souq-be/internal/app"
	"souq-be/internal/store"
)

type Handler struct {
	svc   app.Services
	store *store.Store
}

func NewHandler(s *store.Store, svc app.Services) *Handler {
	return &Handler{svc: svc, store: s}
}

// Routes registers every endpoint on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /debug/metrics", h.metrics)
	mux.HandleFunc("POST /api/admin/reset", h.reset)
	mux.HandleFunc("GET /api/events", h.events)

	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("POST /api/products", h.createProduct)
	mux.HandleFunc("GET /api/products/{id}", h.getProduct)
	mux.HandleFunc("PATCH /api/products/{id}", h.updateProduct)
	mux.HandleFunc("DELETE /api/products/{id}", h.deleteProduct)
	mux.HandleFunc("POST /api/products/{id}/stock", h.adjustStock)

	mux.HandleFunc("GET /api/market-items", h.listMarketItems)
	mux.HandleFunc("POST /api/market-items", h.createMarketItem)
	mux.HandleFunc("GET /api/market-items/{id}", h.getMarketItem)
	mux.HandleFunc("PATCH /api/market-items/{id}", h.updateMarketItem)
	mux.HandleFunc("DELETE /api/market-items/{id}", h.deleteMarketItem)
	mux.HandleFunc("GET /api/providers/{id}/market-items", h.listProviderItems)

	mux.HandleFunc("GET /api/merchant-orders", h.listOrders)
	mux.HandleFunc("POST /api/merchant-orders", h.createOrder)
	mux.HandleFunc("GET /api/merchant-orders/{id}", h.getOrder)
	mux.HandleFunc("PATCH /api/merchant-orders/{id}", h.updateOrder)
	mux.HandleFunc("DELETE /api/merchant-orders/{id}", h.deleteOrder)
	mux.HandleFunc("POST /api/merchant-orders/{id}/status", h.updateOrderStatus)
	mux.HandleFunc("POST /api/merchant-orders/{id}/publish", h.publishOrder)
	mux.HandleFunc("GET /api/merchant-orders/{id}/published", h.orderPublished)
	mux.HandleFunc("PUT /api/merchant-orders/{id}/shipping", h.assignShipping)

	mux.HandleFunc("GET /api/shipping-services", h.listShipping)
	mux.HandleFunc("POST /api/shipping-services", h.createShipping)
	mux.HandleFunc("GET /api/shipping-services/{id}", h.getShipping)
	mux.HandleFunc("PATCH /api/shipping-services/{id}", h.updateShipping)
	mux.HandleFunc("DELETE /api/shipping-services/{id}", h.deleteShipping)
	mux.HandleFunc("GET /api/shipping-services/{id}/quote", h.quoteShipping)

	mux.HandleFunc("GET /api/partners", h.listPartners)
	mux.HandleFunc("POST /api/partners", h.createPartner)
	mux.HandleFunc("GET /api/partners/{id}", h.getPartner)
	mux.HandleFunc("PATCH /api/partners/{id}", h.updatePartner)
	mux.HandleFunc("DELETE /api/partners/{id}", h.deletePartner)

	mux.HandleFunc("GET /api/drivers", h.listDrivers)
	mux.HandleFunc("POST /api/drivers", h.createDriver)
	mux.HandleFunc("GET /api/drivers/{id}", h.getDriver)
	mux.HandleFunc("PATCH /api/drivers/{id}", h.updateDriver)
	mux.HandleFunc("DELETE /api/drivers/{id}", h.deleteDriver)

	mux.HandleFunc("GET /api/vehicles", h.listVehicles)
	mux.HandleFunc("POST /api/vehicles", h.createVehicle)
	mux.HandleFunc("GET /api/vehicles/{id}", h.getVehicle)
	mux.HandleFunc("PATCH /api/vehicles/{id}", h.updateVehicle)
	mux.HandleFunc("DELETE /api/vehicles/{id}", h.deleteVehicle)

	mux.HandleFunc("GET /api/shipments", h.listShipments)
	mux.HandleFunc("POST /api/shipments", h.createShipment)
	mux.HandleFunc("GET /api/shipments/{id}", h.getShipment)
	mux.HandleFunc("PATCH /api/shipments/{id}", h.updateShipment)
	mux.HandleFunc("DELETE /api/shipments/{id}", h.deleteShipment)

	mux.HandleFunc("GET /api/favorites", h.listFavorites)
	mux.HandleFunc("POST /api/favorites/{itemID}", h.toggleFavorite)
	mux.HandleFunc("GET /api/settings", h.getSettings)
	mux.HandleFunc("PUT /api/settings", h.saveSettings)

	return mux
}
