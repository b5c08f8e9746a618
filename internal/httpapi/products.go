package httpapi

import (
	"fmt"
	"net/http"

	"souq-be/internal/market"
	"souq-be/internal/party"
	"souq-be/internal/product"
	"souq-be/internal/utils"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	inStock, err := queryBool(q, "inStock")
	if err != nil {
		respondError(w, r, err)
		return
	}
	status, err := queryEnum(q, "status", product.ParseStatus)
	if err != nil {
		respondError(w, r, err)
		return
	}
	opts := product.ListOptions{
		Category: q.Get("category"),
		Status:   status,
		Search:   q.Get("search"),
		InStock:  inStock != nil && *inStock,
		Sort:     product.SortField(q.Get("sort")),
	}

	items, err := h.svc.Products.List(r.Context(), opts)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Products.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var in product.Product
	if err := decode(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	p, err := h.svc.Products.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var in product.UpdateProduct
	if err := decode(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	p, err := h.svc.Products.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Products.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Delta *int `json:"delta"`
	}
	if err := decode(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	if in.Delta == nil {
		respondError(w, r, fmt.Errorf("%w: delta is required", utils.ErrInvalidInput))
		return
	}
	p, err := h.svc.Products.AdjustStock(r.Context(), r.PathValue("id"), *in.Delta)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) listMarketItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	minPrice, err := queryFloat(q, "minPrice")
	if err != nil {
		respondError(w, r, err)
		return
	}
	maxPrice, err := queryFloat(q, "maxPrice")
	if err != nil {
		respondError(w, r, err)
		return
	}
	itemType, err := queryEnum(q, "type", market.ParseItemType)
	if err != nil {
		respondError(w, r, err)
		return
	}
	role, err := queryEnum(q, "role", party.ParseRole)
	if err != nil {
		respondError(w, r, err)
		return
	}
	opts := market.ListOptions{
		Type:         itemType,
		Category:     q.Get("category"),
		ProviderRole: role,
		ProviderID:   q.Get("provider"),
		Search:       q.Get("search"),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		Sort:         market.SortField(q.Get("sort")),
	}

	items, err := h.svc.Market.List(r.Context(), opts)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) listProviderItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Market.ListByProvider(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) getMarketItem(w http.ResponseWriter, r *http.Request) {
	it, err := h.svc.Market.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, it)
}

func (h *Handler) createMarketItem(w http.ResponseWriter, r *http.Request) {
	var in market.Item
	if err := decode(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	it, err := h.svc.Market.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, it)
}

func (h *Handler) updateMarketItem(w http.ResponseWriter, r *http.Request) {
	var in market.UpdateItem
	if err := decode(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	it, err := h.svc.Market.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, it)
}

func (h *Handler) deleteMarketItem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Market.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
