package httpapi

import (
	"errors"
	"net/http"

	"souq-be/internal/order"
)

type orderView struct {
	order.MerchantOrder
	Total float64 `json:"total"`
}

func viewOf(o *order.MerchantOrder) orderView {
	return orderView{MerchantOrder: *o, Total: order.Total(*o)}
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	published, err := queryBool(q, "published")
	if err != nil {
		respondError(w, r, err)
		return
	}
	opts := order.ListOptions{
		Status:     order.Status(q.Get("status")),
		MerchantID: q.Get("merchant"),
		Published:  published,
	}

	orders, err := h.svc.Orders.List(r.Context(), opts)
	if err != nil {
		respondError(w, r, err)
		return
	}
	views := make([]orderView, 0, len(orders))
	for i := range orders {
		views = append(views, viewOf(&orders[i]))
	}
	respond(w, http.StatusOK, views)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.Orders.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, viewOf(o))
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var in order.CreateInput
	if err := decode(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	o, err := h.svc.Orders.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, viewOf(o))
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	var in order.UpdateInput
	if err := decode(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	o, err := h.svc.Orders.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, viewOf(o))
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Orders.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status string `json:"status"`
	}
	if err := decode(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	to, err := order.ParseStatus(in.Status)
	if err != nil {
		respondError(w, r, err)
		return
	}
	o, err := h.svc.Orders.UpdateStatus(r.Context(), r.PathValue("id"), to)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, viewOf(o))
}

func (h *Handler) publishOrder(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Orders.Publish(r.Context(), r.PathValue("id"))
	switch {
	case errors.Is(err, order.ErrAlreadyPublished):
		_, n := classify(err)
		respondNotice(w, http.StatusOK, item, n.Level, n.Message)
	case err != nil:
		respondError(w, r, err)
	default:
		respondNotice(w, http.StatusCreated, item, LevelInfo, "order published to the marketplace")
	}
}

func (h *Handler) orderPublished(w http.ResponseWriter, r *http.Request) {
	published, err := h.svc.Orders.IsPublished(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"published": published})
}

func (h *Handler) assignShipping(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ShippingServiceID *string `json:"shippingServiceId"`
	}
	if err := decode(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	o, err := h.svc.Orders.AssignShipping(r.Context(), r.PathValue("id"), in.ShippingServiceID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, viewOf(o))
}
