package httpapi

import (
	"net/http"

	"souq-be/internal/fleet"
)

func (h *Handler) listDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.svc.Fleet.ListDrivers(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, drivers)
}

func (h *Handler) getDriver(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Fleet.GetDriver(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, d)
}

func (h *Handler) createDriver(w http.ResponseWriter, r *http.Request) {
	var in fleet.Driver
	if err := decode(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	d, err := h.svc.Fleet.CreateDriver(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, d)
}

func (h *Handler) updateDriver(w http.ResponseWriter, r *http.Request) {
	var in fleet.UpdateDriver
	if err := decode(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	d, err := h.svc.Fleet.UpdateDriver(r.Context(), r.PathValue("id"), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, d)
}

func (h *Handler) deleteDriver(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Fleet.DeleteDriver(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.svc.Fleet.ListVehicles(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, vehicles)
}

func (h *Handler) getVehicle(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Fleet.GetVehicle(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, v)
}

func (h *Handler) createVehicle(w http.ResponseWriter, r *http.Request) {
	var in fleet.Vehicle
	if err := decode(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	v, err := h.svc.Fleet.CreateVehicle(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, v)
}

func (h *Handler) updateVehicle(w http.ResponseWriter, r *http.Request) {
	var in fleet.UpdateVehicle
	if err := decode(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	v, err := h.svc.Fleet.UpdateVehicle(r.Context(), r.PathValue("id"), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, v)
}

func (h *Handler) deleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Fleet.DeleteVehicle(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listShipments(w http.ResponseWriter, r *http.Request) {
	shipments, err := h.svc.Fleet.ListShipments(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, shipments)
}

func (h *Handler) getShipment(w http.ResponseWriter, r *http.Request) {
	sh, err := h.svc.Fleet.GetShipment(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, sh)
}

func (h *Handler) createShipment(w http.ResponseWriter, r *http.Request) {
	var in fleet.Shipment
	if err := decode(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	sh, err := h.svc.Fleet.CreateShipment(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, sh)
}

func (h *Handler) updateShipment(w http.ResponseWriter, r *http.Request) {
	var in fleet.UpdateShipment
	if err := decode(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	sh, err := h.svc.Fleet.UpdateShipment(r.Context(), r.PathValue("id"), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, sh)
}

func (h *Handler) deleteShipment(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Fleet.DeleteShipment(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
