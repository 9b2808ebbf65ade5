package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/service"
)

type VesselHandler struct {
	svc *service.VesselService
}

func NewVesselHandler(svc *service.VesselService) *VesselHandler {
	return &VesselHandler{svc: svc}
}

func (h *VesselHandler) List(w http.ResponseWriter, r *http.Request) {
	vessels, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vessels)
}

func (h *VesselHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.VesselInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v, err := h.svc.Create(r.Context(), session(r), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *VesselHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Get(r.Context(), chi.URLParam(r, "shipId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
