package handler

import (
	"net/http"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/service"
)

type ManualHandler struct {
	svc *service.ManualService
}

func NewManualHandler(svc *service.ManualService) *ManualHandler {
	return &ManualHandler{svc: svc}
}

func (h *ManualHandler) List(w http.ResponseWriter, r *http.Request) {
	manuals, err := h.svc.List(r.Context(), models.ManualType(r.URL.Query().Get("type")))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, manuals)
}

func (h *ManualHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.ManualInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m, err := h.svc.Create(r.Context(), session(r), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}
