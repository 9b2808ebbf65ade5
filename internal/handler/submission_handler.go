package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/service"
)

type SubmissionHandler struct {
	svc *service.SubmissionService
}

func NewSubmissionHandler(svc *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	subs, err := h.svc.List(r.Context(), session(r), models.SubmissionFilter{
		VesselID:   q.Get("vessel_id"),
		Status:     models.Status(q.Get("status")),
		TemplateID: q.Get("template_id"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sub, err := h.svc.Get(r.Context(), session(r), chi.URLParam(r, "subId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *SubmissionHandler) TriggerWork(w http.ResponseWriter, r *http.Request) {
	var req models.TriggerWorkRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	subs, err := h.svc.TriggerWork(r.Context(), session(r), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, subs)
}

func (h *SubmissionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.SubmissionUpdate
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sub, err := h.svc.Update(r.Context(), session(r), chi.URLParam(r, "subId"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *SubmissionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	notes, ok := readNotes(w, r)
	if !ok {
		return
	}
	sub, err := h.svc.Approve(r.Context(), session(r), chi.URLParam(r, "subId"), notes)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *SubmissionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	notes, ok := readNotes(w, r)
	if !ok {
		return
	}
	sub, err := h.svc.Reject(r.Context(), session(r), chi.URLParam(r, "subId"), notes)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *SubmissionHandler) Export(w http.ResponseWriter, r *http.Request) {
	file, err := h.svc.Export(r.Context(), session(r), r.URL.Query().Get("template_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.Write(file.Data)
}

// readNotes accepts an empty body; approve carries no payload.
func readNotes(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req struct {
		Notes string `json:"approval_notes"`
	}
	if err := readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return "", false
	}
	return req.Notes, true
}
