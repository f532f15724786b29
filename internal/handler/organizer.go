package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/event-reservations/internal/model"
	"github.com/Shivanand-hulikatti/event-reservations/internal/service"
)

// OrganizerHandler serves /api/organizer.
type OrganizerHandler struct {
	svc *service.OrganizerService
}

// NewOrganizerHandler constructs an OrganizerHandler.
func NewOrganizerHandler(svc *service.OrganizerService) *OrganizerHandler {
	return &OrganizerHandler{svc: svc}
}

// Create handles POST /api/organizer/create
func (h *OrganizerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateOrganizerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	o, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respond(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// Get handles GET /api/organizer/{id}
func (h *OrganizerHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// Delete handles DELETE /api/organizer/delete?id=
func (h *OrganizerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), deleteID(r)); err != nil {
		respond(w, r, err)
		return
	}
	deleted(w, "organizer")
}

// List handles GET /api/organizer?hasEvents=
// A bare ?hasEvents counts as true.
func (h *OrganizerHandler) List(w http.ResponseWriter, r *http.Request) {
	var hasEvents *string
	if q := r.URL.Query(); q.Has("hasEvents") {
		v := q.Get("hasEvents")
		hasEvents = &v
	}
	organizers, err := h.svc.List(r.Context(), hasEvents)
	if err != nil {
		respond(w, r, err)
		return
	}
	list(w, organizers)
}
