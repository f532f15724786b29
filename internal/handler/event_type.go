package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/event-reservations/internal/model"
	"github.com/Shivanand-hulikatti/event-reservations/internal/service"
)

// EventTypeHandler serves /api/event-type.
type EventTypeHandler struct {
	svc *service.EventTypeService
}

// NewEventTypeHandler constructs an EventTypeHandler.
func NewEventTypeHandler(svc *service.EventTypeService) *EventTypeHandler {
	return &EventTypeHandler{svc: svc}
}

// Create handles POST /api/event-type/create
func (h *EventTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventTypeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	et, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respond(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, et)
}

// Get handles GET /api/event-type/{id}
func (h *EventTypeHandler) Get(w http.ResponseWriter, r *http.Request) {
	et, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, et)
}

// Delete handles DELETE /api/event-type/delete?id=
func (h *EventTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), deleteID(r)); err != nil {
		respond(w, r, err)
		return
	}
	deleted(w, "event type")
}

// List handles GET /api/event-type
func (h *EventTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.List(r.Context())
	if err != nil {
		respond(w, r, err)
		return
	}
	list(w, types)
}
