package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/event-reservations/internal/model"
	"github.com/Shivanand-hulikatti/event-reservations/internal/service"
)

// EventHandler serves /api/event.
type EventHandler struct {
	svc *service.EventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// Create handles POST /api/event/create
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if !decodeBody(w, r, &req) {
		return
	}
	e, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respond(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// Update handles PUT /api/event/update
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateEventRequest
	if !decodeBody(w, r, &req) {
		return
	}
	e, err := h.svc.Update(r.Context(), req)
	if err != nil {
		respond(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// Get handles GET /api/event/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// Delete handles DELETE /api/event/delete?id=
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), deleteID(r)); err != nil {
		respond(w, r, err)
		return
	}
	deleted(w, "event")
}

// List handles GET /api/event?organizerID=&eventTypeID=&dateTime=&userIDs=
// All present filters must match.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	events, err := h.svc.List(r.Context(), service.EventListParams{
		OrganizerID: q.Get("organizerID"),
		EventTypeID: q.Get("eventTypeID"),
		DateTime:    q.Get("dateTime"),
		UserIDs:     q.Get("userIDs"),
	})
	if err != nil {
		respond(w, r, err)
		return
	}
	list(w, events)
}
