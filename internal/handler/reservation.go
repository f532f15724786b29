package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/event-reservations/internal/model"
	"github.com/Shivanand-hulikatti/event-reservations/internal/service"
)

// ReservationHandler serves /api/reservation and /api/reservations.
type ReservationHandler struct {
	svc *service.ReservationService
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

// Create handles POST /api/reservation/create
// The slot is taken atomically; a full event answers 422 and a repeated
// user/event pair answers 409.
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateReservationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respond(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Get handles GET /api/reservation/{id}
func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Delete handles DELETE /api/reservation/delete?id=
func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), deleteID(r)); err != nil {
		respond(w, r, err)
		return
	}
	deleted(w, "reservation")
}

// List handles GET /api/reservations?userIDs=&eventIDs=
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	reservations, err := h.svc.List(r.Context(), q.Get("userIDs"), q.Get("eventIDs"))
	if err != nil {
		respond(w, r, err)
		return
	}
	list(w, reservations)
}
