package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the per-resource handlers mounted by NewRouter.
type Handlers struct {
	Users        *UserHandler
	Organizers   *OrganizerHandler
	EventTypes   *EventTypeHandler
	Events       *EventHandler
	Reservations *ReservationHandler
}

// RouterConfig carries the middleware settings of NewRouter.
type RouterConfig struct {
	Logger         zerolog.Logger
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// NewRouter builds the chi router with the global middleware stack and every
// API route.
func NewRouter(h Handlers, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(RequestID)            // attach request IDs
	r.Use(chimiddleware.RealIP) // trust X-Forwarded-For
	r.Use(Logger(cfg.Logger))   // structured access log
	r.Use(Recoverer)            // recover from panics, return 500
	r.Use(CORS(cfg.CORSOrigins))
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Health
	r.Get("/health", HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Get("/", h.Users.List)
			r.Post("/create", h.Users.Create)
			r.Put("/update", h.Users.Update)
			r.Delete("/delete", h.Users.Delete)
			r.Get("/{id}", h.Users.Get)
		})

		r.Route("/organizer", func(r chi.Router) {
			r.Get("/", h.Organizers.List)
			r.Post("/create", h.Organizers.Create)
			r.Delete("/delete", h.Organizers.Delete)
			r.Get("/{id}", h.Organizers.Get)
		})

		r.Route("/event-type", func(r chi.Router) {
			r.Get("/", h.EventTypes.List)
			r.Post("/create", h.EventTypes.Create)
			r.Delete("/delete", h.EventTypes.Delete)
			r.Get("/{id}", h.EventTypes.Get)
		})
		r.Get("/event-types", h.EventTypes.List)

		r.Route("/event", func(r chi.Router) {
			r.Get("/", h.Events.List)
			r.Post("/create", h.Events.Create)
			r.Put("/update", h.Events.Update)
			r.Delete("/delete", h.Events.Delete)
			r.Get("/{id}", h.Events.Get)
		})

		r.Route("/reservation", func(r chi.Router) {
			r.Post("/create", h.Reservations.Create)
			r.Delete("/delete", h.Reservations.Delete)
			r.Get("/{id}", h.Reservations.Get)
		})
		r.Get("/reservations", h.Reservations.List)
	})

	return r
}
