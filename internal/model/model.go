// Package model defines the core domain types for the event reservation system.
package model

// User is a person who can hold reservations.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// Organizer owns events.
type Organizer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EventType categorises events (concert, workshop, ...).
type EventType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Event is a reservable event. DateTime is a Unix timestamp in milliseconds.
type Event struct {
	ID                int64   `json:"id"`
	EventTypeID       int64   `json:"eventTypeID"`
	OrganizerID       int64   `json:"organizerID"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	DateTime          int64   `json:"dateTime"`
	LocationLatitude  float64 `json:"locationLatitude"`
	LocationLongitude float64 `json:"locationLongitude"`
	MaxParticipants   int64   `json:"maxParticipants"`
}

// Reservation is one user's slot at one event.
type Reservation struct {
	ID      int64 `json:"id"`
	EventID int64 `json:"eventID"`
	UserID  int64 `json:"userID"`
}

// CreateUserRequest is the payload for POST /api/user/create.
type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,alphanum,min=2,max=255"`
	Firstname string `json:"firstname" validate:"required,min=1,max=255"`
	Lastname  string `json:"lastname" validate:"required,min=1,max=255"`
}

// UpdateUserRequest is the payload for PUT /api/user/update.
type UpdateUserRequest struct {
	ID        *Int   `json:"id" validate:"required,gte=0"`
	Username  string `json:"username" validate:"required,alphanum,min=2,max=255"`
	Firstname string `json:"firstname" validate:"required,min=1,max=255"`
	Lastname  string `json:"lastname" validate:"required,min=1,max=255"`
}

// CreateOrganizerRequest is the payload for POST /api/organizer/create.
// ID is optional; when omitted the store generates one.
type CreateOrganizerRequest struct {
	ID   *Int   `json:"id" validate:"omitempty,gte=0"`
	Name string `json:"name" validate:"required,min=2,max=255"`
}

// CreateEventTypeRequest is the payload for POST /api/event-type/create.
type CreateEventTypeRequest struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}

// EventFields holds the fields shared by event create and update.
// Pointers distinguish a missing field from a legitimate zero value.
type EventFields struct {
	EventTypeID       *Int   `json:"eventTypeID" validate:"required,gte=0"`
	OrganizerID       *Int   `json:"organizerID" validate:"required,gte=0"`
	Name              string `json:"name" validate:"required,eventname,min=2,max=255"`
	Price             *Float `json:"price" validate:"required,gte=0"`
	DateTime          *Int   `json:"dateTime" validate:"required"`
	LocationLatitude  *Float `json:"locationLatitude" validate:"required,gte=-90,lte=90"`
	LocationLongitude *Float `json:"locationLongitude" validate:"required,gte=-180,lte=180"`
	MaxParticipants   *Int   `json:"maxParticipants" validate:"required,gt=0"`
}

// CreateEventRequest is the payload for POST /api/event/create.
type CreateEventRequest struct {
	EventFields
}

// UpdateEventRequest is the payload for PUT /api/event/update.
type UpdateEventRequest struct {
	ID *Int `json:"id" validate:"required,gte=0"`
	EventFields
}

// Event builds the entity described by the request fields. The caller must
// have validated the request first.
func (f EventFields) Event(id int64) Event {
	return Event{
		ID:                id,
		EventTypeID:       int64(*f.EventTypeID),
		OrganizerID:       int64(*f.OrganizerID),
		Name:              f.Name,
		Price:             float64(*f.Price),
		DateTime:          int64(*f.DateTime),
		LocationLatitude:  float64(*f.LocationLatitude),
		LocationLongitude: float64(*f.LocationLongitude),
		MaxParticipants:   int64(*f.MaxParticipants),
	}
}

// CreateReservationRequest is the payload for POST /api/reservation/create.
type CreateReservationRequest struct {
	UserID  *Int `json:"userID" validate:"required,gte=0"`
	EventID *Int `json:"eventID" validate:"required,gte=0"`
}

// EventFilter narrows GET /api/event. Nil or empty fields are not applied.
type EventFilter struct {
	OrganizerID *int64
	EventTypeID *int64
	DateTime    *int64
	UserIDs     []int64
}

// ReservationFilter narrows GET /api/reservations. At most one of the two
// lists may be set.
type ReservationFilter struct {
	UserIDs  []int64
	EventIDs []int64
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is returned by delete endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
