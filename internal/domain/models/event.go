package models

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID          uuid.UUID
	Name        string
	SportType   string
	StartsAt    time.Time
	Description string
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EventWithVenues is the read-side projection: an event plus the venues
// currently linked to it. Assembled in memory, never persisted.
type EventWithVenues struct {
	Event
	Venues []Venue
}
