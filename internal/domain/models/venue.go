package models

import (
	"time"

	"github.com/google/uuid"
)

type Venue struct {
	ID        uuid.UUID
	Name      string
	Address   string
	City      string
	State     string
	CreatedAt time.Time
}

// EventVenue is a bare many-to-many link row; the pair is its identity.
type EventVenue struct {
	EventID uuid.UUID
	VenueID uuid.UUID
}
