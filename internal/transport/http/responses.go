package http

import (
	"time"

	"github.com/avelkov/sporthub/internal/domain/models"
)

type venueResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
}

type eventResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	SportType   string          `json:"sportType"`
	StartsAt    time.Time       `json:"startsAt"`
	Description string          `json:"description,omitempty"`
	OwnerID     string          `json:"ownerId"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Venues      []venueResponse `json:"venues"`
}

type mutationResponse struct {
	Event         eventResponse `json:"event"`
	SkippedVenues []string      `json:"skippedVenues,omitempty"`
}

type deleteResponse struct {
	EventID string `json:"eventId"`
}

type registerResponse struct {
	UserID string `json:"userId"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func toVenueResponse(venue models.Venue) venueResponse {
	return venueResponse{
		ID:      venue.ID.String(),
		Name:    venue.Name,
		Address: venue.Address,
		City:    venue.City,
		State:   venue.State,
	}
}

func toEventResponse(event models.EventWithVenues) eventResponse {
	venues := make([]venueResponse, len(event.Venues))
	for i, venue := range event.Venues {
		venues[i] = toVenueResponse(venue)
	}

	return eventResponse{
		ID:          event.ID.String(),
		Name:        event.Name,
		SportType:   event.SportType,
		StartsAt:    event.StartsAt,
		Description: event.Description,
		OwnerID:     event.OwnerID.String(),
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
		Venues:      venues,
	}
}

func toEventResponses(events []models.EventWithVenues) []eventResponse {
	responses := make([]eventResponse, len(events))
	for i, event := range events {
		responses[i] = toEventResponse(event)
	}

	return responses
}
