package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avelkov/sporthub/internal/action"
	"github.com/avelkov/sporthub/internal/domain/models"
	"github.com/avelkov/sporthub/internal/lib/logger/sl"
	"github.com/avelkov/sporthub/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrEventNotFound    = action.Client("event not found")
	ErrPermissionDenied = action.Client("you do not have permission to modify this event")
	ErrInvalidVenueID   = action.Client("invalid venue id")
)

const (
	outboxEventCreated = "event_created"
	outboxEventUpdated = "event_updated"
	outboxEventDeleted = "event_deleted"
)

type EventSaver interface {
	SaveEvent(ctx context.Context, event models.Event) (models.Event, error)
	UpdateEvent(ctx context.Context, event models.Event) (models.Event, error)
	DeleteEventOwned(ctx context.Context, eventID, ownerID uuid.UUID) error
}

type EventProvider interface {
	Event(ctx context.Context, eventID uuid.UUID) (models.Event, error)
	Events(ctx context.Context, filter storage.EventFilter) ([]models.Event, error)
}

type VenueStorage interface {
	SaveVenue(ctx context.Context, venue models.Venue) (models.Venue, error)
	Venues(ctx context.Context, venueIDs []uuid.UUID) ([]models.Venue, error)
}

type LinkStorage interface {
	LinkVenue(ctx context.Context, eventID, venueID uuid.UUID) error
	UnlinkVenues(ctx context.Context, eventID uuid.UUID) error
	LinksForEvents(ctx context.Context, eventIDs []uuid.UUID) ([]models.EventVenue, error)
}

type OutboxSaver interface {
	SaveOutboxEvent(ctx context.Context, eventType, payload string) error
}

type DashboardCache interface {
	Dashboard(ctx context.Context) ([]models.EventWithVenues, error)
	SaveDashboard(ctx context.Context, events []models.EventWithVenues) error
	InvalidateDashboard(ctx context.Context) error
}

type Events struct {
	log           *slog.Logger
	eventSaver    EventSaver
	eventProvider EventProvider
	venueStorage  VenueStorage
	linkStorage   LinkStorage
	outboxSaver   OutboxSaver
	cache         DashboardCache
}

// New returns a new instance of the Events service
func New(
	log *slog.Logger,
	eventSaver EventSaver,
	eventProvider EventProvider,
	venueStorage VenueStorage,
	linkStorage LinkStorage,
	outboxSaver OutboxSaver,
	cache DashboardCache,
) *Events {
	return &Events{
		log:           log,
		eventSaver:    eventSaver,
		eventProvider: eventProvider,
		venueStorage:  venueStorage,
		linkStorage:   linkStorage,
		outboxSaver:   outboxSaver,
		cache:         cache,
	}
}

type VenueInput struct {
	ID      string
	Name    string
	Address string
	City    string
	State   string
}

type CreateEventInput struct {
	Name        string
	SportType   string
	StartsAt    time.Time
	Description string
	Venues      []VenueInput
}

// MutationResult carries the resulting projection plus the names of venues
// that failed to save or link. Venue failures never abort the operation;
// they are surfaced here instead of being silently logged away.
type MutationResult struct {
	Event         models.EventWithVenues
	SkippedVenues []string
}

func (e *Events) Create(ctx context.Context, ownerID uuid.UUID, in CreateEventInput) (MutationResult, error) {
	const op = "events.Create"
	log := e.log.With(slog.String("op", op))
	log.Info("creating event")

	event := models.Event{
		ID:          uuid.New(),
		Name:        in.Name,
		SportType:   in.SportType,
		StartsAt:    in.StartsAt,
		Description: in.Description,
		OwnerID:     ownerID,
	}

	saved, err := e.eventSaver.SaveEvent(ctx, event)
	if err != nil {
		log.Error("failed to save event", sl.Err(err))
		return MutationResult{}, fmt.Errorf("%s: %w", op, err)
	}

	skipped := e.linkVenues(ctx, saved.ID, in.Venues)

	projection, err := e.withVenues(ctx, saved)
	if err != nil {
		return MutationResult{}, fmt.Errorf("%s: %w", op, err)
	}

	e.invalidateDashboard(ctx)
	e.appendOutbox(ctx, outboxEventCreated, saved)

	log.Info("event created", slog.String("eventId", saved.ID.String()))

	return MutationResult{Event: projection, SkippedVenues: skipped}, nil
}

type UpdateEventInput struct {
	EventID     uuid.UUID
	Name        string
	SportType   string
	StartsAt    time.Time
	Description string
	Venues      []VenueInput
}

func (e *Events) Update(ctx context.Context, callerID uuid.UUID, in UpdateEventInput) (MutationResult, error) {
	const op = "events.Update"
	log := e.log.With(slog.String("op", op), slog.String("eventId", in.EventID.String()))
	log.Info("updating event")

	existing, err := e.eventProvider.Event(ctx, in.EventID)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			log.Warn("event not found", sl.Err(err))
			return MutationResult{}, fmt.Errorf("%s: %w", op, ErrEventNotFound)
		}

		log.Error("failed to get event", sl.Err(err))
		return MutationResult{}, fmt.Errorf("%s: %w", op, err)
	}

	if existing.OwnerID != callerID {
		log.Warn("permission denied", slog.String("callerId", callerID.String()))
		return MutationResult{}, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	existing.Name = in.Name
	existing.SportType = in.SportType
	existing.StartsAt = in.StartsAt
	existing.Description = in.Description

	updated, err := e.eventSaver.UpdateEvent(ctx, existing)
	if err != nil {
		log.Error("failed to update event", sl.Err(err))
		return MutationResult{}, fmt.Errorf("%s: %w", op, err)
	}

	// Links are fully replaced rather than diffed: drop every existing
	// link, then re-run the same resolve-and-link sequence as Create.
	if err := e.linkStorage.UnlinkVenues(ctx, updated.ID); err != nil {
		log.Error("failed to unlink venues", sl.Err(err))
		return MutationResult{}, fmt.Errorf("%s: %w", op, err)
	}

	skipped := e.linkVenues(ctx, updated.ID, in.Venues)

	projection, err := e.withVenues(ctx, updated)
	if err != nil {
		return MutationResult{}, fmt.Errorf("%s: %w", op, err)
	}

	e.invalidateDashboard(ctx)
	e.appendOutbox(ctx, outboxEventUpdated, updated)

	log.Info("event updated")

	return MutationResult{Event: projection, SkippedVenues: skipped}, nil
}

// Delete removes the event filtered by id and owner in one call. Matching
// zero rows (already deleted, or not the caller's event) is a no-op, so
// the operation is idempotent in effect.
func (e *Events) Delete(ctx context.Context, callerID, eventID uuid.UUID) error {
	const op = "events.Delete"
	log := e.log.With(slog.String("op", op), slog.String("eventId", eventID.String()))
	log.Info("deleting event")

	if err := e.eventSaver.DeleteEventOwned(ctx, eventID, callerID); err != nil {
		log.Error("failed to delete event", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	e.invalidateDashboard(ctx)
	e.appendOutbox(ctx, outboxEventDeleted, models.Event{ID: eventID})

	log.Info("event deleted")

	return nil
}

func (e *Events) List(ctx context.Context, filter storage.EventFilter) ([]models.EventWithVenues, error) {
	const op = "events.List"
	log := e.log.With(slog.String("op", op))

	// The unfiltered dashboard view is served read-through from the cache.
	if filter.IsZero() {
		cached, err := e.cache.Dashboard(ctx)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, storage.ErrDashboardNotFound) {
			log.Warn("dashboard cache read failed", sl.Err(err))
		}
	}

	events, err := e.eventProvider.Events(ctx, filter)
	if err != nil {
		log.Error("failed to list events", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	projections, err := e.resolveVenues(ctx, events)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if filter.IsZero() {
		if err := e.cache.SaveDashboard(ctx, projections); err != nil {
			log.Warn("failed to save dashboard cache", sl.Err(err))
		}
	}

	return projections, nil
}

func (e *Events) Get(ctx context.Context, eventID uuid.UUID) (models.EventWithVenues, error) {
	const op = "events.Get"
	log := e.log.With(slog.String("op", op), slog.String("eventId", eventID.String()))

	event, err := e.eventProvider.Event(ctx, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			log.Warn("event not found", sl.Err(err))
			return models.EventWithVenues{}, fmt.Errorf("%s: %w", op, ErrEventNotFound)
		}

		log.Error("failed to get event", sl.Err(err))
		return models.EventWithVenues{}, fmt.Errorf("%s: %w", op, err)
	}

	projection, err := e.withVenues(ctx, event)
	if err != nil {
		return models.EventWithVenues{}, fmt.Errorf("%s: %w", op, err)
	}

	return projection, nil
}

// linkVenues resolves each submitted venue to an id (reusing an existing
// venue or inserting a new one) and links it to the event. A venue that
// fails to save or link is skipped, never aborting the operation; its
// name is returned so callers can report the partial success.
func (e *Events) linkVenues(ctx context.Context, eventID uuid.UUID, venues []VenueInput) []string {
	const op = "events.linkVenues"
	log := e.log.With(slog.String("op", op), slog.String("eventId", eventID.String()))

	var skipped []string
	for _, in := range venues {
		venueID, err := e.resolveVenueID(ctx, in)
		if err != nil {
			log.Warn("skipping venue", slog.String("venue", in.Name), sl.Err(err))
			skipped = append(skipped, in.Name)
			continue
		}

		if err := e.linkStorage.LinkVenue(ctx, eventID, venueID); err != nil {
			log.Warn("failed to link venue", slog.String("venue", in.Name), sl.Err(err))
			skipped = append(skipped, in.Name)
		}
	}

	return skipped
}

func (e *Events) resolveVenueID(ctx context.Context, in VenueInput) (uuid.UUID, error) {
	if in.ID != "" {
		venueID, err := uuid.Parse(in.ID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("events.resolveVenueID: %w", ErrInvalidVenueID)
		}
		return venueID, nil
	}

	venue := models.Venue{
		ID:      uuid.New(),
		Name:    in.Name,
		Address: in.Address,
		City:    in.City,
		State:   in.State,
	}

	saved, err := e.venueStorage.SaveVenue(ctx, venue)
	if err != nil {
		return uuid.Nil, err
	}

	return saved.ID, nil
}

func (e *Events) withVenues(ctx context.Context, event models.Event) (models.EventWithVenues, error) {
	projections, err := e.resolveVenues(ctx, []models.Event{event})
	if err != nil {
		return models.EventWithVenues{}, err
	}

	return projections[0], nil
}

// resolveVenues assembles the read projection for the whole event set with
// two batch queries: one for the link rows, one for the venue rows. Venues
// are grouped in memory, keyed by event id.
func (e *Events) resolveVenues(ctx context.Context, events []models.Event) ([]models.EventWithVenues, error) {
	const op = "events.resolveVenues"

	eventIDs := make([]uuid.UUID, len(events))
	for i, event := range events {
		eventIDs[i] = event.ID
	}

	links, err := e.linkStorage.LinksForEvents(ctx, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	venueIDs := make([]uuid.UUID, 0, len(links))
	seen := make(map[uuid.UUID]struct{}, len(links))
	for _, link := range links {
		if _, ok := seen[link.VenueID]; ok {
			continue
		}
		seen[link.VenueID] = struct{}{}
		venueIDs = append(venueIDs, link.VenueID)
	}

	venues, err := e.venueStorage.Venues(ctx, venueIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	venueByID := make(map[uuid.UUID]models.Venue, len(venues))
	for _, venue := range venues {
		venueByID[venue.ID] = venue
	}

	venuesByEvent := make(map[uuid.UUID][]models.Venue, len(events))
	for _, link := range links {
		if venue, ok := venueByID[link.VenueID]; ok {
			venuesByEvent[link.EventID] = append(venuesByEvent[link.EventID], venue)
		}
	}

	projections := make([]models.EventWithVenues, len(events))
	for i, event := range events {
		projections[i] = models.EventWithVenues{
			Event:  event,
			Venues: venuesByEvent[event.ID],
		}
	}

	return projections, nil
}

func (e *Events) invalidateDashboard(ctx context.Context) {
	if err := e.cache.InvalidateDashboard(ctx); err != nil {
		e.log.Warn("failed to invalidate dashboard cache", sl.Err(err))
	}
}

func (e *Events) appendOutbox(ctx context.Context, eventType string, event models.Event) {
	payload, err := json.Marshal(map[string]string{
		"id":   event.ID.String(),
		"name": event.Name,
	})
	if err != nil {
		e.log.Error("failed to marshal outbox payload", sl.Err(err))
		return
	}

	if err := e.outboxSaver.SaveOutboxEvent(ctx, eventType, string(payload)); err != nil {
		e.log.Error("failed to append outbox event", sl.Err(err))
	}
}
