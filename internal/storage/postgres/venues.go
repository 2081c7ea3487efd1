package postgres

import (
	"context"
	"fmt"

	"github.com/avelkov/sporthub/internal/domain/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) SaveVenue(ctx context.Context, venue models.Venue) (models.Venue, error) {
	const op = "storage.postgres.SaveVenue"

	query := `INSERT INTO venues(id,name,address,city,state)
		VALUES(@id,@name,@address,@city,@state)
		RETURNING id,name,address,city,state,created_at`
	args := pgx.NamedArgs{
		"id":      venue.ID,
		"name":    venue.Name,
		"address": venue.Address,
		"city":    venue.City,
		"state":   venue.State,
	}

	saved := models.Venue{}
	err := s.dbpool.QueryRow(ctx, query, args).Scan(
		&saved.ID,
		&saved.Name,
		&saved.Address,
		&saved.City,
		&saved.State,
		&saved.CreatedAt,
	)
	if err != nil {
		return models.Venue{}, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (s *Storage) Venues(ctx context.Context, venueIDs []uuid.UUID) ([]models.Venue, error) {
	const op = "storage.postgres.Venues"

	if len(venueIDs) == 0 {
		return nil, nil
	}

	query := "SELECT id,name,address,city,state,created_at FROM venues WHERE id = ANY($1)"

	rows, err := s.dbpool.Query(ctx, query, venueIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var venues []models.Venue
	for rows.Next() {
		var venue models.Venue
		if err := rows.Scan(
			&venue.ID,
			&venue.Name,
			&venue.Address,
			&venue.City,
			&venue.State,
			&venue.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		venues = append(venues, venue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return venues, nil
}

func (s *Storage) LinkVenue(ctx context.Context, eventID, venueID uuid.UUID) error {
	const op = "storage.postgres.LinkVenue"

	query := `INSERT INTO event_venues(event_id,venue_id) VALUES($1,$2) ON CONFLICT DO NOTHING`
	if _, err := s.dbpool.Exec(ctx, query, eventID, venueID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) UnlinkVenues(ctx context.Context, eventID uuid.UUID) error {
	const op = "storage.postgres.UnlinkVenues"

	query := "DELETE FROM event_venues WHERE event_id=$1"
	if _, err := s.dbpool.Exec(ctx, query, eventID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// LinksForEvents fetches the link rows for the whole id set in one query,
// so the read side can group venues in memory instead of fanning out per event.
func (s *Storage) LinksForEvents(ctx context.Context, eventIDs []uuid.UUID) ([]models.EventVenue, error) {
	const op = "storage.postgres.LinksForEvents"

	if len(eventIDs) == 0 {
		return nil, nil
	}

	query := "SELECT event_id,venue_id FROM event_venues WHERE event_id = ANY($1)"

	rows, err := s.dbpool.Query(ctx, query, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var links []models.EventVenue
	for rows.Next() {
		var link models.EventVenue
		if err := rows.Scan(&link.EventID, &link.VenueID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return links, nil
}
