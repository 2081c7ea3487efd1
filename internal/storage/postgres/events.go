package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelkov/sporthub/internal/domain/models"
	"github.com/avelkov/sporthub/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) SaveEvent(ctx context.Context, event models.Event) (models.Event, error) {
	const op = "storage.postgres.SaveEvent"

	query := `INSERT INTO events(id,name,sport_type,starts_at,description,owner_id)
		VALUES(@id,@name,@sportType,@startsAt,@description,@ownerId)
		RETURNING id,name,sport_type,starts_at,description,owner_id,created_at,updated_at`
	args := pgx.NamedArgs{
		"id":          event.ID,
		"name":        event.Name,
		"sportType":   event.SportType,
		"startsAt":    event.StartsAt,
		"description": event.Description,
		"ownerId":     event.OwnerID,
	}

	saved := models.Event{}
	err := s.dbpool.QueryRow(ctx, query, args).Scan(
		&saved.ID,
		&saved.Name,
		&saved.SportType,
		&saved.StartsAt,
		&saved.Description,
		&saved.OwnerID,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (s *Storage) Event(ctx context.Context, eventID uuid.UUID) (models.Event, error) {
	const op = "storage.postgres.Event"

	query := `SELECT id,name,sport_type,starts_at,description,owner_id,created_at,updated_at
		FROM events WHERE id=$1`

	var event models.Event
	err := s.dbpool.QueryRow(ctx, query, eventID).Scan(
		&event.ID,
		&event.Name,
		&event.SportType,
		&event.StartsAt,
		&event.Description,
		&event.OwnerID,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Event{}, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
		}
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return event, nil
}

func (s *Storage) UpdateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	const op = "storage.postgres.UpdateEvent"

	query := `UPDATE events
		SET name=@name, sport_type=@sportType, starts_at=@startsAt, description=@description, updated_at=now()
		WHERE id=@id
		RETURNING id,name,sport_type,starts_at,description,owner_id,created_at,updated_at`
	args := pgx.NamedArgs{
		"id":          event.ID,
		"name":        event.Name,
		"sportType":   event.SportType,
		"startsAt":    event.StartsAt,
		"description": event.Description,
	}

	updated := models.Event{}
	err := s.dbpool.QueryRow(ctx, query, args).Scan(
		&updated.ID,
		&updated.Name,
		&updated.SportType,
		&updated.StartsAt,
		&updated.Description,
		&updated.OwnerID,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Event{}, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
		}
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

// DeleteEventOwned removes the event only when both id and owner match.
// Matching zero rows is not an error; link rows go with the event via
// ON DELETE CASCADE.
func (s *Storage) DeleteEventOwned(ctx context.Context, eventID, ownerID uuid.UUID) error {
	const op = "storage.postgres.DeleteEventOwned"

	query := "DELETE FROM events WHERE id=$1 AND owner_id=$2"
	if _, err := s.dbpool.Exec(ctx, query, eventID, ownerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Events(ctx context.Context, filter storage.EventFilter) ([]models.Event, error) {
	const op = "storage.postgres.Events"

	query := `SELECT id,name,sport_type,starts_at,description,owner_id,created_at,updated_at
		FROM events
		WHERE (@name = '' OR name ILIKE '%' || @name || '%')
		AND (@sportType = '' OR sport_type = @sportType)
		ORDER BY starts_at ASC`
	args := pgx.NamedArgs{
		"name":      filter.Name,
		"sportType": filter.SportType,
	}

	rows, err := s.dbpool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.SportType,
			&event.StartsAt,
			&event.Description,
			&event.OwnerID,
			&event.CreatedAt,
			&event.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}
