package postgres

import (
	"context"
	"fmt"

	"github.com/avelkov/sporthub/internal/domain/converter"
	"github.com/avelkov/sporthub/internal/domain/models"
	storageModel "github.com/avelkov/sporthub/internal/storage/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	statusNew  = "new"
	statusDone = "done"
)

func (s *Storage) SaveOutboxEvent(ctx context.Context, eventType, payload string) error {
	const op = "storage.postgres.SaveOutboxEvent"

	query := "INSERT INTO outbox_events(id,event_type,payload,status) VALUES(@id,@eventType,@payload,@status)"
	args := pgx.NamedArgs{
		"id":        uuid.New(),
		"eventType": eventType,
		"payload":   payload,
		"status":    statusNew,
	}

	if _, err := s.dbpool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) NewEvents(ctx context.Context, limit int) ([]models.OutboxEvent, error) {
	const op = "storage.postgres.NewEvents"

	query := `SELECT id,event_type,payload,status,created_at,reserved_to
		FROM outbox_events WHERE status=$1 ORDER BY created_at ASC LIMIT $2`

	rows, err := s.dbpool.Query(ctx, query, statusNew, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var events []storageModel.OutboxEvent
	for rows.Next() {
		var event storageModel.OutboxEvent
		if err := rows.Scan(
			&event.ID,
			&event.Type,
			&event.Payload,
			&event.Status,
			&event.CreatedAt,
			&event.ReservedTo,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToOutboxEventsFromStorage(events), nil
}

func (s *Storage) SetEventDone(ctx context.Context, eventID uuid.UUID) (models.OutboxEvent, error) {
	const op = "storage.postgres.SetEventDone"

	query := `UPDATE outbox_events SET status=@status WHERE id=@id
		RETURNING id,event_type,payload,status,created_at,reserved_to`
	args := pgx.NamedArgs{
		"id":     eventID,
		"status": statusDone,
	}

	var event storageModel.OutboxEvent
	err := s.dbpool.QueryRow(ctx, query, args).Scan(
		&event.ID,
		&event.Type,
		&event.Payload,
		&event.Status,
		&event.CreatedAt,
		&event.ReservedTo,
	)
	if err != nil {
		return models.OutboxEvent{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToOutboxEventFromStorage(event), nil
}
