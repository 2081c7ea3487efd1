package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avelkov/sporthub/internal/domain/models"
	"github.com/avelkov/sporthub/internal/storage"
	"github.com/redis/go-redis/v9"
)

const dashboardKey = "dashboard:events"

type Storage struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr string, ttl time.Duration) *Storage {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	return &Storage{client: client, ttl: ttl}
}

func (s *Storage) Dashboard(ctx context.Context) ([]models.EventWithVenues, error) {
	const op = "storage.redis.Dashboard"

	data := s.client.Get(ctx, dashboardKey).Val()

	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrDashboardNotFound)
	}

	var events []models.EventWithVenues
	if err := json.Unmarshal([]byte(data), &events); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

func (s *Storage) SaveDashboard(ctx context.Context, events []models.EventWithVenues) error {
	const op = "storage.redis.SaveDashboard"

	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = s.client.Set(ctx, dashboardKey, string(data), s.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// InvalidateDashboard drops the cached dashboard view. Fire-and-forget
// semantics: callers treat failures as a stale-cache hint, not a fault.
func (s *Storage) InvalidateDashboard(ctx context.Context) error {
	const op = "storage.redis.InvalidateDashboard"

	if err := s.client.Del(ctx, dashboardKey).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Stop() error {
	const op = "storage.redis.Stop"

	if err := s.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
