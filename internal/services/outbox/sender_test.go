package outbox

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/avelkov/sporthub/internal/domain/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu        sync.Mutex
	published []string
}

func (f *fakePublisher) Publish(_ context.Context, key, _ []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, string(key))
	return nil
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}

type fakeProvider struct {
	mu      sync.Mutex
	pending []models.OutboxEvent
	done    []uuid.UUID
}

func (f *fakeProvider) NewEvents(_ context.Context, limit int) ([]models.OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.pending) > limit {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeProvider) SetEventDone(_ context.Context, eventID uuid.UUID) (models.OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.done = append(f.done, eventID)
	for i, event := range f.pending {
		if event.ID == eventID {
			f.pending = append(f.pending[:i], f.pending[i+1:]...)
			return event, nil
		}
	}
	return models.OutboxEvent{}, nil
}

func TestSender_DrainsPendingEvents(t *testing.T) {
	publisher := &fakePublisher{}
	provider := &fakeProvider{
		pending: []models.OutboxEvent{
			{ID: uuid.New(), Type: "event_created", Payload: `{"id":"1"}`},
			{ID: uuid.New(), Type: "event_deleted", Payload: `{"id":"2"}`},
		},
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sender := NewSender(log, publisher, provider)
	defer sender.StopSending()

	sender.StartProducing(context.Background(), 100, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return publisher.count() >= 2
	}, time.Second, 10*time.Millisecond)

	provider.mu.Lock()
	defer provider.mu.Unlock()
	assert.Len(t, provider.done, 2)
	assert.Empty(t, provider.pending)
}

func TestSender_StopsOnContextCancel(t *testing.T) {
	publisher := &fakePublisher{}
	provider := &fakeProvider{}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sender := NewSender(log, publisher, provider)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sender.StartProducing(ctx, 100, 10*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, publisher.count())
}
