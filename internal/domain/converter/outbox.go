package converter

import (
	"github.com/avelkov/sporthub/internal/domain/models"
	storageModel "github.com/avelkov/sporthub/internal/storage/model"
)

func ToOutboxEventFromStorage(storageEvent storageModel.OutboxEvent) models.OutboxEvent {
	return models.OutboxEvent{
		ID:      storageEvent.ID,
		Type:    storageEvent.Type,
		Payload: storageEvent.Payload,
	}
}

func ToOutboxEventsFromStorage(storageEvents []storageModel.OutboxEvent) []models.OutboxEvent {
	events := make([]models.OutboxEvent, len(storageEvents))
	for i, event := range storageEvents {
		events[i] = ToOutboxEventFromStorage(event)
	}

	return events
}
