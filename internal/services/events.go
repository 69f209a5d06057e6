package services

//go:generate mockgen -source=events.go -destination=mock_events.go -package=services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/filmtrack/internal/logger"
	"github.com/sbilibin2017/filmtrack/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
}

func newEvent(userID, operation, resourceID string) models.Event {
	return models.Event{
		EventID:    uuid.NewString(),
		Timestamp:  time.Now().Unix(),
		UserID:     userID,
		Operation:  operation,
		ResourceID: resourceID,
	}
}

// publishEvent writes ev to Kafka. Failures are logged and never reach the caller.
func publishEvent(ctx context.Context, w KafkaWriter, ev models.Event) {
	log := logger.FromContext(ctx)
	if w == nil {
		log.Debugw("Kafka writer not configured, skipping publishing", "event_id", ev.EventID, "operation", ev.Operation)
		return
	}

	data, err := json.Marshal(ev)
	if err != nil {
		log.Errorw("Failed to marshal event for Kafka", "event_id", ev.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(ev.EventID),
		Value: data,
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		log.Errorw("Failed to publish event to Kafka", "event_id", ev.EventID, "operation", ev.Operation, "error", err)
	} else {
		log.Infow("Event published to Kafka", "event_id", ev.EventID, "operation", ev.Operation)
	}
}
