package notify

import (
	"context"

	"ride-tracker/internal/rides/domain"
	"ride-tracker/internal/shared/util"
)

// Fanout implements the service's Notifier: every recorded event goes to
// RabbitMQ and to the live websocket feed. Either sink may be absent.
// Publish failures are logged, never surfaced to the request that recorded
// the event.
type Fanout struct {
	publisher *Publisher
	hub       *Hub
	logger    *util.Logger
}

func NewFanout(publisher *Publisher, hub *Hub, logger *util.Logger) *Fanout {
	return &Fanout{publisher: publisher, hub: hub, logger: logger}
}

func (f *Fanout) EventRecorded(ctx context.Context, event domain.RideEvent) {
	if f.publisher != nil {
		if err := f.publisher.PublishEvent(ctx, event); err != nil {
			f.logger.Error("EventPublisher", err)
		}
	}
	if f.hub != nil {
		f.hub.Broadcast(event)
	}
}
