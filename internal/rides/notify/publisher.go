package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"ride-tracker/internal/rides/domain"
	"ride-tracker/internal/shared/models"
)

// EventsExchange receives every recorded ride event, routed as
// "ride.<ride id>".
const EventsExchange = "ride.events"

// ConnectToRMQ dials RabbitMQ with a short retry loop so the service
// survives the broker starting after it.
func ConnectToRMQ(cfg *models.RabbitMQConfig) (*amqp091.Connection, *amqp091.Channel, error) {
	dsn := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.User, cfg.Password, cfg.Host, cfg.Port)

	var conn *amqp091.Connection
	var ch *amqp091.Channel
	var err error

	for i := 0; i < 10; i++ {
		conn, err = amqp091.Dial(dsn)
		if err == nil {
			ch, err = conn.Channel()
			if err == nil {
				return conn, ch, nil
			}
			conn.Close()
		}
		time.Sleep(3 * time.Second)
	}

	return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
}

type Publisher struct {
	ch *amqp091.Channel
	mu sync.Mutex
}

func NewPublisher(ch *amqp091.Channel) (*Publisher, error) {
	if err := ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange failed: %w", err)
	}
	return &Publisher{ch: ch}, nil
}

func (p *Publisher) PublishEvent(ctx context.Context, event domain.RideEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		EventsExchange,
		fmt.Sprintf("ride.%d", event.RideID),
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}
