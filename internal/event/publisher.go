package event

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"talent-service/internal/models"

	"github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	PublishEvent(event *models.Event) error
	Close() error
}

type EventPublisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	enabled  bool
}

// NewDisabledPublisher returns a publisher that drops every event.
// Used when no broker is configured or the broker cannot be reached at
// boot, so profile writes keep working without messaging.
func NewDisabledPublisher(exchange string) *EventPublisher {
	return &EventPublisher{
		exchange: exchange,
		enabled:  false,
	}
}

func NewEventPublisher(rabbitURI, exchange string) (*EventPublisher, error) {
	if rabbitURI == "" {
		log.Println("Warning: RabbitMQ URI is empty, event publishing is disabled")
		return NewDisabledPublisher(exchange), nil
	}

	conn, err := amqp091.Dial(rabbitURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Printf("Event publisher initialized with exchange: %s", exchange)

	return &EventPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		enabled:  true,
	}, nil
}

// PublishEvent is safe on a nil receiver: a nil *EventPublisher stored
// in the Publisher interface behaves like a disabled publisher instead
// of panicking the write path.
func (p *EventPublisher) PublishEvent(event *models.Event) error {
	if p == nil || !p.enabled {
		log.Printf("Event publishing disabled, skipping event: %s", event.EventType)
		return nil
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	routingKey := string(event.EventType)

	err = p.channel.Publish(
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         eventData,
			Headers: amqp091.Table{
				"event_type": string(event.EventType),
				"user_id":    event.UserID,
				"profile_id": event.ProfileID,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	log.Printf("Published event: %s for user: %s", event.EventType, event.UserID)
	return nil
}

func (p *EventPublisher) Close() error {
	if p == nil || !p.enabled {
		return nil
	}

	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			log.Printf("Error closing RabbitMQ channel: %v", err)
		}
	}

	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("error closing RabbitMQ connection: %w", err)
		}
	}

	return nil
}

type MockPublisher struct {
	Events []models.Event
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		Events: make([]models.Event, 0),
	}
}

func (m *MockPublisher) PublishEvent(event *models.Event) error {
	m.Events = append(m.Events, *event)
	return nil
}

func (m *MockPublisher) Close() error {
	return nil
}
