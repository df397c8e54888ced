package app

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"contactbook/internal/services"
	"contactbook/pkg/rabbitmq"

	"github.com/streadway/amqp"
)

type amqpPublisher struct {
	client *rabbitmq.Client
}

// NewEventPublisher adapts a RabbitMQ client to services.EventPublisher.
func NewEventPublisher(client *rabbitmq.Client) services.EventPublisher {
	return &amqpPublisher{client: client}
}

func (p *amqpPublisher) PublishContactEvent(event services.ContactEvent) error {
	return p.client.PublishJSON(event)
}

// LogContactEvent decodes a delivered contact event and writes it to the audit log.
func LogContactEvent(msg amqp.Delivery) error {
	var event services.ContactEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("failed to decode contact event: %w", err)
	}
	if event.Type == "" || event.ContactID == "" {
		return fmt.Errorf("malformed contact event: %s", msg.Body)
	}
	log.Printf("Contact event %s: contact=%s user=%s at=%s", event.Type, event.ContactID, event.UserID, event.At.Format(time.RFC3339))
	return nil
}
