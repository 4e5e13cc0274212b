package event

import (
	"encoding/json"
	"log"
	"time"

	"github.com/streadway/amqp"
)

// Event types published to the study exchange. The type doubles as the
// routing key, so consumers bind with patterns like "study.session.*".
const (
	SessionStarted   = "study.session.started"
	SessionCompleted = "study.session.completed"
	SessionExited    = "study.session.exited"
	ResultRecorded   = "study.result.recorded"
	CardsGenerated   = "study.cards.generated"
)

type EventPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewEventPublisher(amqpURL, exchange string) (*EventPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &EventPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish sends one event to the topic exchange, routed by its type.
// Publishing is best-effort: callers log failures but never block the
// study flow on them.
func (p *EventPublisher) Publish(eventType string, payload interface{}) error {
	envelope := map[string]interface{}{
		"type":      eventType,
		"service":   "flashcard-service",
		"timestamp": time.Now(),
		"payload":   payload,
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	log.Printf("[EVENT] %s", eventType)

	return p.channel.Publish(
		p.exchange,
		eventType, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *EventPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
