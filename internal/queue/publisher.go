package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends booking events to RabbitMQ. Publishing is strictly
// best-effort: every failure is logged and returned, and callers are
// expected to ignore the error rather than fail the request that
// triggered the event.
type Publisher struct {
	url string
	log *zap.Logger
}

func NewPublisher(url string, log *zap.Logger) *Publisher {
	return &Publisher{
		url: url,
		log: log.With(zap.String("component", "queue")),
	}
}

// PublishBookingCreated publishes event to the booking.created queue.
// Messages are persistent so they survive a broker restart.
func (p *Publisher) PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("Queue dial failed", zap.Error(err))
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("Queue channel open failed", zap.Error(err))
		return err
	}
	defer ch.Close()

	// Idempotent declare so publisher and consumers can start in any order
	if _, err := ch.QueueDeclare(
		BookingCreatedQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		p.log.Warn("Queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Warn("Queue event marshal failed", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                  // default exchange
		BookingCreatedQueue, // routing key = queue name
		false,               // mandatory
		false,               // immediate
		pub,
	); err != nil {
		p.log.Warn("Queue publish failed", zap.Error(err))
		return err
	}

	p.log.Debug("Booking event published", zap.String("booking_id", event.BookingID))
	return nil
}
