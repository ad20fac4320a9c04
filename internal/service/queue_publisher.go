// Package queue_publisher publishes domain events to RabbitMQ.  Errors
// are logged and returned so callers can ignore failures without
// interrupting the main request flow: events fire after the database
// transaction commits, so a broker outage never fails a booking.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/cinehub/ticket-booking/internal/queue"
)

// PublishBookingCreated publishes a BookingCreatedEvent to the
// booking.events queue.  Messages are persistent.
func PublishBookingCreated(ctx context.Context, event q.BookingCreatedEvent) error {
	event.Type = q.EventBookingCreated
	return publish(ctx, event)
}

// PublishBookingCancelled publishes a BookingCancelledEvent to the
// booking.events queue.
func PublishBookingCancelled(ctx context.Context, event q.BookingCancelledEvent) error {
	event.Type = q.EventBookingCancelled
	return publish(ctx, event)
}

func publish(ctx context.Context, event interface{}) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(q.QueueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", q.QueueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
