package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const receiptQueue = "turfbook.booking-receipts"

// StartBookingConsumer connects to RabbitMQ, binds a durable queue to the
// events exchange, and emails a receipt for every confirmed booking. It runs
// a reconnect loop with exponential backoff and returns only when ctx is
// cancelled. Malformed messages are rejected without requeue so the consumer
// keeps operating.
func StartBookingConsumer(ctx context.Context, url string, mailer Mailer) {
	backoff := time.Second
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("booking-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(ctx, conn, mailer); err != nil {
			log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
		}
		_ = conn.Close()

		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, mailer Mailer) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(eventsExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := ch.QueueDeclare(receiptQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(receiptQueue, RoutingKeyBookingConfirmed, eventsExchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	deliveries, err := ch.Consume(receiptQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}

			var ev BookingConfirmedEvent
			if err := json.Unmarshal(d.Body, &ev); err != nil {
				log.Printf("booking-consumer: dropping malformed message: %v", err)
				_ = d.Reject(false)
				continue
			}

			if ev.UserEmail != "" {
				if err := mailer.SendBookingReceipt(ctx, ev.UserEmail, ev); err != nil {
					log.Printf("booking-consumer: receipt for booking %s failed: %v", ev.BookingID, err)
				}
			}
			_ = d.Ack(false)
		}
	}
}
