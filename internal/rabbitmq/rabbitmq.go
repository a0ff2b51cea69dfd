package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"booking_service/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Client is the AMQP-backed alternative to the in-process queue: same
// Enqueue/Dequeue surface, but requests survive a broker round trip. One
// Client is both the publisher and the sole consumer of its queue.
type Client struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	queue      amqp.Queue
	deliveries <-chan amqp.Delivery
}

func New(urlForConn string, queueName string) (*Client, error) {
	const op = "rabbitmq.New"

	conn, err := amqp.Dial(urlForConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	q, err := ch.QueueDeclare(
		queueName, true, false, false, false, nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	deliveries, err := ch.Consume(
		q.Name,
		"",    // consumer name
		false, // auto-ack выключен (чтобы подтверждать вручную)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Client{
		conn:       conn,
		channel:    ch,
		queue:      q,
		deliveries: deliveries,
	}, nil
}

func (c *Client) Enqueue(ctx context.Context, req models.BookingRequest) error {
	const op = "rabbitmq.Enqueue"

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return c.channel.PublishWithContext(
		ctx,
		"",
		c.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
}

// Dequeue blocks until a message arrives or ctx is done. Messages that fail
// to decode are rejected without requeue and skipped.
func (c *Client) Dequeue(ctx context.Context) (models.BookingRequest, error) {
	const op = "rabbitmq.Dequeue"

	for {
		select {
		case <-ctx.Done():
			return models.BookingRequest{}, ctx.Err()
		case msg, ok := <-c.deliveries:
			if !ok {
				return models.BookingRequest{}, fmt.Errorf("%s: delivery channel closed", op)
			}

			var req models.BookingRequest
			if err := json.Unmarshal(msg.Body, &req); err != nil {
				_ = msg.Nack(false, false)
				continue
			}

			_ = msg.Ack(false)

			return req, nil
		}
	}
}

func (c *Client) Close() {
	_ = c.channel.Close()
	_ = c.conn.Close()
}
