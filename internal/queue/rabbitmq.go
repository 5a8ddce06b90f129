package queue

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

type QueueName string

const (
	QueueMail QueueName = "mail_queue"
	// Mail jobs that were rejected or ran out of retries land here for inspection.
	QueueMailDead QueueName = "mail_queue.dead"
)

const (
	MAX_QUEUE_RETRY = 3
)

// RabbitMQ wraps one connection and one channel. Publishes are serialised
// since api handlers and mail workers share the channel.
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	pubMu   sync.Mutex
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	r := &RabbitMQ{conn: conn, channel: channel}
	if err := r.declareMailQueues(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return r, nil
}

// declareMailQueues sets up the durable mail queue and its dead letter queue.
// A Nack without requeue on QueueMail moves the message to QueueMailDead.
func (r *RabbitMQ) declareMailQueues() error {
	if _, err := r.channel.QueueDeclare(string(QueueMailDead), true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", QueueMailDead, err)
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": string(QueueMailDead),
	}
	if _, err := r.channel.QueueDeclare(string(QueueMail), true, false, false, false, args); err != nil {
		return fmt.Errorf("declare %s: %w", QueueMail, err)
	}

	return nil
}

func (r *RabbitMQ) Close() error {
	if err := r.channel.Close(); err != nil {
		return err
	}
	return r.conn.Close()
}

// Publish sends a persistent JSON message through the default exchange.
func (r *RabbitMQ) Publish(ctx context.Context, queue QueueName, body []byte) error {
	r.pubMu.Lock()
	defer r.pubMu.Unlock()

	return r.channel.PublishWithContext(ctx, "", string(queue), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
}

// Consume starts a manual-ack consumer with a prefetch of one, so each
// worker holds a single unacknowledged job at a time.
// Docs: https://www.rabbitmq.com/tutorials/tutorial-two-go#fair-dispatch
func (r *RabbitMQ) Consume(queue QueueName) (<-chan amqp.Delivery, error) {
	if err := r.channel.Qos(1, 0, false); err != nil {
		return nil, err
	}

	return r.channel.Consume(string(queue), "", false, false, false, false, nil)
}

func (r *RabbitMQ) Ack(delivery amqp.Delivery) error {
	return delivery.Ack(false)
}

// DeadLetter rejects the delivery without requeue.
func (r *RabbitMQ) DeadLetter(delivery amqp.Delivery) error {
	return delivery.Nack(false, false)
}
