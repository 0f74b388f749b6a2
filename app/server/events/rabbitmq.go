package events

import (
	"context"
	"fmt"
	amqp "github.com/rabbitmq/amqp091-go"
	"sync"
)

type RabbitMQ struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string

	mu sync.Mutex // amqp.Channel 不能并发发布
}

func NewRabbitMQ(url string, queue string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	// 持久化队列
	if _, err = ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare rabbitmq queue %s: %w", queue, err)
	}

	return &RabbitMQ{
		conn:  conn,
		ch:    ch,
		queue: queue,
	}, nil
}

func (r *RabbitMQ) Publish(ctx context.Context, event Event) error {
	body, err := event.encode()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err = r.ch.PublishWithContext(ctx, "", r.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         string(event.Type),
		Timestamp:    event.At,
		Body:         body,
	}); err != nil {
		return fmt.Errorf("failed to publish event %s to rabbitmq: %w", event.Type, err)
	}
	return nil
}

func (r *RabbitMQ) Close() error {
	if err := r.ch.Close(); err != nil {
		_ = r.conn.Close()
		return fmt.Errorf("failed to close rabbitmq channel: %w", err)
	}
	return r.conn.Close()
}
