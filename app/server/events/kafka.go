package events

import (
	"context"
	"fmt"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Kafka struct {
	w messageWriter
}

func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{}, // 同一篇文章的事件进入同一分区
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (k *Kafka) Publish(ctx context.Context, event Event) error {
	body, err := event.encode()
	if err != nil {
		return err
	}

	if err = k.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ArticleID),
		Value: body,
		Time:  event.At,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}); err != nil {
		return fmt.Errorf("failed to write event %s to kafka: %w", event.Type, err)
	}
	return nil
}

func (k *Kafka) Close() error {
	return k.w.Close()
}
