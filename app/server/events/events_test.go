package events

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/segmentio/kafka-go"
	"testing"
	"time"
)

// =============================================================================
// Mock Writer
// =============================================================================

type mockWriter struct {
	WriteMessagesFunc func(ctx context.Context, msgs ...kafka.Message) error
	closed            bool
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	return m.WriteMessagesFunc(ctx, msgs...)
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

// =============================================================================
// Kafka Tests
// =============================================================================

func TestKafka_Publish(t *testing.T) {
	var got []kafka.Message
	w := &mockWriter{
		WriteMessagesFunc: func(_ context.Context, msgs ...kafka.Message) error {
			got = append(got, msgs...)
			return nil
		},
	}
	k := &Kafka{w: w}

	liked := true
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	err := k.Publish(context.Background(), Event{
		Type:      LikeToggled,
		ArticleID: "article-1",
		UserID:    "user-1",
		Liked:     &liked,
		At:        at,
	})
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("messages written = %d, want 1", len(got))
	}
	msg := got[0]
	if string(msg.Key) != "article-1" {
		t.Errorf("Key = %q, want article-1", msg.Key)
	}
	if len(msg.Headers) != 1 || string(msg.Headers[0].Value) != string(LikeToggled) {
		t.Errorf("Headers = %v, want type=%s", msg.Headers, LikeToggled)
	}

	var decoded map[string]any
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if decoded["type"] != "like.toggled" || decoded["userId"] != "user-1" || decoded["liked"] != true {
		t.Errorf("body = %v", decoded)
	}
}

func TestKafka_PublishError(t *testing.T) {
	writeErr := errors.New("broker down")
	k := &Kafka{w: &mockWriter{
		WriteMessagesFunc: func(context.Context, ...kafka.Message) error {
			return writeErr
		},
	}}

	err := k.Publish(context.Background(), Event{Type: ArticleDeleted, ArticleID: "a"})
	if !errors.Is(err, writeErr) {
		t.Errorf("Publish() error = %v, want wrapped %v", err, writeErr)
	}
}

func TestKafka_Close(t *testing.T) {
	w := &mockWriter{}
	k := &Kafka{w: w}

	if err := k.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !w.closed {
		t.Error("Close() should close the writer")
	}
}

// =============================================================================
// Event Tests
// =============================================================================

func TestEvent_LikedOmittedForOtherTypes(t *testing.T) {
	e := Event{Type: ArticleCreated, ArticleID: "a", UserID: "u"}
	body, err := e.encode()
	if err != nil {
		t.Fatalf("encode() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if _, ok := decoded["liked"]; ok {
		t.Errorf("body should not carry liked: %s", body)
	}
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	if err := p.Publish(context.Background(), Event{Type: CommentCreated}); err != nil {
		t.Errorf("Publish() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
