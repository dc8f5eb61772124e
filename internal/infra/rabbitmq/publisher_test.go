package rabbitmq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"eco-quest-service/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

type recordingChannel struct {
	exchange string
	key      string
	msgs     []amqp.Publishing
	closed   bool
}

func (c *recordingChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange = exchange
	c.key = key
	c.msgs = append(c.msgs, msg)
	return nil
}

func (c *recordingChannel) Close() error {
	c.closed = true
	return nil
}

func TestPublishCompletion(t *testing.T) {
	ch := &recordingChannel{}
	p := NewPublisher(ch, "eco-quest")

	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	err := p.PublishCompletion(context.Background(), domain.CompletionEvent{
		PlayerID:   "p1",
		Username:   "Ada",
		Completion: domain.Completion{Kind: domain.KindQuiz, Score: 5, PointsEarned: 100},
		OccurredAt: at,
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if ch.exchange != "eco-quest" || ch.key != RoutingKeyCompleted || len(ch.msgs) != 1 {
		t.Fatalf("unexpected publish to %s/%s (%d msgs)", ch.exchange, ch.key, len(ch.msgs))
	}

	var got domain.CompletionEvent
	if err := json.Unmarshal(ch.msgs[0].Body, &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.PlayerID != "p1" || got.Completion.PointsEarned != 100 || !got.OccurredAt.Equal(at) {
		t.Fatalf("unexpected event %+v", got)
	}
	if ch.msgs[0].ContentType != "application/json" {
		t.Fatalf("unexpected content type %q", ch.msgs[0].ContentType)
	}

	if err := p.Close(); err != nil || !ch.closed {
		t.Fatalf("expected channel closed, err=%v", err)
	}
}
