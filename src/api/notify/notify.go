package notify

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Stream carrying notification events to the mailer worker.
const Stream = "defimx.notifications"

// Event types
const (
	EventSubmitted = "submitted"
	EventApproved  = "approved"
	EventRejected  = "rejected"
)

type Event struct {
	Type           string
	RecipientEmail string
	ContentType    string
	ContentTitle   string
	ReviewNotes    string
	ProposalID     uint64
}

// Dispatcher delivers review-lifecycle notifications. Delivery is
// best-effort: callers log failures and move on.
type Dispatcher interface {
	Notify(ctx context.Context, ev Event) error
}

// RedisDispatcher publishes events onto a Redis stream; the mailer worker
// reads the stream and sends the actual email.
type RedisDispatcher struct {
	rdb *redis.Client
}

func NewRedisDispatcher(rdb *redis.Client) *RedisDispatcher {
	return &RedisDispatcher{rdb: rdb}
}

func (d *RedisDispatcher) Notify(ctx context.Context, ev Event) error {
	_, err := d.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: Stream,
		Values: map[string]interface{}{
			"event":         ev.Type,
			"recipient":     ev.RecipientEmail,
			"content_type":  ev.ContentType,
			"content_title": ev.ContentTitle,
			"review_notes":  ev.ReviewNotes,
			"proposal_id":   ev.ProposalID,
		},
	}).Result()
	return err
}
