package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/defi-mexico/platform-backend/src/api/notify"
)

// The mailer consumes review-lifecycle events from the notification
// stream and sends one email per event. Delivery is best-effort: a failed
// send is logged and the event skipped.

func main() {
	cfg := loadConfig()

	rdb := mustRedis(cfg.RedisURL)
	provider := newHTTPProvider(cfg.MailEndpoint, cfg.MailAPIKey, cfg.MailFrom)

	ctx, cancel := context.WithCancel(context.Background())
	go listen(ctx, rdb, provider)

	log.Println("Mailer running. Press CTRL-C to exit.")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	cancel()
	log.Println("Mailer stopped")
}

func listen(ctx context.Context, rdb *redis.Client, provider EmailProvider) {
	lastID := "$"

	for {
		select {
		case <-ctx.Done():
			return
		default:
			streams, err := rdb.XRead(ctx, &redis.XReadArgs{
				Streams: []string{notify.Stream, lastID},
				Count:   10,
				Block:   5 * time.Second,
			}).Result()

			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					log.Printf("Error reading stream: %v", err)
				}
				continue
			}

			for _, stream := range streams {
				for _, msg := range stream.Messages {
					lastID = msg.ID
					ev := parseEvent(msg.Values)
					if ev.RecipientEmail == "" {
						continue
					}
					sendCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
					err := provider.SendEmail(sendCtx, ev.RecipientEmail, renderSubject(ev), renderBody(ev))
					cancel()
					if err != nil {
						log.Printf("Failed to send %s mail for proposal %d: %v", ev.Type, ev.ProposalID, err)
					} else {
						log.Printf("Sent %s mail for proposal %d to %s", ev.Type, ev.ProposalID, ev.RecipientEmail)
					}
				}
			}
		}
	}
}

func parseEvent(values map[string]interface{}) notify.Event {
	var ev notify.Event
	if v, ok := values["event"].(string); ok {
		ev.Type = v
	}
	if v, ok := values["recipient"].(string); ok {
		ev.RecipientEmail = v
	}
	if v, ok := values["content_type"].(string); ok {
		ev.ContentType = v
	}
	if v, ok := values["content_title"].(string); ok {
		ev.ContentTitle = v
	}
	if v, ok := values["review_notes"].(string); ok {
		ev.ReviewNotes = v
	}
	if v, ok := values["proposal_id"].(string); ok {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			ev.ProposalID = id
		}
	}
	return ev
}
