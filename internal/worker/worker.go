// Package worker holds the background loops: the remote sync sweep and the
// notification consumer handler.
package worker

import (
	"context"
	"log"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"

	"github.com/Domenick1991/flightdesk/internal/kafka"
)

type Syncer interface {
	SyncPending(ctx context.Context) (int, error)
}

type Sender interface {
	Send(ctx context.Context, event kafka.BookingEvent) error
}

// RunRemoteSync calls SyncPending every interval until ctx is done.
func RunRemoteSync(ctx context.Context, every time.Duration, syncer Syncer) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			SyncOnce(ctx, syncer)
		}
	}
}

func SyncOnce(ctx context.Context, syncer Syncer) {
	synced, err := syncer.SyncPending(ctx)
	if err != nil {
		log.Printf("remote sync error: %v", err)
		return
	}
	if synced > 0 {
		log.Printf("synced %d bookings to the remote store", synced)
	}
}

// NotificationHandler mails booking confirmations. Undecodable or
// undeliverable events are logged and skipped so one bad message does not
// stall the consumer group.
func NotificationHandler(sender Sender) kafka.Handler {
	return func(ctx context.Context, msg kafkaGo.Message) error {
		event, err := kafka.DecodeBookingEvent(msg.Value)
		if err != nil {
			log.Printf("decode event error: %v", err)
			return nil
		}
		if event.Type != kafka.EventBookingCreated {
			return nil
		}
		if err := sender.Send(ctx, event); err != nil {
			log.Printf("send confirmation for %s: %v", event.BookingID, err)
		}
		return nil
	}
}
