// Package watch is the push-based invalidation side of the roster store:
// every committed merge-write publishes the document id, and live readers
// re-fetch the full document on every tick. No polling.
package watch

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "roster:updated:"

type Hub struct {
	rdb *redis.Client
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{rdb: rdb}
}

// Publish signals all subscribers of the document that it changed.
func (h *Hub) Publish(ctx context.Context, docID string) error {
	return h.rdb.Publish(ctx, channelPrefix+docID, "updated").Err()
}

// Watch subscribes to a document's change ticks. The first tick is delivered
// immediately so the caller performs the initial read through the same path.
// The returned stop function ends the subscription and closes the channel.
func (h *Hub) Watch(ctx context.Context, docID string) (<-chan struct{}, func()) {
	sub := h.rdb.Subscribe(ctx, channelPrefix+docID)

	ticks := make(chan struct{}, 1)
	ticks <- struct{}{}

	go func() {
		defer close(ticks)
		for range sub.Channel() {
			select {
			case ticks <- struct{}{}:
			default:
				// a tick is already pending; the reader re-fetches the full
				// document anyway, so collapsing bursts is safe
			}
		}
	}()

	return ticks, func() { _ = sub.Close() }
}
