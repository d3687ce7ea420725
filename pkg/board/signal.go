package board

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RequestName broadcasts the request-name signal to every listening surface.
// Delivery is fire-and-forget; the returned count is the number of surfaces that
// received it (0 means nobody was listening).
func (c *Client) RequestName(ctx context.Context) (int64, error) {
	n, err := c.rdb.Publish(ctx, RequestNameChannel(c.profile), RequestNameMessage).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to publish request-name signal: %w", err)
	}
	return n, nil
}

// RequestSubscription delivers request-name signals.
// Caller must call Close() when done to clean up resources.
type RequestSubscription struct {
	requests <-chan struct{}
	cancel   func()
	once     sync.Once
}

// Requests returns the channel of request-name signals.
// The channel is closed when the subscription is closed or the context is cancelled.
func (s *RequestSubscription) Requests() <-chan struct{} {
	return s.requests
}

// Close stops the subscription. Implements io.Closer. Safe to call multiple times.
func (s *RequestSubscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// SubscribeRequests subscribes to request-name signals for this profile.
// The subscription is confirmed with Redis before returning, so a signal published
// after SubscribeRequests returns is not missed.
func (c *Client) SubscribeRequests(ctx context.Context) (*RequestSubscription, error) {
	pubsub := c.rdb.Subscribe(ctx, RequestNameChannel(c.profile))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to request-name signals: %w", err)
	}

	requests := make(chan struct{}, 10)
	subCtx, cancel := context.WithCancel(ctx)

	go func() {
		defer close(requests)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				select {
				case requests <- struct{}{}:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &RequestSubscription{requests: requests, cancel: cancel}, nil
}

// DocumentSubscription delivers every document saved for the profile.
// Caller must call Close() when done to clean up resources.
type DocumentSubscription struct {
	events <-chan *Document
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of saved documents.
func (s *DocumentSubscription) Events() <-chan *Document {
	return s.events
}

// Errors returns the channel of non-fatal subscription errors.
// The subscription continues after errors; the offending message is skipped.
func (s *DocumentSubscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription. Implements io.Closer. Safe to call multiple times.
func (s *DocumentSubscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// SubscribeDocuments subscribes to document save events for this profile.
// Events are delivered on a buffered channel (size 10). Redis Pub/Sub is
// at-most-once, so a slow subscriber may miss intermediate saves; the next
// event always carries the whole latest document.
func (c *Client) SubscribeDocuments(ctx context.Context) (*DocumentSubscription, error) {
	pubsub := c.rdb.Subscribe(ctx, DocumentEventsChannel(c.profile))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to document events: %w", err)
	}

	events := make(chan *Document, 10)
	errs := make(chan error, 10)
	subCtx, cancel := context.WithCancel(ctx)

	go func() {
		defer close(events)
		defer close(errs)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				doc, err := decodeEvent(msg)
				if err != nil {
					select {
					case errs <- err:
					case <-subCtx.Done():
						return
					}
					continue
				}
				select {
				case events <- doc:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &DocumentSubscription{events: events, errors: errs, cancel: cancel}, nil
}

// decodeEvent normalizes the event payload so subscribers only ever see valid documents.
func decodeEvent(msg *redis.Message) (*Document, error) {
	var raw any
	if err := json.Unmarshal([]byte(msg.Payload), &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document event: %w", err)
	}
	return Normalize(raw).Document, nil
}
