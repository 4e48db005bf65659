package vtsgo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/zliel/vtsgo/internal/protocol"
)

// Event names the API allows subscribing to.
const (
	EventTest                  = "TestEvent"
	EventModelLoaded           = "ModelLoadedEvent"
	EventTrackingStatusChanged = "TrackingStatusChangedEvent"
	EventBackgroundChanged     = "BackgroundChangedEvent"
	EventModelConfigChanged    = "ModelConfigChangedEvent"
	EventModelMoved            = "ModelMovedEvent"
	EventModelOutline          = "ModelOutlineEvent"
)

// eventBufferSizes enumerates every subscribable event with its delivery
// buffer depth. ModelOutlineEvent fires every frame, so it gets a much
// deeper buffer than the low-frequency events; when a buffer is full the
// oldest backlog is not grown, the new frame is dropped.
var eventBufferSizes = map[string]int{
	EventTest:                  16,
	EventModelLoaded:           16,
	EventTrackingStatusChanged: 16,
	EventBackgroundChanged:     16,
	EventModelConfigChanged:    16,
	EventModelMoved:            16,
	EventModelOutline:          256,
}

// isEventName reports whether a message type is a subscribable event frame.
func isEventName(messageType string) bool {
	_, ok := eventBufferSizes[messageType]
	return ok
}

// Event is one host-pushed event frame.
type Event struct {
	// Name is the event name, e.g. "ModelMovedEvent".
	Name string
	// Data is the raw event payload; its shape depends on the event.
	Data json.RawMessage
}

// EventHandler receives subscribed events. Each subscription runs its
// handler on a dedicated goroutine, one event at a time and in arrival
// order. Handlers may issue client requests.
type EventHandler func(Event)

// subscription is the per-event delivery state. Frames flow from the reader
// goroutine into frames; halt is closed to stop the listener.
type subscription struct {
	name     string
	frames   chan *protocol.Envelope
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func newSubscription(name string) *subscription {
	return &subscription{
		name:   name,
		frames: make(chan *protocol.Envelope, eventBufferSizes[name]),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (s *subscription) halt() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// eventSubscriptionPayload is the wire shape of an EventSubscriptionRequest.
type eventSubscriptionPayload struct {
	EventName string `json:"eventName"`
	Subscribe bool   `json:"subscribe"`
	Config    any    `json:"config,omitempty"`
}

// EventSubscriptionData is the acknowledgment payload of a subscribe or
// unsubscribe request.
type EventSubscriptionData struct {
	SubscribedEventCount int      `json:"subscribedEventCount"`
	SubscribedEvents     []string `json:"subscribedEvents"`
}

// Subscribe opts into a host-pushed event stream. The subscription request
// itself is a normal synchronous call; once the host acknowledges it, a
// listener goroutine starts delivering matching event frames to handler.
// config is event-specific and may be nil; see the VTube Studio event
// documentation for the per-event config shapes.
//
// Subscribing to an event that already has an active listener fails with
// ErrAlreadySubscribed; unsubscribe first to change the handler or config.
func (c *Client) Subscribe(ctx context.Context, eventName string, handler EventHandler, config any, opts ...CallOption) (*EventSubscriptionData, error) {
	if !isEventName(eventName) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, eventName)
	}
	if handler == nil {
		return nil, fmt.Errorf("vtsgo: nil event handler")
	}

	// Register the delivery channel before asking the host to subscribe,
	// so frames arriving right after the acknowledgment are buffered
	// rather than dropped.
	sub := newSubscription(eventName)
	c.mu.Lock()
	if c.state == stateClosed {
		c.mu.Unlock()
		return nil, c.closeReasonLocked()
	}
	if _, exists := c.subs[eventName]; exists {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrAlreadySubscribed, eventName)
	}
	c.subs[eventName] = sub
	c.mu.Unlock()

	o := applyCallOptions(opts)
	var data EventSubscriptionData
	err := c.call(ctx, protocol.TypeEventSubscriptionRequest, o.requestID, eventSubscriptionPayload{
		EventName: eventName,
		Subscribe: true,
		Config:    config,
	}, &data)
	if err != nil {
		c.mu.Lock()
		if c.subs[eventName] == sub {
			delete(c.subs, eventName)
		}
		c.mu.Unlock()
		return nil, err
	}

	c.log.Debug().Str("event", eventName).Msg("subscription listener started")
	go c.runListener(sub, handler)
	return &data, nil
}

// Unsubscribe opts out of an event stream. After the host acknowledges, the
// listener is stopped; it finishes at most the one event it was already
// handling, and no handler invocation happens after Unsubscribe returns.
func (c *Client) Unsubscribe(ctx context.Context, eventName string, opts ...CallOption) (*EventSubscriptionData, error) {
	if !isEventName(eventName) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, eventName)
	}

	o := applyCallOptions(opts)
	var data EventSubscriptionData
	err := c.call(ctx, protocol.TypeEventSubscriptionRequest, o.requestID, eventSubscriptionPayload{
		EventName: eventName,
		Subscribe: false,
	}, &data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	sub := c.subs[eventName]
	delete(c.subs, eventName)
	c.mu.Unlock()
	if sub != nil {
		sub.halt()
		<-sub.done
		c.log.Debug().Str("event", eventName).Msg("subscription listener stopped")
	}
	return &data, nil
}

// Subscribed reports whether an event currently has an active listener.
func (c *Client) Subscribed(eventName string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.subs[eventName]
	return ok
}

// runListener drains one subscription's delivery channel into its handler
// until the subscription is halted.
func (c *Client) runListener(sub *subscription, handler EventHandler) {
	defer close(sub.done)
	for {
		select {
		case <-sub.stop:
			return
		case env := <-sub.frames:
			// A halt that raced the frame wins: cancelled listeners
			// deliver nothing further.
			select {
			case <-sub.stop:
				return
			default:
			}
			handler(Event{Name: env.MessageType, Data: env.Data})
		}
	}
}

// deliverEvent hands an inbound event frame to its subscription, dropping it
// when nothing is subscribed or the delivery buffer is full.
func (c *Client) deliverEvent(env *protocol.Envelope) {
	c.mu.Lock()
	sub := c.subs[env.MessageType]
	c.mu.Unlock()
	if sub == nil {
		c.log.Debug().Str("event", env.MessageType).Msg("dropping event with no active subscription")
		return
	}
	select {
	case sub.frames <- env:
	default:
		c.log.Warn().Str("event", env.MessageType).Msg("event buffer full, dropping frame")
	}
}
