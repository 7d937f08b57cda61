// internal/adapter/events/bus.go

package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// SubjectLocationsChanged carries invalidation events: after any
// successful mutation the directory publishes here and listeners
// re-query the store rather than patching local state.
const SubjectLocationsChanged = "locations.changed"

// ChangeEvent describes a single mutation of the location set.
type ChangeEvent struct {
	Op string    `json:"op"` // "create", "update", "delete" or "import"
	ID string    `json:"id,omitempty"`
	At time.Time `json:"at"`
}

// Publisher is the mutation-event side of the bus.
type Publisher interface {
	PublishLocationsChanged(ctx context.Context, event ChangeEvent) error
}

// Bus publishes and subscribes to location change events over NATS.
type Bus struct {
	nc     *nats.Conn
	logger *zap.Logger
}

// NewBus creates a new event bus
func NewBus(nc *nats.Conn, logger *zap.Logger) *Bus {
	return &Bus{
		nc:     nc,
		logger: logger,
	}
}

// PublishLocationsChanged publishes a change event. Failures are
// logged, not fatal: the store is already mutated and listeners will
// converge on their next full query.
func (b *Bus) PublishLocationsChanged(_ context.Context, event ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := b.nc.Publish(SubjectLocationsChanged, payload); err != nil {
		b.logger.Warn("failed to publish change event",
			zap.String("subject", SubjectLocationsChanged),
			zap.Error(err))
		return err
	}

	return nil
}

// SubscribeLocationsChanged registers a handler for change events and
// returns the subscription so the caller can unsubscribe on teardown.
func (b *Bus) SubscribeLocationsChanged(handler func(ChangeEvent)) (*nats.Subscription, error) {
	return b.nc.Subscribe(SubjectLocationsChanged, func(msg *nats.Msg) {
		var event ChangeEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			b.logger.Warn("dropping malformed change event", zap.Error(err))
			return
		}
		handler(event)
	})
}
