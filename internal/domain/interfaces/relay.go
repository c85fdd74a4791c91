package interfaces

import (
	"context"

	domaintypes "nestkeeper/internal/domain/types"
)

// Subscription is one live filtered stream of events from a relay. Events
// is closed when the subscription ends, whether by Close, by the relay, or
// by the context that opened it.
type Subscription interface {
	Events() <-chan domaintypes.Event
	Close()
}

// RelayClient is the relay transport capability the pairing core consumes.
// It covers exactly one relay; fan-out, retry and reconnection live outside
// this codebase.
type RelayClient interface {
	Subscribe(ctx context.Context, filter domaintypes.Filter) (Subscription, error)
	Publish(ctx context.Context, ev domaintypes.Event) error
	Close() error
}
