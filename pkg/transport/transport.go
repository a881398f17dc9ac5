// Package transport abstracts the duplex command/state-update channel a
// simulated UAV uses to talk to its backend, so pkg/simulator can be
// exercised in tests without a live socket.
package transport

import "context"

// Channel is a JSON message duplex: Send pushes an outbound message (a state
// update or command response), Receive blocks for the next inbound command.
// Implementations must allow Send to be called from several goroutines at
// once alongside a single Receive caller (never two Receives at once).
type Channel interface {
	Send(ctx context.Context, v interface{}) error
	Receive(ctx context.Context, v interface{}) error
	Close() error
}

// Dialer opens a new Channel to a backend endpoint.
type Dialer interface {
	Dial(ctx context.Context, url string) (Channel, error)
}
