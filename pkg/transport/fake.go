package transport

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// ErrClosed is returned by FakeChannel once Close has been called.
var ErrClosed = errors.New("transport: channel closed")

// FakeChannel is an in-memory Channel for tests. Send appends JSON-encoded
// messages to Outbound; Receive blocks on an internal queue fed by Push,
// mirroring how a real socket blocks between inbound frames.
type FakeChannel struct {
	// Inbound seeds the queue Receive drains, in order, on the first method call.
	Inbound []interface{}

	mu       sync.Mutex
	Outbound []json.RawMessage
	queue    chan interface{}
	once     sync.Once
	closed   chan struct{}
}

func (f *FakeChannel) init() {
	f.once.Do(func() {
		f.queue = make(chan interface{}, len(f.Inbound)+16)
		f.closed = make(chan struct{})
		for _, v := range f.Inbound {
			f.queue <- v
		}
	})
}

// Push enqueues an additional inbound message for a future Receive call.
func (f *FakeChannel) Push(v interface{}) {
	f.init()
	select {
	case f.queue <- v:
	case <-f.closed:
	}
}

func (f *FakeChannel) Send(ctx context.Context, v interface{}) error {
	f.init()
	select {
	case <-f.closed:
		return ErrClosed
	default:
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.Outbound = append(f.Outbound, raw)
	f.mu.Unlock()
	return nil
}

func (f *FakeChannel) Receive(ctx context.Context, v interface{}) error {
	f.init()
	select {
	case next, ok := <-f.queue:
		if !ok {
			return ErrClosed
		}
		raw, err := json.Marshal(next)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, v)
	case <-f.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *FakeChannel) Close() error {
	f.init()
	select {
	case <-f.closed:
	default:
		close(f.closed)
	}
	return nil
}

// OutboundSnapshot returns a copy of the messages sent so far.
func (f *FakeChannel) OutboundSnapshot() []json.RawMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]json.RawMessage, len(f.Outbound))
	copy(out, f.Outbound)
	return out
}
