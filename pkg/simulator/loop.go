// Package simulator drives a single uav.State through a 20Hz physics tick
// loop and a reconnecting duplex channel to a backend.
package simulator

import (
	"context"
	"sync"
	"time"

	"github.com/uascommand/mission-system/pkg/logger"
	"github.com/uascommand/mission-system/pkg/transport"
	"github.com/uascommand/mission-system/pkg/uav"
)

// Options configures a Sim's connection and tick behavior.
type Options struct {
	BackendURL     string
	ReconnectDelay time.Duration
	TickRate       time.Duration
}

// DefaultOptions carries the reference tick rate and reconnect backoff
// (20Hz physics tick, 3s reconnect backoff).
var DefaultOptions = Options{
	ReconnectDelay: 3 * time.Second,
	TickRate:       50 * time.Millisecond,
}

// Sim owns one UAV's state and keeps it synchronized with a backend over a
// reconnecting Channel. State access is guarded by mu since the tick loop and
// the inbound command reader run concurrently.
type Sim struct {
	dialer transport.Dialer
	opts   Options

	mu    sync.Mutex
	state *uav.State

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a Sim for the given UAV starting state.
func New(dialer transport.Dialer, state *uav.State, opts Options) *Sim {
	if opts.TickRate == 0 {
		opts.TickRate = DefaultOptions.TickRate
	}
	if opts.ReconnectDelay == 0 {
		opts.ReconnectDelay = DefaultOptions.ReconnectDelay
	}
	return &Sim{
		dialer:   dialer,
		opts:     opts,
		state:    state,
		stopChan: make(chan struct{}),
	}
}

// Run connects to the backend and services it until ctx is canceled or Stop
// is called, reconnecting with a fixed backoff on any channel error (mirrors
// the original `connect_to_backend` retry loop).
func (s *Sim) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		default:
		}

		logger.Infof("simulator %s: connecting to %s", s.state.ID, s.opts.BackendURL)
		ch, err := s.dialer.Dial(ctx, s.opts.BackendURL)
		if err != nil {
			logger.Errorf("simulator %s: connection error: %v", s.state.ID, err)
			if !s.sleep(ctx, s.opts.ReconnectDelay) {
				return
			}
			continue
		}

		logger.Successf("simulator %s: connected", s.state.ID)
		s.serve(ctx, ch)
		ch.Close()

		if !s.sleep(ctx, s.opts.ReconnectDelay) {
			return
		}
	}
}

// Stop halts Run at the next opportunity.
func (s *Sim) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}

// serve runs the tick loop and the inbound command reader for a single
// connection lifetime, returning once the reader stops. A reader failure
// cancels the session and so also stops the tick loop; a tick loop failure
// stops only the tick loop, and serve keeps waiting on the reader.
func (s *Sim) serve(ctx context.Context, ch transport.Channel) {
	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.tickLoop(sessionCtx, ch)
	}()

	s.readLoop(sessionCtx, ch, cancel)
	s.wg.Wait()
}

// tickLoop advances physics and emits a state_update at the configured rate,
// tracking true elapsed time rather than the nominal tick rate so drift from
// scheduling jitter doesn't accumulate.
func (s *Sim) tickLoop(ctx context.Context, ch transport.Channel) {
	ticker := time.NewTicker(s.opts.TickRate)
	defer ticker.Stop()

	s.mu.Lock()
	last := s.state.LastUpdate
	s.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			s.mu.Lock()
			s.state.LastUpdate = now
			s.state.UpdatePhysics(dt)
			msg := newStateUpdateMessage(s.state, now.UTC().Format(time.RFC3339Nano))
			s.mu.Unlock()

			if err := ch.Send(ctx, msg); err != nil {
				logger.Errorf("simulator %s: send error: %v", s.state.ID, err)
				return
			}
		}
	}
}

// readLoop processes inbound commands until the channel errors or ctx ends,
// at which point it cancels the session so tickLoop also unwinds.
func (s *Sim) readLoop(ctx context.Context, ch transport.Channel, cancel context.CancelFunc) {
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		default:
		}

		var cmd CommandMessage
		if err := ch.Receive(ctx, &cmd); err != nil {
			logger.Errorf("simulator %s: receive error: %v", s.state.ID, err)
			return
		}
		if cmd.Type != "command" {
			continue
		}

		s.mu.Lock()
		resp := s.state.HandleCommand(uav.Command{Name: cmd.Command, Params: cmd.Params})
		s.mu.Unlock()

		if err := ch.Send(ctx, newCommandResponseMessage(resp)); err != nil {
			logger.Errorf("simulator %s: response send error: %v", s.state.ID, err)
			return
		}
	}
}

// sleep blocks for d or until ctx/stopChan fires, reporting whether it should
// continue retrying.
func (s *Sim) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	case <-timer.C:
		return true
	}
}

// State returns a snapshot copy of the UAV's current state, safe to read
// concurrently with Run.
func (s *Sim) State() uav.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.state
}
