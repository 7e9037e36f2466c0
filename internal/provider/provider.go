package provider

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

var ErrProviderNotFound = errors.New("provider not found")

// Provider is the wallet provider the adapter wraps.
type Provider interface {
	// Request dispatches one method call and decodes the response into result.
	Request(ctx context.Context, method string, params any, result any) error
	// AddListener registers a process wide handler for one event name.
	AddListener(ctx context.Context, event EventName, listener func(json.RawMessage)) error
	Close()
}

type State int

const (
	StateUninitialized State = iota
	StateAwaitingReadiness
	StateReady
	StateNeverReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateAwaitingReadiness:
		return "awaiting-readiness"
	case StateReady:
		return "ready"
	case StateNeverReady:
		return "never-ready"
	}
	return "unknown"
}

// Context owns the provider instance and its readiness lifecycle:
// uninitialized -> awaiting-readiness -> ready | never-ready.
// Ready and never-ready are terminal.
type Context struct {
	mu       sync.Mutex
	state    State
	provider Provider
	done     chan struct{}
}

func NewContext() *Context {
	return &Context{
		state: StateUninitialized,
		done:  make(chan struct{}),
	}
}

// NewReadyContext wraps a provider that is already present.
func NewReadyContext(p Provider) *Context {
	c := NewContext()
	c.Initialized(p)
	return c
}

// Await marks the start of the readiness wait.
func (c *Context) Await() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateUninitialized {
		c.state = StateAwaitingReadiness
	}
}

// Initialized delivers the provider. It is ignored once the context settled.
func (c *Context) Initialized(p Provider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateReady || c.state == StateNeverReady {
		log.Warn().Str("state", c.state.String()).Msg("Provider initialized after readiness settled, ignoring")
		return
	}
	c.provider = p
	c.state = StateReady
	close(c.done)
}

// ContentLoaded is the host signal after which a missing provider is final.
func (c *Context) ContentLoaded() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateReady || c.state == StateNeverReady {
		return
	}
	log.Error().Msg("Provider was not initialized before content load")
	c.state = StateNeverReady
	close(c.done)
}

func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Ready blocks until the provider is available. It fails with
// ErrProviderNotFound once the context is never-ready.
func (c *Context) Ready(ctx context.Context) (Provider, error) {
	c.Await()
	select {
	case <-c.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return nil, ErrProviderNotFound
	}
	return c.provider, nil
}

// Close closes the provider if it was ever delivered.
func (c *Context) Close() {
	c.mu.Lock()
	p := c.provider
	c.mu.Unlock()
	if p != nil {
		p.Close()
	}
}
