// internal/poller/poller.go
package poller

import (
	"context"
	"errors"
	"time"
)

// PollFunc performs one poll cycle and reports its outcome as a value.
// Failures are part of T; a PollFunc never aborts the poller.
type PollFunc[T any] func(ctx context.Context) T

// Config is the minimal runtime config the poller needs.
type Config struct {
	Name     string
	Interval time.Duration
}

// Poller is a dumb, clock-driven caller of one PollFunc.
type Poller[T any] struct {
	cfg  Config
	poll PollFunc[T]
}

// New creates a poller with immutable config.
func New[T any](cfg Config, poll PollFunc[T]) (*Poller[T], error) {
	if cfg.Name == "" {
		return nil, errors.New("poller: name required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if poll == nil {
		return nil, errors.New("poller: poll func required")
	}
	return &Poller[T]{cfg: cfg, poll: poll}, nil
}

// Name returns the configured poller name.
func (p *Poller[T]) Name() string { return p.cfg.Name }

// Interval returns the configured tick interval.
func (p *Poller[T]) Interval() time.Duration { return p.cfg.Interval }

// PollOnce performs exactly one poll cycle.
func (p *Poller[T]) PollOnce(ctx context.Context) T {
	return p.poll(ctx)
}
