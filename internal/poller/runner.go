// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run polls once immediately, then once per tick, and emits every result
// on out. One goroutine per poller. No overlap: a slow poll delays the
// next tick instead of stacking. Returns when ctx is done.
func (p *Poller[T]) Run(ctx context.Context, out chan<- T) {
	if !p.emit(ctx, out) {
		return
	}

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.emit(ctx, out) {
				return
			}
		}
	}
}

func (p *Poller[T]) emit(ctx context.Context, out chan<- T) bool {
	res := p.PollOnce(ctx)
	select {
	case <-ctx.Done():
		return false
	case out <- res:
		return true
	}
}
