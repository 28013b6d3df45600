package playback

import (
	"context"
	"time"
)

// DefaultInterval is the default polling cadence.
const DefaultInterval = 50 * time.Millisecond

// TickFunc receives one sample of the transport.
type TickFunc func(positionMs, durationMs int64)

// Poller samples a Transport on a fixed interval.
type Poller struct {
	transport Transport
	interval  time.Duration
}

// NewPoller creates a Poller. A non-positive interval uses DefaultInterval.
func NewPoller(t Transport, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{transport: t, interval: interval}
}

// Interval returns the polling cadence.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Ender is implemented by transports that know when playback has finished.
type Ender interface {
	Ended() bool
}

// Run calls fn once immediately and then on every tick until ctx is done.
// Ticks while the transport is paused are skipped. If the transport is an
// Ender, Run delivers a final sample once it has ended and returns nil.
// Otherwise it returns ctx.Err().
func (p *Poller) Run(ctx context.Context, fn TickFunc) error {
	fn(p.transport.PositionMs(), p.transport.DurationMs())

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if p.ended() {
				fn(p.transport.PositionMs(), p.transport.DurationMs())
				return nil
			}
			if !p.transport.Playing() {
				continue
			}
			fn(p.transport.PositionMs(), p.transport.DurationMs())
		}
	}
}

func (p *Poller) ended() bool {
	e, ok := p.transport.(Ender)
	return ok && e.Ended()
}
