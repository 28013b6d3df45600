// Package playback provides a simulated playback transport and the periodic
// poller that samples it.
package playback

import (
	"sync"
	"time"
)

// Transport reports the playback position of a track.
type Transport interface {
	// PositionMs returns the current position in milliseconds.
	PositionMs() int64

	// DurationMs returns the track length, or 0 if unknown.
	DurationMs() int64

	// Playing reports whether the position is advancing.
	Playing() bool
}

// Clock is a Transport driven by elapsed wall time. It stands in for an
// audio player when only the lyrics are being followed.
// Safe for concurrent use.
type Clock struct {
	mu       sync.Mutex
	now      func() time.Time
	duration int64

	// base is the position at the moment playback last started or was seeked.
	base    int64
	started time.Time
	playing bool
}

// ClockOption configures a Clock.
type ClockOption func(*Clock)

// WithNow replaces the time source.
func WithNow(now func() time.Time) ClockOption {
	return func(c *Clock) {
		c.now = now
	}
}

// WithStart sets the initial position.
func WithStart(ms int64) ClockOption {
	return func(c *Clock) {
		if ms > 0 {
			c.base = ms
		}
	}
}

// NewClock creates a paused Clock. durationMs may be 0 when the length is
// unknown; the position then advances without bound.
func NewClock(durationMs int64, opts ...ClockOption) *Clock {
	c := &Clock{
		now:      time.Now,
		duration: durationMs,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.base = c.clamp(c.base)
	return c
}

// PositionMs implements Transport.
func (c *Clock) PositionMs() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.positionLocked()
}

// DurationMs implements Transport.
func (c *Clock) DurationMs() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration
}

// Playing implements Transport. A clock that reached a known duration
// reports false.
func (c *Clock) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing && !c.endedLocked()
}

// Ended reports whether the position reached a known duration.
func (c *Clock) Ended() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.endedLocked()
}

// Play starts advancing the position.
func (c *Clock) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playLocked()
}

// Pause freezes the position.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseLocked()
}

// Toggle switches between playing and paused and returns the new state.
// An ended clock counts as paused, so toggling it replays the track.
func (c *Clock) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.endedLocked() {
		c.base = 0
		c.started = c.now()
		c.playing = true
		return true
	}
	if c.playing {
		c.pauseLocked()
		return false
	}
	c.playLocked()
	return true
}

func (c *Clock) playLocked() {
	if c.playing {
		return
	}
	c.started = c.now()
	c.playing = true
}

func (c *Clock) pauseLocked() {
	if !c.playing {
		return
	}
	c.base = c.positionLocked()
	c.playing = false
}

// Seek moves to ms, clamped to [0, duration].
func (c *Clock) Seek(ms int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base = c.clamp(ms)
	if c.playing {
		c.started = c.now()
	}
}

// SeekBy moves the position by delta milliseconds.
func (c *Clock) SeekBy(delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base = c.clamp(c.positionLocked() + delta)
	if c.playing {
		c.started = c.now()
	}
}

func (c *Clock) positionLocked() int64 {
	pos := c.base
	if c.playing {
		pos += c.now().Sub(c.started).Milliseconds()
	}
	return c.clamp(pos)
}

func (c *Clock) endedLocked() bool {
	return c.duration > 0 && c.positionLocked() >= c.duration
}

func (c *Clock) clamp(ms int64) int64 {
	if ms < 0 {
		return 0
	}
	if c.duration > 0 && ms > c.duration {
		return c.duration
	}
	return ms
}
