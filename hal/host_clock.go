//go:build !tinygo

package hal

import "time"

type hostClock struct {
	ch    chan time.Time
	is24h bool
	warp  int64

	start time.Time
	last  int64
}

func newHostClock(is24h bool, warp int) *hostClock {
	if warp < 1 {
		warp = 1
	}
	return &hostClock{
		ch:    make(chan time.Time, 16),
		is24h: is24h,
		warp:  int64(warp),
		start: time.Now(),
	}
}

func (c *hostClock) Now() time.Time {
	real := time.Now()
	if c.warp == 1 {
		return real
	}
	return c.start.Add(real.Sub(c.start) * time.Duration(c.warp))
}

func (c *hostClock) Minutes() <-chan time.Time { return c.ch }
func (c *hostClock) Is24Hour() bool            { return c.is24h }

// step emits one tick per wall-clock minute boundary crossed since the last call.
func (c *hostClock) step() {
	now := c.Now()
	minute := now.Unix() / 60
	if c.last == 0 {
		c.last = minute
		return
	}
	for c.last < minute {
		c.last++
		select {
		case c.ch <- time.Unix(c.last*60, 0).In(now.Location()):
		default:
		}
	}
}
