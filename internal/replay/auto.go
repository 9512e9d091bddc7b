package replay

import (
	"context"
	"time"

	"github.com/coder/quartz"
)

// AutoPlayer advances a cursor on a clock, one step per tick.
type AutoPlayer struct {
	clock    quartz.Clock
	interval time.Duration
}

// NewAutoPlayer creates a player that steps every interval.
func NewAutoPlayer(clock quartz.Clock, interval time.Duration) *AutoPlayer {
	if interval <= 0 {
		interval = 800 * time.Millisecond
	}
	return &AutoPlayer{clock: clock, interval: interval}
}

// Start begins playback from c and t. The returned channel yields one frame
// per tick and is closed when the hand is exhausted or ctx is done. The
// ticker is armed before Start returns.
func (p *AutoPlayer) Start(ctx context.Context, c Cursor, t Table) <-chan Frame {
	frames := make(chan Frame)
	ticker := p.clock.NewTicker(p.interval, "replay", "auto")

	go func() {
		defer close(frames)
		defer ticker.Stop()

		for !c.Done() {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			step, _ := c.Peek()
			idx := c.Index
			c, t, _ = c.Next(t)

			select {
			case frames <- Frame{Index: idx, Step: step, Table: t}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return frames
}
