package crawler

import (
	"context"
	"time"
)

// TimerPacer waits out the configured delay between requests. The wait is
// context-aware so a canceled run does not sit in a sleep.
type TimerPacer struct{}

// Pause blocks for delay or until ctx is done, whichever comes first.
func (p *TimerPacer) Pause(ctx context.Context, delay time.Duration) {
	if delay <= 0 {
		return
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
