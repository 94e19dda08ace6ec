package tracker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// PollLoop repolls a Tracker at a fixed cadence on a background
// goroutine until stopped. Poll failures are logged and the loop keeps
// going; only the caller decides to shut down.
type PollLoop struct {
	tracker  *Tracker
	interval time.Duration
	log      *zap.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

func NewLoop(t *Tracker, interval time.Duration, log *zap.Logger) *PollLoop {
	return &PollLoop{
		tracker:  t,
		interval: interval,
		log:      log,
	}
}

// Start launches the loop. The first repoll happens one interval after
// Start; the construction-time poll already filled the buffer.
func (l *PollLoop) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.done = make(chan struct{})
	go l.run(ctx)
}

func (l *PollLoop) run(ctx context.Context) {
	defer close(l.done)
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := l.tracker.Poll(ctx); err != nil {
				failures++
				l.log.Warn("poll failed",
					zap.Error(err),
					zap.Int("consecutive_failures", failures))
				continue
			}
			failures = 0
		}
	}
}

// Stop cancels the loop and blocks until the in-flight iteration
// finishes. Worst case is one fetch duration plus one interval.
func (l *PollLoop) Stop() {
	if l.cancel == nil {
		return
	}
	l.cancel()
	<-l.done
	l.cancel = nil
}
