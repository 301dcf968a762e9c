package animation

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultStepDelay is the period between two animation ticks.
const DefaultStepDelay = 20 * time.Millisecond

// Step runs one tick of an animation and reports whether the animation has
// reached its goal. A non-nil error ends the animation.
type Step func(ctx context.Context) (done bool, err error)

// Scheduler runs steps on a fixed-delay repeating timer.
type Scheduler struct {
	clock clockwork.Clock
	delay time.Duration
}

func NewScheduler(clock clockwork.Clock, delay time.Duration) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if delay <= 0 {
		delay = DefaultStepDelay
	}
	return &Scheduler{clock: clock, delay: delay}
}

func (s *Scheduler) Delay() time.Duration {
	return s.delay
}

// Repeat calls step once per delay until it reports done, returns an error,
// or the handle is stopped. The first call happens one delay after Repeat.
func (s *Scheduler) Repeat(ctx context.Context, step Step) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	// The ticker exists before Repeat returns so a fake clock sees it as a
	// waiter straight away.
	ticker := s.clock.NewTicker(s.delay)

	go func() {
		defer close(h.done)
		defer cancel()
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				if ctx.Err() != nil {
					return
				}
				done, err := step(ctx)
				h.ticks.Add(1)
				if err != nil {
					h.err = err
					return
				}
				if done {
					return
				}
			}
		}
	}()

	return h
}

// Handle owns one running repeating timer.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	ticks  atomic.Int64
	err    error // written before done is closed
}

// Stop cancels the timer and waits until its goroutine has exited. A step
// that is already running finishes first. Stop is safe to call more than once.
func (h *Handle) Stop() {
	h.cancel()
	<-h.done
}

// Done is closed once no further step will run.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the timer finishes or ctx ends, and returns the error
// that ended it.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the step error that ended the timer, if any. It is only
// meaningful after Done is closed.
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// Ticks is the number of steps run so far.
func (h *Handle) Ticks() int {
	return int(h.ticks.Load())
}
