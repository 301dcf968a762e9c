package animation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/scheerer/hueled/internal/logging"
	"github.com/scheerer/hueled/internal/util"
	"github.com/scheerer/hueled/lights"
)

var logger = logging.New("animation")

// DefaultInitialHue is turquoise.
const DefaultInitialHue = 160

type Config struct {
	InitialHue int
	StepDelay  time.Duration
	// Clock drives the step timer. Nil means the real clock.
	Clock clockwork.Clock
}

// Controller arbitrates which animation drives the light. At most one
// animation runs at a time: starting one stops and waits for the previous.
type Controller struct {
	light      lights.Light
	scheduler  *Scheduler
	initialHue int

	ctx    context.Context
	cancel context.CancelFunc

	// opMu serializes control operations. Steps never take it, so holding it
	// while waiting for a step to finish cannot deadlock.
	opMu   sync.Mutex
	active *Handle

	mu    sync.Mutex
	state State
	mode  Mode
	ready bool
}

func NewController(light lights.Light, config Config) (*Controller, error) {
	if err := validateHue(config.InitialHue); err != nil {
		return nil, fmt.Errorf("initial hue: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		light:      light,
		scheduler:  NewScheduler(config.Clock, config.StepDelay),
		initialHue: config.InitialHue,
		ctx:        ctx,
		cancel:     cancel,
		state:      State{Hue: config.InitialHue},
	}, nil
}

// Ready waits for the light to come up, seeds the state with the initial hue
// and shows it. Control operations fail with ErrDeviceUnavailable until Ready
// has returned nil.
func (c *Controller) Ready(ctx context.Context) error {
	select {
	case <-c.light.Ready():
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrDeviceUnavailable, ctx.Err())
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.ctx.Err() != nil {
		return fmt.Errorf("%w: controller is shut down", ErrDeviceUnavailable)
	}

	c.stopActive()

	hex := util.HslToHex(c.initialHue, util.DefaultLightness)
	if err := c.light.SetColor(ctx, hex); err != nil {
		return fmt.Errorf("show initial color: %w", err)
	}

	c.mu.Lock()
	c.state = State{Hue: c.initialHue}
	c.mode = Idle
	c.ready = true
	c.mu.Unlock()

	logger.With(zap.Int("hue", c.initialHue), zap.String("color", hex)).Info("Light is ready")
	return nil
}

// StartLoop starts cycling through the color wheel from the current hue.
func (c *Controller) StartLoop() error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if err := c.checkReady(); err != nil {
		return err
	}
	c.stopActive()

	c.mu.Lock()
	c.state.LoopActive = true
	c.mu.Unlock()

	c.start(loop{})
	return nil
}

// StopLoop asks the continuous loop to halt. The loop notices on its next
// tick. Calling StopLoop with no loop running does nothing.
func (c *Controller) StopLoop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.LoopActive {
		logger.Info("Stopping color loop")
	}
	c.state.LoopActive = false
}

// ChangeColor walks the hue one degree per tick to hue.
func (c *Controller) ChangeColor(hue int) error {
	return c.transition(hue, &directTransition{target: hue})
}

// DimTransition fades the light out, switches to hue and fades back in.
func (c *Controller) DimTransition(hue int) error {
	return c.transition(hue, newDimTransition(hue))
}

func (c *Controller) transition(hue int, a animation) error {
	if err := validateHue(hue); err != nil {
		return err
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	if err := c.checkReady(); err != nil {
		return err
	}
	c.stopActive()

	c.mu.Lock()
	c.state.LoopActive = false
	current := c.state.Hue
	c.mu.Unlock()

	if current == hue {
		logger.With(zap.Int("hue", hue), zap.Stringer("mode", a.mode())).Debug("Already at target hue")
		return nil
	}

	c.start(a)
	return nil
}

// Wait blocks until the running animation finishes and returns the error that
// ended it. It returns nil straight away when nothing is running.
func (c *Controller) Wait(ctx context.Context) error {
	c.opMu.Lock()
	h := c.active
	c.opMu.Unlock()

	if h == nil {
		return nil
	}
	return h.Wait(ctx)
}

// Shutdown stops any animation and turns the light off. The controller
// cannot be used afterwards.
func (c *Controller) Shutdown(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	var err error
	if c.active != nil {
		c.active.Stop()
		err = c.active.Err()
		c.active = nil
	}
	c.cancel()

	c.mu.Lock()
	c.ready = false
	c.mode = Idle
	c.state.LoopActive = false
	c.mu.Unlock()

	err = multierr.Append(err, c.light.Off(ctx))
	if err != nil {
		logger.With(zap.Error(err)).Warn("Light shut down with errors")
	} else {
		logger.Info("Light is off")
	}
	return err
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Status{
		Hue:        c.state.Hue,
		Mode:       c.mode,
		LoopActive: c.state.LoopActive,
		Ready:      c.ready,
	}
}

func (c *Controller) checkReady() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ready {
		return ErrDeviceUnavailable
	}
	return nil
}

// stopActive cancels the running animation and waits for it. Callers hold opMu.
func (c *Controller) stopActive() {
	if c.active == nil {
		return
	}
	c.active.Stop()
	if err := c.active.Err(); err != nil {
		logger.With(zap.Error(err)).Warn("Previous animation had failed")
	}
	c.active = nil

	c.mu.Lock()
	c.mode = Idle
	c.mu.Unlock()
}

// start runs a on the scheduler. Callers hold opMu and have stopped the
// previous animation.
func (c *Controller) start(a animation) {
	c.mu.Lock()
	c.mode = a.mode()
	from := c.state.Hue
	c.mu.Unlock()

	logger.With(zap.Stringer("mode", a.mode()), zap.Int("fromHue", from)).Info("Starting animation")

	c.active = c.scheduler.Repeat(c.ctx, func(ctx context.Context) (bool, error) {
		c.mu.Lock()
		hue, lightness, done := a.step(&c.state)
		if done {
			c.mode = Idle
		}
		c.mu.Unlock()

		hex := util.HslToHex(hue, lightness)
		logger.With(zap.Int("hue", hue), zap.Int("lightness", lightness), zap.String("color", hex)).Debug("Tick")

		if err := c.light.SetColor(ctx, hex); err != nil {
			c.mu.Lock()
			c.mode = Idle
			c.state.LoopActive = false
			c.mu.Unlock()
			logger.With(zap.Stringer("mode", a.mode()), zap.Error(err)).Error("Failed to set light color")
			return true, fmt.Errorf("set color %s: %w", hex, err)
		}

		if done {
			logger.With(zap.Stringer("mode", a.mode()), zap.Int("hue", hue)).Info("Animation finished")
		}
		return done, nil
	})
}
