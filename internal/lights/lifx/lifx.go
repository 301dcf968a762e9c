package lifx

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/pdf/golifx"
	"github.com/pdf/golifx/common"
	"github.com/pdf/golifx/protocol"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/scheerer/hueled/internal/logging"
	"github.com/scheerer/hueled/internal/util"
	"github.com/scheerer/hueled/lights"
)

var logger = logging.New("lifx")

const (
	discoveryInterval = 15 * time.Second
	discoveryTimeout  = 5 * time.Second
	kelvin            = 3500
)

var errNoGroup = errors.New("lifx group not discovered")

// Light drives every bulb of one LIFX group as a single RGB light.
type Light struct {
	config Config
	client *golifx.Client
	cancel context.CancelFunc

	ready     chan struct{}
	readyOnce sync.Once

	groupMu sync.RWMutex
	group   common.Group
}

type Config struct {
	GroupName     string
	MaxBrightness float64
	MinBrightness float64
	// Fade is passed to the bulbs with each color. Zero switches instantly.
	Fade time.Duration
}

// New starts discovery of the configured group in the background. Ready is
// closed once the group has been found.
func New(ctx context.Context, config Config) (*Light, error) {
	client, err := golifx.NewClient(&protocol.V2{})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	l := &Light{
		config: config,
		client: client,
		cancel: cancel,
		ready:  make(chan struct{}),
	}
	go l.run(ctx)
	return l, nil
}

func (l *Light) run(ctx context.Context) {
	ticker := time.NewTicker(discoveryInterval)
	defer ticker.Stop()

	l.client.SetDiscoveryInterval(discoveryInterval)
	l.discover(ctx)

	for {
		select {
		case <-ticker.C:
			l.discover(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (l *Light) discover(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, discoveryTimeout)
	defer cancel()

	type result struct {
		group common.Group
		err   error
	}
	completed := make(chan result, 1)
	go func() {
		g, err := l.client.GetGroupByLabel(l.config.GroupName)
		completed <- result{g, err}
	}()

	select {
	case <-ctx.Done():
		logger.With(zap.String("group", l.config.GroupName), zap.Error(ctx.Err())).Warn("LIFX discovery timed out")
	case r := <-completed:
		if r.err != nil || r.group == nil {
			logger.With(zap.String("group", l.config.GroupName), zap.Error(r.err)).Warn("Couldn't discover LIFX group")
			return
		}
		l.groupMu.Lock()
		l.group = r.group
		l.groupMu.Unlock()

		l.readyOnce.Do(func() {
			logger.With(zap.String("group", r.group.GetLabel())).Info("LIFX group found")
			close(l.ready)
		})
	}
}

func (l *Light) Ready() <-chan struct{} {
	return l.ready
}

func (l *Light) SetColor(_ context.Context, hex string) error {
	color, err := lights.ParseHex(hex)
	if err != nil {
		return err
	}

	l.groupMu.RLock()
	g := l.group
	l.groupMu.RUnlock()
	if g == nil {
		return errNoGroup
	}

	lifxColor := adjustColor(newLifxColor(color), l.config)
	logger.With(zap.String("color", hex), zap.Any("lifxColor", lifxColor)).Debug("Setting LIFX group color")
	return g.SetColor(lifxColor, l.config.Fade)
}

// Off powers the group down and closes the client.
func (l *Light) Off(context.Context) error {
	l.cancel()

	l.groupMu.RLock()
	g := l.group
	l.groupMu.RUnlock()

	var err error
	if g != nil {
		err = g.SetPower(false)
	}
	return multierr.Append(err, l.client.Close())
}

func newLifxColor(color lights.Color) common.Color {
	hue, saturation, brightness := util.RgbToHsb(color.Red, color.Green, color.Blue)

	return common.Color{
		Hue:        hue,
		Saturation: saturation,
		Brightness: brightness,
		Kelvin:     kelvin,
	}
}

// adjustColor clamps brightness into the configured range. Colors close to
// black turn the bulbs dark instead.
func adjustColor(color common.Color, config Config) common.Color {
	blackThreshold := 0.015 * 0xFFFF
	if float64(color.Brightness) <= blackThreshold {
		return common.Color{Kelvin: kelvin}
	}

	color.Brightness = uint16(math.Min(config.MaxBrightness*0xFFFF, math.Max(config.MinBrightness*0xFFFF, float64(color.Brightness))))
	return color
}
