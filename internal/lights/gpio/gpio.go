// Package gpio drives a three channel RGB LED from PWM capable GPIO pins.
package gpio

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/scheerer/hueled/internal/logging"
	"github.com/scheerer/hueled/lights"
)

var logger = logging.New("gpio")

type Config struct {
	RedPin      string
	GreenPin    string
	BluePin     string
	CommonAnode bool
	Frequency   physic.Frequency
}

// Light is an RGB LED wired to three PWM pins.
type Light struct {
	red, green, blue gpio.PinOut
	commonAnode      bool
	frequency        physic.Frequency
	ready            chan struct{}
}

// Open initializes the host drivers and looks up the configured pins.
func Open(config Config) (*Light, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host: %w", err)
	}

	pins := make([]gpio.PinIO, 0, 3)
	for _, name := range []string{config.RedPin, config.GreenPin, config.BluePin} {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("no such pin: %q", name)
		}
		pins = append(pins, p)
	}

	logger.With(
		zap.String("red", config.RedPin),
		zap.String("green", config.GreenPin),
		zap.String("blue", config.BluePin),
		zap.Bool("commonAnode", config.CommonAnode),
		zap.Stringer("frequency", config.Frequency)).
		Info("Opened GPIO pins")

	return New(pins[0], pins[1], pins[2], config.CommonAnode, config.Frequency), nil
}

// New wraps already opened pins. The device is usable straight away.
func New(red, green, blue gpio.PinOut, commonAnode bool, frequency physic.Frequency) *Light {
	ready := make(chan struct{})
	close(ready)
	return &Light{
		red:         red,
		green:       green,
		blue:        blue,
		commonAnode: commonAnode,
		frequency:   frequency,
		ready:       ready,
	}
}

func (l *Light) Ready() <-chan struct{} {
	return l.ready
}

func (l *Light) SetColor(_ context.Context, hex string) error {
	c, err := lights.ParseHex(hex)
	if err != nil {
		return err
	}

	if err := l.red.PWM(l.duty(c.Red), l.frequency); err != nil {
		return fmt.Errorf("red: %w", err)
	}
	if err := l.green.PWM(l.duty(c.Green), l.frequency); err != nil {
		return fmt.Errorf("green: %w", err)
	}
	if err := l.blue.PWM(l.duty(c.Blue), l.frequency); err != nil {
		return fmt.Errorf("blue: %w", err)
	}
	return nil
}

// Off drives every channel to its dark level and halts the pins.
func (l *Light) Off(context.Context) error {
	level := gpio.Low
	if l.commonAnode {
		level = gpio.High
	}

	var err error
	for _, p := range []gpio.PinOut{l.red, l.green, l.blue} {
		err = multierr.Append(err, p.Out(level))
		err = multierr.Append(err, p.Halt())
	}
	return err
}

// duty maps a channel value onto the PWM range. A common anode LED lights
// up when its pin is pulled low, so the duty is inverted.
func (l *Light) duty(v uint8) gpio.Duty {
	d := gpio.Duty(uint32(v) * uint32(gpio.DutyMax) / 255)
	if l.commonAnode {
		return gpio.DutyMax - d
	}
	return d
}
