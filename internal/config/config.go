// Package config reads the animator settings from the environment.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"periph.io/x/conn/v3/physic"
)

const (
	LightTypeConsole = "CONSOLE"
	LightTypeGPIO    = "GPIO"
	LightTypeLIFX    = "LIFX"
)

type Config struct {
	LightType    string        `env:"LIGHT_TYPE" envDefault:"CONSOLE"`
	StepDelay    time.Duration `env:"STEP_DELAY" envDefault:"20ms"`
	InitialHue   int           `env:"INITIAL_HUE" envDefault:"160"`
	ReadyTimeout time.Duration `env:"READY_TIMEOUT" envDefault:"30s"`
	LogLevel     zapcore.Level `env:"LOG_LEVEL" envDefault:"info"`

	RedPin         string `env:"RED_PIN" envDefault:"GPIO12"`
	GreenPin       string `env:"GREEN_PIN" envDefault:"GPIO13"`
	BluePin        string `env:"BLUE_PIN" envDefault:"GPIO19"`
	CommonAnode    bool   `env:"COMMON_ANODE" envDefault:"true"`
	PWMFrequencyHz int    `env:"PWM_FREQUENCY_HZ" envDefault:"1000"`

	LightGroupName string  `env:"LIGHT_GROUP_NAME" envDefault:"ARCADE"`
	MinBrightness  float64 `env:"MIN_BRIGHTNESS" envDefault:"0"`
	MaxBrightness  float64 `env:"MAX_BRIGHTNESS" envDefault:"0.65"`
}

var parsers = env.CustomParsers{
	reflect.TypeOf(zapcore.Level(0)): func(v string) (interface{}, error) {
		return zapcore.ParseLevel(v)
	},
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var c Config
	if err := env.ParseWithFuncs(&c, parsers); err != nil {
		return Config{}, err
	}
	c.LightType = strings.ToUpper(strings.TrimSpace(c.LightType))

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	var err error
	if c.InitialHue < 0 || c.InitialHue >= 360 {
		err = multierr.Append(err, fmt.Errorf("INITIAL_HUE must be in [0, 360), got %d", c.InitialHue))
	}
	if c.StepDelay <= 0 {
		err = multierr.Append(err, fmt.Errorf("STEP_DELAY must be positive, got %s", c.StepDelay))
	}
	switch c.LightType {
	case LightTypeConsole, LightTypeGPIO, LightTypeLIFX:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown LIGHT_TYPE %q", c.LightType))
	}
	if c.PWMFrequencyHz <= 0 {
		err = multierr.Append(err, fmt.Errorf("PWM_FREQUENCY_HZ must be positive, got %d", c.PWMFrequencyHz))
	}
	if c.MinBrightness < 0 || c.MaxBrightness > 1 || c.MinBrightness > c.MaxBrightness {
		err = multierr.Append(err, errors.New("brightness must satisfy 0 <= MIN_BRIGHTNESS <= MAX_BRIGHTNESS <= 1"))
	}
	return err
}

func (c Config) PWMFrequency() physic.Frequency {
	return physic.Frequency(c.PWMFrequencyHz) * physic.Hertz
}
