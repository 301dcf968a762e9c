package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/scheerer/hueled/animation"
	"github.com/scheerer/hueled/internal/config"
	"github.com/scheerer/hueled/internal/lights/console"
	"github.com/scheerer/hueled/internal/lights/gpio"
	"github.com/scheerer/hueled/internal/lights/lifx"
	"github.com/scheerer/hueled/internal/logging"
	"github.com/scheerer/hueled/lights"
)

const shutdownTimeout = 5 * time.Second

// start loads the configuration, opens the light and waits until it is ready.
// Configuration and device errors are fatal.
func start(ctx context.Context) *animation.Controller {
	cfg, err := config.Load()
	if err != nil {
		logger.With(zap.Error(err)).Fatal("Failed to parse environment variables")
	}
	logging.SetDefaultLevel(cfg.LogLevel)

	logger.With(zap.Any("config", cfg)).Info("Starting hueled")

	light, err := newLight(ctx, cfg)
	if err != nil {
		logger.With(zap.Error(err), zap.String("lightType", cfg.LightType)).Fatal("Failed to create light")
	}

	ctrl, err := animation.NewController(light, animation.Config{
		InitialHue: cfg.InitialHue,
		StepDelay:  cfg.StepDelay,
	})
	if err != nil {
		logger.With(zap.Error(err)).Fatal("Failed to create controller")
	}

	readyCtx, cancel := context.WithTimeout(ctx, cfg.ReadyTimeout)
	defer cancel()
	if err := ctrl.Ready(readyCtx); err != nil {
		_ = light.Off(context.Background())
		logger.With(zap.Error(err), zap.Stringer("timeout", cfg.ReadyTimeout)).Fatal("Light did not become ready")
	}
	return ctrl
}

func newLight(ctx context.Context, cfg config.Config) (lights.Light, error) {
	switch cfg.LightType {
	case config.LightTypeGPIO:
		return gpio.Open(gpio.Config{
			RedPin:      cfg.RedPin,
			GreenPin:    cfg.GreenPin,
			BluePin:     cfg.BluePin,
			CommonAnode: cfg.CommonAnode,
			Frequency:   cfg.PWMFrequency(),
		})
	case config.LightTypeLIFX:
		return lifx.New(ctx, lifx.Config{
			GroupName:     cfg.LightGroupName,
			MinBrightness: cfg.MinBrightness,
			MaxBrightness: cfg.MaxBrightness,
		})
	case config.LightTypeConsole:
		return console.New(), nil
	default:
		return nil, fmt.Errorf("unknown light type: %v", cfg.LightType)
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(shutdown)
		select {
		case s := <-shutdown:
			logger.With(zap.Stringer("signal", s)).Info("Shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

func shutdown(ctrl *animation.Controller) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return ctrl.Shutdown(ctx)
}
