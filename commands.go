package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/scheerer/hueled/animation"
	"github.com/scheerer/hueled/internal/shell"
	"github.com/scheerer/hueled/internal/util"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hueled",
		Short: "Animate the hue of an RGB LED",
		Long: `hueled drives a single RGB LED through hue animations.

Without a subcommand it starts an interactive shell. The light is chosen with
LIGHT_TYPE (CONSOLE, GPIO or LIFX) and turned off on exit.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell()
		},
	}

	cmd.AddCommand(newLoopCmd(), newChangeCmd(), newDimCmd())
	return cmd
}

func newLoopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loop",
		Short: "Cycle through the color wheel until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(func(ctrl *animation.Controller) error {
				return ctrl.StartLoop()
			})
		},
	}
}

func newChangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "change HUE",
		Short: "Walk to HUE one degree per tick and hold it until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hue, err := util.ParseHue(args[0])
			if err != nil {
				return err
			}
			return runOnce(func(ctrl *animation.Controller) error {
				return ctrl.ChangeColor(hue)
			})
		},
	}
}

func newDimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dim HUE",
		Short: "Fade through black to HUE and hold it until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hue, err := util.ParseHue(args[0])
			if err != nil {
				return err
			}
			return runOnce(func(ctrl *animation.Controller) error {
				return ctrl.DimTransition(hue)
			})
		},
	}
}

// runOnce starts one operation, reports how the animation ended and keeps the
// light on until a signal arrives.
func runOnce(op func(*animation.Controller) error) error {
	ctx, cancel := signalContext()
	defer cancel()

	ctrl := start(ctx)

	err := op(ctrl)
	if err == nil {
		err = ctrl.Wait(ctx)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	}
	if err != nil {
		logger.With(zap.Error(err)).Error("Animation failed")
	} else if ctx.Err() == nil {
		logger.With(zap.Int("hue", ctrl.Status().Hue)).Info("Holding color. Press Ctrl+C to stop")
		<-ctx.Done()
	}

	return multierr.Append(err, shutdown(ctrl))
}

func runShell() error {
	ctx, cancel := signalContext()
	defer cancel()

	ctrl := start(ctx)

	sh := shell.New(ctrl, shell.Stdin("hueled> "), os.Stdout)
	err := sh.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return multierr.Append(err, shutdown(ctrl))
}
