// Package shell is the interactive command prompt for the animator.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/scheerer/hueled/animation"
	"github.com/scheerer/hueled/internal/logging"
	"github.com/scheerer/hueled/internal/util"
)

var logger = logging.New("shell")

// ErrExit is returned by Exec for the exit command.
var ErrExit = errors.New("exit")

// Controller is the part of animation.Controller the shell drives.
type Controller interface {
	StartLoop() error
	StopLoop()
	ChangeColor(hue int) error
	DimTransition(hue int) error
	Wait(ctx context.Context) error
	Status() animation.Status
}

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, args []string) error
}

type Shell struct {
	ctrl     Controller
	in       LineReader
	out      io.Writer
	commands map[string]command
}

func New(ctrl Controller, in LineReader, out io.Writer) *Shell {
	s := &Shell{ctrl: ctrl, in: in, out: out}
	s.commands = map[string]command{
		"changecolor": {
			usage: "changeColor HUE",
			help:  "walk the hue one degree per tick to HUE",
			run:   s.withHue(ctrl.ChangeColor),
		},
		"dimtransition": {
			usage: "dimTransition HUE",
			help:  "fade out, switch to HUE and fade back in",
			run:   s.withHue(ctrl.DimTransition),
		},
		"startloop": {
			usage: "startLoop",
			help:  "cycle through the color wheel",
			run: func(context.Context, []string) error {
				return ctrl.StartLoop()
			},
		},
		"stoploop": {
			usage: "stopLoop",
			help:  "stop the color wheel after the current tick",
			run: func(context.Context, []string) error {
				ctrl.StopLoop()
				return nil
			},
		},
		"status": {
			usage: "status",
			help:  "print the current hue and animation",
			run: func(context.Context, []string) error {
				st := ctrl.Status()
				fmt.Fprintf(s.out, "hue=%d color=%s mode=%s loop=%t ready=%t\n",
					st.Hue, util.HslToHex(st.Hue, util.DefaultLightness), st.Mode, st.LoopActive, st.Ready)
				return nil
			},
		},
		"wait": {
			usage: "wait",
			help:  "block until the running animation finishes",
			run: func(ctx context.Context, _ []string) error {
				return ctrl.Wait(ctx)
			},
		},
		"help": {
			usage: "help",
			help:  "list commands",
			run: func(context.Context, []string) error {
				s.printHelp()
				return nil
			},
		},
		"exit": {
			usage: "exit",
			help:  "turn the light off and quit",
			run: func(context.Context, []string) error {
				return ErrExit
			},
		},
	}
	s.commands["quit"] = s.commands["exit"]
	return s
}

func (s *Shell) withHue(op func(int) error) func(context.Context, []string) error {
	return func(_ context.Context, args []string) error {
		if len(args) != 1 {
			return errors.New("expected exactly one hue")
		}
		hue, err := util.ParseHue(args[0])
		if err != nil {
			return err
		}
		return op(hue)
	}
}

// Exec runs a single command line. Blank lines do nothing.
func (s *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	cmd, ok := s.commands[strings.ToLower(fields[0])]
	if !ok {
		return fmt.Errorf("unknown command %q, try help", fields[0])
	}
	if err := cmd.run(ctx, fields[1:]); err != nil {
		if errors.Is(err, ErrExit) {
			return err
		}
		return fmt.Errorf("%s: %w", cmd.usage, err)
	}
	return nil
}

// Run reads and executes commands until the input ends, exit is entered or
// ctx is cancelled. Command errors are printed and the shell carries on.
func (s *Shell) Run(ctx context.Context) error {
	type result struct {
		line string
		err  error
	}
	lines := make(chan result)
	next := make(chan struct{}, 1)

	go func() {
		defer close(lines)
		for range next {
			line, err := s.in.ReadLine()
			select {
			case lines <- result{line, err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	defer close(next)

	fmt.Fprintln(s.out, "Type help for a list of commands.")
	for {
		next <- struct{}{}

		var r result
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r, ok = <-lines:
			if !ok {
				return ctx.Err()
			}
		}

		if r.err != nil {
			if errors.Is(r.err, io.EOF) {
				return nil
			}
			return r.err
		}

		err := s.Exec(ctx, r.line)
		if errors.Is(err, ErrExit) {
			return nil
		}
		if err != nil {
			logger.With(zap.String("line", r.line), zap.Error(err)).Debug("Command failed")
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

func (s *Shell) printHelp() {
	seen := map[string]bool{}
	var usages []string
	help := map[string]string{}
	for _, c := range s.commands {
		if seen[c.usage] {
			continue
		}
		seen[c.usage] = true
		usages = append(usages, c.usage)
		help[c.usage] = c.help
	}
	sort.Strings(usages)

	for _, u := range usages {
		fmt.Fprintf(s.out, "  %-20s %s\n", u, help[u])
	}
	fmt.Fprintln(s.out, "  quit                 same as exit")
}
