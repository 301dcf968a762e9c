package shell

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scheerer/hueled/animation"
)

type fakeController struct {
	calls   []string
	err     error
	waitErr error
	status  animation.Status
}

func (f *fakeController) StartLoop() error {
	f.calls = append(f.calls, "startLoop")
	return f.err
}

func (f *fakeController) StopLoop() {
	f.calls = append(f.calls, "stopLoop")
}

func (f *fakeController) ChangeColor(hue int) error {
	f.calls = append(f.calls, "changeColor "+strconv.Itoa(hue))
	return f.err
}

func (f *fakeController) DimTransition(hue int) error {
	f.calls = append(f.calls, "dimTransition "+strconv.Itoa(hue))
	return f.err
}

func (f *fakeController) Wait(context.Context) error {
	f.calls = append(f.calls, "wait")
	return f.waitErr
}

func (f *fakeController) Status() animation.Status {
	return f.status
}

func run(t *testing.T, ctrl Controller, input string) string {
	t.Helper()
	var out bytes.Buffer
	s := New(ctrl, NewScannerReader(strings.NewReader(input)), &out)
	require.NoError(t, s.Run(context.Background()))
	return out.String()
}

func TestRunDispatchesCommands(t *testing.T) {
	ctrl := &fakeController{}
	run(t, ctrl, "changeColor 200\nSTARTLOOP\n\n  stoploop  \nDimTransition 10\nwait\n")

	assert.Equal(t, []string{"changeColor 200", "startLoop", "stopLoop", "dimTransition 10", "wait"}, ctrl.calls)
}

func TestRunStopsAtExit(t *testing.T) {
	for _, word := range []string{"exit", "quit", "EXIT"} {
		ctrl := &fakeController{}
		run(t, ctrl, "startLoop\n"+word+"\nstopLoop\n")
		assert.Equal(t, []string{"startLoop"}, ctrl.calls, word)
	}
}

func TestRunPrintsErrorsAndContinues(t *testing.T) {
	ctrl := &fakeController{}
	out := run(t, ctrl, "changeColor teal\nchangeColor\nfrobnicate\nstartLoop\n")

	assert.Equal(t, []string{"startLoop"}, ctrl.calls)
	assert.Contains(t, out, `error: changeColor HUE: parse hue "teal"`)
	assert.Contains(t, out, "error: changeColor HUE: expected exactly one hue")
	assert.Contains(t, out, `error: unknown command "frobnicate"`)
}

func TestExecReturnsControllerErrors(t *testing.T) {
	ctrl := &fakeController{err: animation.ErrInvalidHue}
	s := New(ctrl, NewScannerReader(strings.NewReader("")), &bytes.Buffer{})

	err := s.Exec(context.Background(), "changeColor 400")
	assert.ErrorIs(t, err, animation.ErrInvalidHue)

	ctrl.err = animation.ErrDeviceUnavailable
	assert.ErrorIs(t, s.Exec(context.Background(), "startLoop"), animation.ErrDeviceUnavailable)

	assert.ErrorIs(t, s.Exec(context.Background(), "quit"), ErrExit)
	assert.NoError(t, s.Exec(context.Background(), "   "))
}

func TestWaitReportsAnimationFailure(t *testing.T) {
	ctrl := &fakeController{waitErr: errors.New("device gone")}
	out := run(t, ctrl, "wait\n")

	assert.Contains(t, out, "error: wait: device gone")
}

func TestStatus(t *testing.T) {
	ctrl := &fakeController{status: animation.Status{Hue: 160, Mode: animation.Looping, LoopActive: true, Ready: true}}
	out := run(t, ctrl, "status\n")

	assert.Contains(t, out, "hue=160 color=#00ffaa mode=looping loop=true ready=true")
}

func TestHelpListsCommands(t *testing.T) {
	out := run(t, &fakeController{}, "help\n")

	for _, want := range []string{"changeColor HUE", "dimTransition HUE", "startLoop", "stopLoop", "status", "wait", "exit", "quit"} {
		assert.Contains(t, out, want)
	}
}

func TestRunHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(&fakeController{}, blockingReader{}, &bytes.Buffer{})
	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
}

type blockingReader struct{}

func (blockingReader) ReadLine() (string, error) {
	select {}
}
