// Package console is a light that only logs the colors it is given. It stands
// in for real hardware during development.
package console

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/scheerer/hueled/internal/logging"
	"github.com/scheerer/hueled/lights"
)

var logger = logging.New("console")

type Light struct {
	ready chan struct{}

	mu    sync.Mutex
	last  string
	count int
	on    bool
}

func New() *Light {
	ready := make(chan struct{})
	close(ready)
	return &Light{ready: ready}
}

func (l *Light) Ready() <-chan struct{} {
	return l.ready
}

func (l *Light) SetColor(_ context.Context, hex string) error {
	if _, err := lights.ParseHex(hex); err != nil {
		return err
	}

	l.mu.Lock()
	l.last = hex
	l.count++
	l.on = true
	l.mu.Unlock()

	logger.With(zap.String("color", hex)).Debug("Color")
	return nil
}

func (l *Light) Off(context.Context) error {
	l.mu.Lock()
	l.on = false
	l.mu.Unlock()

	logger.Info("Light off")
	return nil
}

// Last returns the most recent color and whether the light is on.
func (l *Light) Last() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last, l.on
}

// Count is the number of colors shown so far.
func (l *Light) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
