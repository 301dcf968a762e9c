// Package lights defines the LED collaborator the animation controller drives
// and the RGB color type shared by the light implementations.
package lights

import (
	"context"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

type Color struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.Red, c.Green, c.Blue)
}

// ParseHex parses "#rrggbb", "rrggbb" or the short "#rgb" form.
func ParseHex(hex string) (Color, error) {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(strings.ToLower(hex))
	if err != nil {
		return Color{}, err
	}
	r, g, b := c.RGB255()
	return Color{Red: r, Green: g, Blue: b}, nil
}

// Light is a single RGB light.
type Light interface {
	// Ready is closed once the device can accept colors.
	Ready() <-chan struct{}
	// SetColor pushes a hex encoded 24-bit RGB color to the device.
	SetColor(ctx context.Context, hex string) error
	// Off turns the light off and releases the device.
	Off(ctx context.Context) error
}
