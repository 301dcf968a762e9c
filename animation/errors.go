package animation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHue is returned for hues outside [0, 360).
	ErrInvalidHue = errors.New("hue must be in [0, 360)")
	// ErrDeviceUnavailable is returned when the light has not reported ready
	// or has been shut down.
	ErrDeviceUnavailable = errors.New("light is not available")
)

// MaxHue is the exclusive upper bound of a target hue.
const MaxHue = 360

func validateHue(hue int) error {
	if hue < 0 || hue >= MaxHue {
		return fmt.Errorf("%w: got %d", ErrInvalidHue, hue)
	}
	return nil
}
