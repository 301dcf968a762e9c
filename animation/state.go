package animation

import "fmt"

// State is the color state shared by every animation.
type State struct {
	// Hue in degrees. The loop lets it reach 360 for one tick before wrapping.
	Hue int
	// LoopActive keeps the continuous loop running while true.
	LoopActive bool
}

// Mode is the animation currently driving the light.
type Mode int

const (
	Idle Mode = iota
	Looping
	DirectTransitioning
	DimTransitioning
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Looping:
		return "looping"
	case DirectTransitioning:
		return "direct-transition"
	case DimTransitioning:
		return "dim-transition"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Status is a point-in-time snapshot of the controller.
type Status struct {
	Hue        int
	Mode       Mode
	LoopActive bool
	Ready      bool
}
