package animation

import "github.com/scheerer/hueled/internal/util"

// animation is one of the three behaviors the controller can run. step
// mutates the shared state for a single tick and returns the color to show.
type animation interface {
	mode() Mode
	step(s *State) (hue, lightness int, done bool)
}

// loop cycles through the color wheel one degree per tick.
//
// LoopActive is checked after the color is pushed, so a stop request lets
// one more tick run before the loop halts.
type loop struct{}

func (loop) mode() Mode { return Looping }

func (loop) step(s *State) (int, int, bool) {
	if s.Hue == 360 {
		s.Hue = 0
	}
	s.Hue++
	return s.Hue, util.DefaultLightness, !s.LoopActive
}

// directTransition walks the hue toward target along the number line. It
// never takes the shorter way around through 0/360.
type directTransition struct {
	target int
}

func (directTransition) mode() Mode { return DirectTransitioning }

func (d *directTransition) step(s *State) (int, int, bool) {
	if d.target > s.Hue {
		s.Hue++
	} else {
		s.Hue--
	}
	return s.Hue, util.DefaultLightness, s.Hue == d.target
}

// dimTransition fades to black, switches hue while dark, then fades back up.
type dimTransition struct {
	target    int
	lightness int
}

func newDimTransition(target int) *dimTransition {
	return &dimTransition{target: target, lightness: util.DefaultLightness}
}

func (dimTransition) mode() Mode { return DimTransitioning }

func (d *dimTransition) step(s *State) (int, int, bool) {
	full := util.DefaultLightness
	if s.Hue != d.target && d.lightness <= full && d.lightness > 0 {
		d.lightness--
	} else if s.Hue == d.target && d.lightness >= 0 && d.lightness < full {
		d.lightness++
	}

	// Checked after the branches above, so the hue snaps in the same tick the
	// light goes dark and brightening starts on the following tick.
	if d.lightness == 0 {
		s.Hue = d.target
	}

	return s.Hue, d.lightness, s.Hue == d.target && d.lightness == full
}
