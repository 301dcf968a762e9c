package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopAdvancesOneDegreePerTick(t *testing.T) {
	s := &State{Hue: 160, LoopActive: true}
	for n := 1; n <= 720; n++ {
		hue, lightness, done := loop{}.step(s)
		require.False(t, done)
		assert.Equal(t, 50, lightness)
		assert.Equal(t, s.Hue, hue)

		want := (160 + n) % 360
		if want == 0 {
			// The hue shows 360 for a tick and wraps on the next one.
			want = 360
		}
		require.Equal(t, want, s.Hue, "after %d ticks", n)
	}
}

func TestLoopWrapsOnlyAt360(t *testing.T) {
	s := &State{Hue: 358, LoopActive: true}

	loop{}.step(s)
	assert.Equal(t, 359, s.Hue)
	loop{}.step(s)
	assert.Equal(t, 360, s.Hue)
	loop{}.step(s)
	assert.Equal(t, 1, s.Hue)
}

func TestLoopStopsOnTickAfterFlagCleared(t *testing.T) {
	s := &State{Hue: 10, LoopActive: true}
	_, _, done := loop{}.step(s)
	require.False(t, done)

	s.LoopActive = false
	hue, _, done := loop{}.step(s)
	assert.True(t, done)
	// The tick that notices the stop still moves the hue.
	assert.Equal(t, 12, hue)
}

func runToCompletion(t *testing.T, a animation, s *State, limit int) (hues, lightnesses []int) {
	t.Helper()
	for i := 0; i < limit; i++ {
		hue, lightness, done := a.step(s)
		hues = append(hues, hue)
		lightnesses = append(lightnesses, lightness)
		if done {
			return hues, lightnesses
		}
	}
	t.Fatalf("animation did not finish within %d ticks", limit)
	return nil, nil
}

func TestDirectTransitionUp(t *testing.T) {
	s := &State{Hue: 160}
	hues, lightnesses := runToCompletion(t, &directTransition{target: 200}, s, 1000)

	require.Len(t, hues, 40)
	for i, h := range hues {
		assert.Equal(t, 161+i, h)
		assert.Equal(t, 50, lightnesses[i])
	}
	assert.Equal(t, 200, s.Hue)
}

func TestDirectTransitionDown(t *testing.T) {
	s := &State{Hue: 160}
	hues, _ := runToCompletion(t, &directTransition{target: 100}, s, 1000)

	require.Len(t, hues, 60)
	for i, h := range hues {
		assert.Equal(t, 159-i, h)
	}
	assert.Equal(t, 100, s.Hue)
}

func TestDirectTransitionNeverWraps(t *testing.T) {
	s := &State{Hue: 350}
	hues, _ := runToCompletion(t, &directTransition{target: 10}, s, 1000)

	require.Len(t, hues, 340)
	for _, h := range hues {
		assert.True(t, h >= 10 && h < 350, "hue %d left the numeric path", h)
	}
}

func TestDimTransition(t *testing.T) {
	s := &State{Hue: 160}
	hues, lightnesses := runToCompletion(t, newDimTransition(200), s, 1000)

	require.Len(t, hues, 100)

	// Fade down at the old hue.
	for i := 0; i < 49; i++ {
		assert.Equal(t, 49-i, lightnesses[i])
		assert.Equal(t, 160, hues[i])
	}
	// The tick that reaches black switches hue.
	assert.Equal(t, 0, lightnesses[49])
	assert.Equal(t, 200, hues[49])
	// Fade back up at the new hue.
	for i := 50; i < 100; i++ {
		assert.Equal(t, i-49, lightnesses[i])
		assert.Equal(t, 200, hues[i])
	}

	assert.Equal(t, 200, s.Hue)
	assert.Equal(t, 50, lightnesses[99])
}

func TestDimTransitionSnapsBeforeBrightening(t *testing.T) {
	s := &State{Hue: 160}
	d := &dimTransition{target: 200, lightness: 0}

	// Neither branch applies at black with the old hue, but the hue snaps.
	hue, lightness, done := d.step(s)
	assert.Equal(t, 200, hue)
	assert.Equal(t, 0, lightness)
	assert.False(t, done)

	_, lightness, _ = d.step(s)
	assert.Equal(t, 1, lightness)
}
