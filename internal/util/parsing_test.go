package util

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHue(t *testing.T) {
	hue, err := ParseHue("200")
	require.NoError(t, err)
	assert.Equal(t, 200, hue)

	hue, err = ParseHue(` "42" `)
	require.NoError(t, err)
	assert.Equal(t, 42, hue)

	// Range is checked by the controller, not here.
	hue, err = ParseHue("-5")
	require.NoError(t, err)
	assert.Equal(t, -5, hue)
}

func TestParseHueInvalid(t *testing.T) {
	_, err := ParseHue("teal")
	require.Error(t, err)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
}
