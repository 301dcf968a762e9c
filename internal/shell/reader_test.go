package shell

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerReader(t *testing.T) {
	r := NewScannerReader(strings.NewReader("startLoop\r\nstatus"))

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "startLoop", line)

	line, err = r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "status", line)

	_, err = r.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestPromptReader(t *testing.T) {
	var out bytes.Buffer
	r := NewPromptReader(strings.NewReader("help\n"), &out, "hue> ")

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "help", line)
	assert.Equal(t, "hue> ", out.String())

	_, err = r.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "hue> hue> ", out.String())
}
