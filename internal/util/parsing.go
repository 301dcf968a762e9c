package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHue parses a hue argument as typed at the shell or on the command
// line. Range checks are left to the animation controller.
func ParseHue(v string) (int, error) {
	v = strings.Trim(strings.TrimSpace(v), `"`) // in case something comes in as if it were a json string
	hue, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse hue %q: %w", v, err)
	}
	return hue, nil
}
