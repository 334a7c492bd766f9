package display

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Default colors for unset and set cells.
const (
	DefaultBackground = 0x000000
	DefaultForeground = 0x33ff66
)

// ParseColor parses a 24-bit RGB color in the form "#rrggbb", "0xrrggbb"
// or "rrggbb".
func ParseColor(v string) (uint32, error) {
	s := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(v)), "#")
	s = strings.TrimPrefix(s, "0x")

	if len(s) != 6 {
		return 0, errors.Errorf("invalid color %q", v)
	}

	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid color %q", v)
	}

	return uint32(n), nil
}

// n2f sets p to the RGBA representation of the 24-bit RGB color in n.
func n2f(n uint32, p []float32) {
	p[0] = float32((n>>16)&0xff) / 255
	p[1] = float32((n>>8)&0xff) / 255
	p[2] = float32(n&0xff) / 255
	p[3] = 1
}

// expand copies framebuffer cells into texture pixels, storing 1 for every
// set cell and 0 otherwise. Returns true if dst changed.
func expand(dst, src []byte) bool {
	var changed bool
	for i, v := range src {
		var p byte
		if v != 0 {
			p = 1
		}

		if dst[i] != p {
			dst[i] = p
			changed = true
		}
	}
	return changed
}
