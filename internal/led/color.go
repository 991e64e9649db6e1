package led

import (
	"fmt"
	"strings"
)

// Color is an immutable RGB value. Channels are validated to 0-255 at
// construction; the zero value is "off".
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Named colors used by the scene catalog.
var (
	Off     = Color{0, 0, 0}
	Red     = Color{255, 0, 0}
	Green   = Color{0, 255, 0}
	Blue    = Color{0, 0, 255}
	Yellow  = Color{255, 255, 0}
	White   = Color{255, 255, 255}
	Cyan    = Color{0, 255, 255}
	Magenta = Color{255, 0, 255}
	Orange  = Color{255, 165, 0}
	Purple  = Color{128, 0, 128}

	// Temperature-based whites.
	WarmWhite = Color{255, 244, 229} // ~2700K
	CoolWhite = Color{255, 255, 255} // ~6500K
	Daylight  = Color{255, 250, 244} // ~5000K
)

// NewColor validates each channel and returns the color.
func NewColor(r, g, b int) (Color, error) {
	for _, ch := range [...]struct {
		name  string
		value int
	}{{"r", r}, {"g", g}, {"b", b}} {
		if ch.value < 0 || ch.value > 255 {
			return Color{}, fmt.Errorf("channel %s must be between 0 and 255, got %d", ch.name, ch.value)
		}
	}
	return Color{R: r, G: g, B: b}, nil
}

// Hex returns the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex parses "#RRGGBB" or "RRGGBB" into a Color.
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	var r, g, b int
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return NewColor(r, g, b)
}

// Packed returns the 24-bit color value the WS281x driver expects.
func (c Color) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Lerp linearly interpolates between two colors. t is clamped to [0,1];
// each channel is blended and truncated toward zero.
func Lerp(c1, c2 Color, t float64) Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Color{
		R: int(float64(c1.R) + float64(c2.R-c1.R)*t),
		G: int(float64(c1.G) + float64(c2.G-c1.G)*t),
		B: int(float64(c1.B) + float64(c2.B-c1.B)*t),
	}
}

// Wheel generates rainbow colors across positions 0-255.
func Wheel(pos int) Color {
	pos %= 256
	if pos < 0 {
		pos += 256
	}
	switch {
	case pos < 85:
		return Color{R: pos * 3, G: 255 - pos*3, B: 0}
	case pos < 170:
		pos -= 85
		return Color{R: 255 - pos*3, G: 0, B: pos * 3}
	default:
		pos -= 170
		return Color{R: 0, G: pos * 3, B: 255 - pos*3}
	}
}
