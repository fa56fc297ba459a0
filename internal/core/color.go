package core

import "fmt"

// Color is a 24-bit foreground color for a screen cell.
// The zero value is the terminal's default color.
type Color struct {
	r, g, b uint8
	set     bool
}

// RGB builds a color from its channels.
func RGB(r, g, b uint8) Color {
	return Color{r: r, g: g, b: b, set: true}
}

// Channel clamps an integer to a valid color channel.
func Channel(v int) uint8 {
	return uint8(Clamp(v, 0, 255)) //#nosec G115 -- clamped above
}

// Predefined colors used by the cave renderers.
var (
	ColorDefault = Color{}
	ColorWhite   = RGB(255, 255, 255)
	ColorGray    = RGB(100, 100, 100)
	ColorRed     = RGB(255, 0, 0)
	ColorDarkRed = RGB(200, 0, 0)
	ColorGreen   = RGB(0, 255, 0)
	ColorYellow  = RGB(255, 255, 0)
	ColorOrange  = RGB(255, 165, 0)
	ColorRocket  = RGB(255, 156, 0)
	ColorPink    = RGB(255, 0, 128)
	ColorCyan    = RGB(0, 200, 255)
	ColorBlue    = RGB(0, 0, 255)
)

// IsDefault reports whether c is the terminal default color.
func (c Color) IsDefault() bool {
	return !c.set
}

// Channels returns the red, green and blue components.
func (c Color) Channels() (r, g, b uint8) {
	return c.r, c.g, c.b
}

// Hex returns the color as "#rrggbb", or "" for the default color.
func (c Color) Hex() string {
	if !c.set {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}

// Scale multiplies every channel by f, clamped to [0, 255].
func (c Color) Scale(f float64) Color {
	if !c.set {
		return c
	}
	return RGB(
		Channel(int(float64(c.r)*f)),
		Channel(int(float64(c.g)*f)),
		Channel(int(float64(c.b)*f)),
	)
}

// Lerp blends from a to b; t is clamped to [0, 1].
func Lerp(a, b Color, t float64) Color {
	t = ClampF(t, 0, 1)
	mix := func(x, y uint8) uint8 {
		return Channel(int(float64(x) + (float64(y)-float64(x))*t))
	}
	return RGB(mix(a.r, b.r), mix(a.g, b.g), mix(a.b, b.b))
}
