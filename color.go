package termcore

import (
	"errors"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorType distinguishes between color representations.
type ColorType uint8

const (
	// ColorDefault represents the terminal's default color (no color set).
	ColorDefault ColorType = iota
	// ColorTransparent marks a cell color as "inherit from whatever is
	// beneath". It is a framework-level marker, distinct from ColorDefault:
	// the renderer emits nothing for it, and compositing layers above this
	// package use it to skip drawing a background.
	ColorTransparent
	// ColorANSI represents an ANSI 256 palette color (0-255).
	ColorANSI
	// ColorRGB represents a true color (24-bit RGB).
	ColorRGB
)

// Color represents a terminal color: default, transparent, ANSI 256, or true
// color. Zero value represents the terminal default color. Exactly one
// variant is active at a time.
type Color struct {
	typ ColorType
	// For ANSI: r holds the palette index (0-255)
	// For RGB: r, g, b hold the color components
	r, g, b uint8
}

// DefaultColor returns a Color representing the terminal's default color.
func DefaultColor() Color {
	return Color{typ: ColorDefault}
}

// TransparentColor returns the inherit-from-beneath marker color.
func TransparentColor() Color {
	return Color{typ: ColorTransparent}
}

// ANSIColor returns a Color from the ANSI 256 palette.
func ANSIColor(index uint8) Color {
	return Color{typ: ColorANSI, r: index}
}

// RGBColor returns a true color (24-bit RGB) Color.
func RGBColor(r, g, b uint8) Color {
	return Color{typ: ColorRGB, r: r, g: g, b: b}
}

// HexColor parses a hex color string ("#RRGGBB" or "#RGB") into an RGB Color.
func HexColor(hex string) (Color, error) {
	if len(hex) == 4 && hex[0] == '#' {
		// colorful.Hex only accepts the six-digit form; expand #RGB first.
		hex = string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, err
	}
	r, g, b := c.RGB255()
	return RGBColor(r, g, b), nil
}

// Type returns the ColorType of this color.
func (c Color) Type() ColorType {
	return c.typ
}

// IsDefault returns true if this is the terminal's default color.
func (c Color) IsDefault() bool {
	return c.typ == ColorDefault
}

// IsTransparent returns true if this is the inherit-from-beneath marker.
func (c Color) IsTransparent() bool {
	return c.typ == ColorTransparent
}

// ANSI returns the ANSI palette index.
// Panics if the color is not an ANSI color.
func (c Color) ANSI() uint8 {
	if c.typ != ColorANSI {
		panic("Color.ANSI() called on non-ANSI color")
	}
	return c.r
}

// RGB returns the red, green, and blue components.
// Panics if the color is not an RGB color.
func (c Color) RGB() (r, g, b uint8) {
	if c.typ != ColorRGB {
		panic("Color.RGB() called on non-RGB color")
	}
	return c.r, c.g, c.b
}

// Equal returns true if both colors are identical.
func (c Color) Equal(other Color) bool {
	if c.typ != other.typ {
		return false
	}
	switch c.typ {
	case ColorDefault, ColorTransparent:
		return true
	case ColorANSI:
		return c.r == other.r
	case ColorRGB:
		return c.r == other.r && c.g == other.g && c.b == other.b
	}
	return false
}

// Packed returns the color as a single signed integer for compact storage:
//
//	default           -> -1
//	palette index n   -> n (0-255)
//	RGB(r, g, b)      -> -((r<<16)|(g<<8)|b) - 2
//
// Sign and magnitude keep the three variants unambiguous in one field.
// Transparent is a framework-internal marker with no wire form and packs as
// default.
func (c Color) Packed() int {
	switch c.typ {
	case ColorANSI:
		return int(c.r)
	case ColorRGB:
		return -((int(c.r) << 16) | (int(c.g) << 8) | int(c.b)) - 2
	default:
		return -1
	}
}

// UnpackColor reverses Packed. Values >= 0 are palette indices, -1 is the
// default color, and values <= -2 decode to the original RGB components.
func UnpackColor(v int) (Color, error) {
	switch {
	case v >= 0:
		if v > 255 {
			return Color{}, errors.New("packed palette index out of range")
		}
		return ANSIColor(uint8(v)), nil
	case v == -1:
		return DefaultColor(), nil
	default:
		rgb := -(v + 2)
		if rgb > 0xFFFFFF {
			return Color{}, errors.New("packed rgb value out of range")
		}
		return RGBColor(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb)), nil
	}
}

// ToANSI approximates an RGB color to the nearest ANSI 256 palette entry.
// Uses the 6x6x6 color cube (indices 16-231) plus grayscale (232-255).
// Returns the color unchanged if it's not RGB.
func (c Color) ToANSI() Color {
	if c.typ != ColorRGB {
		return c
	}

	r, g, b := c.r, c.g, c.b

	// Check if grayscale (or close to it)
	if r == g && g == b {
		// Grayscale ramp: 232-255 (24 shades)
		if r < 8 {
			return ANSIColor(16) // Black in the color cube is closer
		}
		if r > 248 {
			return ANSIColor(231) // White in the color cube is closer
		}
		gray := uint8(232 + (int(r)-8)*24/240)
		return ANSIColor(gray)
	}

	// 6x6x6 color cube: 16-231
	ri := int(r) * 5 / 255
	gi := int(g) * 5 / 255
	bi := int(b) * 5 / 255

	index := uint8(16 + 36*ri + 6*gi + bi)
	return ANSIColor(index)
}

// basic16 approximates a color to the nearest of the 16 basic ANSI colors by
// squared RGB distance against the reference palette. Colors already inside
// the basic range pass through unchanged.
func (c Color) basic16() Color {
	if c.typ == ColorDefault || c.typ == ColorTransparent {
		return c
	}
	if c.typ == ColorANSI && c.r < 16 {
		return c
	}

	r, g, b := c.ToRGBValues()
	best := 0
	bestDist := 1 << 30
	for i, rgb := range ansi16RGB {
		dr := int(r) - int(rgb[0])
		dg := int(g) - int(rgb[1])
		db := int(b) - int(rgb[2])
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return ANSIColor(uint8(best))
}

// Standard ANSI colors (basic 8 colors).
var (
	Black   = ANSIColor(0)
	Red     = ANSIColor(1)
	Green   = ANSIColor(2)
	Yellow  = ANSIColor(3)
	Blue    = ANSIColor(4)
	Magenta = ANSIColor(5)
	Cyan    = ANSIColor(6)
	White   = ANSIColor(7)
)

// Bright ANSI colors (high-intensity variants).
var (
	BrightBlack   = ANSIColor(8)
	BrightRed     = ANSIColor(9)
	BrightGreen   = ANSIColor(10)
	BrightYellow  = ANSIColor(11)
	BrightBlue    = ANSIColor(12)
	BrightMagenta = ANSIColor(13)
	BrightCyan    = ANSIColor(14)
	BrightWhite   = ANSIColor(15)
)

// ansi16RGB maps ANSI colors 0-15 to approximate RGB values.
// These are typical terminal color values; actual values vary by terminal.
var ansi16RGB = [16][3]uint8{
	{0, 0, 0},       // 0: Black
	{205, 49, 49},   // 1: Red
	{13, 188, 121},  // 2: Green
	{229, 229, 16},  // 3: Yellow
	{36, 114, 200},  // 4: Blue
	{188, 63, 188},  // 5: Magenta
	{17, 168, 205},  // 6: Cyan
	{229, 229, 229}, // 7: White
	{102, 102, 102}, // 8: Bright Black (Gray)
	{241, 76, 76},   // 9: Bright Red
	{35, 209, 139},  // 10: Bright Green
	{245, 245, 67},  // 11: Bright Yellow
	{59, 142, 234},  // 12: Bright Blue
	{214, 112, 214}, // 13: Bright Magenta
	{41, 184, 219},  // 14: Bright Cyan
	{255, 255, 255}, // 15: Bright White
}

// ToRGBValues returns the red, green, and blue components of any color.
// For ANSI colors, it approximates the RGB values.
// For default and transparent colors, it returns (0, 0, 0).
func (c Color) ToRGBValues() (r, g, b uint8) {
	switch c.typ {
	case ColorRGB:
		return c.r, c.g, c.b
	case ColorANSI:
		idx := c.r
		if idx < 16 {
			rgb := ansi16RGB[idx]
			return rgb[0], rgb[1], rgb[2]
		} else if idx < 232 {
			// 6x6x6 color cube: index = 16 + 36*r + 6*g + b where r,g,b are 0-5
			idx -= 16
			ri := idx / 36
			gi := (idx % 36) / 6
			bi := idx % 6
			// Convert 0-5 to RGB: 0→0, 1→95, 2→135, 3→175, 4→215, 5→255
			cubeToRGB := func(v uint8) uint8 {
				if v == 0 {
					return 0
				}
				return 55 + v*40
			}
			return cubeToRGB(ri), cubeToRGB(gi), cubeToRGB(bi)
		}
		// Grayscale ramp (indices 232-255)
		gray := 8 + (idx-232)*10
		return gray, gray, gray
	}
	return 0, 0, 0
}

// colorful converts the color to a go-colorful sRGB color for color math.
func (c Color) colorful() colorful.Color {
	r, g, b := c.ToRGBValues()
	return colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
}

// Luminance returns the relative luminance of the color (0.0-1.0) per the
// W3C formula, computed on gamma-corrected linear RGB.
func (c Color) Luminance() float64 {
	if c.typ == ColorDefault || c.typ == ColorTransparent {
		// Unknown underlying color; assume dark background
		return 0.0
	}
	r, g, b := c.colorful().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// IsLight returns true if the color is perceptually light.
func (c Color) IsLight() bool {
	if c.typ == ColorDefault || c.typ == ColorTransparent {
		return false // Assume default is dark
	}
	return c.Luminance() > 0.2
}
