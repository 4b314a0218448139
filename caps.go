package termcore

import (
	"os"
	"strings"
)

// ColorCapability describes the level of color support in a terminal.
type ColorCapability int

const (
	// ColorNone indicates a monochrome terminal with no color support.
	ColorNone ColorCapability = iota
	// Color16 indicates basic 16-color support (ANSI standard colors).
	Color16
	// Color256 indicates ANSI 256 palette support.
	Color256
	// ColorTrue indicates 24-bit true color (RGB) support.
	ColorTrue
)

// Capabilities describes what features the terminal supports.
// Detection is environment-variable based only; no terminfo lookup.
type Capabilities struct {
	// Colors indicates the level of color support.
	Colors ColorCapability
	// Unicode indicates whether the terminal can render Unicode characters.
	Unicode bool
	// TrueColor indicates whether 24-bit RGB colors are supported.
	TrueColor bool
	// AltScreen indicates whether the terminal supports the alternate screen buffer.
	AltScreen bool
}

// DefaultCapabilities returns conservative defaults for an unknown terminal.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		Colors:    Color16,
		Unicode:   true,
		TrueColor: false,
		AltScreen: true,
	}
}

// DetectCapabilities determines terminal capabilities from environment
// variables, returning conservative defaults when detection fails.
func DetectCapabilities() Capabilities {
	caps := DefaultCapabilities()

	// Explicit true color indicators override everything else
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	if colorterm == "truecolor" || colorterm == "24bit" {
		caps.Colors = ColorTrue
		caps.TrueColor = true
	}

	// Terminal emulators known to support true color
	for _, v := range []string{"WT_SESSION", "ITERM_SESSION_ID", "KITTY_WINDOW_ID", "KONSOLE_VERSION", "VTE_VERSION"} {
		if os.Getenv(v) != "" {
			caps.Colors = ColorTrue
			caps.TrueColor = true
		}
	}

	if caps.TrueColor {
		return caps
	}

	term := strings.ToLower(os.Getenv("TERM"))
	switch {
	case term == "dumb":
		caps.Colors = ColorNone
		caps.Unicode = false
		caps.AltScreen = false
	case strings.Contains(term, "truecolor"):
		caps.Colors = ColorTrue
		caps.TrueColor = true
	case strings.Contains(term, "256color"):
		caps.Colors = Color256
	}

	return caps
}

// SupportsColor returns true if the terminal can express the given color
// without approximation.
func (c Capabilities) SupportsColor(color Color) bool {
	switch color.Type() {
	case ColorDefault, ColorTransparent:
		return true
	case ColorANSI:
		if color.ANSI() < 16 {
			return c.Colors >= Color16
		}
		return c.Colors >= Color256
	case ColorRGB:
		return c.TrueColor
	}
	return false
}

// EffectiveColor returns the color to use given the terminal's capabilities.
// Unsupported colors approximate down one level at a time: RGB to the 256
// palette, the extended palette to the basic 16; a terminal with no color at
// all falls back to the default color.
func (c Capabilities) EffectiveColor(color Color) Color {
	if c.SupportsColor(color) {
		return color
	}

	switch color.Type() {
	case ColorRGB:
		if c.Colors >= Color256 {
			return color.ToANSI()
		}
		if c.Colors >= Color16 {
			return color.basic16()
		}
	case ColorANSI:
		if c.Colors >= Color16 {
			return color.basic16()
		}
	}
	return DefaultColor()
}

// String returns a human-readable description of the capabilities.
func (c Capabilities) String() string {
	var parts []string

	switch c.Colors {
	case ColorNone:
		parts = append(parts, "no-color")
	case Color16:
		parts = append(parts, "16-color")
	case Color256:
		parts = append(parts, "256-color")
	case ColorTrue:
		parts = append(parts, "true-color")
	}

	if c.Unicode {
		parts = append(parts, "unicode")
	} else {
		parts = append(parts, "ascii")
	}

	if c.AltScreen {
		parts = append(parts, "altscreen")
	}

	return strings.Join(parts, ", ")
}
