package termcore

import (
	"testing"
)

func TestColor_ZeroValue(t *testing.T) {
	var c Color
	if !c.IsDefault() {
		t.Error("zero value Color should be the default color")
	}
	if c.Type() != ColorDefault {
		t.Errorf("Type() = %v, want ColorDefault", c.Type())
	}
}

func TestColor_Constructors(t *testing.T) {
	if got := ANSIColor(42); got.Type() != ColorANSI || got.ANSI() != 42 {
		t.Errorf("ANSIColor(42) = %+v", got)
	}

	c := RGBColor(10, 20, 30)
	if c.Type() != ColorRGB {
		t.Errorf("RGBColor type = %v, want ColorRGB", c.Type())
	}
	r, g, b := c.RGB()
	if r != 10 || g != 20 || b != 30 {
		t.Errorf("RGB() = (%d, %d, %d), want (10, 20, 30)", r, g, b)
	}

	if !TransparentColor().IsTransparent() {
		t.Error("TransparentColor() should be transparent")
	}
	if TransparentColor().IsDefault() {
		t.Error("transparent should not be default")
	}
}

func TestColor_Hex(t *testing.T) {
	type tc struct {
		input   string
		r, g, b uint8
		wantErr bool
	}

	tests := map[string]tc{
		"six digit red":    {input: "#ff0000", r: 255},
		"six digit mixed":  {input: "#1a2b3c", r: 0x1a, g: 0x2b, b: 0x3c},
		"short form":       {input: "#abc", r: 0xaa, g: 0xbb, b: 0xcc},
		"uppercase":        {input: "#FF00FF", r: 255, b: 255},
		"missing hash":     {input: "ff0000", wantErr: true},
		"garbage":          {input: "#zzzzzz", wantErr: true},
		"wrong length":     {input: "#ff00", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := HexColor(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("HexColor(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("HexColor(%q) failed: %v", tt.input, err)
			}
			r, g, b := c.RGB()
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("HexColor(%q) = (%d, %d, %d), want (%d, %d, %d)",
					tt.input, r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestColor_Equal(t *testing.T) {
	if !DefaultColor().Equal(DefaultColor()) {
		t.Error("default colors should be equal")
	}
	if DefaultColor().Equal(TransparentColor()) {
		t.Error("default and transparent should differ")
	}
	if !ANSIColor(3).Equal(ANSIColor(3)) {
		t.Error("identical ANSI colors should be equal")
	}
	if ANSIColor(3).Equal(ANSIColor(4)) {
		t.Error("different ANSI indices should differ")
	}
	if !RGBColor(1, 2, 3).Equal(RGBColor(1, 2, 3)) {
		t.Error("identical RGB colors should be equal")
	}
	if RGBColor(1, 2, 3).Equal(RGBColor(1, 2, 4)) {
		t.Error("different RGB components should differ")
	}
	if ANSIColor(1).Equal(RGBColor(205, 49, 49)) {
		t.Error("ANSI and RGB variants should never be equal")
	}
}

func TestColor_Packed_RoundTrip(t *testing.T) {
	colors := []Color{
		DefaultColor(),
		ANSIColor(0),
		ANSIColor(7),
		ANSIColor(255),
		RGBColor(0, 0, 0),
		RGBColor(255, 255, 255),
		RGBColor(1, 2, 3),
		RGBColor(0, 255, 0),
		RGBColor(255, 0, 255),
	}

	for _, c := range colors {
		got, err := UnpackColor(c.Packed())
		if err != nil {
			t.Errorf("UnpackColor(%d) failed: %v", c.Packed(), err)
			continue
		}
		if !got.Equal(c) {
			t.Errorf("round trip of %+v through %d gave %+v", c, c.Packed(), got)
		}
	}
}

func TestColor_Packed_Values(t *testing.T) {
	if got := DefaultColor().Packed(); got != -1 {
		t.Errorf("default Packed() = %d, want -1", got)
	}
	if got := ANSIColor(5).Packed(); got != 5 {
		t.Errorf("ANSI(5) Packed() = %d, want 5", got)
	}
	if got := RGBColor(1, 2, 3).Packed(); got != -66053 {
		t.Errorf("RGB(1,2,3) Packed() = %d, want -66053", got)
	}
	// Transparent has no wire form and packs as default
	if got := TransparentColor().Packed(); got != -1 {
		t.Errorf("transparent Packed() = %d, want -1", got)
	}
}

func TestUnpackColor_Invalid(t *testing.T) {
	if _, err := UnpackColor(256); err == nil {
		t.Error("UnpackColor(256) should fail: palette index out of range")
	}
	if _, err := UnpackColor(-(0x1000000) - 2); err == nil {
		t.Error("UnpackColor of oversized rgb should fail")
	}
}

func TestColor_ToANSI(t *testing.T) {
	type tc struct {
		in   Color
		want uint8
	}

	tests := map[string]tc{
		"pure red maps to cube":   {in: RGBColor(255, 0, 0), want: 196},
		"pure green maps to cube": {in: RGBColor(0, 255, 0), want: 46},
		"pure blue maps to cube":  {in: RGBColor(0, 0, 255), want: 21},
		"near black uses cube":    {in: RGBColor(0, 0, 0), want: 16},
		"near white uses cube":    {in: RGBColor(255, 255, 255), want: 231},
		"mid gray uses ramp":      {in: RGBColor(128, 128, 128), want: 244},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := tt.in.ToANSI()
			if got.Type() != ColorANSI {
				t.Fatalf("ToANSI() type = %v, want ColorANSI", got.Type())
			}
			if got.ANSI() != tt.want {
				t.Errorf("ToANSI() = %d, want %d", got.ANSI(), tt.want)
			}
		})
	}

	// Non-RGB colors pass through unchanged
	if got := ANSIColor(3).ToANSI(); !got.Equal(ANSIColor(3)) {
		t.Errorf("ANSI ToANSI() = %+v, want unchanged", got)
	}
	if got := DefaultColor().ToANSI(); !got.IsDefault() {
		t.Errorf("default ToANSI() = %+v, want unchanged", got)
	}
}

func TestColor_Basic16(t *testing.T) {
	type tc struct {
		in   Color
		want uint8
	}

	tests := map[string]tc{
		"pure red":          {in: RGBColor(255, 0, 0), want: 1},
		"pure black":        {in: RGBColor(0, 0, 0), want: 0},
		"white":             {in: RGBColor(255, 255, 255), want: 15},
		"mid gray":          {in: RGBColor(110, 110, 110), want: 8},
		"cube red":          {in: ANSIColor(196), want: 1},
		"already basic":     {in: ANSIColor(5), want: 5},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := tt.in.basic16()
			if got.Type() != ColorANSI || got.ANSI() != tt.want {
				t.Errorf("basic16() = %+v, want index %d", got, tt.want)
			}
		})
	}

	if got := DefaultColor().basic16(); !got.IsDefault() {
		t.Errorf("default basic16() = %+v, want unchanged", got)
	}
}

func TestColor_ToRGBValues(t *testing.T) {
	// RGB passes through
	r, g, b := RGBColor(9, 8, 7).ToRGBValues()
	if r != 9 || g != 8 || b != 7 {
		t.Errorf("RGB ToRGBValues() = (%d, %d, %d)", r, g, b)
	}

	// Basic 16 use the lookup table
	r, g, b = Red.ToRGBValues()
	if r != 205 || g != 49 || b != 49 {
		t.Errorf("Red ToRGBValues() = (%d, %d, %d), want (205, 49, 49)", r, g, b)
	}

	// Cube index 196 is pure red
	r, g, b = ANSIColor(196).ToRGBValues()
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("cube 196 ToRGBValues() = (%d, %d, %d), want (255, 0, 0)", r, g, b)
	}

	// Grayscale ramp
	r, g, b = ANSIColor(232).ToRGBValues()
	if r != 8 || r != g || g != b {
		t.Errorf("gray 232 ToRGBValues() = (%d, %d, %d), want (8, 8, 8)", r, g, b)
	}

	// Default and transparent report black
	r, g, b = DefaultColor().ToRGBValues()
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("default ToRGBValues() = (%d, %d, %d), want (0, 0, 0)", r, g, b)
	}
}

func TestColor_Luminance(t *testing.T) {
	if got := RGBColor(0, 0, 0).Luminance(); got != 0 {
		t.Errorf("black luminance = %v, want 0", got)
	}
	white := RGBColor(255, 255, 255).Luminance()
	if white < 0.99 || white > 1.01 {
		t.Errorf("white luminance = %v, want ~1.0", white)
	}
	// Green dominates perceived brightness
	if RGBColor(0, 255, 0).Luminance() <= RGBColor(0, 0, 255).Luminance() {
		t.Error("green should be brighter than blue")
	}
}

func TestColor_IsLight(t *testing.T) {
	if RGBColor(0, 0, 0).IsLight() {
		t.Error("black should not be light")
	}
	if !RGBColor(255, 255, 255).IsLight() {
		t.Error("white should be light")
	}
	if DefaultColor().IsLight() {
		t.Error("default assumes a dark background")
	}
	if !BrightWhite.IsLight() {
		t.Error("bright white should be light")
	}
}
