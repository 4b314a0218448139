package termcore

import (
	"testing"
)

func TestBorderStyle_Chars(t *testing.T) {
	type tc struct {
		style       BorderStyle
		topLeft     string
		top         string
		bottomRight string
	}

	tests := map[string]tc{
		"light":   {style: BorderLight, topLeft: "┌", top: "─", bottomRight: "┘"},
		"heavy":   {style: BorderHeavy, topLeft: "┏", top: "━", bottomRight: "┛"},
		"double":  {style: BorderDouble, topLeft: "╔", top: "═", bottomRight: "╝"},
		"rounded": {style: BorderRounded, topLeft: "╭", top: "─", bottomRight: "╯"},
		"ascii":   {style: BorderASCII, topLeft: "+", top: "-", bottomRight: "+"},
		"none":    {style: BorderNone, topLeft: " ", top: " ", bottomRight: " "},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			chars := tt.style.Chars()
			if chars.TopLeft != tt.topLeft {
				t.Errorf("TopLeft = %q, want %q", chars.TopLeft, tt.topLeft)
			}
			if chars.Top != tt.top {
				t.Errorf("Top = %q, want %q", chars.Top, tt.top)
			}
			if chars.BottomRight != tt.bottomRight {
				t.Errorf("BottomRight = %q, want %q", chars.BottomRight, tt.bottomRight)
			}
		})
	}
}

func TestBorderStyle_CharsAreSingleWidth(t *testing.T) {
	styles := []BorderStyle{BorderLight, BorderHeavy, BorderDouble, BorderRounded, BorderASCII}
	for _, style := range styles {
		chars := style.Chars()
		for _, ch := range []string{
			chars.TopLeft, chars.Top, chars.TopRight,
			chars.Left, chars.Right,
			chars.BottomLeft, chars.Bottom, chars.BottomRight,
		} {
			if DisplayWidth(ch) != 1 {
				t.Errorf("border char %q of style %d is not single width", ch, style)
			}
		}
	}
}
