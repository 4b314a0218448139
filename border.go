package termcore

// BorderStyle selects a box-drawing character set.
type BorderStyle int

const (
	// BorderNone indicates no border should be drawn.
	BorderNone BorderStyle = iota
	// BorderLight uses light single-line box-drawing characters (─, │, ┌, etc.)
	BorderLight
	// BorderHeavy uses heavy box-drawing characters (━, ┃, ┏, etc.)
	BorderHeavy
	// BorderDouble uses double-line box-drawing characters (═, ║, ╔, etc.)
	BorderDouble
	// BorderRounded uses light lines with rounded corners (╭, ╮, ╰, ╯)
	BorderRounded
	// BorderASCII uses plain ASCII characters (+, -, |) for terminals
	// without Unicode support.
	BorderASCII
)

// BorderChars holds the characters used to draw a box border.
type BorderChars struct {
	TopLeft     string
	Top         string
	TopRight    string
	Left        string
	Right       string
	BottomLeft  string
	Bottom      string
	BottomRight string
}

// Chars returns the box-drawing characters for this border style.
func (b BorderStyle) Chars() BorderChars {
	switch b {
	case BorderLight:
		return BorderChars{
			TopLeft:     "┌",
			Top:         "─",
			TopRight:    "┐",
			Left:        "│",
			Right:       "│",
			BottomLeft:  "└",
			Bottom:      "─",
			BottomRight: "┘",
		}
	case BorderHeavy:
		return BorderChars{
			TopLeft:     "┏",
			Top:         "━",
			TopRight:    "┓",
			Left:        "┃",
			Right:       "┃",
			BottomLeft:  "┗",
			Bottom:      "━",
			BottomRight: "┛",
		}
	case BorderDouble:
		return BorderChars{
			TopLeft:     "╔",
			Top:         "═",
			TopRight:    "╗",
			Left:        "║",
			Right:       "║",
			BottomLeft:  "╚",
			Bottom:      "═",
			BottomRight: "╝",
		}
	case BorderRounded:
		return BorderChars{
			TopLeft:     "╭",
			Top:         "─",
			TopRight:    "╮",
			Left:        "│",
			Right:       "│",
			BottomLeft:  "╰",
			Bottom:      "─",
			BottomRight: "╯",
		}
	case BorderASCII:
		return BorderChars{
			TopLeft:     "+",
			Top:         "-",
			TopRight:    "+",
			Left:        "|",
			Right:       "|",
			BottomLeft:  "+",
			Bottom:      "-",
			BottomRight: "+",
		}
	default:
		// BorderNone or unknown
		return BorderChars{
			TopLeft:     " ",
			Top:         " ",
			TopRight:    " ",
			Left:        " ",
			Right:       " ",
			BottomLeft:  " ",
			Bottom:      " ",
			BottomRight: " ",
		}
	}
}
