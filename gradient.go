package termcore

// GradientDirection determines how a gradient is applied across a rectangle.
type GradientDirection int

const (
	// GradientHorizontal runs left to right.
	GradientHorizontal GradientDirection = iota
	// GradientVertical runs top to bottom.
	GradientVertical
	// GradientDiagonalDown runs top-left to bottom-right.
	GradientDiagonalDown
	// GradientDiagonalUp runs bottom-left to top-right.
	GradientDiagonalUp
)

// Gradient is a linear multi-stop color gradient. Stops are spaced evenly;
// interpolation happens in Lab space, which avoids the muddy midpoints that
// naive RGB blending produces.
type Gradient struct {
	Stops     []Color
	Direction GradientDirection
}

// NewGradient creates a gradient from evenly spaced color stops.
func NewGradient(direction GradientDirection, stops ...Color) Gradient {
	return Gradient{Stops: stops, Direction: direction}
}

// At returns the interpolated color at position t in [0, 1].
// t is clamped; a gradient with no stops returns the default color.
func (g Gradient) At(t float64) Color {
	switch len(g.Stops) {
	case 0:
		return DefaultColor()
	case 1:
		return g.Stops[0]
	}

	if t <= 0 {
		return g.Stops[0]
	}
	if t >= 1 {
		return g.Stops[len(g.Stops)-1]
	}

	// Locate the segment containing t
	segments := len(g.Stops) - 1
	pos := t * float64(segments)
	i := int(pos)
	if i >= segments {
		i = segments - 1
	}
	frac := pos - float64(i)

	from := g.Stops[i].colorful()
	to := g.Stops[i+1].colorful()
	blended := from.BlendLab(to, frac).Clamped()

	r, gg, b := blended.RGB255()
	return RGBColor(r, gg, b)
}

// pos maps a cell coordinate inside rect to the gradient position t in [0, 1].
func (g Gradient) pos(x, y int, rect Rect) float64 {
	w := float64(rect.Width)
	h := float64(rect.Height)
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}

	switch g.Direction {
	case GradientVertical:
		return float64(y-rect.Y) / h
	case GradientDiagonalDown:
		return (float64(x-rect.X)/w + float64(y-rect.Y)/h) / 2
	case GradientDiagonalUp:
		return (float64(x-rect.X)/w + float64(rect.Bottom()-1-y)/h) / 2
	default:
		return float64(x-rect.X) / w
	}
}
