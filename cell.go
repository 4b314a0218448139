package termcore

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cell represents a single character cell in the terminal grid.
//
// Content holds one grapheme cluster (a base character plus any combining
// marks), not a single rune, so that accents stay attached to the cell they
// modify. Wide characters (CJK, most emoji) occupy two cells: the first
// carries the cluster with Wide set, the second is a continuation cell whose
// content is always a space. Wide and Cont are never both set.
type Cell struct {
	Content string // One grapheme cluster; " " for blank and continuation cells
	Style   Style  // Visual styling
	Wide    bool   // Cluster occupies this cell and the one to its right
	Cont    bool   // Right half of the preceding wide cell
}

// NewCell creates a Cell with automatic width detection for the cluster.
func NewCell(content string, style Style) Cell {
	return Cell{
		Content: content,
		Style:   style,
		Wide:    DisplayWidth(content) == 2,
	}
}

// BlankCell returns a single-width space cell with the given style.
func BlankCell(style Style) Cell {
	return Cell{Content: " ", Style: style}
}

// ContinuationCell returns the cell occupying the right column of a wide
// cluster. Its content is always a space.
func ContinuationCell(style Style) Cell {
	return Cell{Content: " ", Style: style, Cont: true}
}

// IsContinuation returns true if this cell is the second column of a wide cluster.
func (c Cell) IsContinuation() bool {
	return c.Cont
}

// Width returns the display width this cell occupies: 2 for wide cells,
// 0 for continuations, 1 otherwise.
func (c Cell) Width() int {
	switch {
	case c.Cont:
		return 0
	case c.Wide:
		return 2
	default:
		return 1
	}
}

// Equal returns true if both cells are identical.
func (c Cell) Equal(other Cell) bool {
	return c.Content == other.Content &&
		c.Wide == other.Wide &&
		c.Cont == other.Cont &&
		c.Style.Equal(other.Style)
}

// DisplayWidth returns the number of terminal columns a grapheme cluster
// occupies: 1 or 2. Classification follows East Asian Width via go-runewidth,
// which also treats zero-width combining marks as adding no width. A cluster
// that measures zero on its own (a lone combining mark) still needs a cell
// to land in, so the result is clamped to at least 1.
func DisplayWidth(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w < 1 {
		return 1
	}
	if w > 2 {
		return 2
	}
	return w
}

// graphemes splits a string into grapheme clusters in order.
func graphemes(s string) []string {
	var out []string
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cluster)
	}
	return out
}
