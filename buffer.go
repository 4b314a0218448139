package termcore

import (
	"io"
	"sort"
	"strings"
)

// sentinelCell initializes the previously-flushed grid. Wide and Cont are
// never both set on a real cell, so it compares unequal to anything the
// renderer can produce and forces a full first paint.
var sentinelCell = Cell{Wide: true, Cont: true}

// Buffer is a 2D grid of cells with diff-based flushing.
//
// Writes go to the current grid and mark coordinates dirty; Flush compares
// dirty cells against the previously-flushed grid and emits only the escape
// sequences needed to bring the terminal in sync. Buffer is not safe for
// concurrent use: mutation and flushing belong to the single render loop.
type Buffer struct {
	width  int
	height int
	cur    []Cell           // State being built
	prev   []Cell           // State last flushed to the terminal
	dirty  map[int]struct{} // Flat indices changed since the last flush
	caps   Capabilities
	esc    *escBuilder
}

// NewBuffer creates a buffer of the specified dimensions. The current grid
// starts blank; the previously-flushed grid starts at the sentinel so the
// first Flush repaints everything.
//
// The buffer defaults to full-fidelity output (true color); use
// SetCapabilities to downsample for a weaker terminal.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	size := width * height
	cur := make([]Cell, size)
	prev := make([]Cell, size)
	dirty := make(map[int]struct{}, size)

	blank := BlankCell(NewStyle())
	for i := range cur {
		cur[i] = blank
		prev[i] = sentinelCell
		dirty[i] = struct{}{}
	}

	return &Buffer{
		width:  width,
		height: height,
		cur:    cur,
		prev:   prev,
		dirty:  dirty,
		caps: Capabilities{
			Colors:    ColorTrue,
			Unicode:   true,
			TrueColor: true,
			AltScreen: true,
		},
		esc: newEscBuilder(4096),
	}
}

// Width returns the buffer width in columns.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height in rows.
func (b *Buffer) Height() int {
	return b.height
}

// Size returns the buffer dimensions (width, height).
func (b *Buffer) Size() (width, height int) {
	return b.width, b.height
}

// Rect returns the buffer bounds as a Rect starting at (0, 0).
func (b *Buffer) Rect() Rect {
	return NewRect(0, 0, b.width, b.height)
}

// SetCapabilities changes the capability profile used for escape emission.
func (b *Buffer) SetCapabilities(caps Capabilities) {
	b.caps = caps
}

// Capabilities returns the capability profile used for escape emission.
func (b *Buffer) Capabilities() Capabilities {
	return b.caps
}

// idx converts (x, y) coordinates to a flat index.
// Returns -1 if out of bounds.
func (b *Buffer) idx(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.width + x
}

// Cell returns the cell at position (x, y) from the current grid.
// Returns a blank cell if the position is out of bounds.
func (b *Buffer) Cell(x, y int) Cell {
	idx := b.idx(x, y)
	if idx < 0 {
		return BlankCell(NewStyle())
	}
	return b.cur[idx]
}

// rawSet writes a cell without invariant repair, marking it dirty only when
// the value actually changes.
func (b *Buffer) rawSet(idx int, c Cell) {
	if b.cur[idx].Equal(c) {
		return
	}
	b.cur[idx] = c
	b.dirty[idx] = struct{}{}
}

// SetCell sets the cell at position (x, y), repairing the wide/continuation
// invariant around the write:
//
//   - Overwriting a continuation cell with a non-continuation value blanks
//     the wide cell that owned it at (x-1, y), using that cell's own style,
//     so a stale multi-column glyph cannot desync from narrower content now
//     occupying this column.
//   - Overwriting a wide cell with a narrow value blanks its orphaned
//     continuation at (x+1, y).
//   - Writing a wide cell installs its continuation at (x+1, y) and marks
//     that column dirty even if its value did not change.
//
// Out-of-bounds writes are silent no-ops. A wide cell at the last column
// cannot fit and degrades to a styled blank.
func (b *Buffer) SetCell(x, y int, c Cell) {
	idx := b.idx(x, y)
	if idx < 0 {
		return
	}

	old := b.cur[idx]
	if old.Equal(c) {
		return
	}

	// Repair the owner of a continuation cell we are about to overwrite
	if old.Cont && !c.Cont && x > 0 {
		if owner := b.cur[idx-1]; owner.Wide {
			b.rawSet(idx-1, BlankCell(owner.Style))
		}
	}

	// Blank the continuation orphaned by narrowing a wide cell
	if old.Wide && !c.Wide && x+1 < b.width {
		if b.cur[idx+1].Cont {
			b.rawSet(idx+1, BlankCell(old.Style))
		}
	}

	if !c.Wide {
		b.rawSet(idx, c)
		return
	}

	// Wide cell at the last column cannot fit
	if x+1 >= b.width {
		b.rawSet(idx, BlankCell(c.Style))
		return
	}

	// The incoming wide cell overlaps whatever starts at x+1
	next := b.cur[idx+1]
	if next.Wide && x+2 < b.width && b.cur[idx+2].Cont {
		b.rawSet(idx+2, BlankCell(next.Style))
	}

	b.rawSet(idx, c)
	b.rawSet(idx+1, ContinuationCell(c.Style))
	// Stale continuation data one column right must repaint even if the
	// value compares equal.
	b.dirty[idx+1] = struct{}{}
}

// SetContent writes a single grapheme cluster at (x, y) with the given style
// and returns the display width written: 1, 2, or 0 when the cluster does not
// fit (wide cluster at the last column) or the position is out of bounds.
// Callers must not assume a fixed advance.
func (b *Buffer) SetContent(x, y int, content string, style Style) int {
	if content == "" || b.idx(x, y) < 0 {
		return 0
	}

	if DisplayWidth(content) == 2 {
		if x+1 >= b.width {
			return 0
		}
		b.SetCell(x, y, Cell{Content: content, Style: style, Wide: true})
		return 2
	}

	b.SetCell(x, y, Cell{Content: content, Style: style})
	return 1
}

// SetString writes a string starting at (x, y), splitting it into grapheme
// clusters. Returns the total display width consumed. Stops at the buffer
// edge without wrapping; a wide cluster that does not fit ends the write.
func (b *Buffer) SetString(x, y int, s string, style Style) int {
	if y < 0 || y >= b.height {
		return 0
	}

	total := 0
	curX := x

	for _, cluster := range graphemes(s) {
		w := DisplayWidth(cluster)
		if curX < 0 {
			// Skip clusters before the visible area
			curX += w
			continue
		}
		if curX >= b.width {
			break
		}
		if w == 2 && curX+1 >= b.width {
			break
		}

		written := b.SetContent(curX, y, cluster, style)
		if written == 0 {
			break
		}
		curX += written
		total += written
	}

	return total
}

// SetStringGradient writes a string with a gradient applied to the foreground
// per cluster along the string. Returns the total display width consumed.
func (b *Buffer) SetStringGradient(x, y int, s string, g Gradient, baseStyle Style) int {
	if y < 0 || y >= b.height {
		return 0
	}

	clusters := graphemes(s)
	if len(clusters) == 0 {
		return 0
	}

	total := 0
	curX := x

	for i, cluster := range clusters {
		w := DisplayWidth(cluster)
		if curX < 0 {
			curX += w
			continue
		}
		if curX >= b.width || (w == 2 && curX+1 >= b.width) {
			break
		}

		t := 0.0
		if len(clusters) > 1 {
			t = float64(i) / float64(len(clusters)-1)
		}
		style := baseStyle.Foreground(g.At(t))

		written := b.SetContent(curX, y, cluster, style)
		if written == 0 {
			break
		}
		curX += written
		total += written
	}

	return total
}

// Fill fills a rectangle with the given grapheme cluster and style.
// Wide clusters that do not fit the remaining row space fall back to a space.
func (b *Buffer) Fill(rect Rect, content string, style Style) {
	rect = rect.Intersect(b.Rect())
	if rect.IsEmpty() {
		return
	}

	w := DisplayWidth(content)
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); {
			if w == 2 && x+1 >= rect.Right() {
				b.SetContent(x, y, " ", style)
				x++
				continue
			}
			b.SetContent(x, y, content, style)
			x += w
		}
	}
}

// FillGradient fills a rectangle with a gradient background. The gradient
// direction determines how positions map to colors across the rect.
func (b *Buffer) FillGradient(rect Rect, content string, g Gradient, baseStyle Style) {
	rect = rect.Intersect(b.Rect())
	if rect.IsEmpty() {
		return
	}

	w := DisplayWidth(content)
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); {
			style := baseStyle.Background(g.At(g.pos(x, y, rect)))
			if w == 2 && x+1 >= rect.Right() {
				b.SetContent(x, y, " ", style)
				x++
				continue
			}
			b.SetContent(x, y, content, style)
			x += w
		}
	}
}

// HLine draws a horizontal line of the given length starting at (x, y).
func (b *Buffer) HLine(x, y, length int, border BorderStyle, style Style) {
	ch := border.Chars().Top
	for i := 0; i < length; i++ {
		b.SetContent(x+i, y, ch, style)
	}
}

// VLine draws a vertical line of the given length starting at (x, y).
func (b *Buffer) VLine(x, y, length int, border BorderStyle, style Style) {
	ch := border.Chars().Left
	for i := 0; i < length; i++ {
		b.SetContent(x, y+i, ch, style)
	}
}

// DrawBox draws a box border on the buffer at the specified rectangle using
// the given border character set. Rectangles smaller than 2x2 are ignored.
func (b *Buffer) DrawBox(rect Rect, border BorderStyle, style Style) {
	if border == BorderNone {
		return
	}
	rect = rect.Intersect(b.Rect())
	if rect.IsEmpty() || rect.Width < 2 || rect.Height < 2 {
		return
	}

	chars := border.Chars()
	left := rect.X
	right := rect.Right() - 1
	top := rect.Y
	bottom := rect.Bottom() - 1

	b.SetContent(left, top, chars.TopLeft, style)
	b.SetContent(right, top, chars.TopRight, style)
	b.SetContent(left, bottom, chars.BottomLeft, style)
	b.SetContent(right, bottom, chars.BottomRight, style)

	for x := left + 1; x < right; x++ {
		b.SetContent(x, top, chars.Top, style)
		b.SetContent(x, bottom, chars.Bottom, style)
	}
	for y := top + 1; y < bottom; y++ {
		b.SetContent(left, y, chars.Left, style)
		b.SetContent(right, y, chars.Right, style)
	}
}

// Clear clears the entire current grid to blanks with default style.
func (b *Buffer) Clear() {
	b.ClearRect(b.Rect())
}

// ClearRect clears a rectangular region to blanks with default style.
// Wide clusters straddling the region edges are repaired by SetCell.
func (b *Buffer) ClearRect(rect Rect) {
	rect = rect.Intersect(b.Rect())
	if rect.IsEmpty() {
		return
	}

	blank := BlankCell(NewStyle())
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			b.SetCell(x, y, blank)
		}
	}
}

// Resize changes the buffer dimensions. Content in the overlapping region is
// preserved; new areas start blank. The previously-flushed grid resets to the
// sentinel and the whole buffer is marked dirty, so the next Flush repaints
// everything; the old dirty set is discarded.
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == b.width && height == b.height {
		return
	}

	size := width * height
	cur := make([]Cell, size)
	prev := make([]Cell, size)
	dirty := make(map[int]struct{}, size)

	blank := BlankCell(NewStyle())
	for i := range cur {
		cur[i] = blank
		prev[i] = sentinelCell
		dirty[i] = struct{}{}
	}

	copyWidth := min(width, b.width)
	copyHeight := min(height, b.height)
	for y := 0; y < copyHeight; y++ {
		for x := 0; x < copyWidth; x++ {
			c := b.cur[y*b.width+x]
			// A wide cell whose continuation column is cut off by the new
			// width cannot keep its glyph
			if c.Wide && x+1 >= width {
				c = BlankCell(c.Style)
			}
			cur[y*width+x] = c
		}
	}

	b.cur = cur
	b.prev = prev
	b.dirty = dirty
	b.width = width
	b.height = height
}

// Invalidate forces a full repaint on the next Flush, even for cells whose
// content has not changed. Use after external state the buffer cannot observe
// may have corrupted the screen.
func (b *Buffer) Invalidate() {
	b.InvalidateRegion(b.Rect())
}

// InvalidateRegion forces a repaint of a region on the next Flush.
func (b *Buffer) InvalidateRegion(rect Rect) {
	rect = rect.Intersect(b.Rect())
	if rect.IsEmpty() {
		return
	}

	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			idx := y*b.width + x
			b.prev[idx] = sentinelCell
			b.dirty[idx] = struct{}{}
		}
	}
}

// Flush writes the minimal escape stream updating the terminal to match the
// current grid, as a single contiguous write. It walks dirty coordinates in
// row-major order, skipping cells that match the previously-flushed grid,
// moving the cursor only when the write position is not contiguous with the
// expected cursor position, and re-emitting style when it differs from either
// the last style emitted in this flush or the style that previously occupied
// the cell (some terminals do not repaint correctly when only the prior style
// differs).
//
// Continuation cells are never emitted on their own: the terminal already
// advanced past them when the owning wide glyph was written. After each wide
// glyph the cursor position is explicitly reasserted at x+2, because a
// terminal falling back to a single-column font for a nominally wide
// character would otherwise silently desync the cursor model.
//
// Returns the number of bytes written. A flush with nothing to do performs
// zero writes.
func (b *Buffer) Flush(w io.Writer) (int, error) {
	if len(b.dirty) == 0 {
		return 0, nil
	}

	idxs := make([]int, 0, len(b.dirty))
	for idx := range b.dirty {
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)

	b.esc.Reset()
	var lastStyle Style
	haveStyle := false
	expectX, expectY := -1, -1

	for _, idx := range idxs {
		c := b.cur[idx]
		p := b.prev[idx]
		if c.Equal(p) {
			continue
		}

		// The owning wide glyph repaints the continuation column
		if c.Cont {
			b.prev[idx] = c
			continue
		}

		x := idx % b.width
		y := idx / b.width

		if x != expectX || y != expectY {
			b.esc.MoveTo(x, y)
		}

		if !haveStyle || !c.Style.Equal(lastStyle) || !c.Style.Equal(p.Style) {
			b.esc.SetStyle(c.Style, b.caps)
			lastStyle = c.Style
			haveStyle = true
		}

		if c.Content == "" {
			b.esc.WriteString(" ")
		} else {
			b.esc.WriteString(c.Content)
		}
		b.prev[idx] = c

		if c.Wide {
			// Sync the continuation column: the terminal covered it
			if x+1 < b.width && b.cur[idx+1].Cont {
				b.prev[idx+1] = b.cur[idx+1]
			}
			b.esc.MoveTo(x+2, y)
			expectX, expectY = x+2, y
		} else {
			expectX, expectY = x+1, y
		}
	}

	b.dirty = make(map[int]struct{})

	if b.esc.Len() == 0 {
		return 0, nil
	}
	return w.Write(b.esc.Bytes())
}

// String renders the current grid to a string for debugging. Rows are
// newline-separated; continuation cells are skipped.
func (b *Buffer) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			cell := b.cur[y*b.width+x]
			if cell.Cont {
				continue
			}
			if cell.Content == "" {
				sb.WriteByte(' ')
			} else {
				sb.WriteString(cell.Content)
			}
		}
		if y < b.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// StringTrimmed returns the current grid content with trailing spaces removed
// from each line.
func (b *Buffer) StringTrimmed() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		var line strings.Builder
		for x := 0; x < b.width; x++ {
			cell := b.cur[y*b.width+x]
			if cell.Cont {
				continue
			}
			if cell.Content == "" {
				line.WriteByte(' ')
			} else {
				line.WriteString(cell.Content)
			}
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		if y < b.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
