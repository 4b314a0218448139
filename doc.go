// Package termcore implements the terminal I/O core of a terminal UI
// framework: a diff-based cell renderer that turns a grid of styled cells
// into the minimal ANSI escape stream needed to update the screen, and an
// incremental decoder that turns the raw byte stream coming back from the
// terminal into structured key, mouse, and paste events.
//
// The widget tree, layout, and event dispatch built on top of this package
// live elsewhere; they consume it through Buffer, Reader, and Terminal only.
package termcore
