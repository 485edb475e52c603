// Package viz hosts the rain in a terminal using the Bubble Tea framework.
//
//   - [Model]: bubbletea model composing one frame per tick
//   - [Canvas]: renders a [rain.Grid] with termenv colour sequences
//   - [StatusLine]: lipgloss status line (fps, drops, lit cells)
//
// # Key Bindings
//
//	q, Esc, Ctrl+C - Quit
//	Tab            - Toggle the status line
//
// The terminal size comes from window size messages; before the first one
// arrives nothing is drawn.
package viz
