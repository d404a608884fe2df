package pointillism

import (
	"fmt"
	"io"

	"golang.org/x/sys/unix"
)

// Terminal is the screen a Player draws on.
type Terminal interface {
	ResetCursor(rows int)
	ShowCursor(show bool)
	Size() (cols, lines int, err error)
}

// Control sequences understood by xterm compatible terminals.
const (
	cursorHide = "\033[?25l"
	// Steady and visible.
	cursorShow = "\033[?12l\033[?25h"
	// Far left of the current line.
	cursorHome   = "\033[999D"
	cursorUpRows = "\033[%dA"
)

// Xterm is a Terminal that writes ANSI control sequences to Writer.
type Xterm struct {
	Writer io.Writer
	Fd     int // queried for the window size
}

// ResetCursor returns to the top left of a frame that is rows lines tall,
// so the next frame overwrites it.
func (term *Xterm) ResetCursor(rows int) {
	fmt.Fprintf(term.Writer, cursorHome+cursorUpRows, rows)
}

func (term *Xterm) ShowCursor(show bool) {
	seq := cursorHide
	if show {
		seq = cursorShow
	}
	io.WriteString(term.Writer, seq)
}

// Size asks the kernel for the window size of Fd.
func (term *Xterm) Size() (cols, lines int, err error) {
	ws, err := unix.IoctlGetWinsize(term.Fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}
