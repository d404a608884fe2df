package pointillism

import (
	"bytes"
	"context"
	"image"
	"io"
	"time"

	"github.com/nfnt/resize"
	"github.com/sirupsen/logrus"
)

// Player previews an animation in a terminal as braille art.
type Player struct {
	w    io.Writer
	term Terminal
	opts []BrailleOpt
}

// NewPlayer writes to w. If term is nil an Xterm on stderr's window size is
// used.
func NewPlayer(w io.Writer, term Terminal, opts ...BrailleOpt) *Player {
	if term == nil {
		term = &Xterm{Writer: w, Fd: 2}
	}
	return &Player{w: w, term: term, opts: opts}
}

/*
Play draws each frame over the previous one, waiting out each frame's delay.
loopCount follows GIF conventions: 0 repeats until ctx is cancelled, -1 plays
once and n plays n+1 times. The cursor is hidden while playing and restored
on return.
*/
func (p *Player) Play(ctx context.Context, frames []Frame, loopCount int) error {
	if len(frames) == 0 {
		return ErrEmptyFrame
	}
	scaled := p.fit(frames)

	p.term.ShowCursor(false)
	defer p.term.ShowCursor(true)

	enc := NewBrailleEncoder(p.w, p.opts...)
	var buf bytes.Buffer
	offscreen := NewBrailleEncoder(&buf, p.opts...)
	plays := loopCount + 1
	if loopCount < 0 {
		plays = 1
	}
	for c := 0; loopCount == 0 || c < plays; c++ {
		for i, img := range scaled {
			delay := time.NewTimer(time.Duration(frames[i].Delay) * time.Second / 100)

			// Render off screen first so a frame lands in one write.
			buf.Reset()
			rows, err := offscreen.Encode(img)
			if err != nil {
				delay.Stop()
				return err
			}
			if _, err := p.w.Write(buf.Bytes()); err != nil {
				delay.Stop()
				return err
			}
			p.term.ResetCursor(rows)

			select {
			case <-ctx.Done():
				delay.Stop()
				// Leave the last frame on screen.
				enc.Encode(img)
				return ctx.Err()
			case <-delay.C:
			}
		}
	}
	_, err := enc.Encode(scaled[len(scaled)-1])
	return err
}

// fit scales frames down so they fit the terminal. Each braille symbol is 2
// pixels wide and 4 tall and one line is kept for the prompt.
func (p *Player) fit(frames []Frame) []image.Image {
	out := make([]image.Image, len(frames))
	cols, lines, err := p.term.Size()
	if err != nil || cols <= 0 || lines <= 1 {
		logrus.WithFields(logrus.Fields{
			"function": "Player.fit",
			"error":    err,
		}).Debug("Unknown terminal size, assuming 80x25")
		cols, lines = 80, 25
	}
	width, height := uint(cols*2), uint((lines-1)*4)
	for i, f := range frames {
		out[i] = resize.Thumbnail(width, height, f.Image, resize.NearestNeighbor)
	}
	return out
}
