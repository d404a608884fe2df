package pointillism

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
)

// Animation is a decoded GIF flattened into full canvas frames.
type Animation struct {
	Frames    []Frame
	LoopCount int
	Width     int
	Height    int
}

/*
DecodeGIF reads every frame of a GIF and composites it onto the animation's
logical screen, so each returned Frame is the full picture a viewer would see
at that point. Disposal methods are respected:

  - none / unspecified: the next frame draws over this one
  - background: this frame's rectangle is cleared to transparent afterwards
  - previous: the screen reverts to what it was before this frame
*/
func DecodeGIF(r io.Reader) (anim *Animation, err error) {
	// image/gif can panic on some malformed files.
	defer func() {
		if p := recover(); p != nil {
			anim, err = nil, fmt.Errorf("gif: decode: %v", p)
		}
	}()

	giff, err := gif.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	if len(giff.Image) == 0 {
		return nil, ErrEmptyFrame
	}

	screen := image.Rect(0, 0, giff.Config.Width, giff.Config.Height)
	if screen.Empty() {
		for _, frame := range giff.Image {
			screen = screen.Union(frame.Bounds())
		}
		screen.Min = image.ZP
	}
	if screen.Empty() {
		return nil, ErrEmptyFrame
	}

	canvas := image.NewNRGBA(screen)
	anim = &Animation{
		Frames:    make([]Frame, 0, len(giff.Image)),
		LoopCount: giff.LoopCount,
		Width:     screen.Dx(),
		Height:    screen.Dy(),
	}
	for i, frame := range giff.Image {
		var previous *image.NRGBA
		disposal := disposalAt(giff, i)
		if disposal == gif.DisposalPrevious {
			previous = cloneNRGBA(canvas)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		anim.Frames = append(anim.Frames, Frame{Image: cloneNRGBA(canvas), Delay: delayAt(giff, i)})

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.ZP, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}
	return anim, nil
}

func disposalAt(giff *gif.GIF, i int) byte {
	if i < len(giff.Disposal) {
		return giff.Disposal[i]
	}
	return 0
}

func delayAt(giff *gif.GIF, i int) int {
	if i < len(giff.Delay) {
		return giff.Delay[i]
	}
	return 0
}

func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

// EncodeGIF writes frames as an animated GIF. loopCount follows image/gif:
// 0 loops forever and -1 plays once.
func EncodeGIF(w io.Writer, frames []Frame, loopCount int) error {
	if len(frames) == 0 {
		return ErrEmptyFrame
	}
	giff := &gif.GIF{
		Image:     make([]*image.Paletted, len(frames)),
		Delay:     make([]int, len(frames)),
		Disposal:  make([]byte, len(frames)),
		LoopCount: loopCount,
	}
	for i, f := range frames {
		if f.Image == nil || f.Image.Rect.Empty() {
			return &FrameError{Index: i, Err: ErrEmptyFrame}
		}
		giff.Image[i] = Paletted(f.Image)
		giff.Delay[i] = f.Delay
		giff.Disposal[i] = gif.DisposalBackground
	}
	return gif.EncodeAll(w, giff)
}

// Paletted converts img for GIF output. Pixels that are mostly transparent
// share a single transparent entry and everything else is made opaque. When
// the image has more than 256 such colors it is mapped to the nearest
// Plan 9 palette color, without dithering so dots keep solid fills.
func Paletted(img *image.NRGBA) *image.Paletted {
	b := img.Bounds()
	pm := image.NewPaletted(b, nil)
	index := make(map[color.NRGBA]uint8)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		j := pm.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x, i, j = x+1, i+4, j+1 {
			c := opaque(color.NRGBA{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: img.Pix[i+3]})
			idx, ok := index[c]
			if !ok {
				if len(pm.Palette) == 256 {
					return nearest(img)
				}
				idx = uint8(len(pm.Palette))
				index[c] = idx
				pm.Palette = append(pm.Palette, c)
			}
			pm.Pix[j] = idx
		}
	}
	return pm
}

func opaque(c color.NRGBA) color.NRGBA {
	if c.A < 128 {
		return color.NRGBA{}
	}
	c.A = 0xff
	return c
}

func nearest(img *image.NRGBA) *image.Paletted {
	pm := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.Draw(pm, pm.Rect, img, img.Rect.Min, draw.Src)
	return pm
}
