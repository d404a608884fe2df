package pointillism

import (
	"bufio"
	"image"
	"image/color"
	"image/draw"
	"io"
)

// Cell holds the dots of one preview character, indexed [column][row] over a
// 2 column by 4 row grid of pixels.
type Cell [2][4]bool

// Rune returns the braille pattern character with the cell's dots raised.
// Unicode numbers the left column 1, 2, 3, 7 and the right 4, 5, 6, 8 from
// top to bottom, and dot n sets bit n-1 above U+2800.
func (c Cell) Rune() rune {
	order := [8]bool{c[0][0], c[0][1], c[0][2], c[1][0], c[1][1], c[1][2], c[0][3], c[1][3]}
	var v rune
	for i, set := range order {
		if set {
			v |= 1 << uint(i)
		}
	}
	return '\u2800' + v
}

func (c Cell) String() string {
	return string(c.Rune())
}

var monochrome = color.Palette{color.Black, color.White, color.Transparent}

type BrailleOpt func(enc *BrailleEncoder)

// WithDarkDots sets a dot for dark pixels instead of light ones, for
// terminals with dark text on a light background.
func WithDarkDots() BrailleOpt {
	return func(enc *BrailleEncoder) {
		enc.ink = color.Black
	}
}

// WithDrawer replaces the Floyd-Steinberg diffusion used to reduce images to
// black and white.
func WithDrawer(d draw.Drawer) BrailleOpt {
	return func(enc *BrailleEncoder) {
		enc.drawer = d
	}
}

// WithThreshold replaces diffusion with a hard cut: pixels whose Luminance
// is above lum (0..255) turn white, the rest black.
func WithThreshold(lum float64) BrailleOpt {
	return WithDrawer(threshold(lum))
}

type threshold float64

func (t threshold) Draw(dst draw.Image, r image.Rectangle, src image.Image, sp image.Point) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(sp.X+x-r.Min.X, sp.Y+y-r.Min.Y)).(color.NRGBA)
			switch {
			case c.A == 0:
				dst.Set(x, y, color.Transparent)
			case Luminance(c) > float64(t):
				dst.Set(x, y, color.White)
			default:
				dst.Set(x, y, color.Black)
			}
		}
	}
}

// BrailleEncoder writes images as lines of braille symbols, each symbol
// covering a 2x4 pixel area.
type BrailleEncoder struct {
	w      io.Writer
	drawer draw.Drawer
	ink    color.Color
}

func NewBrailleEncoder(w io.Writer, opts ...BrailleOpt) *BrailleEncoder {
	enc := &BrailleEncoder{
		w:      w,
		drawer: draw.FloydSteinberg,
		ink:    color.White,
	}
	for _, opt := range opts {
		opt(enc)
	}
	return enc
}

// Encode writes img and returns the number of lines written.
func (enc *BrailleEncoder) Encode(img image.Image) (int, error) {
	paletted := image.NewPaletted(img.Bounds(), monochrome)
	enc.drawer.Draw(paletted, paletted.Rect, img, img.Bounds().Min)

	bw := bufio.NewWriter(enc.w)
	bounds := paletted.Rect
	var lines int
	// Rows first, the same order the pixels are stored in.
	for py := bounds.Min.Y; py < bounds.Max.Y; py += 4 {
		for px := bounds.Min.X; px < bounds.Max.X; px += 2 {
			var cell Cell
			for y := 0; y < 4; y++ {
				for x := 0; x < 2; x++ {
					// Symbols past the right or bottom edge stay empty.
					if px+x >= bounds.Max.X || py+y >= bounds.Max.Y {
						continue
					}
					cell[x][y] = paletted.At(px+x, py+y) == enc.ink
				}
			}
			if _, err := bw.WriteString(cell.String()); err != nil {
				return lines, err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return lines, err
		}
		lines++
	}
	return lines, bw.Flush()
}
