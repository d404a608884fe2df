package pointillism

import (
	"image"
	"image/color"
	"math"
	"sort"
	"strings"
)

// BlockStat summarizes one block: its mean color and a scalar detail measure
// used to size the block's circle.
type BlockStat struct {
	Color  color.NRGBA
	Detail float64
}

// DetailMeasure reduces the luminance values of a block to a single number.
// Larger means the block deserves a larger circle.
type DetailMeasure interface {
	Name() string
	Detail(lum []float64) float64
}

var measures = map[string]DetailMeasure{
	"deviation":  Deviation{},
	"variance":   Variance{},
	"range":      Range{},
	"brightness": Brightness{},
}

// MeasureByName looks up one of the built in measures.
func MeasureByName(name string) (DetailMeasure, error) {
	if m, ok := measures[name]; ok {
		return m, nil
	}
	return nil, invalid("measure", name, "must be one of "+measureNames())
}

func measureNames() string {
	names := make([]string, 0, len(measures))
	for name := range measures {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// Deviation is the mean absolute deviation of luminance.
type Deviation struct{}

func (Deviation) Name() string { return "deviation" }

func (Deviation) Detail(lum []float64) float64 {
	if flat(lum) {
		return 0
	}
	mean := sum(lum) / float64(len(lum))
	var dev float64
	for _, l := range lum {
		dev += math.Abs(l - mean)
	}
	return dev / float64(len(lum))
}

// Variance is the population variance of luminance.
type Variance struct{}

func (Variance) Name() string { return "variance" }

func (Variance) Detail(lum []float64) float64 {
	if flat(lum) {
		return 0
	}
	mean := sum(lum) / float64(len(lum))
	var v float64
	for _, l := range lum {
		v += (l - mean) * (l - mean)
	}
	return v / float64(len(lum))
}

// Range is the spread between the darkest and brightest pixel.
type Range struct{}

func (Range) Name() string { return "range" }

func (Range) Detail(lum []float64) float64 {
	if len(lum) == 0 {
		return 0
	}
	lo, hi := lum[0], lum[0]
	for _, l := range lum[1:] {
		lo, hi = math.Min(lo, l), math.Max(hi, l)
	}
	return hi - lo
}

// Brightness sizes circles by average perceived brightness rather than by
// local variation: bright blocks get big dots, dark blocks small ones.
type Brightness struct{}

func (Brightness) Name() string { return "brightness" }

func (Brightness) Detail(lum []float64) float64 {
	if len(lum) == 0 {
		return 0
	}
	return sum(lum) / float64(len(lum))
}

// flat reports whether every value equals the first. The mean of a flat
// block doesn't always round trip through a float division, which would
// leave a tiny nonzero spread.
func flat(vs []float64) bool {
	for _, v := range vs {
		if v != vs[0] {
			return false
		}
	}
	return true
}

func sum(vs []float64) float64 {
	var s float64
	for _, v := range vs {
		s += v
	}
	return s
}

// Luminance is the perceived brightness of c in [0, 255], scaled by alpha.
// Mostly transparent pixels count as black.
func Luminance(c color.NRGBA) float64 {
	if c.A < 128 {
		return 0
	}
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	return math.Sqrt(0.299*r*r+0.587*g*g+0.114*b*b) * float64(c.A) / 255
}

// detailEpsilon is the smallest detail told apart from a flat block.
const detailEpsilon = 1e-9

// Aggregate computes the mean color and detail of the pixels of img inside
// the block. Channel means are rounded to the nearest 8-bit value using
// integer sums, so the result doesn't depend on summation order.
func Aggregate(img *image.NRGBA, b Block, m DetailMeasure) BlockStat {
	r := b.Bounds.Intersect(img.Rect)
	n := r.Dx() * r.Dy()
	if n == 0 {
		return BlockStat{}
	}

	var sums [4]int
	lum := make([]float64, 0, n)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x, i = x+1, i+4 {
			px := color.NRGBA{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: img.Pix[i+3]}
			sums[0] += int(px.R)
			sums[1] += int(px.G)
			sums[2] += int(px.B)
			sums[3] += int(px.A)
			lum = append(lum, Luminance(px))
		}
	}

	detail := m.Detail(lum)
	if math.Abs(detail) < detailEpsilon {
		detail = 0
	}
	mean := func(s int) uint8 { return uint8((s + n/2) / n) }
	return BlockStat{
		Color:  color.NRGBA{R: mean(sums[0]), G: mean(sums[1]), B: mean(sums[2]), A: mean(sums[3])},
		Detail: detail,
	}
}
