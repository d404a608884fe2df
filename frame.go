package pointillism

import (
	"image"
	"image/color"
)

// Frame is one image of an animation and how long it stays on screen, in
// hundredths of a second.
type Frame struct {
	Image *image.NRGBA
	Delay int
}

// Transformer redraws frames as fields of circles. It holds no per-frame
// state and is safe for concurrent use.
type Transformer struct {
	blockSize  int
	background color.NRGBA
	measure    DetailMeasure
	mapper     *RadiusMapper
	rasterizer Rasterizer
}

// NewTransformer validates cfg and builds a Transformer from it.
func NewTransformer(cfg Config) (*Transformer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mapper, err := NewRadiusMapper(cfg.MaxRadius, cfg.Padding)
	if err != nil {
		return nil, err
	}
	measure, err := MeasureByName(cfg.Measure)
	if err != nil {
		return nil, err
	}
	background, err := ParseColor(cfg.Background)
	if err != nil {
		return nil, err
	}

	var rasterizer Rasterizer = DiskRasterizer{}
	if cfg.Smooth {
		rasterizer = SmoothRasterizer{}
	}
	return &Transformer{
		blockSize:  cfg.BlockSize,
		background: background,
		measure:    measure,
		mapper:     mapper,
		rasterizer: rasterizer,
	}, nil
}

// Circles runs the partition, aggregate and radius stages over img and
// returns one circle per block, in row-major block order.
func (t *Transformer) Circles(img *image.NRGBA) ([]Circle, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, ErrEmptyFrame
	}
	blocks, err := Partition(bounds.Dx(), bounds.Dy(), t.blockSize)
	if err != nil {
		return nil, err
	}

	stats := make([]BlockStat, len(blocks))
	var peak float64
	for i := range blocks {
		blocks[i].Bounds = blocks[i].Bounds.Add(bounds.Min)
		stats[i] = Aggregate(img, blocks[i], t.measure)
		if stats[i].Detail > peak {
			peak = stats[i].Detail
		}
	}

	circles := make([]Circle, len(blocks))
	for i, b := range blocks {
		x, y := b.Center()
		circles[i] = Circle{
			X:      x,
			Y:      y,
			Radius: t.mapper.Radius(stats[i], b, peak),
			Color:  stats[i].Color,
			Cell:   b.Bounds,
		}
	}
	return circles, nil
}

// Transform produces the pointillized version of f. The output has the same
// bounds and delay as f.
func (t *Transformer) Transform(f Frame) (Frame, error) {
	if f.Image == nil {
		return Frame{}, ErrEmptyFrame
	}
	circles, err := t.Circles(f.Image)
	if err != nil {
		return Frame{}, err
	}
	return Frame{
		Image: t.rasterizer.Rasterize(f.Image.Bounds(), t.background, circles),
		Delay: f.Delay,
	}, nil
}
