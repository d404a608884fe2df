package pointillism

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"golang.org/x/sync/errgroup"
)

// Circle is one dot of the output. Cell is the block it was derived from;
// the circle never reaches outside of it.
type Circle struct {
	X, Y   float64
	Radius float64
	Color  color.NRGBA
	Cell   image.Rectangle
}

// Contains reports whether the center of pixel (x, y) lies on the disk.
func (c Circle) Contains(x, y int) bool {
	if c.Radius <= 0 {
		return false
	}
	dx, dy := float64(x)+0.5-c.X, float64(y)+0.5-c.Y
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Rasterizer paints circles onto a fresh canvas of the given bounds. The
// cells of circles must tile bounds.
type Rasterizer interface {
	Rasterize(bounds image.Rectangle, background color.NRGBA, circles []Circle) *image.NRGBA
}

// DiskRasterizer paints hard edged disks. Each pixel is written exactly once,
// by the circle whose cell contains it, with either the circle's color or the
// background. Cells are disjoint so workers never share a pixel.
type DiskRasterizer struct {
	Workers int
}

func (r DiskRasterizer) Rasterize(bounds image.Rectangle, background color.NRGBA, circles []Circle) *image.NRGBA {
	canvas := image.NewNRGBA(bounds)
	if r.Workers <= 1 {
		for _, c := range circles {
			paintCell(canvas, background, c)
		}
		return canvas
	}

	// Static partition into contiguous runs of circles, one per worker.
	var g errgroup.Group
	chunk := (len(circles) + r.Workers - 1) / r.Workers
	for lo := 0; lo < len(circles); lo += chunk {
		hi := lo + chunk
		if hi > len(circles) {
			hi = len(circles)
		}
		run := circles[lo:hi]
		g.Go(func() error {
			for _, c := range run {
				paintCell(canvas, background, c)
			}
			return nil
		})
	}
	g.Wait()
	return canvas
}

func paintCell(canvas *image.NRGBA, background color.NRGBA, c Circle) {
	cell := c.Cell.Intersect(canvas.Rect)
	for y := cell.Min.Y; y < cell.Max.Y; y++ {
		i := canvas.PixOffset(cell.Min.X, y)
		for x := cell.Min.X; x < cell.Max.X; x, i = x+1, i+4 {
			px := background
			if c.Contains(x, y) {
				px = c.Color
			}
			canvas.Pix[i+0] = px.R
			canvas.Pix[i+1] = px.G
			canvas.Pix[i+2] = px.B
			canvas.Pix[i+3] = px.A
		}
	}
}

// SmoothRasterizer paints anti-aliased circles with draw2d. Edge pixels blend
// into the background, so the output holds more colors than the circles do.
type SmoothRasterizer struct{}

func (SmoothRasterizer) Rasterize(bounds image.Rectangle, background color.NRGBA, circles []Circle) *image.NRGBA {
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, image.NewUniform(background), image.ZP, draw.Src)

	gc := draw2dimg.NewGraphicContext(rgba)
	for _, c := range circles {
		if c.Radius <= 0 {
			continue
		}
		gc.SetFillColor(c.Color)
		gc.BeginPath()
		draw2dkit.Circle(gc, c.X, c.Y, c.Radius)
		gc.Fill()
	}

	canvas := image.NewNRGBA(bounds)
	draw.Draw(canvas, bounds, rgba, bounds.Min, draw.Src)
	return canvas
}
