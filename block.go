package pointillism

import "image"

// Block is one tile of a frame. Bounds are in pixels, half open.
type Block struct {
	Row, Col int
	Bounds   image.Rectangle
}

// Center is the block's centroid in continuous pixel coordinates.
func (b Block) Center() (x, y float64) {
	return float64(b.Bounds.Min.X+b.Bounds.Max.X) / 2, float64(b.Bounds.Min.Y+b.Bounds.Max.Y) / 2
}

// Shorter returns the length of the block's shorter side.
func (b Block) Shorter() int {
	if dx, dy := b.Bounds.Dx(), b.Bounds.Dy(); dx < dy {
		return dx
	}
	return b.Bounds.Dy()
}

// Partition tiles a w x h grid with size x size blocks in row-major order.
// The last column and row are clipped to the grid when size doesn't divide
// it evenly.
func Partition(w, h, size int) ([]Block, error) {
	if size <= 0 {
		return nil, invalid("block_size", size, "must be positive")
	}
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyFrame
	}
	cols, rows := (w+size-1)/size, (h+size-1)/size
	blocks := make([]Block, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			r := image.Rect(col*size, row*size, (col+1)*size, (row+1)*size)
			blocks = append(blocks, Block{
				Row:    row,
				Col:    col,
				Bounds: r.Intersect(image.Rect(0, 0, w, h)),
			})
		}
	}
	return blocks, nil
}
