package pointillism_test

import (
	"image"

	. "github.com/kevin-cantwell/pointillism"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("Partition", func() {
	DescribeTable("tiles the grid exactly once",
		func(w, h, size int) {
			blocks, err := Partition(w, h, size)
			Expect(err).NotTo(HaveOccurred())

			covered := make([]int, w*h)
			for _, b := range blocks {
				Expect(b.Bounds.Dx()).To(BeNumerically(">", 0))
				Expect(b.Bounds.Dy()).To(BeNumerically(">", 0))
				Expect(b.Bounds.Dx()).To(BeNumerically("<=", size))
				Expect(b.Bounds.Dy()).To(BeNumerically("<=", size))
				Expect(b.Bounds.In(image.Rect(0, 0, w, h))).To(BeTrue())
				for y := b.Bounds.Min.Y; y < b.Bounds.Max.Y; y++ {
					for x := b.Bounds.Min.X; x < b.Bounds.Max.X; x++ {
						covered[y*w+x]++
					}
				}
			}
			for i, n := range covered {
				Expect(n).To(Equal(1), "pixel %d covered %d times", i, n)
			}
		},
		Entry("even", 16, 16, 8),
		Entry("ragged width", 17, 16, 8),
		Entry("ragged both", 21, 13, 5),
		Entry("unit blocks", 3, 2, 1),
		Entry("block wider than frame", 10, 6, 16),
		Entry("single column", 1, 9, 4),
	)

	It("orders blocks row-major", func() {
		blocks, err := Partition(20, 12, 8)
		Expect(err).NotTo(HaveOccurred())
		Expect(blocks).To(HaveLen(6))
		for i, b := range blocks {
			Expect(b.Row).To(Equal(i / 3))
			Expect(b.Col).To(Equal(i % 3))
		}
		Expect(blocks[2].Bounds).To(Equal(image.Rect(16, 0, 20, 8)))
		Expect(blocks[5].Bounds).To(Equal(image.Rect(16, 8, 20, 12)))
	})

	It("keeps full blocks when the size divides evenly", func() {
		blocks, err := Partition(16, 16, 8)
		Expect(err).NotTo(HaveOccurred())
		for _, b := range blocks {
			Expect(b.Bounds.Size()).To(Equal(image.Pt(8, 8)))
		}
	})

	It("yields one block when the block is larger than the frame", func() {
		blocks, err := Partition(10, 6, 16)
		Expect(err).NotTo(HaveOccurred())
		Expect(blocks).To(HaveLen(1))
		Expect(blocks[0].Bounds).To(Equal(image.Rect(0, 0, 10, 6)))
	})

	It("rejects non-positive sizes", func() {
		_, err := Partition(16, 16, 0)
		Expect(err).To(MatchError(ErrInvalidParameter))
		_, err = Partition(16, 16, -3)
		Expect(err).To(MatchError(ErrInvalidParameter))
	})

	It("rejects empty grids", func() {
		_, err := Partition(0, 16, 8)
		Expect(err).To(MatchError(ErrEmptyFrame))
	})

	It("reports centroids and shorter sides", func() {
		b := Block{Bounds: image.Rect(8, 0, 13, 8)}
		x, y := b.Center()
		Expect(x).To(Equal(10.5))
		Expect(y).To(Equal(4.0))
		Expect(b.Shorter()).To(Equal(5))
	})
})
