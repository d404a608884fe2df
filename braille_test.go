package pointillism_test

import (
	"bytes"
	"image/color"

	. "github.com/kevin-cantwell/pointillism"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Braille", func() {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.NRGBA{A: 255}

	Describe("Cell", func() {
		It("maps dots to their code points", func() {
			var cell Cell
			Expect(cell.Rune()).To(Equal('\u2800'))
			cell[0][0] = true
			Expect(cell.Rune()).To(Equal('⠁'))
			cell = Cell{}
			cell[1][3] = true
			Expect(cell.Rune()).To(Equal('⢀'))
			cell = Cell{{true, true, true, true}, {true, true, true, true}}
			Expect(cell.String()).To(Equal("⣿"))
		})
	})

	Describe("BrailleEncoder", func() {
		It("draws light pixels as dots", func() {
			var buf bytes.Buffer
			lines, err := NewBrailleEncoder(&buf).Encode(uniform(2, 4, white))
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal(1))
			Expect(buf.String()).To(Equal("⣿\n"))
		})

		It("draws dark pixels as dots on request", func() {
			var buf bytes.Buffer
			_, err := NewBrailleEncoder(&buf, WithDarkDots()).Encode(uniform(2, 4, black))
			Expect(err).NotTo(HaveOccurred())
			Expect(buf.String()).To(Equal("⣿\n"))
		})

		It("pads partial symbols at the edges", func() {
			var buf bytes.Buffer
			lines, err := NewBrailleEncoder(&buf).Encode(uniform(3, 5, white))
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal(2))
			Expect(buf.String()).To(Equal("⣿⡇\n⠉⠁\n"))
		})
	})
})

var _ = Describe("WithThreshold", func() {
	It("splits pixels on luminance", func() {
		img := uniform(4, 4, color.NRGBA{R: 90, G: 90, B: 90, A: 255})
		for y := 0; y < 4; y++ {
			img.SetNRGBA(2, y, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
			img.SetNRGBA(3, y, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
		}
		var buf bytes.Buffer
		_, err := NewBrailleEncoder(&buf, WithThreshold(128)).Encode(img)
		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(Equal("\u2800⣿\n"))
	})
})
