package pointillism_test

import (
	"context"
	"errors"
	"image"
	"image/color"

	. "github.com/kevin-cantwell/pointillism"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Assemble", func() {
	var (
		cfg    Config
		frames []Frame
	)

	BeforeEach(func() {
		cfg = DefaultConfig()
		cfg.Workers = 3
		frames = nil
		for i := 0; i < 10; i++ {
			c := color.NRGBA{R: uint8(20 * i), G: 50, B: 90, A: 255}
			frames = append(frames, Frame{Image: uniform(16, 16, c), Delay: 100 + i})
		}
	})

	It("keeps the order and length of the input", func() {
		out, err := Assemble(context.Background(), frames, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(HaveLen(len(frames)))
		for i, f := range out {
			Expect(f.Image.Bounds()).To(Equal(frames[i].Image.Bounds()))
			Expect(f.Image.NRGBAAt(4, 4)).To(Equal(frames[i].Image.NRGBAAt(4, 4)))
		}
	})

	It("overrides every delay with the output delay", func() {
		cfg.OutputDelay = 9
		out, err := Assemble(context.Background(), frames, cfg)
		Expect(err).NotTo(HaveOccurred())
		for _, f := range out {
			Expect(f.Delay).To(Equal(9))
		}
	})

	It("matches a single worker's output", func() {
		cfg.Workers = 1
		serial, err := Assemble(context.Background(), frames, cfg)
		Expect(err).NotTo(HaveOccurred())
		cfg.Workers = 8
		parallel, err := Assemble(context.Background(), frames, cfg)
		Expect(err).NotTo(HaveOccurred())
		for i := range serial {
			Expect(parallel[i].Image.Pix).To(Equal(serial[i].Image.Pix))
		}
	})

	It("parallelizes a lone frame without changing it", func() {
		one := []Frame{{Image: noisy(45, 31)}}
		cfg.Workers = 1
		serial, err := Assemble(context.Background(), one, cfg)
		Expect(err).NotTo(HaveOccurred())
		cfg.Workers = 6
		parallel, err := Assemble(context.Background(), one, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(parallel[0].Image.Pix).To(Equal(serial[0].Image.Pix))
	})

	It("keeps input dimensions when adjusting frames", func() {
		cfg.Adjust.Scale = 0.5
		cfg.Adjust.Invert = true
		in := []Frame{
			{Image: noisy(40, 24)},
			{Image: noisy(24, 24).SubImage(image.Rect(8, 8, 24, 24)).(*image.NRGBA)},
		}
		out, err := Assemble(context.Background(), in, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(out[0].Image.Bounds()).To(Equal(image.Rect(0, 0, 40, 24)))
		Expect(out[1].Image.Bounds()).To(Equal(image.Rect(8, 8, 24, 24)))
	})

	It("fails the whole sequence on one bad frame", func() {
		frames[6].Image = image.NewNRGBA(image.Rect(0, 0, 0, 0))
		out, err := Assemble(context.Background(), frames, cfg)
		Expect(out).To(BeNil())
		Expect(err).To(MatchError(ErrEmptyFrame))

		var frameErr *FrameError
		Expect(errors.As(err, &frameErr)).To(BeTrue())
		Expect(frameErr.Index).To(Equal(6))
	})

	It("validates the configuration before touching frames", func() {
		cfg.Padding, cfg.MaxRadius = 8, 8
		out, err := Assemble(context.Background(), frames, cfg)
		Expect(out).To(BeNil())
		Expect(err).To(MatchError(ErrInvalidParameter))
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		out, err := Assemble(ctx, frames, cfg)
		Expect(out).To(BeNil())
		Expect(err).To(MatchError(context.Canceled))
	})

	It("applies adjustments before pointillizing", func() {
		cfg.Adjust.Invert = true
		out, err := Assemble(context.Background(), frames[:1], cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(out[0].Image.NRGBAAt(4, 4)).To(Equal(color.NRGBA{R: 255, G: 205, B: 165, A: 255}))
	})
})
