package pointillism

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Adjustments are tone tweaks applied to each source frame before it is
// pointillized, plus a Scale for callers that resize the animation first.
// The zero value of each field means "leave alone", except Gamma and
// SigmoidMidpoint whose neutral values are 1.0 and 0.5.
type Adjustments struct {
	Gamma           float64 `yaml:"gamma"`      // 1.0 is the original, < 1.0 darkens
	Brightness      float64 `yaml:"brightness"` // -100 .. 100
	Contrast        float64 `yaml:"contrast"`   // -100 .. 100
	Sharpen         float64 `yaml:"sharpen"`    // sigma, 0 disables
	SigmoidMidpoint float64 `yaml:"sigmoid_midpoint"`
	SigmoidFactor   float64 `yaml:"sigmoid_factor"`
	Invert          bool    `yaml:"invert"`
	Scale           float64 `yaml:"scale"` // applied by Resize, not Apply
}

func (a Adjustments) Validate() error {
	if a.Gamma <= 0 {
		return invalid("gamma", a.Gamma, "must be positive")
	}
	if a.Brightness < -100 || a.Brightness > 100 {
		return invalid("brightness", a.Brightness, "must be within [-100, 100]")
	}
	if a.Contrast < -100 || a.Contrast > 100 {
		return invalid("contrast", a.Contrast, "must be within [-100, 100]")
	}
	if a.Sharpen < 0 {
		return invalid("sharpen", a.Sharpen, "must not be negative")
	}
	if a.SigmoidMidpoint < 0 || a.SigmoidMidpoint > 1 {
		return invalid("sigmoid_midpoint", a.SigmoidMidpoint, "must be within [0, 1]")
	}
	if a.Scale < 0 {
		return invalid("scale", a.Scale, "must not be negative")
	}
	return nil
}

func (a Adjustments) identity() bool {
	return a.Gamma == 1 && a.Brightness == 0 && a.Contrast == 0 && a.Sharpen == 0 &&
		a.SigmoidFactor == 0 && !a.Invert
}

// Apply returns f with the tone adjustments applied. The result has the
// bounds of f. f itself is never modified; when there is nothing to do f is
// returned as is.
func (a Adjustments) Apply(f Frame) (Frame, error) {
	if f.Image == nil || f.Image.Rect.Empty() {
		return f, ErrEmptyFrame
	}
	if a.identity() {
		return f, nil
	}

	var img image.Image = f.Image
	if a.Gamma != 1 {
		img = imaging.AdjustGamma(img, a.Gamma)
	}
	if a.Brightness != 0 {
		img = imaging.AdjustBrightness(img, a.Brightness)
	}
	if a.Sharpen != 0 {
		img = imaging.Sharpen(img, a.Sharpen)
	}
	if a.Contrast != 0 {
		img = imaging.AdjustContrast(img, a.Contrast)
	}
	if a.SigmoidFactor != 0 {
		img = imaging.AdjustSigmoid(img, a.SigmoidMidpoint, a.SigmoidFactor)
	}
	if a.Invert {
		img = imaging.Invert(img)
	}
	// imaging anchors its results at (0, 0).
	out := imaging.Clone(img)
	out.Rect = out.Rect.Add(f.Image.Rect.Min)
	return Frame{Image: out, Delay: f.Delay}, nil
}

// Resize scales every frame by a.Scale, keeping delays. A Scale of 0 or 1
// returns frames untouched. It changes the animation's dimensions, so it is
// a step before Assemble rather than part of it.
func (a Adjustments) Resize(frames []Frame) ([]Frame, error) {
	if a.Scale == 0 || a.Scale == 1 {
		return frames, nil
	}
	out := make([]Frame, len(frames))
	for i, f := range frames {
		if f.Image == nil || f.Image.Rect.Empty() {
			return nil, &FrameError{Index: i, Err: ErrEmptyFrame}
		}
		width := uint(float64(f.Image.Rect.Dx())*a.Scale + 0.5)
		height := uint(float64(f.Image.Rect.Dy())*a.Scale + 0.5)
		if width == 0 || height == 0 {
			return nil, &FrameError{Index: i, Err: ErrEmptyFrame}
		}
		out[i] = Frame{
			Image: imaging.Clone(resize.Resize(width, height, f.Image, resize.Lanczos3)),
			Delay: f.Delay,
		}
	}
	return out, nil
}
