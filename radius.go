package pointillism

import "math"

// MinRadius is the smallest circle drawn for any block with room for one.
const MinRadius = 1.0

// RadiusMapper turns block detail into circle radii.
type RadiusMapper struct {
	MaxRadius int
	Padding   int
}

// NewRadiusMapper validates the radius and padding pair once, up front.
func NewRadiusMapper(maxRadius, padding int) (*RadiusMapper, error) {
	if maxRadius <= 0 {
		return nil, invalid("max_radius", maxRadius, "must be positive")
	}
	if padding < 0 {
		return nil, invalid("padding", padding, "must not be negative")
	}
	if padding >= maxRadius {
		return nil, invalid("padding", padding, "must be less than max_radius")
	}
	return &RadiusMapper{MaxRadius: maxRadius, Padding: padding}, nil
}

// Bound is the largest radius that fits the block: half its shorter side less
// padding, capped at MaxRadius.
func (m *RadiusMapper) Bound(b Block) float64 {
	return math.Min(float64(m.MaxRadius), float64(b.Shorter())/2-float64(m.Padding))
}

// Radius maps detail onto [MinRadius, Bound(b)] linearly, relative to peak,
// the largest detail in the frame. When every block of the frame has the
// same detail (peak of zero included) every circle gets the full bound.
// Blocks too small to hold a MinRadius circle get 0.
func (m *RadiusMapper) Radius(stat BlockStat, b Block, peak float64) float64 {
	bound := m.Bound(b)
	if bound < MinRadius {
		return 0
	}
	ratio := 1.0
	if peak > 0 {
		ratio = math.Max(0, math.Min(1, stat.Detail/peak))
	}
	return MinRadius + (bound-MinRadius)*ratio
}
