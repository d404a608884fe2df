package pointillism

import (
	"fmt"
	"image/color"
	"io"
	"io/ioutil"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v2"
)

// Config holds every knob of the pointillism transform. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	BlockSize   int    `yaml:"block_size"`
	Padding     int    `yaml:"padding"`
	MaxRadius   int    `yaml:"max_radius"`
	OutputDelay int    `yaml:"output_delay"` // 1/100s of a second
	Measure     string `yaml:"measure"`
	Background  string `yaml:"background"`
	Smooth      bool   `yaml:"smooth"`
	Workers     int    `yaml:"workers"`    // 0 means runtime.NumCPU()
	LoopCount   int    `yaml:"loop_count"` // 0 loops forever, -1 plays once

	Adjust Adjustments `yaml:"adjust"`
}

// DefaultConfig mirrors the command line defaults.
func DefaultConfig() Config {
	return Config{
		BlockSize:   8,
		Padding:     2,
		MaxRadius:   8,
		OutputDelay: 5,
		Measure:     "deviation",
		Background:  "black",
		Workers:     runtime.NumCPU(),
		Adjust:      Adjustments{Gamma: 1.0, SigmoidMidpoint: 0.5},
	}
}

// LoadConfig reads a YAML document over the defaults. Unknown keys are an
// error so typos don't silently fall back to defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return cfg, err
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate reports the first parameter that can't produce a transform. It
// runs before any frame is touched.
func (cfg Config) Validate() error {
	if cfg.BlockSize <= 0 {
		return invalid("block_size", cfg.BlockSize, "must be positive")
	}
	if cfg.Padding < 0 {
		return invalid("padding", cfg.Padding, "must not be negative")
	}
	if cfg.MaxRadius <= 0 {
		return invalid("max_radius", cfg.MaxRadius, "must be positive")
	}
	if cfg.Padding >= cfg.MaxRadius {
		return invalid("padding", cfg.Padding, fmt.Sprintf("must be less than max_radius (%d)", cfg.MaxRadius))
	}
	if cfg.OutputDelay < 0 {
		return invalid("output_delay", cfg.OutputDelay, "must not be negative")
	}
	if cfg.Workers < 0 {
		return invalid("workers", cfg.Workers, "must not be negative")
	}
	if cfg.LoopCount < -1 {
		return invalid("loop_count", cfg.LoopCount, "must be -1 or greater")
	}
	if _, err := MeasureByName(cfg.Measure); err != nil {
		return err
	}
	if _, err := ParseColor(cfg.Background); err != nil {
		return err
	}
	return cfg.Adjust.Validate()
}

func (cfg Config) workers() int {
	if cfg.Workers <= 0 {
		return runtime.NumCPU()
	}
	return cfg.Workers
}

// ParseColor accepts "transparent", an SVG color name ("black", "navy", ...)
// or a #rgb / #rrggbb hex string.
func ParseColor(s string) (color.NRGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "transparent" {
		return color.NRGBA{}, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	if strings.HasPrefix(name, "#") {
		hex := name[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) == 6 {
			if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
				return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
			}
		}
	}
	return color.NRGBA{}, invalid("background", s, "is not a color name or #rrggbb")
}
