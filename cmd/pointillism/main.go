package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/codegangsta/cli"
	"github.com/kevin-cantwell/pointillism"
	"github.com/sirupsen/logrus"
)

const (
	exitFailure = 1 // i/o, decode or encode failure
	exitUsage   = 2 // bad configuration, nothing was read
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		os.Exit(exitFailure)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = "0.1.0"
	app.Name = "pointillism"
	app.Usage = "Turns any gif into a pointillist style gif."
	app.UsageText = "pointillism -i in.gif -o out.gif [options]\n" +
		/*      */ "   cat in.gif | pointillism -i - -o - [options] > out.gif"
	app.Author = "Kevin Cantwell"
	app.Email = "kevin.cantwell@gmail.com"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "in-path, i",
			Usage: "`PATH` of the input GIF, or - for stdin.",
		},
		cli.StringFlag{
			Name:  "out-path, o",
			Usage: "`PATH` of the output GIF, or - for stdout.",
		},
		cli.IntFlag{
			Name:  "block-size, b",
			Usage: "`SIZE` of the square blocks pixels are clustered into.",
			Value: 8,
		},
		cli.IntFlag{
			Name:  "padding, p",
			Usage: "`PADDING` kept between neighbouring circles. Must be less than RADIUS.",
			Value: 2,
		},
		cli.IntFlag{
			Name:  "radius, r",
			Usage: "Maximum `RADIUS` of the circles.",
			Value: 8,
		},
		cli.IntFlag{
			Name:  "delay, d",
			Usage: "`DELAY` of every output frame in hundredths of a second.",
			Value: 5,
		},
		cli.StringFlag{
			Name:  "config",
			Usage: "YAML `FILE` with defaults. Flags given on the command line win.",
		},
		cli.StringFlag{
			Name:  "measure",
			Usage: "`MEASURE` that sizes circles: deviation, variance, range or brightness.",
			Value: "deviation",
		},
		cli.StringFlag{
			Name:  "background",
			Usage: "`COLOR` outside of the circles: a name, #rrggbb or transparent.",
			Value: "black",
		},
		cli.BoolFlag{
			Name:  "smooth",
			Usage: "Anti-alias circle edges.",
		},
		cli.IntFlag{
			Name:  "workers",
			Usage: "Number of frames processed at once. 0 uses every CPU.",
		},
		cli.IntFlag{
			Name:  "loop",
			Usage: "`LOOPS` of the output: 0 forever, -1 once.",
		},
		cli.Float64Flag{
			Name:  "gamma",
			Usage: "`GAMMA` = 1.0 gives the original image. GAMMA less than 1.0 darkens the image and GAMMA greater than 1.0 lightens it.",
			Value: 1.0,
		},
		cli.Float64Flag{
			Name:  "brightness",
			Usage: "`BRIGHTNESS` = 0 gives the original image. BRIGHTNESS = -100 gives solid black image. BRIGHTNESS = 100 gives solid white image.",
		},
		cli.Float64Flag{
			Name:  "contrast",
			Usage: "`CONTRAST` = 0 gives the original image. CONTRAST = -100 gives solid grey image. CONTRAST = 100 gives maximum contrast.",
		},
		cli.Float64Flag{
			Name:  "sharpen",
			Usage: "`SHARPEN` = 0 gives the original image. SHARPEN greater than 0 sharpens the image.",
		},
		cli.Float64Flag{
			Name:  "sigmoid-midpoint",
			Usage: "`MIDPOINT` of contrast that must be between 0 and 1.",
			Value: 0.5,
		},
		cli.Float64Flag{
			Name:  "sigmoid-factor",
			Usage: "`FACTOR` = 0 gives the original image. FACTOR greater than 0 increases contrast. FACTOR less than 0 decreases contrast.",
		},
		cli.BoolFlag{
			Name:  "invert",
			Usage: "Inverts the input before pointillizing it.",
		},
		cli.Float64Flag{
			Name:  "scale",
			Usage: "`SCALE` the input by this factor first. 0 or 1 keeps the size.",
		},
		cli.BoolFlag{
			Name:  "play",
			Usage: "Plays the result once in the terminal as braille after it is written. CTRL-C to stop early.",
		},
		cli.Float64Flag{
			Name:  "play-threshold",
			Usage: "`LUMINANCE` (0-255) above which a pixel is a dot when playing. 0 dithers instead.",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log every frame.",
		},
		cli.BoolFlag{
			Name:  "quiet",
			Usage: "Only log warnings and errors.",
		},
	}
	app.Action = func(c *cli.Context) error {
		setupLogging(c)
		if err := run(c); err != nil {
			logrus.WithError(err).Error("pointillism failed")
			return cli.NewExitError(err.Error(), exitCode(err))
		}
		return nil
	}
	return app
}

func setupLogging(c *cli.Context) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05"})
	switch {
	case c.Bool("verbose"):
		logrus.SetLevel(logrus.DebugLevel)
	case c.Bool("quiet"):
		logrus.SetLevel(logrus.WarnLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// usageError marks failures detected before any input is read.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

func exitCode(err error) int {
	var usage usageError
	if errors.As(err, &usage) || errors.Is(err, pointillism.ErrInvalidParameter) {
		return exitUsage
	}
	return exitFailure
}

func run(c *cli.Context) error {
	cfg, err := configFromContext(c)
	if err != nil {
		return usageError{err}
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	inPath, outPath := c.String("in-path"), c.String("out-path")
	if inPath == "" || outPath == "" {
		return usageError{errors.New("both --in-path and --out-path are required")}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	in, err := openInput(inPath)
	if err != nil {
		return err
	}
	anim, err := pointillism.DecodeGIF(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("decode %s: %w", inPath, err)
	}
	logrus.WithFields(logrus.Fields{
		"path":   inPath,
		"frames": len(anim.Frames),
		"width":  anim.Width,
		"height": anim.Height,
	}).Info("Decoded input")

	src, err := cfg.Adjust.Resize(anim.Frames)
	if err != nil {
		return err
	}
	frames, err := pointillism.Assemble(ctx, src, cfg)
	if err != nil {
		return err
	}

	out, err := createOutput(outPath)
	if err != nil {
		return err
	}
	if err := pointillism.EncodeGIF(out, frames, cfg.LoopCount); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", outPath, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	logrus.WithField("path", outPath).Info("Wrote output")

	if c.Bool("play") {
		screen := os.Stdout
		if outPath == "-" {
			screen = os.Stderr
		}
		return preview(ctx, screen, nil, frames, c.Float64("play-threshold"))
	}
	return nil
}

// preview plays frames once, whatever loop count the output carries.
// Stopping it early is not an error.
func preview(ctx context.Context, w io.Writer, term pointillism.Terminal, frames []pointillism.Frame, threshold float64) error {
	var opts []pointillism.BrailleOpt
	if threshold > 0 {
		opts = append(opts, pointillism.WithThreshold(threshold))
	}
	err := pointillism.NewPlayer(w, term, opts...).Play(ctx, frames, -1)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// configFromContext starts from the defaults or --config and lays every flag
// the user actually typed on top.
func configFromContext(c *cli.Context) (pointillism.Config, error) {
	cfg := pointillism.DefaultConfig()
	if path := c.String("config"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, err
		}
		cfg, err = pointillism.LoadConfig(f)
		f.Close()
		if err != nil {
			return cfg, err
		}
	}

	ints := map[string]*int{
		"block-size": &cfg.BlockSize,
		"padding":    &cfg.Padding,
		"radius":     &cfg.MaxRadius,
		"delay":      &cfg.OutputDelay,
		"workers":    &cfg.Workers,
		"loop":       &cfg.LoopCount,
	}
	for name, v := range ints {
		if c.IsSet(name) {
			*v = c.Int(name)
		}
	}
	floats := map[string]*float64{
		"gamma":            &cfg.Adjust.Gamma,
		"brightness":       &cfg.Adjust.Brightness,
		"contrast":         &cfg.Adjust.Contrast,
		"sharpen":          &cfg.Adjust.Sharpen,
		"sigmoid-midpoint": &cfg.Adjust.SigmoidMidpoint,
		"sigmoid-factor":   &cfg.Adjust.SigmoidFactor,
		"scale":            &cfg.Adjust.Scale,
	}
	for name, v := range floats {
		if c.IsSet(name) {
			*v = c.Float64(name)
		}
	}
	if c.IsSet("measure") {
		cfg.Measure = c.String("measure")
	}
	if c.IsSet("background") {
		cfg.Background = c.String("background")
	}
	if c.IsSet("smooth") {
		cfg.Smooth = c.Bool("smooth")
	}
	if c.IsSet("invert") {
		cfg.Adjust.Invert = c.Bool("invert")
	}
	return cfg, nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func createOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
