package pointillism

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Assemble transforms every frame of an animation with one shared config,
// rejecting an invalid cfg before any frame is touched.
// Frames are processed concurrently but returned in their original order,
// each carrying cfg.OutputDelay. The first failure cancels the remaining work
// and Assemble returns that error and no frames.
func Assemble(ctx context.Context, frames []Frame, cfg Config) ([]Frame, error) {
	t, err := NewTransformer(cfg)
	if err != nil {
		return nil, err
	}
	workers := cfg.workers()
	if len(frames) == 1 && !cfg.Smooth {
		t.rasterizer = DiskRasterizer{Workers: workers}
	}

	log := logrus.WithFields(logrus.Fields{
		"function":   "Assemble",
		"frames":     len(frames),
		"block_size": cfg.BlockSize,
		"max_radius": cfg.MaxRadius,
		"padding":    cfg.Padding,
		"measure":    cfg.Measure,
		"workers":    workers,
	})
	log.Info("Pointillizing frames")
	start := time.Now()

	out := make([]Frame, len(frames))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range frames {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := cfg.Adjust.Apply(frames[i])
			if err != nil {
				return &FrameError{Index: i, Err: err}
			}
			dst, err := t.Transform(src)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"function": "Assemble",
					"frame":    i,
					"error":    err.Error(),
				}).Error("Frame transform failed")
				return &FrameError{Index: i, Err: err}
			}
			dst.Delay = cfg.OutputDelay
			out[i] = dst
			logrus.WithFields(logrus.Fields{
				"function": "Assemble",
				"frame":    i,
				"width":    dst.Image.Rect.Dx(),
				"height":   dst.Image.Rect.Dy(),
			}).Debug("Frame transformed")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.WithField("elapsed", time.Since(start).String()).Info("Pointillized frames")
	return out, nil
}
