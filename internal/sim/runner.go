package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/bounce/internal/physics"
)

// Handler receives every collision the runner produces. Returning an error
// stops the run.
type Handler func(ctx context.Context, ev physics.CollisionEvent) error

// Runner drives a World at a fixed tick rate.
type Runner struct {
	World    *World
	Interval time.Duration // 0 runs as fast as possible
	MaxTicks int           // 0 runs until the context is done
	Logger   *log.Logger
}

// NewRunner creates a runner for w ticking every interval.
func NewRunner(w *World, interval time.Duration, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{World: w, Interval: interval, Logger: logger}
}

// Run steps the world until ctx is done or MaxTicks is reached, passing each
// collision to h. Time spent inside h (for example waiting for the user) is
// not made up afterwards.
func (r *Runner) Run(ctx context.Context, h Handler) error {
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}
		if r.MaxTicks > 0 && r.World.Ticks() >= r.MaxTicks {
			logger.Debug("tick limit reached", "ticks", r.World.Ticks())
			return nil
		}

		frameStart := time.Now()

		for _, ev := range r.World.Step() {
			logger.Debug("collision", "tick", r.World.Ticks(), "a", ev.A, "b", ev.B, "angle", ev.Angle)
			if h == nil {
				continue
			}
			if err := h(ctx, ev); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("tick %d: %w", r.World.Ticks(), err)
			}
		}

		elapsed := time.Since(frameStart)
		if r.Interval <= 0 || elapsed >= r.Interval {
			continue
		}
		if timer == nil {
			timer = time.NewTimer(r.Interval - elapsed)
		} else {
			timer.Reset(r.Interval - elapsed)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}
