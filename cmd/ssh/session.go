package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/bounce/internal/config"
	"github.com/tomz197/bounce/internal/report"
	"github.com/tomz197/bounce/internal/sim"
)

func banner(pause bool) string {
	if pause {
		return "Two balls, one arena. Press Enter after each collision, q to leave.\n"
	}
	return "Two balls, one arena. Press q to leave.\n"
}

// runSession runs world privately for one client, reading keys from in and
// writing diagnostics to out. Keys are read from the start, so a quit key or
// a closed input ends the session without error whether or not it pauses.
func runSession(ctx context.Context, cfg config.Config, world *sim.World, in io.Reader, out io.Writer, logger *log.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := report.NewCRLFWriter(out)

	keys := report.StartKeys(in)
	go func() {
		select {
		case <-keys.Quit():
			logger.Debug("input stopped", "reason", keys.Err())
			cancel()
		case <-ctx.Done():
		}
	}()

	if _, err := fmt.Fprint(w, banner(cfg.Pause)); err != nil {
		return err
	}

	handlers := []sim.Handler{
		report.NewConsole(w).Handle,
		report.LogHandler(logger),
	}
	if cfg.Pause {
		handlers = append(handlers, report.NewPauser(keys, w).Handle)
	}

	runner := sim.NewRunner(world, cfg.TickInterval(), logger)
	err := runner.Run(ctx, report.Chain(handlers...))
	if errors.Is(err, report.ErrQuit) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
