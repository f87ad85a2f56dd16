package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/tomz197/bounce/internal/config"
	"github.com/tomz197/bounce/internal/report"
	"github.com/tomz197/bounce/internal/sim"
	"golang.org/x/term"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bounce",
		Level:           cfg.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rng, seed := sim.NewRand(cfg.Seed)
	world, err := sim.NewDemoWorld(cfg, rng)
	if err != nil {
		logger.Fatal("failed to create world", "err", err)
	}

	handlers := []sim.Handler{report.NewConsole(os.Stdout).Handle}

	// Only read keys when someone can actually press them.
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		keys := report.StartKeys(os.Stdin)
		go func() {
			<-keys.Quit()
			stop()
		}()
		if cfg.Pause {
			handlers = append(handlers, report.NewPauser(keys, os.Stdout).Handle)
		}
	}

	logger.Info("simulation started",
		"seed", seed,
		"arena", fmt.Sprintf("%vx%v", cfg.Width, cfg.Height),
		"tangent", cfg.Tangent,
		"pause", cfg.Pause && interactive,
	)

	runner := sim.NewRunner(world, cfg.TickInterval(), logger)
	err = runner.Run(ctx, report.Chain(handlers...))
	if errors.Is(err, report.ErrQuit) || errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		logger.Error("simulation stopped", "err", err, "ticks", world.Ticks())
		os.Exit(1)
	}
	logger.Info("simulation finished", "ticks", world.Ticks())
}
