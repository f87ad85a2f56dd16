package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/bounce/internal/config"
	"github.com/tomz197/bounce/internal/sim"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bounce-ssh",
		Level:           cfg.LogLevel,
	})

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("SSH config", "host", cfg.SSHHost, "port", cfg.SSHPort, "hostKeyPath", cfg.HostKeyPath, "workingDir", workingDir)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSHHost, cfg.SSHPort)),
		wish.WithMiddleware(
			sessionMiddleware(cfg, logger),
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Pause prompts are answered one keystroke at a time
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if cfg.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(cfg.SSHHost, cfg.SSHPort))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// sessionMiddleware gives every SSH session its own arena and runs it until
// the client quits or disconnects.
func sessionMiddleware(cfg config.Config, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, _, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			rng, seed := sim.NewRand(cfg.Seed)
			sessLogger := logger.With("user", sess.User(), "seed", seed)
			sessLogger.Info("new session", "terminal", pty.Term, "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

			world, err := sim.NewDemoWorld(cfg, rng)
			if err != nil {
				sessLogger.Error("failed to create world", "err", err)
				wish.Fatalln(sess, "Error: could not set up the arena.")
				return
			}

			if err := runSession(sess.Context(), cfg, world, sess, sess, sessLogger); err != nil {
				sessLogger.Error("session error", "err", err)
			}

			sessLogger.Info("session ended")
			next(sess)
		}
	}
}
