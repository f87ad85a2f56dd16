package main

import (
	_ "embed"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tomz197/bounce/internal/config"
)

//go:embed index.html
var htmlPage string

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bounce-web",
		Level:           cfg.LogLevel,
	})

	addr := net.JoinHostPort(cfg.WebHost, cfg.WebPort)
	logger.Info("starting web server", "url", "http://"+addr)
	if err := http.ListenAndServe(addr, newMux(cfg, logger)); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func newMux(cfg config.Config, logger *log.Logger) *http.ServeMux {
	page := strings.NewReplacer(
		"{{.SSHHost}}", cfg.SSHDisplayHost,
		"{{.SSHPort}}", cfg.SSHPort,
	).Replace(htmlPage)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	mux.HandleFunc("GET /api/simulate", simulateHandler(cfg, logger))
	return mux
}
