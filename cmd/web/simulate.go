package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/tomz197/bounce/internal/config"
	"github.com/tomz197/bounce/internal/physics"
	"github.com/tomz197/bounce/internal/sim"
)

const defaultTicks = 3600 // one minute at 60 FPS

type simulateResponse struct {
	Seed     uint64                   `json:"seed"`
	Ticks    int                      `json:"ticks"` // steps that ended in a finite state
	Tangent  string                   `json:"tangent"`
	Bodies   []*physics.Body          `json:"bodies,omitempty"`
	Events   []physics.CollisionEvent `json:"events"`
	Diverged bool                     `json:"diverged,omitempty"` // stopped early on non-finite values
}

type errorResponse struct {
	Error string `json:"error"`
}

// simulateHandler runs a headless simulation and returns every collision.
// Query parameters: seed (uint, 0 or absent picks one), ticks (1..WebMaxTicks)
// and tangent (own|shared).
func simulateHandler(cfg config.Config, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		seed := cfg.Seed
		if v := q.Get("seed"); v != "" {
			s, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid seed %q", v)})
				return
			}
			seed = s
		}

		ticks := defaultTicks
		if v := q.Get("ticks"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 || n > cfg.WebMaxTicks {
				writeJSON(w, http.StatusBadRequest, errorResponse{
					Error: fmt.Sprintf("ticks must be between 1 and %d", cfg.WebMaxTicks),
				})
				return
			}
			ticks = n
		}
		ticks = min(ticks, cfg.WebMaxTicks)

		runCfg := cfg
		if v := q.Get("tangent"); v != "" {
			mode, err := physics.ParseTangentMode(v)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
				return
			}
			runCfg.Tangent = mode
		}

		rng, seed := sim.NewRand(seed)
		world, err := sim.NewDemoWorld(runCfg, rng)
		if err != nil {
			logger.Error("failed to create world", "err", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to create world"})
			return
		}

		events, completed, diverged := simulateFinite(world, ticks)
		logger.Debug("simulated", "seed", seed, "ticks", completed, "events", len(events), "diverged", diverged)

		resp := simulateResponse{
			Seed:     seed,
			Ticks:    completed,
			Tangent:  runCfg.Tangent.String(),
			Bodies:   world.Bodies,
			Events:   events,
			Diverged: diverged,
		}
		if diverged {
			resp.Bodies = nil
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// simulateFinite steps world up to ticks times and stops at the first step
// that leaves a non-finite value. That step is not counted and its events are
// dropped, since neither can be encoded.
func simulateFinite(world *sim.World, ticks int) (events []physics.CollisionEvent, completed int, diverged bool) {
	events = []physics.CollisionEvent{}
	for range ticks {
		stepEvents := world.Step()
		if !world.Finite() {
			return events, completed, true
		}
		events = append(events, stepEvents...)
		completed++
	}
	return events, completed, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
