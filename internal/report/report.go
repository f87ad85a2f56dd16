// Package report turns collision events into output a person can follow:
// console diagnostics, structured log lines and pause prompts.
package report

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/tomz197/bounce/internal/physics"
	"github.com/tomz197/bounce/internal/sim"
)

// Palette maps body tags to terminal colours. Unknown tags are left unstyled.
var Palette = map[string]lipgloss.Color{
	"blue":   lipgloss.Color("#0000FF"),
	"yellow": lipgloss.Color("#FFFF00"),
	"red":    lipgloss.Color("#FF0000"),
}

// Console prints the diagnostic block for each collision.
type Console struct {
	w        io.Writer
	renderer *lipgloss.Renderer
}

// NewConsole writes to w. Colours are used only if w is a colour-capable terminal.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w, renderer: lipgloss.NewRenderer(w)}
}

func (c *Console) style(tag string) lipgloss.Style {
	s := c.renderer.NewStyle()
	if col, ok := Palette[tag]; ok {
		s = s.Foreground(col).Bold(true)
	}
	return s
}

// Handle writes the collision point, both ball coordinates and the relative
// angle. The collision point is truncated to whole units.
func (c *Console) Handle(_ context.Context, ev physics.CollisionEvent) error {
	_, err := fmt.Fprintf(c.w,
		"%s: (%d, %d)\n%s: (%v, %v)\n%s: (%v, %v)\nRelative Angle: %.2f degrees\n",
		c.style("red").Render("Collision Point"), int(ev.Midpoint[0]), int(ev.Midpoint[1]),
		c.style(ev.A).Render("Ball 1 Coordinates"), ev.PositionA[0], ev.PositionA[1],
		c.style(ev.B).Render("Ball 2 Coordinates"), ev.PositionB[0], ev.PositionB[1],
		ev.Angle,
	)
	return err
}

// LogHandler returns a handler that writes one structured line per collision.
func LogHandler(logger *log.Logger) sim.Handler {
	return func(_ context.Context, ev physics.CollisionEvent) error {
		logger.Info("collision",
			"a", ev.A,
			"b", ev.B,
			"midpoint", fmt.Sprintf("(%.2f, %.2f)", ev.Midpoint[0], ev.Midpoint[1]),
			"angle", fmt.Sprintf("%.2f", ev.Angle),
			"velocity_a", fmt.Sprintf("(%.3f, %.3f)", ev.VelocityA[0], ev.VelocityA[1]),
			"velocity_b", fmt.Sprintf("(%.3f, %.3f)", ev.VelocityB[0], ev.VelocityB[1]),
		)
		return nil
	}
}

// Chain calls each non-nil handler in order and stops at the first error.
func Chain(handlers ...sim.Handler) sim.Handler {
	return func(ctx context.Context, ev physics.CollisionEvent) error {
		for _, h := range handlers {
			if h == nil {
				continue
			}
			if err := h(ctx, ev); err != nil {
				return err
			}
		}
		return nil
	}
}
