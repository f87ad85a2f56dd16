package report

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tomz197/bounce/internal/physics"
)

// PausePrompt is written before waiting for the user.
const PausePrompt = "Press Enter to continue..."

// Pauser blocks after each collision until a line ending arrives on its
// keys. Either "\n", "\r" or "\r\n" ends a line. Input typed ahead is
// consumed by later pauses.
type Pauser struct {
	keys *Keys
	w    io.Writer

	err error // sticky once the keys stop
}

// NewPauser waits on keys and writes prompts to w.
func NewPauser(keys *Keys, w io.Writer) *Pauser {
	return &Pauser{keys: keys, w: w}
}

// Handle prompts and waits. It returns ErrQuit after a quit key, io.EOF
// (wrapped) once the input is exhausted, and ctx.Err() if the context ends
// first.
func (p *Pauser) Handle(ctx context.Context, _ physics.CollisionEvent) error {
	if p.err != nil {
		return p.err
	}

	if _, err := fmt.Fprint(p.w, PausePrompt); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.keys.enter:
	case <-p.keys.Quit():
		// lines typed before the input ended still count
		select {
		case <-p.keys.enter:
		default:
			err := p.keys.Err()
			if errors.Is(err, io.EOF) {
				err = fmt.Errorf("pause: %w", io.EOF)
			}
			p.err = err
			return err
		}
	}

	_, err := fmt.Fprintln(p.w)
	return err
}
