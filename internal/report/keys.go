package report

import (
	"bufio"
	"errors"
	"io"
)

// ErrQuit reports that the user pressed q, Ctrl-C or Ctrl-D. Terminals in
// raw mode deliver the control keys as bytes instead of signals.
var ErrQuit = errors.New("quit requested")

// typeAhead is how many unanswered line endings are kept for later pauses.
const typeAhead = 16

// Keys reads a terminal byte stream in the background for the whole session.
// Line endings are queued for pauses; a quit key or a read error closes Quit.
type Keys struct {
	enter chan struct{}
	quit  chan struct{}
	err   error // written before quit is closed
}

// StartKeys spawns a goroutine that reads from r until a quit key or error.
func StartKeys(r io.Reader) *Keys {
	k := &Keys{
		enter: make(chan struct{}, typeAhead),
		quit:  make(chan struct{}),
	}
	go k.read(bufio.NewReader(r))
	return k
}

func (k *Keys) read(br *bufio.Reader) {
	var prev byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			k.stop(err)
			return
		}
		switch b {
		case 0x03, 0x04, 'q', 'Q':
			k.stop(ErrQuit)
			return
		}
		// "\r\n" is one line ending
		if b == '\n' && prev == '\r' {
			prev = b
			continue
		}
		prev = b
		if b != '\n' && b != '\r' {
			continue
		}
		select {
		case k.enter <- struct{}{}:
		default:
			// nobody is pausing
		}
	}
}

func (k *Keys) stop(err error) {
	k.err = err
	close(k.quit)
}

// Quit is closed once the user quits or the input ends.
func (k *Keys) Quit() <-chan struct{} {
	return k.quit
}

// Err returns ErrQuit or the read error after Quit is closed, nil before.
func (k *Keys) Err() error {
	select {
	case <-k.quit:
		return k.err
	default:
		return nil
	}
}
