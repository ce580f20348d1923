package engine

import (
	"io"
	"strings"
)

// Bell signals transitions with the terminal bell. Terminals have no
// vibration motor, so Haptic does nothing.
type Bell struct {
	W io.Writer
}

func (b Bell) Haptic() error { return nil }

func (b Bell) Play(c Cue) error {
	if b.W == nil {
		return nil
	}
	n := 1
	if c == CueComplete {
		n = 2
	}
	_, err := io.WriteString(b.W, strings.Repeat("\a", n))
	return err
}
