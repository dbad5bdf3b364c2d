package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/Alia5/ps2drv/internal/log"
	"github.com/Alia5/ps2drv/internal/scenario"
	"github.com/Alia5/ps2drv/keyboard"
	"github.com/Alia5/ps2drv/ps2"
)

const (
	ctrlC = 0x03
	ctrlD = 0x04
)

// Sim encodes terminal keystrokes as scanset 2 bytes, sends them through an
// emulated keyboard and prints what the driver decodes.
type Sim struct {
	PS2    ps2.Config `embed:"" prefix:"ps2."`
	Breaks bool       `help:"Also print key releases" default:"false"`
}

// Run is called by Kong when the sim command is executed.
func (s *Sim) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	defer rawLogger.Flush()
	sess, err := scenario.NewSession(scenario.Devices{Keyboard: true}, s.PS2, logger, rawLogger)
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("enter raw mode: %w", err)
		}
		defer func() { _ = term.Restore(fd, state) }()
	}
	fmt.Fprint(os.Stdout, "type to send keys, Ctrl+C or Ctrl+D to quit\r\n")
	return s.loop(sess, os.Stdin, os.Stdout)
}

func (s *Sim) loop(sess *scenario.Session, in io.Reader, out io.Writer) error {
	r := bufio.NewReader(in)
	for {
		ch, _, err := r.ReadRune()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if ch == ctrlC || ch == ctrlD {
			return nil
		}
		raw, err := scenario.EncodeRune(keyboard.USQwerty, ch)
		if err != nil {
			fmt.Fprintf(out, "%v\r\n", err)
			continue
		}
		if err := sess.Type(raw...); err != nil {
			return err
		}
		err = sess.Drain(func(ev keyboard.KeyEvent) {
			if ev.Type == keyboard.Break && !s.Breaks {
				return
			}
			fmt.Fprintf(out, "% x  %s\r\n", raw, FormatEvent(ev))
		})
		if err != nil {
			return err
		}
	}
}
