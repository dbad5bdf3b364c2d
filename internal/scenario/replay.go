package scenario

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Alia5/ps2drv/internal/i8042"
	"github.com/Alia5/ps2drv/keyboard"
	"github.com/Alia5/ps2drv/portio"
	"github.com/Alia5/ps2drv/ps2"
)

// ErrNoKeyboard is returned when input is typed without a keyboard attached.
var ErrNoKeyboard = errors.New("scenario has no keyboard")

// Session is the driver stack booted on an emulated controller.
type Session struct {
	Available int

	ctrl *ps2.Controller
	hw   *i8042.Controller
	kbd  *i8042.Keyboard
	kb   *keyboard.PS2Keyboard
}

// NewSession attaches the devices to an emulated controller, initializes the
// controller and, if there is a keyboard, enables it.
func NewSession(devices Devices, cfg ps2.Config, logger *slog.Logger, tracer portio.Tracer) (*Session, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Session{}
	var opts []i8042.Option
	if devices.Keyboard {
		s.kbd = i8042.NewKeyboard()
		opts = append(opts, i8042.WithKeyboard(s.kbd))
	}
	if devices.Mouse {
		opts = append(opts, i8042.WithMouse(i8042.NewMouse(byte(devices.MouseID))))
	}
	s.hw = i8042.New(opts...)
	s.ctrl = ps2.New(portio.Traced(s.hw, tracer), cfg, logger)

	g := s.ctrl.Lock()
	n, err := g.Initialize()
	g.Unlock()
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	s.Available = n

	if s.kbd != nil {
		s.kb = keyboard.NewPS2Keyboard(s.ctrl, keyboard.WithLogger(logger))
		if err := s.kb.Enable(); err != nil {
			return nil, fmt.Errorf("enable keyboard: %w", err)
		}
	}
	return s, nil
}

// Controller returns the driver side controller.
func (s *Session) Controller() *ps2.Controller { return s.ctrl }

// Keyboard returns the keyboard driver, or nil without a keyboard.
func (s *Session) Keyboard() *keyboard.PS2Keyboard { return s.kb }

// Type queues raw scancode bytes on the emulated keyboard.
func (s *Session) Type(raw ...byte) error {
	if s.kbd == nil {
		return ErrNoKeyboard
	}
	s.kbd.Type(raw...)
	return nil
}

// Drain reads events until the emulated keyboard has nothing left.
func (s *Session) Drain(onEvent func(keyboard.KeyEvent)) error {
	if s.kb == nil {
		return ErrNoKeyboard
	}
	for {
		ev, ok, err := s.kb.ReadEvent()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		onEvent(ev)
	}
}

// Result is what a replay produced.
type Result struct {
	Available int
	Events    []keyboard.KeyEvent
}

// Replay runs sc on a new Session and collects the key events. Events are
// also passed to onEvent as they are read if it is non-nil.
func Replay(sc *Scenario, cfg ps2.Config, logger *slog.Logger, tracer portio.Tracer, onEvent func(keyboard.KeyEvent)) (*Result, error) {
	s, err := NewSession(sc.Devices, cfg, logger, tracer)
	if err != nil {
		return nil, err
	}
	res := &Result{Available: s.Available}

	for i, st := range sc.Steps {
		raw := make([]byte, 0, len(st.Bytes))
		for _, b := range st.Bytes {
			raw = append(raw, byte(b))
		}
		if st.Text != "" {
			text, err := EncodeText(keyboard.USQwerty, st.Text)
			if err != nil {
				return res, fmt.Errorf("step %d: %w", i, err)
			}
			raw = append(raw, text...)
		}
		if err := s.Type(raw...); err != nil {
			return res, fmt.Errorf("step %d: %w", i, err)
		}
		err := s.Drain(func(ev keyboard.KeyEvent) {
			res.Events = append(res.Events, ev)
			if onEvent != nil {
				onEvent(ev)
			}
		})
		if err != nil {
			return res, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return res, nil
}
