// Package keyboard turns PS/2 scancodes into layout independent key events.
//
// Events are pulled: ReadEvent polls the controller once and returns at most
// one event.
//
//	kb := keyboard.NewPS2Keyboard(ctrl)
//	if err := kb.Enable(); err != nil {
//		return err
//	}
//	for {
//		ev, ok, err := kb.ReadEvent()
//		...
//	}
package keyboard

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Alia5/ps2drv/ps2"
)

// ErrKeyboardNotEnabled is returned when the keyboard port is not enabled.
var ErrKeyboardNotEnabled = errors.New("keyboard: not enabled")

// Keyboard is a source of key events.
type Keyboard interface {
	Enable() error
	Disable() error
	// ReadEvent polls for the next event; ok is false when there is none.
	ReadEvent() (ev KeyEvent, ok bool, err error)
	// Pressed reports whether k is currently held.
	Pressed(k Keycode) bool
}

// PS2Keyboard is a Keyboard on the first port of a PS/2 controller.
type PS2Keyboard struct {
	ctrl   *ps2.Controller
	layout Layout
	logger *slog.Logger
	held   [256]bool
}

// Option configures a PS2Keyboard.
type Option func(*PS2Keyboard)

// WithLayout replaces the US QWERTY character layout.
func WithLayout(l Layout) Option {
	return func(k *PS2Keyboard) { k.layout = l }
}

// WithLogger sets the logger for unknown scancodes.
func WithLogger(l *slog.Logger) Option {
	return func(k *PS2Keyboard) { k.logger = l }
}

// NewPS2Keyboard returns a keyboard driver using ctrl. The controller should
// have been initialized.
func NewPS2Keyboard(ctrl *ps2.Controller, opts ...Option) *PS2Keyboard {
	k := &PS2Keyboard{
		ctrl:   ctrl,
		layout: USQwerty,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(k)
	}
	return k
}

// Enable enables the keyboard port, selects scanset 2 and starts scanning.
func (k *PS2Keyboard) Enable() error {
	return k.ctrl.Do(func(g *ps2.Guard) error {
		dev := g.Keyboard()
		if err := dev.Enable(); err != nil {
			return keyboardError(err)
		}
		if err := dev.SetScanset(ps2.Scanset2); err != nil {
			return keyboardError(err)
		}
		if err := dev.EnableScanning(); err != nil {
			return keyboardError(err)
		}
		return nil
	})
}

// Disable disables the keyboard port.
func (k *PS2Keyboard) Disable() error {
	return k.ctrl.Do(func(g *ps2.Guard) error {
		return keyboardError(g.Keyboard().Disable())
	})
}

// ReadEvent polls the keyboard until a scancode turns into an event or no
// input is pending. Scancodes without a Keycode are skipped.
func (k *PS2Keyboard) ReadEvent() (KeyEvent, bool, error) {
	for {
		g := k.ctrl.Lock()
		sc, ok, err := g.Keyboard().ReadScancode()
		g.Unlock()
		if err != nil {
			return KeyEvent{}, false, keyboardError(err)
		}
		if !ok {
			return KeyEvent{}, false, nil
		}
		if ev, ok := k.HandleScancode(sc); ok {
			return ev, true, nil
		}
	}
}

// HandleScancode classifies sc against the held-key table and updates it.
func (k *PS2Keyboard) HandleScancode(sc ps2.Scancode) (KeyEvent, bool) {
	ctrl := k.Pressed(KeyLeftControl) || k.Pressed(KeyRightControl)
	alt := k.Pressed(KeyLeftAlt) || k.Pressed(KeyRightAlt)
	shift := k.Pressed(KeyLeftShift) || k.Pressed(KeyRightShift)

	keycode, err := KeycodeFor(sc)
	if err != nil {
		k.logger.Debug("dropping scancode", "error", err)
		return KeyEvent{}, false
	}

	ev := KeyEvent{
		Keycode:   keycode,
		Modifiers: modifiersFrom(ctrl, alt, shift),
	}
	if lower, upper, ok := k.layout.Chars(keycode); ok {
		ev.HasChar = true
		ev.Char = lower
		if shift {
			ev.Char = upper
		}
	}

	// Classify against the previous state before recording the new one.
	switch {
	case sc.Make && k.held[keycode]:
		ev.Type = Repeat
	case sc.Make:
		ev.Type = Make
	default:
		ev.Type = Break
	}
	k.held[keycode] = sc.Make

	return ev, true
}

// Pressed reports whether keycode is held.
func (k *PS2Keyboard) Pressed(keycode Keycode) bool {
	return k.held[keycode]
}

func keyboardError(err error) error {
	if errors.Is(err, ps2.ErrDeviceDisabled) {
		return fmt.Errorf("%w: %w", ErrKeyboardNotEnabled, err)
	}
	return err
}

var _ Keyboard = (*PS2Keyboard)(nil)
