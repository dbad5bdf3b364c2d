package keyboard

import "strings"

// ModifierFlags are the modifier keys held when an event occurred.
type ModifierFlags uint8

const (
	ModCtrl ModifierFlags = 1 << iota
	ModAlt
	ModShift
)

// Has reports whether all bits of m are set.
func (f ModifierFlags) Has(m ModifierFlags) bool {
	return f&m == m
}

func (f ModifierFlags) String() string {
	var parts []string
	if f.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if f.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if f.Has(ModShift) {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "+")
}

func modifiersFrom(ctrl, alt, shift bool) ModifierFlags {
	var f ModifierFlags
	if ctrl {
		f |= ModCtrl
	}
	if alt {
		f |= ModAlt
	}
	if shift {
		f |= ModShift
	}
	return f
}

// EventType is the kind of key transition.
type EventType uint8

const (
	// Make is the initial press.
	Make EventType = iota
	// Break is the release.
	Break
	// Repeat is a make for a key that is already held.
	Repeat
)

func (t EventType) String() string {
	switch t {
	case Make:
		return "make"
	case Break:
		return "break"
	case Repeat:
		return "repeat"
	}
	return "unknown"
}

// KeyEvent is one key transition.
type KeyEvent struct {
	Keycode Keycode
	// Char is only meaningful when HasChar is true.
	Char      rune
	HasChar   bool
	Type      EventType
	Modifiers ModifierFlags
}
