package scenario

import (
	"fmt"

	"github.com/Alia5/ps2drv/keyboard"
)

// EncodeText returns the scanset 2 bytes for typing s on layout: for each
// rune a press and release, wrapped in left shift when the rune needs it.
func EncodeText(layout keyboard.CharLayout, s string) ([]byte, error) {
	var out []byte
	for _, r := range s {
		b, err := EncodeRune(layout, r)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// EncodeRune returns the scanset 2 bytes for typing r on layout.
func EncodeRune(layout keyboard.CharLayout, r rune) ([]byte, error) {
	if r == '\r' {
		r = '\n'
	}
	k, shift, ok := layout.KeyFor(r)
	if !ok {
		return nil, fmt.Errorf("no key for %q", r)
	}
	var out []byte
	if shift {
		out = append(out, tap(keyboard.KeyLeftShift, true)...)
	}
	out = append(out, tap(k, true)...)
	out = append(out, tap(k, false)...)
	if shift {
		out = append(out, tap(keyboard.KeyLeftShift, false)...)
	}
	return out, nil
}

func tap(k keyboard.Keycode, pressed bool) []byte {
	b, _ := keyboard.ScancodeBytes(k, pressed)
	return b
}
