package keyboard

import (
	"errors"
	"fmt"

	"github.com/Alia5/ps2drv/ps2"
)

var (
	// ErrUnknownScancode is matched by lookups that missed the plain table.
	ErrUnknownScancode = errors.New("keyboard: unknown scancode")
	// ErrUnknownExtendedScancode is matched by lookups that missed the extended table.
	ErrUnknownExtendedScancode = errors.New("keyboard: unknown extended scancode")
)

// UnknownScancodeError is returned for scancodes with no Keycode.
type UnknownScancodeError struct {
	Code     byte
	Extended bool
}

func (e *UnknownScancodeError) Error() string {
	if e.Extended {
		return fmt.Sprintf("keyboard: unknown extended scancode 0xe0 0x%02x", e.Code)
	}
	return fmt.Sprintf("keyboard: unknown scancode 0x%02x", e.Code)
}

func (e *UnknownScancodeError) Is(target error) bool {
	if e.Extended {
		return target == ErrUnknownExtendedScancode
	}
	return target == ErrUnknownScancode
}

// KeycodeFor maps a scanset 2 scancode to its Keycode. Plain and extended
// codes are separate code spaces.
func KeycodeFor(sc ps2.Scancode) (Keycode, error) {
	table := scanset2
	if sc.Extended {
		table = scanset2Extended
	}
	if k, ok := table[sc.Code]; ok {
		return k, nil
	}
	return 0, &UnknownScancodeError{Code: sc.Code, Extended: sc.Extended}
}

// ScancodeBytes returns the scanset 2 byte sequence for pressing or
// releasing k.
func ScancodeBytes(k Keycode, pressed bool) ([]byte, bool) {
	code, ok := reverseScanset2[k]
	extended := false
	if !ok {
		code, ok = reverseScanset2Extended[k]
		extended = true
	}
	if !ok {
		return nil, false
	}
	var out []byte
	if extended {
		out = append(out, ps2.PrefixExtended)
	}
	if !pressed {
		out = append(out, ps2.PrefixBreak)
	}
	return append(out, code), true
}

var scanset2 = map[byte]Keycode{
	0x01: KeyF9,
	0x03: KeyF5,
	0x04: KeyF3,
	0x05: KeyF1,
	0x06: KeyF2,
	0x07: KeyF12,
	0x09: KeyF10,
	0x0A: KeyF8,
	0x0B: KeyF6,
	0x0C: KeyF4,
	0x0D: KeyTab,
	0x0E: KeyBackTick,
	0x11: KeyLeftAlt,
	0x12: KeyLeftShift,
	0x14: KeyLeftControl,
	0x15: KeyQ,
	0x16: Key1,
	0x1A: KeyZ,
	0x1B: KeyS,
	0x1C: KeyA,
	0x1D: KeyW,
	0x1E: Key2,
	0x21: KeyC,
	0x22: KeyX,
	0x23: KeyD,
	0x24: KeyE,
	0x25: Key4,
	0x26: Key3,
	0x29: KeySpace,
	0x2A: KeyV,
	0x2B: KeyF,
	0x2C: KeyT,
	0x2D: KeyR,
	0x2E: Key5,
	0x31: KeyN,
	0x32: KeyB,
	0x33: KeyH,
	0x34: KeyG,
	0x35: KeyY,
	0x36: Key6,
	0x3A: KeyM,
	0x3B: KeyJ,
	0x3C: KeyU,
	0x3D: Key7,
	0x3E: Key8,
	0x41: KeyComma,
	0x42: KeyK,
	0x43: KeyI,
	0x44: KeyO,
	0x45: Key0,
	0x46: Key9,
	0x49: KeyPeriod,
	0x4A: KeyForwardSlash,
	0x4B: KeyL,
	0x4C: KeySemicolon,
	0x4D: KeyP,
	0x4E: KeyMinus,
	0x52: KeySingleQuote,
	0x54: KeySquareBracketOpen,
	0x55: KeyEquals,
	0x58: KeyCapsLock,
	0x59: KeyRightShift,
	0x5A: KeyEnter,
	0x5B: KeySquareBracketClose,
	0x5D: KeyBackSlash,
	0x66: KeyBackspace,
	0x69: KeyNumPad1,
	0x6B: KeyNumPad4,
	0x6C: KeyNumPad7,
	0x70: KeyNumPad0,
	0x71: KeyNumPadPeriod,
	0x72: KeyNumPad2,
	0x73: KeyNumPad5,
	0x74: KeyNumPad6,
	0x75: KeyNumPad8,
	0x76: KeyEscape,
	0x77: KeyNumLock,
	0x78: KeyF11,
	0x79: KeyNumPadPlus,
	0x7A: KeyNumPad3,
	0x7B: KeyNumPadMinus,
	0x7C: KeyNumPadAsterisk,
	0x7D: KeyNumPad9,
	0x7E: KeyScrollLock,
	0x83: KeyF7,
}

// Extended codes follow an 0xE0 prefix. Print screen sends a fake shift
// (E0 12) before E0 7C; the fake shift has no entry and is dropped.
var scanset2Extended = map[byte]Keycode{
	0x11: KeyRightAlt,
	0x14: KeyRightControl,
	0x1F: KeyLeftWin,
	0x27: KeyRightWin,
	0x2F: KeyMenu,
	0x4A: KeyNumPadSlash,
	0x5A: KeyNumPadEnter,
	0x69: KeyEnd,
	0x6B: KeyLeftArrow,
	0x6C: KeyHome,
	0x70: KeyInsert,
	0x71: KeyDelete,
	0x72: KeyDownArrow,
	0x74: KeyRightArrow,
	0x75: KeyUpArrow,
	0x7A: KeyPageDown,
	0x7C: KeyPrintScreen,
	0x7D: KeyPageUp,
}

var (
	reverseScanset2         = reverse(scanset2)
	reverseScanset2Extended = reverse(scanset2Extended)
)

func reverse(m map[byte]Keycode) map[Keycode]byte {
	out := make(map[Keycode]byte, len(m))
	for code, k := range m {
		out[k] = code
	}
	return out
}
