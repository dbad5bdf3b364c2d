package keyboard

import "fmt"

// Keycode identifies a physical key by its column and row on a reference
// keyboard, independent of scan code set and national layout. A game looking
// for WASD wants those positions, not those letters.
type Keycode uint8

// NewKeycode packs a column (0-31) and row (0-7) into a Keycode.
func NewKeycode(column, row uint8) Keycode {
	return Keycode(column&0x1F | (row&0x07)<<5)
}

// Column returns the key's column on the reference keyboard.
func (k Keycode) Column() uint8 { return uint8(k) & 0x1F }

// Row returns the key's row on the reference keyboard.
func (k Keycode) Row() uint8 { return uint8(k) >> 5 }

func (k Keycode) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Keycode(%d,%d)", k.Column(), k.Row())
}

// Reference layout key positions, column | row<<5.

// Row 0
const (
	KeyEscape      Keycode = 0 | 0<<5
	KeyF1          Keycode = 1 | 0<<5
	KeyF2          Keycode = 2 | 0<<5
	KeyF3          Keycode = 3 | 0<<5
	KeyF4          Keycode = 4 | 0<<5
	KeyF5          Keycode = 5 | 0<<5
	KeyF6          Keycode = 6 | 0<<5
	KeyF7          Keycode = 7 | 0<<5
	KeyF8          Keycode = 8 | 0<<5
	KeyF9          Keycode = 9 | 0<<5
	KeyF10         Keycode = 10 | 0<<5
	KeyF11         Keycode = 11 | 0<<5
	KeyF12         Keycode = 12 | 0<<5
	KeyPrintScreen Keycode = 13 | 0<<5
	KeyScrollLock  Keycode = 14 | 0<<5
	KeyPause       Keycode = 15 | 0<<5
)

// Row 1
const (
	KeyBackTick       Keycode = 0 | 1<<5
	Key1              Keycode = 1 | 1<<5
	Key2              Keycode = 2 | 1<<5
	Key3              Keycode = 3 | 1<<5
	Key4              Keycode = 4 | 1<<5
	Key5              Keycode = 5 | 1<<5
	Key6              Keycode = 6 | 1<<5
	Key7              Keycode = 7 | 1<<5
	Key8              Keycode = 8 | 1<<5
	Key9              Keycode = 9 | 1<<5
	Key0              Keycode = 10 | 1<<5
	KeyMinus          Keycode = 11 | 1<<5
	KeyEquals         Keycode = 12 | 1<<5
	KeyBackspace      Keycode = 13 | 1<<5
	KeyInsert         Keycode = 14 | 1<<5
	KeyHome           Keycode = 15 | 1<<5
	KeyPageUp         Keycode = 16 | 1<<5
	KeyNumLock        Keycode = 17 | 1<<5
	KeyNumPadSlash    Keycode = 18 | 1<<5
	KeyNumPadAsterisk Keycode = 19 | 1<<5
	KeyNumPadMinus    Keycode = 20 | 1<<5
)

// Row 2
const (
	KeyTab                Keycode = 0 | 2<<5
	KeyQ                  Keycode = 1 | 2<<5
	KeyW                  Keycode = 2 | 2<<5
	KeyE                  Keycode = 3 | 2<<5
	KeyR                  Keycode = 4 | 2<<5
	KeyT                  Keycode = 5 | 2<<5
	KeyY                  Keycode = 6 | 2<<5
	KeyU                  Keycode = 7 | 2<<5
	KeyI                  Keycode = 8 | 2<<5
	KeyO                  Keycode = 9 | 2<<5
	KeyP                  Keycode = 10 | 2<<5
	KeySquareBracketOpen  Keycode = 11 | 2<<5
	KeySquareBracketClose Keycode = 12 | 2<<5
	KeyBackSlash          Keycode = 13 | 2<<5
	KeyDelete             Keycode = 14 | 2<<5
	KeyEnd                Keycode = 15 | 2<<5
	KeyPageDown           Keycode = 16 | 2<<5
	KeyNumPad7            Keycode = 17 | 2<<5
	KeyNumPad8            Keycode = 18 | 2<<5
	KeyNumPad9            Keycode = 19 | 2<<5
)

// Row 3
const (
	KeyCapsLock    Keycode = 0 | 3<<5
	KeyA           Keycode = 1 | 3<<5
	KeyS           Keycode = 2 | 3<<5
	KeyD           Keycode = 3 | 3<<5
	KeyF           Keycode = 4 | 3<<5
	KeyG           Keycode = 5 | 3<<5
	KeyH           Keycode = 6 | 3<<5
	KeyJ           Keycode = 7 | 3<<5
	KeyK           Keycode = 8 | 3<<5
	KeyL           Keycode = 9 | 3<<5
	KeySemicolon   Keycode = 10 | 3<<5
	KeySingleQuote Keycode = 11 | 3<<5
	KeyEnter       Keycode = 12 | 3<<5
	KeyNumPad4     Keycode = 13 | 3<<5
	KeyNumPad5     Keycode = 14 | 3<<5
	KeyNumPad6     Keycode = 15 | 3<<5
	KeyNumPadPlus  Keycode = 16 | 3<<5
)

// Row 4
const (
	KeyLeftShift    Keycode = 0 | 4<<5
	KeyZ            Keycode = 1 | 4<<5
	KeyX            Keycode = 2 | 4<<5
	KeyC            Keycode = 3 | 4<<5
	KeyV            Keycode = 4 | 4<<5
	KeyB            Keycode = 5 | 4<<5
	KeyN            Keycode = 6 | 4<<5
	KeyM            Keycode = 7 | 4<<5
	KeyComma        Keycode = 8 | 4<<5
	KeyPeriod       Keycode = 9 | 4<<5
	KeyForwardSlash Keycode = 10 | 4<<5
	KeyRightShift   Keycode = 11 | 4<<5
	KeyUpArrow      Keycode = 12 | 4<<5
	KeyNumPad1      Keycode = 13 | 4<<5
	KeyNumPad2      Keycode = 14 | 4<<5
	KeyNumPad3      Keycode = 15 | 4<<5
)

// Row 5
const (
	KeyLeftControl  Keycode = 0 | 5<<5
	KeyLeftWin      Keycode = 1 | 5<<5
	KeyLeftAlt      Keycode = 2 | 5<<5
	KeySpace        Keycode = 3 | 5<<5
	KeyRightAlt     Keycode = 4 | 5<<5
	KeyRightWin     Keycode = 5 | 5<<5
	KeyFunction     Keycode = 6 | 5<<5
	KeyRightControl Keycode = 7 | 5<<5
	KeyLeftArrow    Keycode = 8 | 5<<5
	KeyDownArrow    Keycode = 9 | 5<<5
	KeyRightArrow   Keycode = 10 | 5<<5
	KeyNumPad0      Keycode = 11 | 5<<5
	KeyNumPadPeriod Keycode = 12 | 5<<5
	KeyNumPadEnter  Keycode = 13 | 5<<5
	KeyMenu         Keycode = 14 | 5<<5
)

var keyNames = map[Keycode]string{
	KeyEscape: "Escape", KeyF1: "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4", KeyF5: "F5", KeyF6: "F6",
	KeyF7: "F7", KeyF8: "F8", KeyF9: "F9", KeyF10: "F10", KeyF11: "F11", KeyF12: "F12",
	KeyPrintScreen: "PrintScreen", KeyScrollLock: "ScrollLock", KeyPause: "Pause",

	KeyBackTick: "BackTick", Key1: "1", Key2: "2", Key3: "3", Key4: "4", Key5: "5",
	Key6: "6", Key7: "7", Key8: "8", Key9: "9", Key0: "0",
	KeyMinus: "Minus", KeyEquals: "Equals", KeyBackspace: "Backspace",
	KeyInsert: "Insert", KeyHome: "Home", KeyPageUp: "PageUp",
	KeyNumLock: "NumLock", KeyNumPadSlash: "Kp/", KeyNumPadAsterisk: "Kp*", KeyNumPadMinus: "Kp-",

	KeyTab: "Tab", KeyQ: "Q", KeyW: "W", KeyE: "E", KeyR: "R", KeyT: "T", KeyY: "Y",
	KeyU: "U", KeyI: "I", KeyO: "O", KeyP: "P",
	KeySquareBracketOpen: "LeftBracket", KeySquareBracketClose: "RightBracket", KeyBackSlash: "Backslash",
	KeyDelete: "Delete", KeyEnd: "End", KeyPageDown: "PageDown",
	KeyNumPad7: "Kp7", KeyNumPad8: "Kp8", KeyNumPad9: "Kp9",

	KeyCapsLock: "CapsLock", KeyA: "A", KeyS: "S", KeyD: "D", KeyF: "F", KeyG: "G", KeyH: "H",
	KeyJ: "J", KeyK: "K", KeyL: "L", KeySemicolon: "Semicolon", KeySingleQuote: "Apostrophe",
	KeyEnter: "Enter", KeyNumPad4: "Kp4", KeyNumPad5: "Kp5", KeyNumPad6: "Kp6", KeyNumPadPlus: "Kp+",

	KeyLeftShift: "LeftShift", KeyZ: "Z", KeyX: "X", KeyC: "C", KeyV: "V", KeyB: "B", KeyN: "N",
	KeyM: "M", KeyComma: "Comma", KeyPeriod: "Period", KeyForwardSlash: "Slash",
	KeyRightShift: "RightShift", KeyUpArrow: "Up", KeyNumPad1: "Kp1", KeyNumPad2: "Kp2", KeyNumPad3: "Kp3",

	KeyLeftControl: "LeftCtrl", KeyLeftWin: "LeftWin", KeyLeftAlt: "LeftAlt", KeySpace: "Space",
	KeyRightAlt: "RightAlt", KeyRightWin: "RightWin", KeyFunction: "Fn", KeyRightControl: "RightCtrl",
	KeyLeftArrow: "Left", KeyDownArrow: "Down", KeyRightArrow: "Right",
	KeyNumPad0: "Kp0", KeyNumPadPeriod: "Kp.", KeyNumPadEnter: "KpEnter", KeyMenu: "Menu",
}
