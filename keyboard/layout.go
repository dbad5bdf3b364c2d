package keyboard

// Layout maps key positions to the characters printed on them.
type Layout interface {
	// Chars returns the unshifted and shifted character of k, or ok=false
	// for keys that produce no character.
	Chars(k Keycode) (unshifted, shifted rune, ok bool)
}

// CharLayout is a Layout backed by a table of printable keys.
type CharLayout map[Keycode][2]rune

func (l CharLayout) Chars(k Keycode) (rune, rune, bool) {
	c, ok := l[k]
	return c[0], c[1], ok
}

// KeyFor finds the key producing r and whether shift is needed for it.
// The leftmost key wins when several keys produce r, so the main block is
// preferred over the keypad.
func (l CharLayout) KeyFor(r rune) (k Keycode, shift bool, ok bool) {
	for col := uint8(0); col < 32; col++ {
		for row := uint8(0); row < 8; row++ {
			key := NewKeycode(col, row)
			c, found := l[key]
			if !found {
				continue
			}
			if c[0] == r {
				return key, false, true
			}
			if c[1] == r {
				return key, true, true
			}
		}
	}
	return 0, false, false
}

// USQwerty is the reference US QWERTY layout.
//
// Keypad digits always report their digit; num lock is not tracked, so with
// num lock off they still print instead of acting as navigation keys.
var USQwerty = CharLayout{
	KeyBackTick:  {'`', '~'},
	Key1:         {'1', '!'},
	Key2:         {'2', '@'},
	Key3:         {'3', '#'},
	Key4:         {'4', '$'},
	Key5:         {'5', '%'},
	Key6:         {'6', '^'},
	Key7:         {'7', '&'},
	Key8:         {'8', '*'},
	Key9:         {'9', '('},
	Key0:         {'0', ')'},
	KeyMinus:     {'-', '_'},
	KeyEquals:    {'=', '+'},
	KeyBackspace: {'\b', '\b'},

	KeyTab:                {'\t', '\t'},
	KeyQ:                  {'q', 'Q'},
	KeyW:                  {'w', 'W'},
	KeyE:                  {'e', 'E'},
	KeyR:                  {'r', 'R'},
	KeyT:                  {'t', 'T'},
	KeyY:                  {'y', 'Y'},
	KeyU:                  {'u', 'U'},
	KeyI:                  {'i', 'I'},
	KeyO:                  {'o', 'O'},
	KeyP:                  {'p', 'P'},
	KeySquareBracketOpen:  {'[', '{'},
	KeySquareBracketClose: {']', '}'},
	KeyBackSlash:          {'\\', '|'},

	KeyA:           {'a', 'A'},
	KeyS:           {'s', 'S'},
	KeyD:           {'d', 'D'},
	KeyF:           {'f', 'F'},
	KeyG:           {'g', 'G'},
	KeyH:           {'h', 'H'},
	KeyJ:           {'j', 'J'},
	KeyK:           {'k', 'K'},
	KeyL:           {'l', 'L'},
	KeySemicolon:   {';', ':'},
	KeySingleQuote: {'\'', '"'},
	KeyEnter:       {'\n', '\n'},

	KeyZ:            {'z', 'Z'},
	KeyX:            {'x', 'X'},
	KeyC:            {'c', 'C'},
	KeyV:            {'v', 'V'},
	KeyB:            {'b', 'B'},
	KeyN:            {'n', 'N'},
	KeyM:            {'m', 'M'},
	KeyComma:        {',', '<'},
	KeyPeriod:       {'.', '>'},
	KeyForwardSlash: {'/', '?'},

	KeySpace: {' ', ' '},

	KeyNumPadSlash:    {'/', '/'},
	KeyNumPadAsterisk: {'*', '*'},
	KeyNumPadMinus:    {'-', '-'},
	KeyNumPad7:        {'7', '7'},
	KeyNumPad8:        {'8', '8'},
	KeyNumPad9:        {'9', '9'},
	KeyNumPad4:        {'4', '4'},
	KeyNumPad5:        {'5', '5'},
	KeyNumPad6:        {'6', '6'},
	KeyNumPadPlus:     {'+', '+'},
	KeyNumPad1:        {'1', '1'},
	KeyNumPad2:        {'2', '2'},
	KeyNumPad3:        {'3', '3'},
	KeyNumPadEnter:    {'\n', '\n'},
	KeyNumPad0:        {'0', '0'},
	KeyNumPadPeriod:   {'.', '.'},
}
