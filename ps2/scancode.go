package ps2

// Scanset 2 prefix bytes.
const (
	PrefixExtended  byte = 0xE0
	PrefixExtended1 byte = 0xE1
	PrefixBreak     byte = 0xF0
)

// Scancode is one decoded key transition.
type Scancode struct {
	Code     byte
	Extended bool
	// Make is true for key-down, false for key-up.
	Make bool
}

type decodeState uint8

const (
	stateIdle decodeState = iota
	stateExtended
	stateBreak
	stateExtendedBreak
)

// Decoder folds scanset 2 prefix bytes into Scancodes. The zero value is ready
// to use. Every byte that is not a prefix returns the decoder to idle, so a
// corrupted stream resynchronises within one byte.
type Decoder struct {
	state decodeState
}

// Feed consumes one byte. It returns a Scancode and true when b completes a
// key transition. A terminal 0x00 (detection error/overrun) completes the
// sequence without producing a scancode.
func (d *Decoder) Feed(b byte) (Scancode, bool) {
	switch b {
	case PrefixExtended, PrefixExtended1:
		switch d.state {
		case stateIdle:
			d.state = stateExtended
		case stateBreak:
			d.state = stateExtendedBreak
		}
		return Scancode{}, false
	case PrefixBreak:
		switch d.state {
		case stateIdle:
			d.state = stateBreak
		case stateExtended:
			d.state = stateExtendedBreak
		}
		return Scancode{}, false
	}

	sc := Scancode{
		Code:     b,
		Extended: d.state == stateExtended || d.state == stateExtendedBreak,
		Make:     d.state == stateIdle || d.state == stateExtended,
	}
	d.state = stateIdle
	if b == 0x00 {
		return Scancode{}, false
	}
	return sc, true
}

// Pending reports whether prefix bytes have been consumed without a terminal byte.
func (d *Decoder) Pending() bool {
	return d.state != stateIdle
}

// Reset drops any partially decoded sequence.
func (d *Decoder) Reset() {
	d.state = stateIdle
}
