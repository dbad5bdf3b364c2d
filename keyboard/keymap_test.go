package keyboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/ps2drv/keyboard"
	"github.com/Alia5/ps2drv/ps2"
)

func TestKeycodeFor(t *testing.T) {
	tests := []struct {
		sc   ps2.Scancode
		want keyboard.Keycode
	}{
		{ps2.Scancode{Code: 0x1C}, keyboard.KeyA},
		{ps2.Scancode{Code: 0x76}, keyboard.KeyEscape},
		{ps2.Scancode{Code: 0x5A}, keyboard.KeyEnter},
		{ps2.Scancode{Code: 0x83}, keyboard.KeyF7},
		{ps2.Scancode{Code: 0x14}, keyboard.KeyLeftControl},
		{ps2.Scancode{Code: 0x14, Extended: true}, keyboard.KeyRightControl},
		{ps2.Scancode{Code: 0x5A, Extended: true}, keyboard.KeyNumPadEnter},
		{ps2.Scancode{Code: 0x6B, Extended: true}, keyboard.KeyLeftArrow},
		{ps2.Scancode{Code: 0x72, Extended: true}, keyboard.KeyDownArrow},
		{ps2.Scancode{Code: 0x74, Extended: true}, keyboard.KeyRightArrow},
		{ps2.Scancode{Code: 0x75, Extended: true}, keyboard.KeyUpArrow},
	}
	for _, tt := range tests {
		got, err := keyboard.KeycodeFor(tt.sc)
		require.NoError(t, err, "%+v", tt.sc)
		assert.Equal(t, tt.want, got, "%+v", tt.sc)
	}
}

func TestKeycodeForUnknown(t *testing.T) {
	_, err := keyboard.KeycodeFor(ps2.Scancode{Code: 0x02})
	assert.ErrorIs(t, err, keyboard.ErrUnknownScancode)
	assert.NotErrorIs(t, err, keyboard.ErrUnknownExtendedScancode)

	// The print screen fake shift has no key.
	_, err = keyboard.KeycodeFor(ps2.Scancode{Code: 0x12, Extended: true})
	assert.ErrorIs(t, err, keyboard.ErrUnknownExtendedScancode)

	var unknown *keyboard.UnknownScancodeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, byte(0x12), unknown.Code)
	assert.True(t, unknown.Extended)
}

func TestScancodeBytes(t *testing.T) {
	tests := []struct {
		key     keyboard.Keycode
		pressed bool
		want    []byte
	}{
		{keyboard.KeyA, true, []byte{0x1C}},
		{keyboard.KeyA, false, []byte{0xF0, 0x1C}},
		{keyboard.KeyUpArrow, true, []byte{0xE0, 0x75}},
		{keyboard.KeyUpArrow, false, []byte{0xE0, 0xF0, 0x75}},
	}
	for _, tt := range tests {
		got, ok := keyboard.ScancodeBytes(tt.key, tt.pressed)
		require.True(t, ok)
		assert.Equal(t, tt.want, got)
	}

	_, ok := keyboard.ScancodeBytes(keyboard.KeyFunction, true)
	assert.False(t, ok, "Fn never reaches the host")
}

func TestScancodeBytesDecodeBack(t *testing.T) {
	for code := 0; code < 256; code++ {
		for _, ext := range []bool{false, true} {
			k, err := keyboard.KeycodeFor(ps2.Scancode{Code: byte(code), Extended: ext})
			if err != nil {
				continue
			}
			for _, pressed := range []bool{true, false} {
				raw, ok := keyboard.ScancodeBytes(k, pressed)
				require.True(t, ok, "%s", k)

				var d ps2.Decoder
				var got []ps2.Scancode
				for _, b := range raw {
					if sc, ok := d.Feed(b); ok {
						got = append(got, sc)
					}
				}
				require.Len(t, got, 1, "%s", k)
				back, err := keyboard.KeycodeFor(got[0])
				require.NoError(t, err)
				assert.Equal(t, k, back)
				assert.Equal(t, pressed, got[0].Make)
			}
		}
	}
}
