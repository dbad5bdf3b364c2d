package ps2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/ps2drv/ps2"
)

func enabledKeyboard(t *testing.T) (*rig, *ps2.Guard, *ps2.Keyboard) {
	t.Helper()
	r := newRig(t, true, false)
	r.initialize(t)
	g := r.ctrl.Lock()
	t.Cleanup(g.Unlock)
	kb := g.Keyboard()
	require.NoError(t, kb.Enable())
	return r, g, kb
}

func TestKeyboardCommands(t *testing.T) {
	r, _, kb := enabledKeyboard(t)

	require.NoError(t, kb.SetScanset(ps2.Scanset3))
	assert.Equal(t, byte(3), r.kbd.Scanset())
	set, err := kb.Scanset()
	require.NoError(t, err)
	assert.Equal(t, ps2.Scanset3, set)

	require.NoError(t, kb.SetScanset(ps2.Scanset2))
	set, err = kb.Scanset()
	require.NoError(t, err)
	assert.Equal(t, ps2.Scanset2, set)

	require.NoError(t, kb.SetLEDs(ps2.LEDCapsLock|ps2.LEDNumLock))
	assert.Equal(t, byte(0x06), r.kbd.LEDs())

	assert.NoError(t, kb.Echo())
	assert.NoError(t, kb.SetDefaults())
	assert.NoError(t, kb.SetTypematic(0x20))
}

func TestReadScancode(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []ps2.Scancode
	}{
		{
			name:  "make",
			input: []byte{0x1C},
			want:  []ps2.Scancode{{Code: 0x1C, Make: true}},
		},
		{
			name:  "make and break",
			input: []byte{0x1C, 0xF0, 0x1C},
			want:  []ps2.Scancode{{Code: 0x1C, Make: true}, {Code: 0x1C}},
		},
		{
			name:  "extended make and break",
			input: []byte{0xE0, 0x75, 0xE0, 0xF0, 0x75},
			want:  []ps2.Scancode{{Code: 0x75, Extended: true, Make: true}, {Code: 0x75, Extended: true}},
		},
		{
			name:  "error byte yields nothing",
			input: []byte{0x00, 0x1C},
			want:  []ps2.Scancode{{Code: 0x1C, Make: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, kb := enabledKeyboard(t)
			require.NoError(t, kb.EnableScanning())
			r.kbd.Type(tt.input...)

			var got []ps2.Scancode
			for {
				sc, ok, err := kb.ReadScancode()
				require.NoError(t, err)
				if !ok {
					break
				}
				got = append(got, sc)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadScancodeKeepsPartialSequence(t *testing.T) {
	r, _, kb := enabledKeyboard(t)
	require.NoError(t, kb.EnableScanning())

	r.kbd.Type(0xE0, 0xF0)
	_, ok, err := kb.ReadScancode()
	require.NoError(t, err)
	assert.False(t, ok)

	r.kbd.Type(0x75)
	sc, ok, err := kb.ReadScancode()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ps2.Scancode{Code: 0x75, Extended: true, Make: false}, sc)
}

func TestReadScancodeDisabled(t *testing.T) {
	r := newRig(t, true, false)
	r.initialize(t)

	g := r.ctrl.Lock()
	defer g.Unlock()
	_, _, err := g.Keyboard().ReadScancode()
	assert.ErrorIs(t, err, ps2.ErrDeviceDisabled)
}

func TestReadScancodeIgnoresMouseBytes(t *testing.T) {
	r := newRig(t, true, true)
	r.initialize(t)

	g := r.ctrl.Lock()
	defer g.Unlock()
	kb, m := g.Keyboard(), g.Mouse()
	require.NoError(t, kb.Enable())
	require.NoError(t, m.Enable())
	require.NoError(t, m.EnableScanning())

	r.mouse.Move(0x08, 0x00, 0x00)
	_, ok, err := kb.ReadScancode()
	require.NoError(t, err)
	assert.False(t, ok)

	b, ok, err := m.ReadByte()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, byte(0x08), b)
}
