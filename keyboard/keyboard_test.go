package keyboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/ps2drv/internal/i8042"
	"github.com/Alia5/ps2drv/keyboard"
	"github.com/Alia5/ps2drv/ps2"
)

func newKeyboard(t *testing.T) (*i8042.Keyboard, *keyboard.PS2Keyboard) {
	t.Helper()
	kbd := i8042.NewKeyboard()
	ctrl := ps2.New(i8042.New(i8042.WithKeyboard(kbd)), ps2.Config{PollIterations: 64}, nil)
	err := ctrl.Do(func(g *ps2.Guard) error {
		_, err := g.Initialize()
		return err
	})
	require.NoError(t, err)

	kb := keyboard.NewPS2Keyboard(ctrl)
	require.NoError(t, kb.Enable())
	return kbd, kb
}

func readAll(t *testing.T, kb keyboard.Keyboard) []keyboard.KeyEvent {
	t.Helper()
	var out []keyboard.KeyEvent
	for {
		ev, ok, err := kb.ReadEvent()
		require.NoError(t, err)
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}

func TestReadEvent(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []keyboard.KeyEvent
	}{
		{
			name:  "letter make",
			input: []byte{0x1C},
			want: []keyboard.KeyEvent{
				{Keycode: keyboard.KeyA, Char: 'a', HasChar: true, Type: keyboard.Make},
			},
		},
		{
			name:  "make then break",
			input: []byte{0x1C, 0xF0, 0x1C},
			want: []keyboard.KeyEvent{
				{Keycode: keyboard.KeyA, Char: 'a', HasChar: true, Type: keyboard.Make},
				{Keycode: keyboard.KeyA, Char: 'a', HasChar: true, Type: keyboard.Break},
			},
		},
		{
			name:  "held key repeats",
			input: []byte{0x1C, 0x1C, 0x1C},
			want: []keyboard.KeyEvent{
				{Keycode: keyboard.KeyA, Char: 'a', HasChar: true, Type: keyboard.Make},
				{Keycode: keyboard.KeyA, Char: 'a', HasChar: true, Type: keyboard.Repeat},
				{Keycode: keyboard.KeyA, Char: 'a', HasChar: true, Type: keyboard.Repeat},
			},
		},
		{
			name:  "shifted letter",
			input: []byte{0x12, 0x1C},
			want: []keyboard.KeyEvent{
				{Keycode: keyboard.KeyLeftShift, Type: keyboard.Make},
				{Keycode: keyboard.KeyA, Char: 'A', HasChar: true, Type: keyboard.Make, Modifiers: keyboard.ModShift},
			},
		},
		{
			name:  "modifier event does not carry its own flag",
			input: []byte{0x14, 0xF0, 0x14},
			want: []keyboard.KeyEvent{
				{Keycode: keyboard.KeyLeftControl, Type: keyboard.Make},
				{Keycode: keyboard.KeyLeftControl, Type: keyboard.Break, Modifiers: keyboard.ModCtrl},
			},
		},
		{
			name:  "right alt and right shift",
			input: []byte{0xE0, 0x11, 0x59, 0x16},
			want: []keyboard.KeyEvent{
				{Keycode: keyboard.KeyRightAlt, Type: keyboard.Make},
				{Keycode: keyboard.KeyRightShift, Type: keyboard.Make, Modifiers: keyboard.ModAlt},
				{Keycode: keyboard.Key1, Char: '!', HasChar: true, Type: keyboard.Make, Modifiers: keyboard.ModAlt | keyboard.ModShift},
			},
		},
		{
			name:  "extended arrow",
			input: []byte{0xE0, 0x75, 0xE0, 0xF0, 0x75},
			want: []keyboard.KeyEvent{
				{Keycode: keyboard.KeyUpArrow, Type: keyboard.Make},
				{Keycode: keyboard.KeyUpArrow, Type: keyboard.Break},
			},
		},
		{
			name:  "unknown scancode is dropped",
			input: []byte{0x02, 0x1C},
			want: []keyboard.KeyEvent{
				{Keycode: keyboard.KeyA, Char: 'a', HasChar: true, Type: keyboard.Make},
			},
		},
		{
			name:  "plain and extended codes differ",
			input: []byte{0x75, 0xE0, 0x75},
			want: []keyboard.KeyEvent{
				{Keycode: keyboard.KeyNumPad8, Char: '8', HasChar: true, Type: keyboard.Make},
				{Keycode: keyboard.KeyUpArrow, Type: keyboard.Make},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kbd, kb := newKeyboard(t)
			kbd.Type(tt.input...)
			assert.Equal(t, tt.want, readAll(t, kb))
		})
	}
}

func TestPressedTracksHeldKeys(t *testing.T) {
	kbd, kb := newKeyboard(t)

	kbd.Type(0x12, 0x1C)
	readAll(t, kb)
	assert.True(t, kb.Pressed(keyboard.KeyLeftShift))
	assert.True(t, kb.Pressed(keyboard.KeyA))

	kbd.Type(0xF0, 0x12)
	readAll(t, kb)
	assert.False(t, kb.Pressed(keyboard.KeyLeftShift))
	assert.True(t, kb.Pressed(keyboard.KeyA))

	kbd.Type(0x1C)
	events := readAll(t, kb)
	require.Len(t, events, 1)
	assert.Equal(t, keyboard.Repeat, events[0].Type)
	assert.Equal(t, 'a', events[0].Char)
}

func TestEnableSelectsScanset2(t *testing.T) {
	kbd, _ := newKeyboard(t)
	assert.Equal(t, byte(2), kbd.Scanset())
	assert.True(t, kbd.Scanning())
}

func TestReadEventNotEnabled(t *testing.T) {
	_, kb := newKeyboard(t)
	require.NoError(t, kb.Disable())

	_, _, err := kb.ReadEvent()
	assert.ErrorIs(t, err, keyboard.ErrKeyboardNotEnabled)
	assert.ErrorIs(t, err, ps2.ErrDeviceDisabled)
}

func TestEnableWithoutKeyboard(t *testing.T) {
	ctrl := ps2.New(i8042.New(), ps2.Config{PollIterations: 64}, nil)
	err := ctrl.Do(func(g *ps2.Guard) error {
		_, err := g.Initialize()
		return err
	})
	require.NoError(t, err)

	kb := keyboard.NewPS2Keyboard(ctrl)
	assert.ErrorIs(t, kb.Enable(), ps2.ErrDeviceUnavailable)
}

func TestHandleScancodeWithLayout(t *testing.T) {
	layout := keyboard.CharLayout{keyboard.KeyQ: {'a', 'A'}}
	kb := keyboard.NewPS2Keyboard(nil, keyboard.WithLayout(layout))

	ev, ok := kb.HandleScancode(ps2.Scancode{Code: 0x15, Make: true})
	require.True(t, ok)
	assert.Equal(t, keyboard.KeyQ, ev.Keycode)
	assert.Equal(t, 'a', ev.Char)

	ev, ok = kb.HandleScancode(ps2.Scancode{Code: 0x1C, Make: true})
	require.True(t, ok)
	assert.Equal(t, keyboard.KeyA, ev.Keycode)
	assert.False(t, ev.HasChar)
}
