package ps2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alia5/ps2drv/ps2"
)

func feedAll(d *ps2.Decoder, in []byte) []ps2.Scancode {
	var out []ps2.Scancode
	for _, b := range in {
		if sc, ok := d.Feed(b); ok {
			out = append(out, sc)
		}
	}
	return out
}

func TestDecoder(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		want    []ps2.Scancode
		pending bool
	}{
		{name: "plain make", input: []byte{0x1C}, want: []ps2.Scancode{{Code: 0x1C, Make: true}}},
		{name: "plain break", input: []byte{0xF0, 0x1C}, want: []ps2.Scancode{{Code: 0x1C}}},
		{name: "extended make", input: []byte{0xE0, 0x75}, want: []ps2.Scancode{{Code: 0x75, Extended: true, Make: true}}},
		{name: "extended break", input: []byte{0xE0, 0xF0, 0x75}, want: []ps2.Scancode{{Code: 0x75, Extended: true}}},
		{name: "E1 counts as extended", input: []byte{0xE1, 0x14}, want: []ps2.Scancode{{Code: 0x14, Extended: true, Make: true}}},
		{name: "repeated prefix", input: []byte{0xE0, 0xE0, 0x75}, want: []ps2.Scancode{{Code: 0x75, Extended: true, Make: true}}},
		{name: "terminal zero resets", input: []byte{0xE0, 0xF0, 0x00, 0x1C}, want: []ps2.Scancode{{Code: 0x1C, Make: true}}},
		{name: "prefix only", input: []byte{0xE0}, pending: true},
		{name: "break prefix only", input: []byte{0xF0}, pending: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d ps2.Decoder
			assert.Equal(t, tt.want, feedAll(&d, tt.input))
			assert.Equal(t, tt.pending, d.Pending())
		})
	}
}

func TestDecoderReturnsToIdle(t *testing.T) {
	// Every terminal byte, whatever came before it, leaves the decoder idle.
	prefixes := [][]byte{nil, {0xE0}, {0xF0}, {0xE0, 0xF0}, {0xE1}}
	for _, p := range prefixes {
		for b := 0; b < 256; b++ {
			v := byte(b)
			if v == ps2.PrefixExtended || v == ps2.PrefixExtended1 || v == ps2.PrefixBreak {
				continue
			}
			var d ps2.Decoder
			feedAll(&d, append(append([]byte(nil), p...), v))
			if d.Pending() {
				t.Fatalf("decoder pending after % x %02x", p, v)
			}
		}
	}
}

func TestDecoderReset(t *testing.T) {
	var d ps2.Decoder
	d.Feed(0xE0)
	d.Feed(0xF0)
	d.Reset()
	assert.False(t, d.Pending())

	sc, ok := d.Feed(0x1C)
	assert.True(t, ok)
	assert.Equal(t, ps2.Scancode{Code: 0x1C, Make: true}, sc)
}
