package ps2

import (
	"fmt"
	"log/slog"
)

// Scanset is a keyboard scan code set.
type Scanset byte

const (
	Scanset1 Scanset = 1
	Scanset2 Scanset = 2
	Scanset3 Scanset = 3
)

// LEDs is the keyboard indicator bitmask sent with the set-LEDs command.
type LEDs byte

const (
	LEDScrollLock LEDs = 1 << 0
	LEDNumLock    LEDs = 1 << 1
	LEDCapsLock   LEDs = 1 << 2
)

// Keyboard is the device on port 1.
type Keyboard struct {
	device
	decoder Decoder
}

func newKeyboard(bus *Bus, port DevicePort, retries int, logger *slog.Logger) *Keyboard {
	return &Keyboard{device: newDevice(bus, port, retries, logger)}
}

// SetScanset selects the scan code set the keyboard emits.
func (k *Keyboard) SetScanset(set Scanset) error {
	return k.CommandData(DeviceScanset, byte(set))
}

// Scanset queries the active scan code set.
func (k *Keyboard) Scanset() (Scanset, error) {
	if err := k.CommandData(DeviceScanset, 0x00); err != nil {
		return 0, err
	}
	v, err := k.link.read()
	if err != nil {
		return 0, fmt.Errorf("%s: get scanset: %w", k.link.port, err)
	}
	// Translated keyboards report the set in scanset 1 codes.
	switch v {
	case 0x43:
		return Scanset1, nil
	case 0x41:
		return Scanset2, nil
	case 0x3F:
		return Scanset3, nil
	}
	return Scanset(v), nil
}

// SetLEDs sets the keyboard indicators.
func (k *Keyboard) SetLEDs(leds LEDs) error {
	return k.CommandData(DeviceSetLEDs, byte(leds)&0x07)
}

// SetTypematic sets the repeat rate and delay byte.
func (k *Keyboard) SetTypematic(rate byte) error {
	return k.CommandData(DeviceSetRate, rate&0x7F)
}

// Echo checks that the keyboard is responsive. The keyboard answers with
// 0xEE instead of an ACK.
func (k *Keyboard) Echo() error {
	if err := k.checkEnabled(); err != nil {
		return fmt.Errorf("%s: echo: %w", k.link.port, err)
	}
	resp, err := k.link.transact(byte(DeviceEcho))
	if err != nil {
		return fmt.Errorf("%s: echo: %w", k.link.port, err)
	}
	if resp != ResponseEcho {
		return fmt.Errorf("%s: echo: %w", k.link.port, &UnexpectedResponseError{Response: resp})
	}
	return nil
}

// ReadScancode consumes pending keyboard bytes until a scancode completes.
// It returns false when the controller has nothing (more) for port 1; a
// partially received prefix sequence is kept for the next call.
func (k *Keyboard) ReadScancode() (Scancode, bool, error) {
	if err := k.checkEnabled(); err != nil {
		return Scancode{}, false, fmt.Errorf("%s: read scancode: %w", k.link.port, err)
	}
	for i := 0; i < k.link.bus.polls; i++ {
		pending, fromPort2, err := k.link.bus.CanRead()
		if err != nil {
			return Scancode{}, false, err
		}
		if !pending || fromPort2 {
			return Scancode{}, false, nil
		}
		b, err := k.link.bus.io.ReadPort(DataPort)
		if err != nil {
			return Scancode{}, false, err
		}
		if sc, ok := k.decoder.Feed(b); ok {
			return sc, true, nil
		}
	}
	return Scancode{}, false, nil
}

// Disable disables the port and drops any partially decoded scancode.
func (k *Keyboard) Disable() error {
	k.decoder.Reset()
	return k.device.Disable()
}

var _ Device = (*Keyboard)(nil)
