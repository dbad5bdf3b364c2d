package ps2

import (
	"errors"
	"fmt"
	"log/slog"
)

// Mouse is the device on port 2.
type Mouse struct {
	device
}

func newMouse(bus *Bus, port DevicePort, retries int, logger *slog.Logger) *Mouse {
	return &Mouse{device: newDevice(bus, port, retries, logger)}
}

// Reset resets the mouse. After the self-test result a mouse also sends its
// identity byte, which is drained here.
func (m *Mouse) Reset() error {
	if err := m.device.Reset(); err != nil {
		return err
	}
	if _, err := m.link.read(); err != nil && !errors.Is(err, ErrExpectedResponse) {
		return fmt.Errorf("%s: reset: %w", m.link.port, err)
	}
	return nil
}

// SetSampleRate sets the reports per second.
func (m *Mouse) SetSampleRate(rate byte) error {
	return m.CommandData(DeviceSetRate, rate)
}

// SetResolution sets the counts per millimetre as a power of two (0-3).
func (m *Mouse) SetResolution(res byte) error {
	return m.CommandData(DeviceSetResolution, res&0x03)
}

// ReadByte returns the next pending byte from port 2, if any.
func (m *Mouse) ReadByte() (byte, bool, error) {
	if err := m.checkEnabled(); err != nil {
		return 0, false, fmt.Errorf("%s: read: %w", m.link.port, err)
	}
	pending, fromPort2, err := m.link.bus.CanRead()
	if err != nil || !pending || !fromPort2 {
		return 0, false, err
	}
	b, err := m.link.bus.io.ReadPort(DataPort)
	if err != nil {
		return 0, false, err
	}
	return b, true, nil
}

var _ Device = (*Mouse)(nil)
