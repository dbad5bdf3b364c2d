package ps2

import (
	"errors"
	"fmt"
	"log/slog"
)

// DeviceState is the lifecycle of the device on one port.
type DeviceState int

const (
	// Unavailable means no device answered the port test.
	Unavailable DeviceState = iota
	// Available means a device is present but its port is disabled.
	Available
	// Enabled means the port is enabled and the device accepts commands.
	Enabled
)

func (s DeviceState) String() string {
	switch s {
	case Unavailable:
		return "unavailable"
	case Available:
		return "available"
	case Enabled:
		return "enabled"
	default:
		return fmt.Sprintf("DeviceState(%d)", int(s))
	}
}

// DevicePort identifies one of the two physical PS/2 channels.
type DevicePort int

const (
	// Port1 is the first channel, conventionally the keyboard.
	Port1 DevicePort = iota
	// Port2 is the auxiliary channel, conventionally the mouse.
	Port2
)

func (p DevicePort) String() string {
	if p == Port1 {
		return "port1"
	}
	return "port2"
}

// DeviceType is the kind of device reported by Identify.
type DeviceType int

const (
	DeviceTypeATKeyboard DeviceType = iota
	DeviceTypeMouse
	DeviceTypeMouseWithScrollWheel
	DeviceTypeFiveButtonMouse
	DeviceTypeMf2Keyboard
	DeviceTypeTranslatedMf2Keyboard
)

var deviceTypeNames = map[DeviceType]string{
	DeviceTypeATKeyboard:            "AT keyboard",
	DeviceTypeMouse:                 "mouse",
	DeviceTypeMouseWithScrollWheel:  "mouse with scroll wheel",
	DeviceTypeFiveButtonMouse:       "5-button mouse",
	DeviceTypeMf2Keyboard:           "MF2 keyboard",
	DeviceTypeTranslatedMf2Keyboard: "translated MF2 keyboard",
}

func (t DeviceType) String() string {
	if n, ok := deviceTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("DeviceType(%d)", int(t))
}

// DeviceTypeFromIdentifier maps an identity byte to a DeviceType.
// An MF2 keyboard is preferred over a translated one for 0xAB.
func DeviceTypeFromIdentifier(id byte) (DeviceType, error) {
	switch id {
	case 0x00:
		return DeviceTypeMouse, nil
	case 0x03:
		return DeviceTypeMouseWithScrollWheel, nil
	case 0x04:
		return DeviceTypeFiveButtonMouse, nil
	case 0xAB, 0x83:
		return DeviceTypeMf2Keyboard, nil
	case 0x41, 0xC1:
		return DeviceTypeTranslatedMf2Keyboard, nil
	default:
		return 0, &UnknownDeviceError{Identifier: id}
	}
}

// Device is the command surface shared by every PS/2 device.
type Device interface {
	Port() DevicePort
	State() DeviceState

	// Test runs the controller's port test and updates the state.
	Test() (bool, error)
	Enable() error
	Disable() error
	Reset() error
	Identify() (DeviceType, error)

	EnableScanning() error
	DisableScanning() error
	SetDefaults() error

	// Command sends a raw command byte and expects an ACK.
	Command(cmd DeviceCommand) error
	// CommandData sends a raw command byte followed by a data byte.
	CommandData(cmd DeviceCommand, data byte) error
}

// device holds the state and command plumbing shared by Keyboard and Mouse.
type device struct {
	link   link
	state  DeviceState
	logger *slog.Logger
}

func newDevice(bus *Bus, port DevicePort, retries int, logger *slog.Logger) device {
	return device{
		link:   link{bus: bus, port: port, retries: retries},
		state:  Unavailable,
		logger: logger.With("port", port.String()),
	}
}

func (d *device) Port() DevicePort   { return d.link.port }
func (d *device) State() DeviceState { return d.state }

func (d *device) Test() (bool, error) {
	cmd := ControllerTestPort1
	if d.link.port == Port2 {
		cmd = ControllerTestPort2
	}
	resp, err := d.link.bus.controllerCommandRet(cmd)
	if err != nil {
		return false, fmt.Errorf("%s: test: %w", d.link.port, err)
	}
	if resp != ResponsePortTestOK {
		d.logger.Debug("port test failed", "response", fmt.Sprintf("0x%02x", resp))
		d.state = Unavailable
		return false, nil
	}
	if d.state == Unavailable {
		d.state = Available
	}
	return true, nil
}

func (d *device) Enable() error {
	if d.state == Unavailable {
		return fmt.Errorf("%s: enable: %w", d.link.port, ErrDeviceUnavailable)
	}
	cmd := ControllerEnablePort1
	if d.link.port == Port2 {
		cmd = ControllerEnablePort2
	}
	if err := d.link.bus.controllerCommand(cmd); err != nil {
		return fmt.Errorf("%s: enable: %w", d.link.port, err)
	}
	d.state = Enabled
	return nil
}

// Disable disables the port. Disabling a port that is already disabled or
// has no device is not an error.
func (d *device) Disable() error {
	cmd := ControllerDisablePort1
	if d.link.port == Port2 {
		cmd = ControllerDisablePort2
	}
	if err := d.link.bus.controllerCommand(cmd); err != nil {
		return fmt.Errorf("%s: disable: %w", d.link.port, err)
	}
	if d.state == Enabled {
		d.state = Available
	}
	return nil
}

func (d *device) checkEnabled() error {
	switch d.state {
	case Enabled:
		return nil
	case Unavailable:
		return ErrDeviceUnavailable
	default:
		return ErrDeviceDisabled
	}
}

func (d *device) Command(cmd DeviceCommand) error {
	if err := d.checkEnabled(); err != nil {
		return fmt.Errorf("%s: command 0x%02x: %w", d.link.port, byte(cmd), err)
	}
	if err := d.link.exchange(byte(cmd)); err != nil {
		return fmt.Errorf("%s: command 0x%02x: %w", d.link.port, byte(cmd), err)
	}
	return nil
}

func (d *device) CommandData(cmd DeviceCommand, data byte) error {
	if err := d.Command(cmd); err != nil {
		return err
	}
	if err := d.link.exchange(data); err != nil {
		return fmt.Errorf("%s: command 0x%02x data 0x%02x: %w", d.link.port, byte(cmd), data, err)
	}
	return nil
}

// commandReply sends cmd, requires an ACK and then reads one reply byte.
func (d *device) commandReply(cmd DeviceCommand) (byte, error) {
	if err := d.Command(cmd); err != nil {
		return 0, err
	}
	v, err := d.link.read()
	if err != nil {
		return 0, fmt.Errorf("%s: command 0x%02x reply: %w", d.link.port, byte(cmd), err)
	}
	return v, nil
}

func (d *device) EnableScanning() error  { return d.Command(DeviceEnableScanning) }
func (d *device) DisableScanning() error { return d.Command(DeviceDisableScanning) }
func (d *device) SetDefaults() error     { return d.Command(DeviceSetDefaults) }

// Reset resets the device and checks its self-test result.
func (d *device) Reset() error {
	resp, err := d.commandReply(DeviceReset)
	if err != nil {
		return err
	}
	if resp != ResponseSelfTestPassed {
		return fmt.Errorf("%s: reset self-test: %w", d.link.port, &UnexpectedResponseError{Response: resp})
	}
	return nil
}

// Identify asks the device for its identity bytes. A device that sends no
// identity bytes after the ACK is an AT keyboard.
func (d *device) Identify() (DeviceType, error) {
	if err := d.Command(DeviceIdentify); err != nil {
		return 0, err
	}
	first, err := d.link.read()
	if errors.Is(err, ErrExpectedResponse) {
		return DeviceTypeATKeyboard, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: identify: %w", d.link.port, err)
	}
	if first != 0xAB {
		return DeviceTypeFromIdentifier(first)
	}
	// MF2 keyboards follow 0xAB with a byte telling whether translation is on.
	second, err := d.link.read()
	if errors.Is(err, ErrExpectedResponse) {
		return DeviceTypeMf2Keyboard, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: identify: %w", d.link.port, err)
	}
	return DeviceTypeFromIdentifier(second)
}
