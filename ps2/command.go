package ps2

import "fmt"

// ControllerCommand is a command byte written to the controller command port.
type ControllerCommand byte

const (
	ControllerReadConfig   ControllerCommand = 0x20
	ControllerWriteConfig  ControllerCommand = 0x60
	ControllerDisablePort2 ControllerCommand = 0xA7
	ControllerEnablePort2  ControllerCommand = 0xA8
	ControllerTestPort2    ControllerCommand = 0xA9
	ControllerTestSelf     ControllerCommand = 0xAA
	ControllerTestPort1    ControllerCommand = 0xAB
	ControllerDisablePort1 ControllerCommand = 0xAD
	ControllerEnablePort1  ControllerCommand = 0xAE
	ControllerWriteToPort2 ControllerCommand = 0xD4
)

// DeviceCommand is a command byte sent through the data port to a device.
type DeviceCommand byte

const (
	DeviceSetResolution   DeviceCommand = 0xE8 // mouse, + data
	DeviceSetLEDs         DeviceCommand = 0xED // keyboard, + data
	DeviceEcho            DeviceCommand = 0xEE // keyboard, replies 0xEE
	DeviceScanset         DeviceCommand = 0xF0 // keyboard, + data
	DeviceIdentify        DeviceCommand = 0xF2
	DeviceSetRate         DeviceCommand = 0xF3 // typematic (keyboard) or sample rate (mouse), + data
	DeviceEnableScanning  DeviceCommand = 0xF4
	DeviceDisableScanning DeviceCommand = 0xF5
	DeviceSetDefaults     DeviceCommand = 0xF6
	DeviceReset           DeviceCommand = 0xFF
)

func (b *Bus) controllerCommand(cmd ControllerCommand) error {
	if err := b.Write(StatusCommandPort, byte(cmd)); err != nil {
		return fmt.Errorf("controller command 0x%02x: %w", byte(cmd), err)
	}
	return nil
}

// controllerCommandRet issues a controller command whose reply is returned
// verbatim. These replies are never ACKed.
func (b *Bus) controllerCommandRet(cmd ControllerCommand) (byte, error) {
	if err := b.controllerCommand(cmd); err != nil {
		return 0, err
	}
	v, err := b.Read(DataPort)
	if err != nil {
		return 0, fmt.Errorf("controller command 0x%02x: %w", byte(cmd), err)
	}
	return v, nil
}

func (b *Bus) controllerCommandData(cmd ControllerCommand, data byte) error {
	if err := b.controllerCommand(cmd); err != nil {
		return err
	}
	if err := b.Write(DataPort, data); err != nil {
		return fmt.Errorf("controller command 0x%02x data: %w", byte(cmd), err)
	}
	return nil
}

// link is the byte channel between the controller and one device. Bytes for
// port 2 are preceded by the write-to-port-2 controller command.
type link struct {
	bus     *Bus
	port    DevicePort
	retries int
}

func (l *link) send(v byte) error {
	if l.port == Port2 {
		if err := l.bus.controllerCommand(ControllerWriteToPort2); err != nil {
			return err
		}
	}
	return l.bus.Write(DataPort, v)
}

// transact sends v and returns the first reply that is not RESEND.
func (l *link) transact(v byte) (byte, error) {
	for i := 0; i < l.retries; i++ {
		if err := l.send(v); err != nil {
			return 0, err
		}
		resp, err := l.bus.Read(DataPort)
		if err != nil {
			return 0, err
		}
		if resp == ResponseResend {
			continue
		}
		return resp, nil
	}
	return 0, ErrRetriesExceeded
}

// exchange sends v and requires an ACK.
func (l *link) exchange(v byte) error {
	resp, err := l.transact(v)
	if err != nil {
		return err
	}
	if resp != ResponseACK {
		return &UnexpectedResponseError{Response: resp}
	}
	return nil
}

// read waits for one more byte from the device.
func (l *link) read() (byte, error) {
	return l.bus.Read(DataPort)
}
