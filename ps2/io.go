package ps2

import (
	"github.com/Alia5/ps2drv/portio"
)

// Controller register addresses.
const (
	DataPort          portio.Port = 0x60
	StatusCommandPort portio.Port = 0x64
)

// Protocol response bytes.
const (
	ResponseACK              byte = 0xFA
	ResponseResend           byte = 0xFE
	ResponseSelfTestPassed   byte = 0xAA
	ResponseSelfTestFailed1  byte = 0xFC
	ResponseSelfTestFailed2  byte = 0xFD
	ResponseEcho             byte = 0xEE
	ResponseControllerTestOK byte = 0x55
	ResponsePortTestOK       byte = 0x00
)

// StatusFlags is the controller status register.
type StatusFlags uint8

const (
	// StatusOutputFull means a byte is waiting on the data port.
	StatusOutputFull StatusFlags = 1 << 0
	// StatusInputFull means the controller has not consumed the last write yet.
	StatusInputFull StatusFlags = 1 << 1
	// StatusOutputPort2 means the pending output byte came from port 2.
	StatusOutputPort2 StatusFlags = 1 << 5
)

// Bus performs single byte transactions against the controller registers.
// All waits are busy-polls bounded by the configured iteration budget.
type Bus struct {
	io    portio.PortIO
	polls int
}

func newBus(io portio.PortIO, polls int) *Bus {
	return &Bus{io: io, polls: polls}
}

// Status reads the status register.
func (b *Bus) Status() (StatusFlags, error) {
	v, err := b.io.ReadPort(StatusCommandPort)
	return StatusFlags(v), err
}

// Write waits for the input buffer to drain and writes value to port.
func (b *Bus) Write(port portio.Port, value byte) error {
	for i := 0; i < b.polls; i++ {
		st, err := b.Status()
		if err != nil {
			return err
		}
		if st&StatusInputFull == 0 {
			return b.io.WritePort(port, value)
		}
	}
	return ErrInputFull
}

// Read waits for the output buffer to fill and reads from port.
func (b *Bus) Read(port portio.Port) (byte, error) {
	for i := 0; i < b.polls; i++ {
		st, err := b.Status()
		if err != nil {
			return 0, err
		}
		if st&StatusOutputFull != 0 {
			return b.io.ReadPort(port)
		}
	}
	return 0, ErrExpectedResponse
}

// CanRead reports whether a byte is pending and which port it came from.
func (b *Bus) CanRead() (pending bool, fromPort2 bool, err error) {
	st, err := b.Status()
	if err != nil {
		return false, false, err
	}
	return st&StatusOutputFull != 0, st&StatusOutputPort2 != 0, nil
}

// FlushOutput discards every pending output byte. A controller that never
// reports an empty output buffer is given up on after the poll budget.
func (b *Bus) FlushOutput() error {
	for i := 0; i < b.polls; i++ {
		st, err := b.Status()
		if err != nil {
			return err
		}
		if st&StatusOutputFull == 0 {
			return nil
		}
		if _, err := b.io.ReadPort(DataPort); err != nil {
			return err
		}
	}
	return nil
}
