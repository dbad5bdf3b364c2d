// Package portio provides byte-wide access to x86 I/O ports.
//
// Drivers never talk to hardware directly; they are handed a PortIO which is
// either backed by real hardware (DevPort) or by an emulated device.
package portio

import "fmt"

// Port is a fixed numeric I/O port address.
type Port uint16

func (p Port) String() string {
	return fmt.Sprintf("0x%02x", uint16(p))
}

// PortIO reads and writes single bytes at I/O port addresses.
type PortIO interface {
	ReadPort(port Port) (byte, error)
	WritePort(port Port, value byte) error
}
