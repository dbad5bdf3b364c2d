//go:build !linux

package portio

import (
	"errors"
	"runtime"
)

// DefaultDevPortPath is the Linux character device exposing the I/O port space.
const DefaultDevPortPath = "/dev/port"

// DevPort is only available on Linux.
type DevPort struct{}

func OpenDevPort(path string) (*DevPort, error) {
	return nil, errors.New("direct port I/O is not supported on " + runtime.GOOS)
}

func (d *DevPort) ReadPort(port Port) (byte, error) {
	return 0, errors.ErrUnsupported
}

func (d *DevPort) WritePort(port Port, value byte) error {
	return errors.ErrUnsupported
}

func (d *DevPort) Close() error {
	return nil
}
