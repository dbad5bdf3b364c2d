//go:build linux

package portio

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// DefaultDevPortPath is the Linux character device exposing the I/O port space.
const DefaultDevPortPath = "/dev/port"

// DevPort accesses I/O ports through /dev/port, where the file offset is the
// port address. Requires CAP_SYS_RAWIO.
type DevPort struct {
	fd   int
	path string
}

// OpenDevPort opens the port device at path (DefaultDevPortPath if empty).
func OpenDevPort(path string) (*DevPort, error) {
	if path == "" {
		path = DefaultDevPortPath
	}
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &DevPort{fd: fd, path: path}, nil
}

func (d *DevPort) ReadPort(port Port) (byte, error) {
	var buf [1]byte
	n, err := unix.Pread(d.fd, buf[:], int64(port))
	if err != nil {
		return 0, fmt.Errorf("read port %s: %w", port, err)
	}
	if n != 1 {
		return 0, fmt.Errorf("read port %s: short read", port)
	}
	return buf[0], nil
}

func (d *DevPort) WritePort(port Port, value byte) error {
	buf := [1]byte{value}
	n, err := unix.Pwrite(d.fd, buf[:], int64(port))
	if err != nil {
		return fmt.Errorf("write port %s: %w", port, err)
	}
	if n != 1 {
		return fmt.Errorf("write port %s: short write", port)
	}
	return nil
}

// Close releases the port device.
func (d *DevPort) Close() error {
	return unix.Close(d.fd)
}
