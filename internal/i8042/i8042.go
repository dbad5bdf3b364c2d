// Package i8042 emulates a PS/2 controller with an attached keyboard and
// mouse. It implements portio.PortIO so the driver can run against it.
package i8042

import (
	"fmt"
	"sync"

	"github.com/Alia5/ps2drv/portio"
)

const (
	dataPort    portio.Port = 0x60
	commandPort portio.Port = 0x64
)

const (
	cmdReadCommandByte  = 0x20
	cmdWriteCommandByte = 0x60
	cmdDisablePort2     = 0xa7
	cmdEnablePort2      = 0xa8
	cmdTestPort2        = 0xa9
	cmdControllerTest   = 0xaa
	cmdTestPort1        = 0xab
	cmdDisablePort1     = 0xad
	cmdEnablePort1      = 0xae
	cmdWriteToPort2     = 0xd4
)

const (
	statusOutputFull  = 1 << 0
	statusInputFull   = 1 << 1
	statusSystemFlag  = 1 << 2
	statusOutputPort2 = 1 << 5
)

const (
	commandByteInterrupt1   = 1 << 0
	commandByteInterrupt2   = 1 << 1
	commandByteSystemFlag   = 1 << 2
	commandByteDisableClk1  = 1 << 4
	commandByteDisableClk2  = 1 << 5
	commandByteTranslation1 = 1 << 6
)

const (
	responseSelfTestOK    = 0x55
	responsePortOK        = 0x00
	responseClockStuckHi  = 0x02
	defaultPowerOnCommand = commandByteInterrupt1 | commandByteInterrupt2 | commandByteSystemFlag | commandByteTranslation1
)

// Device is a device model attached to one controller port.
type Device interface {
	// Receive handles a byte sent by the host.
	Receive(b byte)
	// Pending returns the number of bytes the device wants to send.
	Pending() int
	// Next removes and returns the next byte to send.
	Next() byte
}

// Controller is an emulated i8042.
type Controller struct {
	mu sync.Mutex

	commandByte    byte
	selfTestResult byte
	stuckInput     bool

	out           []byte
	expectCommand bool
	routePort2    bool
	devices       [2]Device
	commands      []byte
}

// Option configures a Controller.
type Option func(*Controller)

// WithKeyboard attaches d to port 1.
func WithKeyboard(d Device) Option {
	return func(c *Controller) { c.devices[0] = d }
}

// WithMouse attaches d to port 2.
func WithMouse(d Device) Option {
	return func(c *Controller) { c.devices[1] = d }
}

// WithSelfTestResult overrides the controller self-test reply.
func WithSelfTestResult(b byte) Option {
	return func(c *Controller) { c.selfTestResult = b }
}

// WithStuckInputBuffer makes the controller never accept writes.
func WithStuckInputBuffer() Option {
	return func(c *Controller) { c.stuckInput = true }
}

// New returns a controller in its power-on state.
func New(opts ...Option) *Controller {
	c := &Controller{
		commandByte:    defaultPowerOnCommand,
		selfTestResult: responseSelfTestOK,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// CommandByte returns the current configuration byte.
func (c *Controller) CommandByte() byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commandByte
}

// Commands returns every controller command received so far.
func (c *Controller) Commands() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.commands...)
}

// PortEnabled reports whether the clock of port (1 or 2) is enabled.
func (c *Controller) PortEnabled(port int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.portEnabledLocked(port - 1)
}

func (c *Controller) portEnabledLocked(idx int) bool {
	if idx == 0 {
		return c.commandByte&commandByteDisableClk1 == 0
	}
	return c.commandByte&commandByteDisableClk2 == 0
}

// ReadPort implements portio.PortIO.
func (c *Controller) ReadPort(port portio.Port) (byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch port {
	case commandPort:
		return c.statusLocked(), nil
	case dataPort:
		return c.readDataLocked(), nil
	default:
		return 0, fmt.Errorf("i8042: invalid read port %s", port)
	}
}

// WritePort implements portio.PortIO.
func (c *Controller) WritePort(port portio.Port, value byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch port {
	case commandPort:
		c.handleCommandLocked(value)
	case dataPort:
		c.handleDataWriteLocked(value)
	default:
		return fmt.Errorf("i8042: invalid write port %s", port)
	}
	return nil
}

func (c *Controller) handleCommandLocked(cmd byte) {
	c.commands = append(c.commands, cmd)
	c.expectCommand = false
	c.routePort2 = false
	switch cmd {
	case cmdReadCommandByte:
		c.out = append(c.out, c.commandByte)
	case cmdWriteCommandByte:
		c.expectCommand = true
	case cmdControllerTest:
		c.out = append(c.out, c.selfTestResult)
	case cmdTestPort1:
		c.out = append(c.out, c.portTestLocked(0))
	case cmdTestPort2:
		c.out = append(c.out, c.portTestLocked(1))
	case cmdDisablePort1:
		c.commandByte |= commandByteDisableClk1
	case cmdEnablePort1:
		c.commandByte &^= commandByteDisableClk1
	case cmdDisablePort2:
		c.commandByte |= commandByteDisableClk2
	case cmdEnablePort2:
		c.commandByte &^= commandByteDisableClk2
	case cmdWriteToPort2:
		c.routePort2 = true
	}
}

func (c *Controller) portTestLocked(idx int) byte {
	if c.devices[idx] == nil {
		return responseClockStuckHi
	}
	return responsePortOK
}

func (c *Controller) handleDataWriteLocked(value byte) {
	if c.expectCommand {
		c.commandByte = value
		c.expectCommand = false
		return
	}
	idx := 0
	if c.routePort2 {
		idx = 1
		c.routePort2 = false
	}
	if d := c.devices[idx]; d != nil {
		d.Receive(value)
	}
}

// sourceLocked picks where the next output byte comes from: -1 for the
// controller itself, 0/1 for a device, -2 for nothing.
func (c *Controller) sourceLocked() int {
	if len(c.out) > 0 {
		return -1
	}
	for i, d := range c.devices {
		if d != nil && c.portEnabledLocked(i) && d.Pending() > 0 {
			return i
		}
	}
	return -2
}

func (c *Controller) statusLocked() byte {
	status := byte(0)
	if c.commandByte&commandByteSystemFlag != 0 {
		status |= statusSystemFlag
	}
	if c.stuckInput {
		status |= statusInputFull
	}
	switch src := c.sourceLocked(); src {
	case -2:
	case 1:
		status |= statusOutputFull | statusOutputPort2
	default:
		status |= statusOutputFull
	}
	return status
}

func (c *Controller) readDataLocked() byte {
	switch src := c.sourceLocked(); src {
	case -2:
		return 0x00
	case -1:
		v := c.out[0]
		c.out = c.out[1:]
		return v
	default:
		return c.devices[src].Next()
	}
}

var _ portio.PortIO = (*Controller)(nil)
