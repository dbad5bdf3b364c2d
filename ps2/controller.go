// Package ps2 drives an i8042-compatible PS/2 controller and the keyboard and
// mouse attached to it.
//
// The controller is polled: every operation busy-waits on the status register
// with a bounded budget and returns synchronously. Hardware access goes
// through a Guard obtained from Controller.Lock, so that no two callers ever
// interleave bytes on the shared data and command registers.
package ps2

import (
	"fmt"
	stdio "io"
	"log/slog"
	"sync"

	"github.com/Alia5/ps2drv/portio"
)

// Controller owns the PS/2 controller registers and both devices.
type Controller struct {
	mu       sync.Mutex
	bus      *Bus
	keyboard *Keyboard
	mouse    *Mouse
	logger   *slog.Logger
}

// New creates a controller on top of io. Both devices start Unavailable until
// Initialize tests the ports.
func New(io portio.PortIO, cfg Config, logger *slog.Logger) *Controller {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(stdio.Discard, nil))
	}
	logger = logger.With("component", "ps2c")
	bus := newBus(io, cfg.PollIterations)
	return &Controller{
		bus:      bus,
		keyboard: newKeyboard(bus, Port1, cfg.Retries, logger),
		mouse:    newMouse(bus, Port2, cfg.Retries, logger),
		logger:   logger,
	}
}

// Lock acquires exclusive access to the controller. The returned Guard must
// be released with Unlock.
func (c *Controller) Lock() *Guard {
	c.mu.Lock()
	return &Guard{c: c}
}

// Do runs fn while holding the controller.
func (c *Controller) Do(fn func(g *Guard) error) error {
	g := c.Lock()
	defer g.Unlock()
	return fn(g)
}

// Guard is exclusive access to a Controller. It is invalid after Unlock.
type Guard struct {
	c *Controller
}

// Unlock releases the controller.
func (g *Guard) Unlock() {
	c := g.c
	g.c = nil
	c.mu.Unlock()
}

func (g *Guard) ctrl() *Controller {
	if g.c == nil {
		panic("ps2: use of released controller guard")
	}
	return g.c
}

// Initialize runs the boot-time setup sequence and returns the number of
// available devices. No devices at all is not an error. A failed controller
// self-test is logged and tolerated; a failed device reset aborts.
func (g *Guard) Initialize() (int, error) {
	c := g.ctrl()
	c.logger.Info("initializing")

	for _, d := range g.Devices() {
		if err := d.Disable(); err != nil {
			return 0, err
		}
	}
	c.logger.Debug("disabled devices")

	if err := c.bus.FlushOutput(); err != nil {
		return 0, fmt.Errorf("flush output: %w", err)
	}

	if err := g.initializeConfig(); err != nil {
		return 0, err
	}

	ok, err := g.TestController()
	if err != nil {
		c.logger.Warn("controller test gave no result", "error", err)
	} else if !ok {
		c.logger.Warn("controller test failed")
	}

	for _, d := range g.Devices() {
		present, err := d.Test()
		if err != nil {
			return 0, err
		}
		if !present {
			c.logger.Info("no device", "port", d.Port().String())
		}
	}

	if err := g.resetDevices(); err != nil {
		return 0, err
	}

	n := g.AvailableDevices()
	if n > 0 {
		c.logger.Info("prepared devices", "available", n)
	} else {
		c.logger.Info("detected no available devices")
	}

	if err := c.bus.FlushOutput(); err != nil {
		return n, fmt.Errorf("flush output: %w", err)
	}
	return n, nil
}

func (g *Guard) initializeConfig() error {
	config, err := g.Config()
	if err != nil {
		return err
	}
	config = config.Set(PortInterrupt1, false).
		Set(PortInterrupt2, false).
		Set(PortTranslation1, false)
	if err := g.SetConfig(config); err != nil {
		return err
	}
	g.c.logger.Debug("initialized config", "config", fmt.Sprintf("0x%02x", byte(config)))
	return nil
}

// resetDevices resets every available device. The port is enabled for the
// reset and disabled again afterwards.
func (g *Guard) resetDevices() error {
	for _, d := range g.Devices() {
		if d.State() != Available {
			continue
		}
		if err := d.Enable(); err != nil {
			return err
		}
		if err := d.Reset(); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		if err := d.Disable(); err != nil {
			return err
		}
		g.c.logger.Debug("reset device", "port", d.Port().String())
	}
	return nil
}

// TestController runs the controller self-test.
func (g *Guard) TestController() (bool, error) {
	resp, err := g.ctrl().bus.controllerCommandRet(ControllerTestSelf)
	if err != nil {
		return false, err
	}
	return resp == ResponseControllerTestOK, nil
}

// Config reads the controller configuration byte.
func (g *Guard) Config() (ConfigFlags, error) {
	v, err := g.ctrl().bus.controllerCommandRet(ControllerReadConfig)
	if err != nil {
		return 0, fmt.Errorf("read config: %w", err)
	}
	return ConfigFlags(v), nil
}

// SetConfig writes the controller configuration byte.
func (g *Guard) SetConfig(config ConfigFlags) error {
	if err := g.ctrl().bus.controllerCommandData(ControllerWriteConfig, byte(config)); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// FlushOutput discards pending output bytes.
func (g *Guard) FlushOutput() error {
	return g.ctrl().bus.FlushOutput()
}

// Pending reports whether an output byte is waiting and whether it came
// from port 2.
func (g *Guard) Pending() (pending bool, fromPort2 bool, err error) {
	return g.ctrl().bus.CanRead()
}

// Device returns the device on port.
func (g *Guard) Device(port DevicePort) Device {
	c := g.ctrl()
	if port == Port1 {
		return c.keyboard
	}
	return c.mouse
}

// Devices returns both devices, keyboard first.
func (g *Guard) Devices() [2]Device {
	c := g.ctrl()
	return [2]Device{c.keyboard, c.mouse}
}

// Keyboard returns the port 1 keyboard.
func (g *Guard) Keyboard() *Keyboard {
	return g.ctrl().keyboard
}

// Mouse returns the port 2 mouse.
func (g *Guard) Mouse() *Mouse {
	return g.ctrl().mouse
}

// AvailableDevices counts devices that passed their port test.
func (g *Guard) AvailableDevices() int {
	n := 0
	for _, d := range g.Devices() {
		if d.State() != Unavailable {
			n++
		}
	}
	return n
}
