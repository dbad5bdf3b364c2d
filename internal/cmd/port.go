package cmd

import (
	"fmt"
	"io"

	"github.com/Alia5/ps2drv/internal/i8042"
	"github.com/Alia5/ps2drv/portio"
)

// PortConfig selects where port I/O goes.
type PortConfig struct {
	Backend string `help:"Port I/O backend" enum:"devport,emulated" default:"devport" env:"PS2_PORT_BACKEND"`
	Device  string `help:"Port device used by the devport backend" default:"/dev/port" env:"PS2_PORT_DEVICE"`
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// open returns the PortIO for the configured backend, wrapped with tracer.
func (p PortConfig) open(tracer portio.Tracer) (portio.PortIO, io.Closer, error) {
	switch p.Backend {
	case "emulated":
		hw := i8042.New(
			i8042.WithKeyboard(i8042.NewKeyboard()),
			i8042.WithMouse(i8042.NewMouse(0x03)),
		)
		return portio.Traced(hw, tracer), nopCloser{}, nil
	case "devport", "":
		dp, err := portio.OpenDevPort(p.Device)
		if err != nil {
			return nil, nil, err
		}
		return portio.Traced(dp, tracer), dp, nil
	default:
		return nil, nil, fmt.Errorf("unknown port backend %q", p.Backend)
	}
}
