package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/Alia5/ps2drv/internal/log"
	"github.com/Alia5/ps2drv/ps2"
)

// Probe initializes the controller and lists the devices found.
type Probe struct {
	Port     PortConfig `embed:"" prefix:"port."`
	PS2      ps2.Config `embed:"" prefix:"ps2."`
	Identify bool       `help:"Ask each available device for its identity" default:"true" negatable:""`

	out io.Writer `kong:"-"`
}

// Run is called by Kong when the probe command is executed.
func (p *Probe) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	defer rawLogger.Flush()
	pio, closer, err := p.Port.open(rawLogger)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctrl := ps2.New(pio, p.PS2, logger)
	return ctrl.Do(func(g *ps2.Guard) error {
		return p.probe(g, logger)
	})
}

func (p *Probe) probe(g *ps2.Guard, logger *slog.Logger) error {
	out := p.out
	if out == nil {
		out = os.Stdout
	}
	n, err := g.Initialize()
	if err != nil {
		return fmt.Errorf("initialize controller: %w", err)
	}
	cfg, err := g.Config()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "PORT\tSTATE\tTYPE\n")
	for _, d := range g.Devices() {
		typ := "-"
		if p.Identify && d.State() != ps2.Unavailable {
			typ = identify(d, logger)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Port(), d.State(), typ)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d device(s) available, config 0x%02x\n", n, byte(cfg))
	return nil
}

// identify enables the port long enough to ask for the identity bytes.
func identify(d ps2.Device, logger *slog.Logger) string {
	if err := d.Enable(); err != nil {
		logger.Warn("enable for identify failed", "port", d.Port().String(), "error", err)
		return "?"
	}
	defer func() {
		if err := d.Disable(); err != nil {
			logger.Warn("disable after identify failed", "port", d.Port().String(), "error", err)
		}
	}()
	if err := d.DisableScanning(); err != nil {
		logger.Warn("disable scanning failed", "port", d.Port().String(), "error", err)
		return "?"
	}
	t, err := d.Identify()
	var unknown *ps2.UnknownDeviceError
	if errors.As(err, &unknown) {
		return fmt.Sprintf("unknown (0x%02x)", unknown.Identifier)
	}
	if err != nil {
		logger.Warn("identify failed", "port", d.Port().String(), "error", err)
		return "?"
	}
	return t.String()
}
