package cmd

import (
	"github.com/Alia5/ps2drv/internal/log"
)

// CLI is the root command of ps2ctl.
type CLI struct {
	ConfigFile string     `name:"config" help:"Configuration file (json, yaml or toml)" type:"path" env:"PS2_CONFIG"`
	Log        log.Config `embed:"" prefix:"log."`

	Probe  Probe         `cmd:"" help:"Initialize the controller and report attached devices"`
	Watch  Watch         `cmd:"" help:"Print keyboard events until interrupted"`
	Replay Replay        `cmd:"" help:"Replay a scenario file through an emulated controller"`
	Sim    Sim           `cmd:"" help:"Type into an emulated keyboard from the terminal"`
	Config ConfigCommand `cmd:"" help:"Configuration helpers"`
}
