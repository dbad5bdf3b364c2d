package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Alia5/ps2drv/internal/log"
	"github.com/Alia5/ps2drv/keyboard"
	"github.com/Alia5/ps2drv/ps2"
)

// Watch prints keyboard events.
type Watch struct {
	Port         PortConfig    `embed:"" prefix:"port."`
	PS2          ps2.Config    `embed:"" prefix:"ps2."`
	PollInterval time.Duration `help:"Sleep between polls when no input is pending" default:"2ms" env:"PS2_WATCH_POLL_INTERVAL"`
	Breaks       bool          `help:"Also print key releases" default:"false"`
}

// Run is called by Kong when the watch command is executed.
func (w *Watch) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer rawLogger.Flush()

	pio, closer, err := w.Port.open(rawLogger)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctrl := ps2.New(pio, w.PS2, logger)
	err = ctrl.Do(func(g *ps2.Guard) error {
		_, err := g.Initialize()
		return err
	})
	if err != nil {
		return fmt.Errorf("initialize controller: %w", err)
	}

	kb := keyboard.NewPS2Keyboard(ctrl, keyboard.WithLogger(logger))
	if err := kb.Enable(); err != nil {
		return err
	}
	defer func() {
		if err := kb.Disable(); err != nil {
			logger.Warn("disable keyboard failed", "error", err)
		}
	}()
	logger.Info("watching keyboard, press Ctrl+C to stop")

	return w.loop(ctx, kb, os.Stdout)
}

func (w *Watch) loop(ctx context.Context, kb keyboard.Keyboard, out io.Writer) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		ev, ok, err := kb.ReadEvent()
		if err != nil {
			return err
		}
		if !ok {
			time.Sleep(w.PollInterval)
			continue
		}
		if ev.Type == keyboard.Break && !w.Breaks {
			continue
		}
		fmt.Fprintln(out, FormatEvent(ev))
	}
}

// FormatEvent renders ev as one line.
func FormatEvent(ev keyboard.KeyEvent) string {
	line := fmt.Sprintf("%-6s %-12s", ev.Type, ev.Keycode)
	if ev.HasChar {
		line += " " + strconv.QuoteRune(ev.Char)
	}
	if ev.Modifiers != 0 {
		line += " [" + ev.Modifiers.String() + "]"
	}
	return line
}
