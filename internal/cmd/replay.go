package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/Alia5/ps2drv/internal/log"
	"github.com/Alia5/ps2drv/internal/scenario"
	"github.com/Alia5/ps2drv/keyboard"
	"github.com/Alia5/ps2drv/ps2"
)

// Replay runs a scenario file against the emulated controller.
type Replay struct {
	File   string     `arg:"" help:"Scenario file (.yaml, .yml or .toml)" type:"existingfile"`
	PS2    ps2.Config `embed:"" prefix:"ps2."`
	Follow bool       `help:"Replay again whenever the file changes" default:"false"`
}

// Run is called by Kong when the replay command is executed.
func (r *Replay) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	defer rawLogger.Flush()
	if !r.Follow {
		return r.once(logger, rawLogger, os.Stdout)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.follow(ctx, logger, rawLogger, os.Stdout)
}

func (r *Replay) once(logger *slog.Logger, rawLogger log.RawLogger, out io.Writer) error {
	sc, err := scenario.Load(r.File)
	if err != nil {
		return err
	}
	logger.Info("replaying scenario", "name", sc.Name, "steps", len(sc.Steps))

	res, err := scenario.Replay(sc, r.PS2, logger, rawLogger, func(ev keyboard.KeyEvent) {
		fmt.Fprintln(out, FormatEvent(ev))
	})
	if err != nil {
		return err
	}
	logger.Info("replay finished", "available", res.Available, "events", len(res.Events))
	return nil
}

// follow replays the file once and then after every change to it until ctx
// is done. Failed replays are logged and do not stop following.
func (r *Replay) follow(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger, out io.Writer) error {
	path, err := filepath.Abs(r.File)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Editors replace files on save, so watch the directory.
	if err := watcher.Watch(filepath.Dir(path)); err != nil {
		return err
	}

	run := time.After(time.Millisecond)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-run:
			if err := r.once(logger, rawLogger, out); err != nil {
				logger.Error("replay failed", "file", r.File, "error", err)
			}
		case ev := <-watcher.Event:
			if ev.Name == path && !ev.IsAttrib() && !ev.IsDelete() {
				run = time.After(100 * time.Millisecond)
			}
		case err := <-watcher.Error:
			logger.Warn("file watcher", "error", err)
		}
	}
}
