package log

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Alia5/ps2drv/portio"
)

// RawLogger records raw port traffic with optional file output.
type RawLogger interface {
	portio.Tracer
	// Flush writes out a pending repeat count.
	Flush()
}

// rawLogger implements RawLogger with thread-safe log. Identical consecutive
// accesses (status polling) are folded into one line with a repeat count.
type rawLogger struct {
	w  io.Writer
	mu sync.Mutex

	last    string
	repeats int
}

// NewRaw creates a new RawLogger. If writer is nil, returns a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// LogPort emits a single-line port access log with timestamp and hex value.
// in=true means the byte was read from the port.
func (r *rawLogger) LogPort(in bool, port portio.Port, value byte) {
	if r.w == nil {
		return
	}

	dir := "OUT"
	if in {
		dir = "IN "
	}
	entry := fmt.Sprintf("%s %s %02x", dir, port, value)

	r.mu.Lock()
	defer r.mu.Unlock()
	if entry == r.last {
		r.repeats++
		return
	}
	r.flushLocked()
	r.last = entry
	_, _ = fmt.Fprintf(r.w, "%s %s\n", time.Now().Format("2006/01/02 15:04:05.000000"), entry)
}

func (r *rawLogger) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushLocked()
}

func (r *rawLogger) flushLocked() {
	if r.w == nil || r.repeats == 0 {
		return
	}
	_, _ = fmt.Fprintf(r.w, "%s %s repeated %d times\n",
		time.Now().Format("2006/01/02 15:04:05.000000"), r.last, r.repeats)
	r.repeats = 0
}
