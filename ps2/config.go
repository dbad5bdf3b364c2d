package ps2

// Default polling and retry budgets.
const (
	DefaultPollIterations = 1_000_000
	DefaultRetries        = 4
)

// Config tunes the polling and retry budgets of the protocol layer.
type Config struct {
	PollIterations int `help:"Status polls before a read is considered to have timed out" default:"1000000" env:"PS2_POLL_ITERATIONS"`
	Retries        int `help:"Attempts per device command while the device answers RESEND" default:"4" env:"PS2_RETRIES"`
}

func (c Config) withDefaults() Config {
	if c.PollIterations <= 0 {
		c.PollIterations = DefaultPollIterations
	}
	if c.Retries <= 0 {
		c.Retries = DefaultRetries
	}
	return c
}

// ConfigFlags mirrors the controller configuration byte.
type ConfigFlags uint8

const (
	// PortInterrupt1 enables interrupts for port 1.
	PortInterrupt1 ConfigFlags = 1 << 0
	// PortInterrupt2 enables interrupts for port 2.
	PortInterrupt2 ConfigFlags = 1 << 1
	// SystemFlag is set once POST has passed.
	SystemFlag ConfigFlags = 1 << 2
	// PortClock1 disables the port 1 clock when set.
	PortClock1 ConfigFlags = 1 << 4
	// PortClock2 disables the port 2 clock when set.
	PortClock2 ConfigFlags = 1 << 5
	// PortTranslation1 makes the controller translate scanset 2 into scanset 1.
	PortTranslation1 ConfigFlags = 1 << 6
)

// Has reports whether all bits of flag are set.
func (c ConfigFlags) Has(flag ConfigFlags) bool {
	return c&flag == flag
}

// Set returns c with flag set or cleared.
func (c ConfigFlags) Set(flag ConfigFlags, on bool) ConfigFlags {
	if on {
		return c | flag
	}
	return c &^ flag
}
