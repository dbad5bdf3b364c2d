package ps2_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/ps2drv/internal/i8042"
	"github.com/Alia5/ps2drv/portio"
	"github.com/Alia5/ps2drv/ps2"
)

var testConfig = ps2.Config{PollIterations: 64, Retries: 4}

type rig struct {
	hw    *i8042.Controller
	kbd   *i8042.Keyboard
	mouse *i8042.Mouse
	ctrl  *ps2.Controller
}

func newRig(t *testing.T, withKeyboard, withMouse bool, opts ...i8042.Option) *rig {
	t.Helper()
	r := &rig{}
	if withKeyboard {
		r.kbd = i8042.NewKeyboard()
		opts = append(opts, i8042.WithKeyboard(r.kbd))
	}
	if withMouse {
		r.mouse = i8042.NewMouse(0x03)
		opts = append(opts, i8042.WithMouse(r.mouse))
	}
	r.hw = i8042.New(opts...)
	r.ctrl = ps2.New(r.hw, testConfig, nil)
	return r
}

func (r *rig) initialize(t *testing.T) int {
	t.Helper()
	var n int
	err := r.ctrl.Do(func(g *ps2.Guard) error {
		var err error
		n, err = g.Initialize()
		return err
	})
	require.NoError(t, err)
	return n
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name      string
		keyboard  bool
		mouse     bool
		opts      []i8042.Option
		available int
		states    [2]ps2.DeviceState
	}{
		{
			name:      "keyboard and mouse",
			keyboard:  true,
			mouse:     true,
			available: 2,
			states:    [2]ps2.DeviceState{ps2.Available, ps2.Available},
		},
		{
			name:      "keyboard only",
			keyboard:  true,
			available: 1,
			states:    [2]ps2.DeviceState{ps2.Available, ps2.Unavailable},
		},
		{
			name:      "no devices is not an error",
			available: 0,
			states:    [2]ps2.DeviceState{ps2.Unavailable, ps2.Unavailable},
		},
		{
			name:      "failed controller self-test is tolerated",
			keyboard:  true,
			mouse:     true,
			opts:      []i8042.Option{i8042.WithSelfTestResult(0xFC)},
			available: 2,
			states:    [2]ps2.DeviceState{ps2.Available, ps2.Available},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, tt.keyboard, tt.mouse, tt.opts...)
			assert.Equal(t, tt.available, r.initialize(t))

			g := r.ctrl.Lock()
			defer g.Unlock()
			assert.Equal(t, tt.states[0], g.Device(ps2.Port1).State())
			assert.Equal(t, tt.states[1], g.Device(ps2.Port2).State())
			assert.Equal(t, tt.available, g.AvailableDevices())
		})
	}
}

func TestInitializeConfiguresController(t *testing.T) {
	r := newRig(t, true, true)
	r.initialize(t)

	cfg := ps2.ConfigFlags(r.hw.CommandByte())
	assert.False(t, cfg.Has(ps2.PortInterrupt1))
	assert.False(t, cfg.Has(ps2.PortInterrupt2))
	assert.False(t, cfg.Has(ps2.PortTranslation1))
	assert.True(t, cfg.Has(ps2.SystemFlag))
	assert.False(t, r.hw.PortEnabled(1), "port 1 is left disabled")
	assert.False(t, r.hw.PortEnabled(2), "port 2 is left disabled")

	assert.Equal(t, []byte{byte(ps2.DeviceReset)}, r.kbd.Received())
	assert.Equal(t, []byte{byte(ps2.DeviceReset)}, r.mouse.Received())

	err := r.ctrl.Do(func(g *ps2.Guard) error {
		pending, _, err := g.Pending()
		assert.False(t, pending, "output buffer is flushed")
		return err
	})
	require.NoError(t, err)
}

func TestInitializeResetFailure(t *testing.T) {
	t.Run("bad self-test result", func(t *testing.T) {
		r := newRig(t, true, false)
		r.kbd.SetResetResult(ps2.ResponseSelfTestFailed1)

		err := r.ctrl.Do(func(g *ps2.Guard) error {
			_, err := g.Initialize()
			return err
		})
		var unexpected *ps2.UnexpectedResponseError
		require.ErrorAs(t, err, &unexpected)
		assert.Equal(t, ps2.ResponseSelfTestFailed1, unexpected.Response)
	})

	t.Run("silent device", func(t *testing.T) {
		r := newRig(t, true, false)
		r.kbd.SetSilent(true)

		err := r.ctrl.Do(func(g *ps2.Guard) error {
			_, err := g.Initialize()
			return err
		})
		assert.ErrorIs(t, err, ps2.ErrExpectedResponse)
	})
}

func TestInitializeInputBufferStuck(t *testing.T) {
	r := newRig(t, true, true, i8042.WithStuckInputBuffer())
	err := r.ctrl.Do(func(g *ps2.Guard) error {
		_, err := g.Initialize()
		return err
	})
	assert.ErrorIs(t, err, ps2.ErrInputFull)
}

type failingIO struct{ err error }

func (f failingIO) ReadPort(portio.Port) (byte, error) { return 0, f.err }
func (f failingIO) WritePort(portio.Port, byte) error  { return f.err }

func TestInitializePortIOError(t *testing.T) {
	boom := errors.New("port access denied")
	ctrl := ps2.New(failingIO{err: boom}, testConfig, nil)
	err := ctrl.Do(func(g *ps2.Guard) error {
		_, err := g.Initialize()
		return err
	})
	assert.ErrorIs(t, err, boom)
}

func TestControllerTest(t *testing.T) {
	tests := []struct {
		name   string
		result byte
		ok     bool
	}{
		{name: "passed", result: ps2.ResponseControllerTestOK, ok: true},
		{name: "failed", result: 0xFC, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, false, false, i8042.WithSelfTestResult(tt.result))
			g := r.ctrl.Lock()
			defer g.Unlock()
			ok, err := g.TestController()
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestConfigRoundTrip(t *testing.T) {
	r := newRig(t, false, false)
	g := r.ctrl.Lock()
	defer g.Unlock()

	want := ps2.SystemFlag | ps2.PortClock2
	require.NoError(t, g.SetConfig(want))
	got, err := g.Config()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, byte(want), r.hw.CommandByte())
}

func TestGuardPanicsAfterUnlock(t *testing.T) {
	r := newRig(t, false, false)
	g := r.ctrl.Lock()
	g.Unlock()
	assert.Panics(t, func() { g.Keyboard() })
}

func TestConfigFlags(t *testing.T) {
	var c ps2.ConfigFlags
	c = c.Set(ps2.PortInterrupt1, true).Set(ps2.PortTranslation1, true)
	assert.True(t, c.Has(ps2.PortInterrupt1))
	assert.True(t, c.Has(ps2.PortTranslation1))
	assert.True(t, c.Has(ps2.PortInterrupt1|ps2.PortTranslation1))
	assert.False(t, c.Has(ps2.PortInterrupt1|ps2.PortInterrupt2))

	c = c.Set(ps2.PortInterrupt1, false)
	assert.Equal(t, ps2.PortTranslation1, c)
}
