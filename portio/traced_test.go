package portio_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/ps2drv/portio"
)

type memIO struct {
	regs map[portio.Port]byte
	err  error
}

func (m *memIO) ReadPort(p portio.Port) (byte, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.regs[p], nil
}

func (m *memIO) WritePort(p portio.Port, v byte) error {
	if m.err != nil {
		return m.err
	}
	m.regs[p] = v
	return nil
}

type access struct {
	in    bool
	port  portio.Port
	value byte
}

type recorder struct{ seen []access }

func (r *recorder) LogPort(in bool, port portio.Port, value byte) {
	r.seen = append(r.seen, access{in, port, value})
}

func TestTraced(t *testing.T) {
	mem := &memIO{regs: map[portio.Port]byte{}}
	rec := &recorder{}
	io := portio.Traced(mem, rec)

	require.NoError(t, io.WritePort(0x60, 0xFF))
	v, err := io.ReadPort(0x60)
	require.NoError(t, err)
	assert.Equal(t, byte(0xFF), v)

	assert.Equal(t, []access{
		{in: false, port: 0x60, value: 0xFF},
		{in: true, port: 0x60, value: 0xFF},
	}, rec.seen)
}

func TestTracedSkipsFailedAccess(t *testing.T) {
	boom := errors.New("denied")
	rec := &recorder{}
	io := portio.Traced(&memIO{err: boom}, rec)

	_, err := io.ReadPort(0x64)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, io.WritePort(0x64, 0xAA), boom)
	assert.Empty(t, rec.seen)
}

func TestTracedNilTracer(t *testing.T) {
	mem := &memIO{regs: map[portio.Port]byte{}}
	assert.Same(t, mem, portio.Traced(mem, nil))
}

func TestPortString(t *testing.T) {
	assert.Equal(t, "0x64", portio.Port(0x64).String())
	assert.Equal(t, "0x3f8", portio.Port(0x3F8).String())
}
