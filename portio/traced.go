package portio

// Tracer receives every byte moved across a traced PortIO.
// in=true means the byte was read from the port.
type Tracer interface {
	LogPort(in bool, port Port, value byte)
}

type traced struct {
	io PortIO
	t  Tracer
}

// Traced wraps io so that every successful read and write is reported to t.
// A nil tracer returns io unchanged.
func Traced(io PortIO, t Tracer) PortIO {
	if t == nil {
		return io
	}
	return &traced{io: io, t: t}
}

func (tr *traced) ReadPort(port Port) (byte, error) {
	v, err := tr.io.ReadPort(port)
	if err == nil {
		tr.t.LogPort(true, port, v)
	}
	return v, err
}

func (tr *traced) WritePort(port Port, value byte) error {
	if err := tr.io.WritePort(port, value); err != nil {
		return err
	}
	tr.t.LogPort(false, port, value)
	return nil
}
