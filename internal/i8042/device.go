package i8042

import "sync"

const (
	devSetResolution   = 0xe8
	devSetLEDs         = 0xed
	devEcho            = 0xee
	devScanset         = 0xf0
	devIdentify        = 0xf2
	devSetRate         = 0xf3
	devEnableScanning  = 0xf4
	devDisableScanning = 0xf5
	devSetDefaults     = 0xf6
	devReset           = 0xff
)

const (
	respACK            = 0xfa
	respResend         = 0xfe
	respSelfTestPassed = 0xaa
)

// model is the command handling shared by the emulated keyboard and mouse.
type model struct {
	mu sync.Mutex

	id          []byte
	resetResult []byte
	silent      bool
	resends     int
	scanning    bool
	expectData  byte
	received    []byte
	outbox      []byte

	onData func(cmd, data byte) []byte
}

func (m *model) Receive(b byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.received = append(m.received, b)
	if m.silent {
		return
	}
	if m.resends > 0 {
		m.resends--
		m.outbox = append(m.outbox, respResend)
		return
	}
	if m.expectData != 0 {
		cmd := m.expectData
		m.expectData = 0
		m.outbox = append(m.outbox, respACK)
		if m.onData != nil {
			m.outbox = append(m.outbox, m.onData(cmd, b)...)
		}
		return
	}
	switch b {
	case devReset:
		m.scanning = false
		m.outbox = append(m.outbox, respACK)
		m.outbox = append(m.outbox, m.resetResult...)
	case devIdentify:
		m.outbox = append(m.outbox, respACK)
		m.outbox = append(m.outbox, m.id...)
	case devEnableScanning:
		m.scanning = true
		m.outbox = append(m.outbox, respACK)
	case devDisableScanning:
		m.scanning = false
		m.outbox = append(m.outbox, respACK)
	case devEcho:
		m.outbox = append(m.outbox, devEcho)
	case devSetLEDs, devScanset, devSetRate, devSetResolution:
		m.expectData = b
		m.outbox = append(m.outbox, respACK)
	default:
		m.outbox = append(m.outbox, respACK)
	}
}

func (m *model) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.outbox)
}

func (m *model) Next() byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.outbox) == 0 {
		return 0x00
	}
	v := m.outbox[0]
	m.outbox = m.outbox[1:]
	return v
}

// Resend makes the device answer the next n bytes with RESEND.
func (m *model) Resend(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resends = n
}

// SetSilent makes the device swallow everything without answering.
func (m *model) SetSilent(silent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.silent = silent
}

// SetResetResult replaces the bytes sent after the ACK of a reset.
func (m *model) SetResetResult(b ...byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetResult = b
}

// SetIdentity replaces the identity bytes.
func (m *model) SetIdentity(b ...byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.id = b
}

// Scanning reports whether the device is sending input.
func (m *model) Scanning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scanning
}

// Received returns every byte the host sent to the device.
func (m *model) Received() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.received...)
}

// Keyboard is an emulated MF2 keyboard.
type Keyboard struct {
	model
	scanset byte
	leds    byte
	rate    byte
}

// NewKeyboard returns an MF2 keyboard using scanset 2.
func NewKeyboard() *Keyboard {
	k := &Keyboard{scanset: 2}
	k.id = []byte{0xab, 0x83}
	k.resetResult = []byte{respSelfTestPassed}
	k.onData = k.data
	return k
}

func (k *Keyboard) data(cmd, b byte) []byte {
	switch cmd {
	case devScanset:
		if b == 0 {
			return []byte{k.scanset}
		}
		k.scanset = b
	case devSetLEDs:
		k.leds = b
	case devSetRate:
		k.rate = b
	}
	return nil
}

// Type queues raw scancode bytes. They are only sent while scanning is on.
func (k *Keyboard) Type(b ...byte) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.scanning {
		return
	}
	k.outbox = append(k.outbox, b...)
}

// Scanset returns the selected scan code set.
func (k *Keyboard) Scanset() byte {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.scanset
}

// LEDs returns the last LED byte written.
func (k *Keyboard) LEDs() byte {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.leds
}

// Mouse is an emulated mouse.
type Mouse struct {
	model
	sampleRate byte
	resolution byte
}

// NewMouse returns a standard mouse, or a scroll wheel mouse when id is 0x03.
func NewMouse(id byte) *Mouse {
	m := &Mouse{sampleRate: 100, resolution: 2}
	m.id = []byte{id}
	m.resetResult = []byte{respSelfTestPassed, id}
	m.onData = m.data
	return m
}

func (m *Mouse) data(cmd, b byte) []byte {
	switch cmd {
	case devSetRate:
		m.sampleRate = b
	case devSetResolution:
		m.resolution = b
	}
	return nil
}

// Move queues a raw movement packet.
func (m *Mouse) Move(packet ...byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.scanning {
		return
	}
	m.outbox = append(m.outbox, packet...)
}

// SampleRate returns the configured sample rate.
func (m *Mouse) SampleRate() byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sampleRate
}
