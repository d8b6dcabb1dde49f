package button

import (
	"encoding/binary"
	"errors"
	"sync"
)

// FakeTransport is an in-memory register file standing in for a real bus.
// Tests drive it directly; the service layer uses it for fake mode so the
// backend runs without hardware.
type FakeTransport struct {
	mu        sync.Mutex
	regs      [0x20]byte
	connected bool
	failIO    bool
}

// NewFakeTransport returns a connected fake pre-loaded with the board's
// identity and firmware registers.
func NewFakeTransport() *FakeTransport {
	t := &FakeTransport{
		connected: true,
	}
	t.regs[regID] = DeviceID
	t.regs[regFirmwareMajor] = 0x01
	t.regs[regFirmwareMinor] = 0x02
	return t
}

// SetConnected controls whether the fake answers presence probes.
func (t *FakeTransport) SetConnected(connected bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.connected = connected
}

// SetFailIO makes every read and write return an error until reset.
func (t *FakeTransport) SetFailIO(fail bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failIO = fail
}

// SetRegister stores a raw register value.
func (t *FakeTransport) SetRegister(reg byte, value byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.regs[reg] = value
}

// Register returns a raw register value.
func (t *FakeTransport) Register(reg byte) byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.regs[reg]
}

// SetStatus sets the button status bits the way the firmware would:
// eventAvailable accompanies both press and click.
func (t *FakeTransport) SetStatus(pressed, clicked bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var status byte
	if pressed {
		status |= statusIsPressed | statusEventAvailable
	}
	if clicked {
		status |= statusHasBeenClicked | statusEventAvailable
	}
	t.regs[regButtonStatus] = status
}

var errFakeIO = errors.New("fake transport: i/o failure")

func (t *FakeTransport) IsDeviceConnected(addr uint16) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}

func (t *FakeTransport) ReadByte(addr uint16, reg byte) (byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.failIO {
		return 0, errFakeIO
	}
	return t.regs[reg], nil
}

func (t *FakeTransport) ReadBlock(addr uint16, reg byte, buf []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.failIO {
		return errFakeIO
	}
	copy(buf, t.regs[reg:])
	return nil
}

func (t *FakeTransport) WriteByte(addr uint16, reg byte, value byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.failIO {
		return errFakeIO
	}
	t.regs[reg] = value

	// Firmware side effect: a pop request drains the queue and clears
	// the request bit again.
	if reg == regPressedQueueStatus || reg == regClickedQueueStatus {
		t.regs[reg] = (value &^ queuePopRequest) | queueIsEmpty
	}
	return nil
}

func (t *FakeTransport) WriteWord(addr uint16, reg byte, value uint16) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.failIO {
		return errFakeIO
	}
	binary.LittleEndian.PutUint16(t.regs[reg:], value)
	return nil
}
