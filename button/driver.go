package button

import (
	"encoding/binary"
)

// Device wraps a Transport with the register operations of a single Qwiic
// Button board. It holds nothing but the address and the transport; status
// bits are read fresh on every call and never cached.
//
// Calls are single synchronous transactions. The Device does no locking;
// callers sharing one Device across goroutines synchronize externally.
type Device struct {
	addr uint16
	t    Transport
}

// New returns a Device at the given address. Pass DefaultAddress for a
// stock board. Callers must get a true result from Begin before using the
// other operations.
func New(t Transport, addr uint16) *Device {
	return &Device{
		addr: addr,
		t:    t,
	}
}

// Connected reports whether a device answers at the configured address.
func (d *Device) Connected() bool {
	return d.t.IsDeviceConnected(d.addr)
}

// Begin verifies connectivity and device identity. It returns true only
// when the board answers and its ID register matches DeviceID; transport
// failures and foreign devices both come back false.
func (d *Device) Begin() bool {
	if !d.Connected() {
		return false
	}

	id, err := d.t.ReadByte(d.addr, regID)
	if err != nil {
		return false
	}
	return id == DeviceID
}

// FirmwareVersion returns the firmware revision, major byte high.
func (d *Device) FirmwareVersion() (uint16, error) {
	major, err := d.t.ReadByte(d.addr, regFirmwareMajor)
	if err != nil {
		return 0, err
	}
	minor, err := d.t.ReadByte(d.addr, regFirmwareMinor)
	if err != nil {
		return 0, err
	}
	return uint16(major)<<8 | uint16(minor), nil
}

// Address returns the address the Device talks to. No bus transaction.
func (d *Device) Address() uint16 {
	return d.addr
}

// SetAddress moves the board to a new I2C address. Addresses outside the
// valid 7-bit window [0x08, 0x77] are rejected without touching the bus.
// The local address follows only a successful register write, so a failed
// write leaves the Device consistent with the board.
func (d *Device) SetAddress(addr uint16) bool {
	if addr < minAddress || addr > maxAddress {
		return false
	}

	if err := d.t.WriteByte(d.addr, regI2CAddress, byte(addr)); err != nil {
		return false
	}

	d.addr = addr
	return true
}

func (d *Device) statusBit(mask byte) (bool, error) {
	status, err := d.t.ReadByte(d.addr, regButtonStatus)
	if err != nil {
		return false, err
	}
	return status&mask != 0, nil
}

// IsPressed reports whether the contact is currently closed.
func (d *Device) IsPressed() (bool, error) {
	return d.statusBit(statusIsPressed)
}

// HasBeenClicked reports whether the button has been pressed and released
// since the bit was last cleared.
func (d *Device) HasBeenClicked() (bool, error) {
	return d.statusBit(statusHasBeenClicked)
}

// EventAvailable reports whether any press or click event is pending.
func (d *Device) EventAvailable() (bool, error) {
	return d.statusBit(statusEventAvailable)
}

// ClearEventBits clears the pressed, clicked and event-available bits,
// leaving the rest of the status register untouched.
func (d *Device) ClearEventBits() error {
	status, err := d.t.ReadByte(d.addr, regButtonStatus)
	if err != nil {
		return err
	}
	status &^= statusEventAvailable | statusHasBeenClicked | statusIsPressed
	return d.t.WriteByte(d.addr, regButtonStatus, status)
}

// DebounceTime returns the firmware debounce window in milliseconds.
func (d *Device) DebounceTime() (uint16, error) {
	buf := make([]byte, 2)
	if err := d.t.ReadBlock(d.addr, regDebounceTime, buf); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// SetDebounceTime sets the firmware debounce window. Values are clamped
// to [0, 0xFFFF] milliseconds.
func (d *Device) SetDebounceTime(ms int) error {
	if ms < 0 {
		ms = 0
	}
	if ms > 0xFFFF {
		ms = 0xFFFF
	}
	return d.t.WriteWord(d.addr, regDebounceTime, uint16(ms))
}

func (d *Device) setInterruptBit(mask byte, enable bool) error {
	config, err := d.t.ReadByte(d.addr, regInterruptConfig)
	if err != nil {
		return err
	}
	if enable {
		config |= mask
	} else {
		config &^= mask
	}
	return d.t.WriteByte(d.addr, regInterruptConfig, config)
}

// EnablePressedInterrupt asserts the INT pin while the button is pressed.
func (d *Device) EnablePressedInterrupt() error {
	return d.setInterruptBit(interruptPressedEnable, true)
}

// DisablePressedInterrupt stops press events from driving the INT pin.
func (d *Device) DisablePressedInterrupt() error {
	return d.setInterruptBit(interruptPressedEnable, false)
}

// EnableClickedInterrupt asserts the INT pin when the button is clicked.
func (d *Device) EnableClickedInterrupt() error {
	return d.setInterruptBit(interruptClickedEnable, true)
}

// DisableClickedInterrupt stops click events from driving the INT pin.
func (d *Device) DisableClickedInterrupt() error {
	return d.setInterruptBit(interruptClickedEnable, false)
}

func (d *Device) queueBit(statusReg, mask byte) (bool, error) {
	status, err := d.t.ReadByte(d.addr, statusReg)
	if err != nil {
		return false, err
	}
	return status&mask != 0, nil
}

func (d *Device) queueTime(reg byte) (uint32, error) {
	buf := make([]byte, 4)
	if err := d.t.ReadBlock(d.addr, reg, buf); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

func (d *Device) popQueue(statusReg byte) error {
	status, err := d.t.ReadByte(d.addr, statusReg)
	if err != nil {
		return err
	}
	return d.t.WriteByte(d.addr, statusReg, status|queuePopRequest)
}

// IsPressedQueueEmpty reports whether the press timestamp queue is empty.
func (d *Device) IsPressedQueueEmpty() (bool, error) {
	return d.queueBit(regPressedQueueStatus, queueIsEmpty)
}

// IsPressedQueueFull reports whether the press timestamp queue is full.
func (d *Device) IsPressedQueueFull() (bool, error) {
	return d.queueBit(regPressedQueueStatus, queueIsFull)
}

// TimeSinceLastPress returns milliseconds since the newest queued press.
func (d *Device) TimeSinceLastPress() (uint32, error) {
	return d.queueTime(regPressedQueueFront)
}

// TimeSinceFirstPress returns milliseconds since the oldest queued press.
func (d *Device) TimeSinceFirstPress() (uint32, error) {
	return d.queueTime(regPressedQueueBack)
}

// PopPressedQueue asks the firmware to drop the oldest queued press.
func (d *Device) PopPressedQueue() error {
	return d.popQueue(regPressedQueueStatus)
}

// IsClickedQueueEmpty reports whether the click timestamp queue is empty.
func (d *Device) IsClickedQueueEmpty() (bool, error) {
	return d.queueBit(regClickedQueueStatus, queueIsEmpty)
}

// IsClickedQueueFull reports whether the click timestamp queue is full.
func (d *Device) IsClickedQueueFull() (bool, error) {
	return d.queueBit(regClickedQueueStatus, queueIsFull)
}

// TimeSinceLastClick returns milliseconds since the newest queued click.
func (d *Device) TimeSinceLastClick() (uint32, error) {
	return d.queueTime(regClickedQueueFront)
}

// TimeSinceFirstClick returns milliseconds since the oldest queued click.
func (d *Device) TimeSinceFirstClick() (uint32, error) {
	return d.queueTime(regClickedQueueBack)
}

// PopClickedQueue asks the firmware to drop the oldest queued click.
func (d *Device) PopClickedQueue() error {
	return d.popQueue(regClickedQueueStatus)
}

// LEDConfig programs the on-board LED pulse generator. brightness is the
// pulse peak, cycleTimeMs the full pulse period and offTimeMs the pause
// between pulses (0 pulses continuously). The board keeps pulsing on its
// own until reconfigured.
func (d *Device) LEDConfig(brightness byte, cycleTimeMs, offTimeMs uint16) error {
	if err := d.t.WriteByte(d.addr, regLEDBrightness, brightness); err != nil {
		return err
	}
	if err := d.t.WriteByte(d.addr, regLEDPulseGranularity, 1); err != nil {
		return err
	}
	if err := d.t.WriteWord(d.addr, regLEDPulseCycleTime, cycleTimeMs); err != nil {
		return err
	}
	return d.t.WriteWord(d.addr, regLEDPulseOffTime, offTimeMs)
}

// LEDOn lights the LED steadily at the given brightness.
func (d *Device) LEDOn(brightness byte) error {
	return d.LEDConfig(brightness, 0, 0)
}

// LEDOff turns the LED off.
func (d *Device) LEDOff() error {
	return d.LEDConfig(0, 0, 0)
}
