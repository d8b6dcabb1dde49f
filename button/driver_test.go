package button

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDevice() (*Device, *FakeTransport) {
	t := NewFakeTransport()
	return New(t, DefaultAddress), t
}

func TestBegin(t *testing.T) {
	tests := []struct {
		name      string
		connected bool
		id        byte
		want      bool
	}{
		{"connected with right id", true, DeviceID, true},
		{"connected with wrong id", true, 0x42, false},
		{"disconnected with right id", false, DeviceID, false},
		{"disconnected with wrong id", false, 0x42, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, tr := newTestDevice()
			tr.SetConnected(tt.connected)
			tr.SetRegister(regID, tt.id)

			assert.Equal(t, tt.want, dev.Begin())
		})
	}
}

func TestBeginReadFailure(t *testing.T) {
	dev, tr := newTestDevice()
	tr.SetFailIO(true)

	assert.False(t, dev.Begin())
}

func TestFirmwareVersion(t *testing.T) {
	dev, tr := newTestDevice()
	tr.SetRegister(regFirmwareMajor, 0x01)
	tr.SetRegister(regFirmwareMinor, 0x02)

	version, err := dev.FirmwareVersion()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), version)
}

func TestSetAddressRejectsReservedRange(t *testing.T) {
	for _, addr := range []uint16{0x00, 0x07, 0x78, 0xFF} {
		dev, tr := newTestDevice()
		tr.SetFailIO(true) // any bus traffic would error out

		assert.False(t, dev.SetAddress(addr))
		assert.Equal(t, DefaultAddress, dev.Address())
	}
}

func TestSetAddressSuccess(t *testing.T) {
	dev, tr := newTestDevice()

	require.True(t, dev.SetAddress(0x20))
	assert.Equal(t, uint16(0x20), dev.Address())
	assert.Equal(t, byte(0x20), tr.Register(regI2CAddress))
}

func TestSetAddressWriteFailureKeepsAddress(t *testing.T) {
	dev, tr := newTestDevice()
	tr.SetFailIO(true)

	assert.False(t, dev.SetAddress(0x20))
	assert.Equal(t, DefaultAddress, dev.Address())
}

func TestStatusBitExtraction(t *testing.T) {
	dev, tr := newTestDevice()

	for status := 0; status <= 0xFF; status++ {
		tr.SetRegister(regButtonStatus, byte(status))

		pressed, err := dev.IsPressed()
		require.NoError(t, err)
		assert.Equal(t, status&0x04 != 0, pressed, "status %#02x", status)

		clicked, err := dev.HasBeenClicked()
		require.NoError(t, err)
		assert.Equal(t, status&0x02 != 0, clicked, "status %#02x", status)

		available, err := dev.EventAvailable()
		require.NoError(t, err)
		assert.Equal(t, status&0x01 != 0, available, "status %#02x", status)
	}
}

func TestClearEventBitsPreservesOtherBits(t *testing.T) {
	dev, tr := newTestDevice()
	tr.SetRegister(regButtonStatus, 0xFF)

	require.NoError(t, dev.ClearEventBits())
	assert.Equal(t, byte(0xF8), tr.Register(regButtonStatus))
}

func TestDebounceTimeCombinesBytes(t *testing.T) {
	dev, tr := newTestDevice()
	tr.SetRegister(regDebounceTime, 0x34)
	tr.SetRegister(regDebounceTime+1, 0x12)

	ms, err := dev.DebounceTime()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), ms)
}

func TestSetDebounceTimeClamps(t *testing.T) {
	tests := []struct {
		in   int
		want uint16
	}{
		{-5, 0},
		{0, 0},
		{10, 10},
		{70000, 0xFFFF},
	}

	for _, tt := range tests {
		dev, tr := newTestDevice()
		require.NoError(t, dev.SetDebounceTime(tt.in))

		got := binary.LittleEndian.Uint16([]byte{
			tr.Register(regDebounceTime),
			tr.Register(regDebounceTime + 1),
		})
		assert.Equal(t, tt.want, got, "input %d", tt.in)
	}
}

func TestSetDebounceTimeRoundTrip(t *testing.T) {
	dev, _ := newTestDevice()

	require.NoError(t, dev.SetDebounceTime(250))
	ms, err := dev.DebounceTime()
	require.NoError(t, err)
	assert.Equal(t, uint16(250), ms)
}

func TestInterruptConfig(t *testing.T) {
	dev, tr := newTestDevice()

	require.NoError(t, dev.EnablePressedInterrupt())
	assert.Equal(t, interruptPressedEnable, tr.Register(regInterruptConfig))

	require.NoError(t, dev.EnableClickedInterrupt())
	assert.Equal(t, interruptPressedEnable|interruptClickedEnable,
		tr.Register(regInterruptConfig))

	require.NoError(t, dev.DisablePressedInterrupt())
	assert.Equal(t, interruptClickedEnable, tr.Register(regInterruptConfig))

	require.NoError(t, dev.DisableClickedInterrupt())
	assert.Equal(t, byte(0), tr.Register(regInterruptConfig))
}

func TestQueueTimes(t *testing.T) {
	dev, tr := newTestDevice()

	front := []byte{0x78, 0x56, 0x34, 0x12}
	for i, b := range front {
		tr.SetRegister(regPressedQueueFront+byte(i), b)
	}
	back := []byte{0x01, 0x00, 0x00, 0x00}
	for i, b := range back {
		tr.SetRegister(regClickedQueueBack+byte(i), b)
	}

	last, err := dev.TimeSinceLastPress()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), last)

	first, err := dev.TimeSinceFirstClick()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), first)
}

func TestQueueStatusBits(t *testing.T) {
	dev, tr := newTestDevice()
	tr.SetRegister(regPressedQueueStatus, queueIsFull)

	full, err := dev.IsPressedQueueFull()
	require.NoError(t, err)
	assert.True(t, full)

	empty, err := dev.IsPressedQueueEmpty()
	require.NoError(t, err)
	assert.False(t, empty)
}

func TestPopPressedQueue(t *testing.T) {
	dev, tr := newTestDevice()
	tr.SetRegister(regPressedQueueStatus, queueIsFull)

	require.NoError(t, dev.PopPressedQueue())

	// The fake mimics the firmware: the pop request is consumed and the
	// queue drains.
	status := tr.Register(regPressedQueueStatus)
	assert.Zero(t, status&queuePopRequest)
	assert.NotZero(t, status&queueIsEmpty)
}

func TestLEDConfig(t *testing.T) {
	dev, tr := newTestDevice()

	require.NoError(t, dev.LEDConfig(250, 1000, 200))

	assert.Equal(t, byte(250), tr.Register(regLEDBrightness))
	assert.Equal(t, byte(1), tr.Register(regLEDPulseGranularity))

	cycle := binary.LittleEndian.Uint16([]byte{
		tr.Register(regLEDPulseCycleTime),
		tr.Register(regLEDPulseCycleTime + 1),
	})
	assert.Equal(t, uint16(1000), cycle)

	off := binary.LittleEndian.Uint16([]byte{
		tr.Register(regLEDPulseOffTime),
		tr.Register(regLEDPulseOffTime + 1),
	})
	assert.Equal(t, uint16(200), off)
}

func TestLEDOffZeroesConfig(t *testing.T) {
	dev, tr := newTestDevice()
	require.NoError(t, dev.LEDOn(128))
	assert.Equal(t, byte(128), tr.Register(regLEDBrightness))

	require.NoError(t, dev.LEDOff())
	assert.Equal(t, byte(0), tr.Register(regLEDBrightness))
}
