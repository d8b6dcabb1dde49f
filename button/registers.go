package button

// Register map of the Qwiic Button firmware. Offsets are fixed by the
// on-board ATTiny firmware and must not be changed.
const (
	regID                  = byte(0x00)
	regFirmwareMinor       = byte(0x01)
	regFirmwareMajor       = byte(0x02)
	regButtonStatus        = byte(0x03)
	regInterruptConfig     = byte(0x04)
	regDebounceTime        = byte(0x05) // 2 bytes, little-endian ms
	regPressedQueueStatus  = byte(0x07)
	regPressedQueueFront   = byte(0x08) // 4 bytes, little-endian ms
	regPressedQueueBack    = byte(0x0C) // 4 bytes, little-endian ms
	regClickedQueueStatus  = byte(0x10)
	regClickedQueueFront   = byte(0x11) // 4 bytes, little-endian ms
	regClickedQueueBack    = byte(0x15) // 4 bytes, little-endian ms
	regLEDBrightness       = byte(0x19)
	regLEDPulseGranularity = byte(0x1A)
	regLEDPulseCycleTime   = byte(0x1B) // 2 bytes, little-endian ms
	regLEDPulseOffTime     = byte(0x1D) // 2 bytes, little-endian ms
	regI2CAddress          = byte(0x1F)
)

// Button status register bits.
const (
	statusEventAvailable = byte(0x01) // any event since last clear
	statusHasBeenClicked = byte(0x02) // set on release after press
	statusIsPressed      = byte(0x04) // reflects current contact state
)

// Interrupt configuration register bits.
const (
	interruptClickedEnable = byte(0x01)
	interruptPressedEnable = byte(0x02)
)

// Queue status register bits, same layout for both event queues.
const (
	queuePopRequest = byte(0x01) // firmware pops front entry and clears the bit
	queueIsEmpty    = byte(0x02)
	queueIsFull     = byte(0x04)
)

const (
	// DeviceID is the value of the ID register on every Qwiic Button.
	DeviceID = byte(0x5D)

	// DefaultAddress is the factory I2C address of the board.
	DefaultAddress = uint16(0x6F)

	// Valid 7-bit address window. Addresses outside it are reserved by
	// the I2C specification.
	minAddress = uint16(0x08)
	maxAddress = uint16(0x77)
)
