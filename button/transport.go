package button

// Transport is the raw I2C access the driver needs: a presence probe plus
// register-addressed reads and writes. Multi-byte values travel
// little-endian, matching the board firmware.
//
// Implementations do not retry and own any timeout policy; the driver
// performs exactly one transaction per call.
type Transport interface {
	// IsDeviceConnected reports whether a device answers at addr.
	IsDeviceConnected(addr uint16) bool

	// ReadByte reads a single register.
	ReadByte(addr uint16, reg byte) (byte, error)

	// ReadBlock reads len(buf) consecutive bytes starting at reg.
	ReadBlock(addr uint16, reg byte, buf []byte) error

	// WriteByte writes a single register.
	WriteByte(addr uint16, reg byte, value byte) error

	// WriteWord writes a 16-bit value to reg, low byte first.
	WriteWord(addr uint16, reg byte, value uint16) error
}
