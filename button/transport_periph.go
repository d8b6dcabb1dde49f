package button

import (
	"encoding/binary"

	"periph.io/x/conn/v3/i2c"
)

type periphTransport struct {
	bus i2c.Bus
}

// NewPeriphTransport wraps an open periph.io bus as a Transport. The bus
// must already be opened via i2creg and stays owned by the caller.
func NewPeriphTransport(bus i2c.Bus) Transport {
	return &periphTransport{bus: bus}
}

func (t *periphTransport) dev(addr uint16) i2c.Dev {
	return i2c.Dev{
		Bus:  t.bus,
		Addr: addr,
	}
}

func (t *periphTransport) IsDeviceConnected(addr uint16) bool {
	// A device that ACKs a one-byte read of register 0 is present.
	d := t.dev(addr)
	read := make([]byte, 1)
	return d.Tx([]byte{regID}, read) == nil
}

func (t *periphTransport) ReadByte(addr uint16, reg byte) (byte, error) {
	d := t.dev(addr)
	read := make([]byte, 1)
	if err := d.Tx([]byte{reg}, read); err != nil {
		return 0, err
	}
	return read[0], nil
}

func (t *periphTransport) ReadBlock(addr uint16, reg byte, buf []byte) error {
	d := t.dev(addr)
	return d.Tx([]byte{reg}, buf)
}

func (t *periphTransport) WriteByte(addr uint16, reg byte, value byte) error {
	d := t.dev(addr)
	return d.Tx([]byte{reg, value}, nil)
}

func (t *periphTransport) WriteWord(addr uint16, reg byte, value uint16) error {
	write := make([]byte, 3)
	write[0] = reg
	binary.LittleEndian.PutUint16(write[1:], value)
	d := t.dev(addr)
	return d.Tx(write, nil)
}
