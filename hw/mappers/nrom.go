package mappers

import (
	"tanuki/hw"
)

var NROM = MapperDesc{
	Name: "NROM",
	New: func(cart *hw.Cartridge) hw.Mapper {
		return &nrom{cart: cart}
	},
}

// nrom is the mapper-less board: PRG at $8000-$FFFF, mirrored when a single
// 16KB bank is present, PRG-RAM at $6000-$7FFF and linear CHR.
type nrom struct {
	cart *hw.Cartridge
}

func (m *nrom) Reset() {}

func (m *nrom) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		return m.cart.PRGROM[int(addr-0x8000)%len(m.cart.PRGROM)]
	case addr >= 0x6000:
		return m.cart.PRGRAM[addr-0x6000]
	}
	return 0
}

func (m *nrom) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.cart.PRGRAM[addr-0x6000] = val
	}
}

func (m *nrom) PPURead(addr uint16) uint8 {
	if addr < 0x2000 {
		return m.cart.CHR()[addr]
	}
	return 0
}

func (m *nrom) PPUWrite(addr uint16, val uint8) {
	if addr < 0x2000 && m.cart.CHRRAM != nil {
		m.cart.CHRRAM[addr] = val
	}
}
