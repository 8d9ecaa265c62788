package mappers

import (
	"tanuki/hw"
)

var CNROM = MapperDesc{
	Name: "CNROM",
	New: func(cart *hw.Cartridge) hw.Mapper {
		return &cnrom{cart: cart}
	},
}

// cnrom is NROM with an 8KB CHR bank select.
type cnrom struct {
	cart    *hw.Cartridge
	chrBank uint8
}

func (m *cnrom) Reset() {
	m.chrBank = 0
}

func (m *cnrom) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		return m.cart.PRGROM[int(addr-0x8000)%len(m.cart.PRGROM)]
	case addr >= 0x6000:
		return m.cart.PRGRAM[addr-0x6000]
	}
	return 0
}

func (m *cnrom) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x8000:
		m.chrBank = val & 0x03
	case addr >= 0x6000:
		m.cart.PRGRAM[addr-0x6000] = val
	}
}

func (m *cnrom) chrOffset(addr uint16) int {
	banks := len(m.cart.CHR()) / 0x2000
	return int(m.chrBank)%banks*0x2000 + int(addr)
}

func (m *cnrom) PPURead(addr uint16) uint8 {
	if addr < 0x2000 {
		return m.cart.CHR()[m.chrOffset(addr)]
	}
	return 0
}

func (m *cnrom) PPUWrite(addr uint16, val uint8) {
	if addr < 0x2000 && m.cart.CHRRAM != nil {
		m.cart.CHRRAM[m.chrOffset(addr)] = val
	}
}
