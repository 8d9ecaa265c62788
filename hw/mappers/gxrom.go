package mappers

import (
	"tanuki/hw"
)

var GxROM = MapperDesc{
	Name: "GxROM",
	New: func(cart *hw.Cartridge) hw.Mapper {
		return &gxrom{cart: cart}
	},
}

// gxrom switches 32KB PRG and 8KB CHR banks from a single register.
type gxrom struct {
	cart    *hw.Cartridge
	prgBank uint8
	chrBank uint8
}

func (m *gxrom) Reset() {
	m.prgBank = 0
	m.chrBank = 0
}

func (m *gxrom) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		banks := len(m.cart.PRGROM) / 0x8000
		base := int(m.prgBank) % banks * 0x8000
		return m.cart.PRGROM[base+int(addr-0x8000)]
	case addr >= 0x6000:
		return m.cart.PRGRAM[addr-0x6000]
	}
	return 0
}

func (m *gxrom) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x8000:
		m.prgBank = val >> 4 & 0x03
		m.chrBank = val & 0x03
	case addr >= 0x6000:
		m.cart.PRGRAM[addr-0x6000] = val
	}
}

func (m *gxrom) chrOffset(addr uint16) int {
	banks := len(m.cart.CHR()) / 0x2000
	return int(m.chrBank)%banks*0x2000 + int(addr)
}

func (m *gxrom) PPURead(addr uint16) uint8 {
	if addr < 0x2000 {
		return m.cart.CHR()[m.chrOffset(addr)]
	}
	return 0
}

func (m *gxrom) PPUWrite(addr uint16, val uint8) {
	if addr < 0x2000 && m.cart.CHRRAM != nil {
		m.cart.CHRRAM[m.chrOffset(addr)] = val
	}
}
