package mappers

import (
	"tanuki/hw"
)

var UxROM = MapperDesc{
	Name: "UxROM",
	New: func(cart *hw.Cartridge) hw.Mapper {
		return &uxrom{cart: cart}
	},
}

// uxrom switches a 16KB PRG bank at $8000 while the last bank stays fixed at
// $C000. CHR is linear, typically RAM.
type uxrom struct {
	cart    *hw.Cartridge
	prgBank uint8
}

func (m *uxrom) Reset() {
	m.prgBank = 0
}

func (m *uxrom) prgBanks() int {
	return len(m.cart.PRGROM) / 0x4000
}

func (m *uxrom) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0xC000:
		base := (m.prgBanks() - 1) * 0x4000
		return m.cart.PRGROM[base+int(addr-0xC000)]
	case addr >= 0x8000:
		base := int(m.prgBank) % m.prgBanks() * 0x4000
		return m.cart.PRGROM[base+int(addr-0x8000)]
	case addr >= 0x6000:
		return m.cart.PRGRAM[addr-0x6000]
	}
	return 0
}

func (m *uxrom) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x8000:
		m.prgBank = val
	case addr >= 0x6000:
		m.cart.PRGRAM[addr-0x6000] = val
	}
}

func (m *uxrom) PPURead(addr uint16) uint8 {
	if addr < 0x2000 {
		return m.cart.CHR()[addr]
	}
	return 0
}

func (m *uxrom) PPUWrite(addr uint16, val uint8) {
	if addr < 0x2000 && m.cart.CHRRAM != nil {
		m.cart.CHRRAM[addr] = val
	}
}
