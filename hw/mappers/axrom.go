package mappers

import (
	"tanuki/hw"
	"tanuki/ines"
)

var AxROM = MapperDesc{
	Name: "AxROM",
	New: func(cart *hw.Cartridge) hw.Mapper {
		return &axrom{cart: cart}
	},
}

// axrom switches 32KB PRG banks and selects one of the two single-screen
// mirroring arrangements.
type axrom struct {
	cart    *hw.Cartridge
	prgBank uint8
}

func (m *axrom) Reset() {
	m.prgBank = 0
	m.cart.Mirroring = ines.MirrorSingleLow
}

func (m *axrom) CPURead(addr uint16) uint8 {
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

func (m *axrom) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x8000:
		m.prgBank = val & 0x07
		if val&0x10 != 0 {
			m.cart.Mirroring = ines.MirrorSingleHigh
		} else {
			m.cart.Mirroring = ines.MirrorSingleLow
		}
	case addr >= 0x6000:
		m.cart.PRGRAM[addr-0x6000] = val
	}
}

func (m *axrom) PPURead(addr uint16) uint8 {
	if addr < 0x2000 {
		return m.cart.CHR()[addr]
	}
	return 0
}

func (m *axrom) PPUWrite(addr uint16, val uint8) {
	if addr < 0x2000 && m.cart.CHRRAM != nil {
		m.cart.CHRRAM[addr] = val
	}
}
