package mappers

import (
	"tanuki/hw"
	"tanuki/ines"
)

var MMC3 = MapperDesc{
	Name: "MMC3",
	New: func(cart *hw.Cartridge) hw.Mapper {
		return &mmc3{cart: cart}
	},
}

// The MMC3 IRQ counter is clocked by A12 rising edges. Short A12 toggles
// during the sprite fetch window (one every 8 dots when sprites use $1000)
// must not count, so a rising edge is ignored unless A12 stayed low for
// longer than this many dots. 12 is the usual hardware calibration; anything
// above 8 filters the sprite-fetch noise while still catching the one clean
// edge per scanline.
const mmc3A12FilterDots = 12

// mmc3 is the scanline-counting board: six CHR bank registers over two
// layouts, two switchable 8KB PRG banks plus the fixed last two, a mirroring
// override and the A12-clocked IRQ counter.
type mmc3 struct {
	cart *hw.Cartridge

	bankSelect uint8
	bankData   [8]uint8
	prgMode    uint8
	chrMode    uint8

	irqLatch   uint8
	irqCounter uint8
	irqEnabled bool
	irqPending bool
	irqReload  bool

	prgRAMProtect uint8

	prevA12High     bool
	lastA12HighCycle uint32
}

func (m *mmc3) Reset() {
	*m = mmc3{cart: m.cart}
	m.bankData = [8]uint8{0, 2, 4, 5, 6, 7, 0, 1}
}

/* CPU side */

func (m *mmc3) prgOffset(addr uint16) int {
	prgBanks := len(m.cart.PRGROM) / 0x2000

	var bank int
	switch {
	case addr < 0xA000:
		if m.prgMode != 0 {
			bank = prgBanks - 2
		} else {
			bank = int(m.bankData[6])
		}
	case addr < 0xC000:
		bank = int(m.bankData[7])
	case addr < 0xE000:
		if m.prgMode != 0 {
			bank = int(m.bankData[6])
		} else {
			bank = prgBanks - 2
		}
	default:
		bank = prgBanks - 1
	}

	bank %= prgBanks
	return bank*0x2000 + int(addr&0x1FFF)
}

func (m *mmc3) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		return m.cart.PRGROM[m.prgOffset(addr)]
	case addr >= 0x6000:
		return m.cart.PRGRAM[addr-0x6000]
	}
	return 0
}

func (m *mmc3) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.cart.PRGRAM[addr-0x6000] = val
		return
	}
	if addr < 0x8000 {
		return
	}

	switch addr & 0xE001 {
	case 0x8000:
		m.bankSelect = val & 0x07
		m.prgMode = val >> 6 & 1
		m.chrMode = val >> 7 & 1
	case 0x8001:
		m.bankData[m.bankSelect] = val
	case 0xA000:
		// Bit 0 clear selects vertical mirroring.
		if val&1 == 0 {
			m.cart.Mirroring = ines.MirrorVertical
		} else {
			m.cart.Mirroring = ines.MirrorHorizontal
		}
	case 0xA001:
		m.prgRAMProtect = val
	case 0xC000:
		m.irqLatch = val
	case 0xC001:
		m.irqCounter = 0
		m.irqReload = true
	case 0xE000:
		m.irqEnabled = false
		m.irqPending = false
	case 0xE001:
		m.irqEnabled = true
	}
}

/* PPU side */

func (m *mmc3) chrOffset(addr uint16) int {
	chrBanks := len(m.cart.CHR()) / 0x0400

	var bank int
	if m.chrMode == 0 {
		// Two 2KB pairs at $0000, four 1KB banks at $1000.
		switch {
		case addr < 0x0800:
			bank = int(m.bankData[0]&0xFE) + int(addr>>10&1)
		case addr < 0x1000:
			bank = int(m.bankData[1]&0xFE) + int((addr-0x0800)>>10&1)
		case addr < 0x1400:
			bank = int(m.bankData[2])
		case addr < 0x1800:
			bank = int(m.bankData[3])
		case addr < 0x1C00:
			bank = int(m.bankData[4])
		default:
			bank = int(m.bankData[5])
		}
	} else {
		// Layouts swapped: 1KB banks at $0000, 2KB pairs at $1000.
		switch {
		case addr < 0x0400:
			bank = int(m.bankData[2])
		case addr < 0x0800:
			bank = int(m.bankData[3])
		case addr < 0x0C00:
			bank = int(m.bankData[4])
		case addr < 0x1000:
			bank = int(m.bankData[5])
		case addr < 0x1800:
			bank = int(m.bankData[0]&0xFE) + int((addr-0x1000)>>10&1)
		default:
			bank = int(m.bankData[1]&0xFE) + int((addr-0x1800)>>10&1)
		}
	}

	bank %= chrBanks
	return bank*0x0400 + int(addr&0x03FF)
}

func (m *mmc3) PPURead(addr uint16) uint8 {
	if addr < 0x2000 {
		return m.cart.CHR()[m.chrOffset(addr)]
	}
	return 0
}

func (m *mmc3) PPUWrite(addr uint16, val uint8) {
	if addr < 0x2000 && m.cart.CHRRAM != nil {
		m.cart.CHRRAM[m.chrOffset(addr)] = val
	}
}

/* IRQ counter */

// clockScanline is one filtered A12 rising edge: reload or decrement, and
// latch the IRQ when the counter lands on zero while armed.
func (m *mmc3) clockScanline() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}

	if m.irqCounter == 0 && m.irqEnabled {
		m.irqPending = true
		modMapper.DebugZ("scanline IRQ raised").End()
	}
}

// NotifyA12 implements hw.A12Watcher. dot is the absolute dot position
// within the frame.
func (m *mmc3) NotifyA12(addr uint16, dot uint32) {
	a12High := addr&0x1000 != 0
	if a12High {
		if !m.prevA12High && dot-m.lastA12HighCycle > mmc3A12FilterDots {
			m.clockScanline()
		}
		m.lastA12HighCycle = dot
	}
	m.prevA12High = a12High
}

// IRQPending implements hw.IRQSource.
func (m *mmc3) IRQPending() bool {
	return m.irqPending
}

// IRQClear implements hw.IRQSource.
func (m *mmc3) IRQClear() {
	m.irqPending = false
}
