package hw

import (
	"tanuki/emu/log"
	"tanuki/hw/apu"
)

// Bus is the CPU-side memory bus: 2KB of internal RAM mirrored four times,
// the PPU and APU register windows, the controller ports and the cartridge.
// It also fans the master clock out to the PPU (3 dots per CPU cycle) and the
// APU (1:1), and latches OAM DMA requests for the frame runner.
type Bus struct {
	RAM [0x800]uint8

	CPU  *CPU
	PPU  *PPU
	APU  *apu.APU
	Cart *Cartridge

	Controllers [2]Controller
	strobe      bool

	// Value seen on undecoded reads. Cold start leaves the external bus
	// pulled high.
	openBus uint8

	dmaPage    uint8
	dmaPending bool
}

func NewBus() *Bus {
	return &Bus{openBus: 0xFF}
}

func (b *Bus) Reset() {
	b.strobe = false
	b.dmaPending = false
	b.dmaPage = 0
	b.Controllers[0].shift = 0
	b.Controllers[1].shift = 0
}

func (b *Bus) Read8(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.RAM[addr&0x07FF]
	case addr < 0x4000:
		return b.PPU.ReadRegister(addr)
	case addr == 0x4015:
		return b.APU.ReadStatus()
	case addr == 0x4016, addr == 0x4017:
		// The upper bits of the port float; bit 6 reads back high.
		return b.Controllers[addr&1].read(b.strobe) | 0x40
	case addr < 0x4020:
		return b.openBus
	default:
		return b.Cart.CPURead(addr)
	}
}

func (b *Bus) Write8(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		b.RAM[addr&0x07FF] = val
	case addr < 0x4000:
		b.PPU.WriteRegister(addr, val)
	case addr == 0x4014:
		log.ModDMA.DebugZ("OAM DMA request").Hex8("page", val).End()
		b.dmaPage = val
		b.dmaPending = true
	case addr == 0x4016:
		if b.strobe && val&1 == 0 {
			b.Controllers[0].latch()
			b.Controllers[1].latch()
		}
		b.strobe = val&1 != 0
	case addr <= 0x4017:
		b.APU.WriteRegister(addr, val)
	case addr < 0x4020:
		// Undecoded, dropped.
	default:
		b.Cart.CPUWrite(addr, val)
	}
}

// Peek8 reads without side effects, for the disassembler and debugger.
// Registers whose read sequence mutates state report the open bus value
// instead.
func (b *Bus) Peek8(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.RAM[addr&0x07FF]
	case addr < 0x4020:
		return b.openBus
	default:
		return b.Cart.CPURead(addr)
	}
}

func (b *Bus) Read16(addr uint16) uint16 {
	lo := b.Read8(addr)
	hi := b.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// Tick advances the PPU by 3n dots and the APU by n cycles, then delivers any
// interrupt that became pending: the PPU NMI unconditionally, the APU frame
// IRQ and the mapper IRQ subject to the CPU interrupt-disable flag (CPU.IRQ
// latches the line; CPU.Step checks the flag before servicing it). The mapper line is left asserted; boards with an IRQ
// counter are acknowledged through their own registers.
func (b *Bus) Tick(cpuCycles int64) {
	for i := int64(0); i < cpuCycles*3; i++ {
		b.PPU.Tick()
	}
	for i := int64(0); i < cpuCycles; i++ {
		b.APU.Tick()
	}

	if b.PPU.TakeNMI() {
		b.CPU.NMI()
	}
	if b.APU.IRQ() {
		b.CPU.IRQ()
	}
	if irq, ok := b.Cart.Mapper.(IRQSource); ok && irq.IRQPending() {
		b.CPU.IRQ()
	}
}

// DMAPending reports whether a $4014 write is waiting to be serviced, and
// which CPU page it names.
func (b *Bus) DMAPending() (page uint8, pending bool) {
	return b.dmaPage, b.dmaPending
}

// ClearDMA acknowledges the pending OAM DMA request.
func (b *Bus) ClearDMA() {
	b.dmaPending = false
}
