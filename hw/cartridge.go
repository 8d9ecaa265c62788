package hw

import (
	"tanuki/ines"
)

// A Mapper translates cartridge-facing addresses into PRG/CHR offsets and
// holds whatever private state the board carries (bank registers, IRQ
// counter). The cartridge forwards all four access operations to it
// unconditionally.
type Mapper interface {
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, val uint8)
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, val uint8)
	Reset()
}

// IRQSource is implemented by mappers that can pull the CPU IRQ line
// (MMC3 scanline counter). The line stays asserted until the program
// acknowledges it through the mapper's own registers.
type IRQSource interface {
	IRQPending() bool
	IRQClear()
}

// A12Watcher is implemented by mappers that clock internal counters on PPU
// address line 12 rising edges. dot is the absolute dot counter within the
// frame (scanline*341 + dot).
type A12Watcher interface {
	NotifyA12(addr uint16, dot uint32)
}

// Cartridge owns the memories loaded from an iNES rom. All accesses go
// through the mapper, which indexes these buffers.
type Cartridge struct {
	PRGROM []byte // prg_banks x 16KB
	CHRROM []byte // chr_banks x 8KB, nil for CHR-RAM carts
	CHRRAM []byte // 8KB, allocated when the rom has no CHR-ROM
	PRGRAM []byte // 8KB

	Mirroring ines.Mirroring
	MapperID  uint8
	Battery   bool

	Mapper Mapper
}

// NewCartridge builds a cartridge from a decoded rom. The mapper is attached
// separately (see the mappers package registry).
func NewCartridge(rom *ines.Rom) *Cartridge {
	cart := &Cartridge{
		PRGROM:    rom.PRG,
		Mirroring: rom.Mirroring(),
		MapperID:  rom.Mapper(),
		Battery:   rom.HasBattery(),
		PRGRAM:    make([]byte, 0x2000),
	}
	if len(rom.CHR) > 0 {
		cart.CHRROM = rom.CHR
	} else {
		cart.CHRRAM = make([]byte, 0x2000)
	}
	return cart
}

// CHR returns the active character memory, ROM or RAM.
func (cart *Cartridge) CHR() []byte {
	if cart.CHRROM != nil {
		return cart.CHRROM
	}
	return cart.CHRRAM
}

func (cart *Cartridge) CPURead(addr uint16) uint8 {
	return cart.Mapper.CPURead(addr)
}

func (cart *Cartridge) CPUWrite(addr uint16, val uint8) {
	cart.Mapper.CPUWrite(addr, val)
}

func (cart *Cartridge) PPURead(addr uint16) uint8 {
	return cart.Mapper.PPURead(addr)
}

func (cart *Cartridge) PPUWrite(addr uint16, val uint8) {
	cart.Mapper.PPUWrite(addr, val)
}

// Teardown zeroes and releases the cartridge buffers.
func (cart *Cartridge) Teardown() {
	for _, buf := range [][]byte{cart.PRGROM, cart.CHRROM, cart.CHRRAM, cart.PRGRAM} {
		clear(buf)
	}
	cart.PRGROM = nil
	cart.CHRROM = nil
	cart.CHRRAM = nil
	cart.PRGRAM = nil
	cart.Mapper = nil
}
