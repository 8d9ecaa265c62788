package hw

import (
	"tanuki/hw/snapshot"
	"tanuki/ines"
)

// StatefulMapper is implemented by mappers carrying runtime state worth
// saving (bank registers, IRQ counter).
type StatefulMapper interface {
	MapperState() snapshot.Mapper
	RestoreMapper(snapshot.Mapper)
}

/* CPU */

func (c *CPU) State() snapshot.CPU {
	return snapshot.CPU{
		A: c.A, X: c.X, Y: c.Y, SP: c.SP,
		P:          uint8(c.P),
		PC:         c.PC,
		Cycles:     c.Cycles,
		NMIPending: c.nmiPending,
		IRQPending: c.irqPending,
		Halted:     c.halted,
	}
}

// Restore rebuilds the CPU from a snapshot. The bus back-reference is left
// untouched.
func (c *CPU) Restore(s snapshot.CPU) {
	c.A, c.X, c.Y, c.SP = s.A, s.X, s.Y, s.SP
	c.P = P(s.P)
	c.PC = s.PC
	c.Cycles = s.Cycles
	c.nmiPending = s.NMIPending
	c.irqPending = s.IRQPending
	c.halted = s.Halted
}

/* Bus */

func (b *Bus) State() snapshot.Bus {
	s := snapshot.Bus{
		RAM:        b.RAM,
		Strobe:     b.strobe,
		OpenBus:    b.openBus,
		DMAPage:    b.dmaPage,
		DMAPending: b.dmaPending,
	}
	for i := range b.Controllers {
		s.Pads[i] = snapshot.Pad{
			Buttons: b.Controllers[i].buttons,
			Shift:   b.Controllers[i].shift,
		}
	}
	return s
}

// Restore rebuilds the bus from a snapshot, keeping the peer pointers.
func (b *Bus) Restore(s snapshot.Bus) {
	b.RAM = s.RAM
	b.strobe = s.Strobe
	b.openBus = s.OpenBus
	b.dmaPage = s.DMAPage
	b.dmaPending = s.DMAPending
	for i := range b.Controllers {
		b.Controllers[i].buttons = s.Pads[i].Buttons
		b.Controllers[i].shift = s.Pads[i].Shift
	}
}

/* PPU */

func (p *PPU) State() snapshot.PPU {
	return snapshot.PPU{
		Scanline: p.Scanline,
		Dot:      p.Dot,
		Frame:    p.Frame,

		Ctrl:    p.ctrl,
		Mask:    p.mask,
		Status:  p.status,
		OAMAddr: p.oamAddr,

		VRAM:    p.vram,
		Palette: p.palette,
		OAM:     p.oam,
		OAM2:    p.oam2,

		V: p.v, T: p.t,
		FineX:      p.fineX,
		W:          p.w,
		DataBuffer: p.dataBuffer,

		NTByte: p.ntByte, ATByte: p.atByte, BgLo: p.bgLo, BgHi: p.bgHi,
		BgShiftLo: p.bgShiftLo, BgShiftHi: p.bgShiftHi,
		AtShiftLo: p.atShiftLo, AtShiftHi: p.atShiftHi,
		AtLatchLo: p.atLatchLo, AtLatchHi: p.atLatchHi,

		SpriteCount:      p.spriteCount,
		SpritePatternsLo: p.spritePatternsLo,
		SpritePatternsHi: p.spritePatternsHi,
		SpritePositions:  p.spritePositions,
		SpriteAttributes: p.spriteAttributes,
		SpriteIndices:    p.spriteIndices,

		NMIPending: p.nmiPending,
		OddFrame:   p.oddFrame,
		FrameReady: p.frameReady,
	}
}

// Restore rebuilds the PPU from a snapshot. The cartridge back-reference
// is preserved; the framebuffer is redrawn by subsequent
// ticks rather than restored.
func (p *PPU) Restore(s snapshot.PPU) {
	p.Scanline = s.Scanline
	p.Dot = s.Dot
	p.Frame = s.Frame

	p.ctrl = s.Ctrl
	p.mask = s.Mask
	p.status = s.Status
	p.oamAddr = s.OAMAddr

	p.vram = s.VRAM
	p.palette = s.Palette
	p.oam = s.OAM
	p.oam2 = s.OAM2

	p.v, p.t = s.V, s.T
	p.fineX = s.FineX
	p.w = s.W
	p.dataBuffer = s.DataBuffer

	p.ntByte, p.atByte, p.bgLo, p.bgHi = s.NTByte, s.ATByte, s.BgLo, s.BgHi
	p.bgShiftLo, p.bgShiftHi = s.BgShiftLo, s.BgShiftHi
	p.atShiftLo, p.atShiftHi = s.AtShiftLo, s.AtShiftHi
	p.atLatchLo, p.atLatchHi = s.AtLatchLo, s.AtLatchHi

	p.spriteCount = s.SpriteCount
	p.spritePatternsLo = s.SpritePatternsLo
	p.spritePatternsHi = s.SpritePatternsHi
	p.spritePositions = s.SpritePositions
	p.spriteAttributes = s.SpriteAttributes
	p.spriteIndices = s.SpriteIndices

	p.nmiPending = s.NMIPending
	p.oddFrame = s.OddFrame
	p.frameReady = s.FrameReady
}

/* Cartridge */

func (cart *Cartridge) State() snapshot.Cartridge {
	s := snapshot.Cartridge{
		PRGRAM:    append([]byte(nil), cart.PRGRAM...),
		Mirroring: uint8(cart.Mirroring),
	}
	if cart.CHRRAM != nil {
		s.CHRRAM = append([]byte(nil), cart.CHRRAM...)
	}
	return s
}

// Restore rebuilds the writable cartridge memories. The ROMs and the mapper
// instance stay as loaded.
func (cart *Cartridge) Restore(s snapshot.Cartridge) {
	copy(cart.PRGRAM, s.PRGRAM)
	if cart.CHRRAM != nil && s.CHRRAM != nil {
		copy(cart.CHRRAM, s.CHRRAM)
	}
	cart.Mirroring = ines.Mirroring(s.Mirroring)
}
