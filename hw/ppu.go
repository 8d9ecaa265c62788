package hw

import (
	"tanuki/emu/log"
	"tanuki/ines"
)

const (
	NumScanlines = 262 // scanlines per frame
	NumDots      = 341 // dots per scanline

	FrameWidth  = 256
	FrameHeight = 240
)

// PPUCTRL bits ($2000).
const (
	// Nametable selection mask
	// (0 = $2000; 1 = $2400; 2 = $2800; 3 = $2C00)
	ntselect = 0b11

	// VRAM address increment per CPU read/write of PPUDATA
	// (0: +1; 1: +32)
	vramIncr = 2

	// Sprite pattern table address for 8x8 sprites
	// (ignored in 8x16 mode)
	spriteAddr = 3

	// Background pattern table address (0: $0000; 1: $1000)
	backgroundAddr = 4

	// Sprite size (0: 8x8 pixels; 1: 8x16 pixels)
	spriteSize = 5

	// Generate an NMI at the start of vertical blanking
	nmiOutput = 7
)

// PPUMASK bits ($2001).
const (
	greyscale       = 0
	leftmostBg      = 1 // show background in leftmost 8 pixels
	leftmostSprites = 2 // show sprites in leftmost 8 pixels
	showBg          = 3
	showSprites     = 4
)

// PPUSTATUS bits ($2002).
const (
	spriteOverflow = 5
	sprite0Hit     = 6
	vblank         = 7
)

// PPU is the picture processor: a background tile pipeline, a sprite
// evaluation unit and a pixel compositor driven one dot at a time, with the
// loopy v/t scroll register pair holding the current VRAM address.
type PPU struct {
	Cart *Cartridge

	Scanline int // current scanline, 0..261
	Dot      int // current dot within the scanline, 0..340
	Frame    uint32

	ctrl   uint8
	mask   uint8
	status uint8

	vram    [0x800]uint8 // two nametables
	palette [0x20]uint8
	oam     [0x100]uint8
	oam2    [32]uint8 // secondary OAM for the next scanline

	oamAddr uint8

	// VRAM access state: current and temporary addresses (15 bits each),
	// fine-x scroll, the shared write toggle and the PPUDATA read buffer.
	v, t       uint16
	fineX      uint8
	w          bool
	dataBuffer uint8

	// Background fetch latches and shifters.
	ntByte    uint8
	atByte    uint8
	bgLo      uint8
	bgHi      uint8
	bgShiftLo uint16
	bgShiftHi uint16
	atShiftLo uint8
	atShiftHi uint8
	atLatchLo uint8
	atLatchHi uint8

	// Sprite slots for the scanline being drawn.
	spriteCount      int
	spritePatternsLo [8]uint8
	spritePatternsHi [8]uint8
	spritePositions  [8]uint8
	spriteAttributes [8]uint8
	spriteIndices    [8]uint8

	framebuffer [FrameWidth * FrameHeight]uint32
	frameReady  bool

	nmiPending bool
	oddFrame   bool
}

func NewPPU(cart *Cartridge) *PPU {
	p := &PPU{Cart: cart}
	p.Reset()
	return p
}

func (p *PPU) Reset() {
	p.Scanline = 0
	p.Dot = 0
	p.Frame = 0
	p.ctrl = 0
	p.mask = 0
	p.status = 0
	p.oamAddr = 0
	p.v = 0
	p.t = 0
	p.fineX = 0
	p.w = false
	p.dataBuffer = 0
	p.frameReady = false
	p.nmiPending = false
	p.oddFrame = false
}

// Framebuffer returns the 256x240 ARGB frame under construction. It is fully
// drawn when FrameReady reports true.
func (p *PPU) Framebuffer() []uint32 {
	return p.framebuffer[:]
}

// FrameReady reports that the current frame is complete; the runner collects
// the framebuffer and acknowledges with ClearFrameReady.
func (p *PPU) FrameReady() bool {
	return p.frameReady
}

func (p *PPU) ClearFrameReady() {
	p.frameReady = false
}

// TakeNMI returns true once for each NMI the PPU has raised.
func (p *PPU) TakeNMI() bool {
	pending := p.nmiPending
	p.nmiPending = false
	return pending
}

func (p *PPU) ctrlBit(bit int) bool { return p.ctrl&(1<<bit) != 0 }
func (p *PPU) maskBit(bit int) bool { return p.mask&(1<<bit) != 0 }

func (p *PPU) renderingEnabled() bool {
	return p.maskBit(showBg) || p.maskBit(showSprites)
}

/* internal memory map */

// mirrorVRAMAddr folds a $2000-$3EFF address onto the 2KB of nametable RAM
// according to the cartridge mirroring.
func (p *PPU) mirrorVRAMAddr(addr uint16) uint16 {
	addr = (addr - 0x2000) & 0x0FFF
	table := addr / 0x0400
	offset := addr % 0x0400

	switch p.Cart.Mirroring {
	case ines.MirrorHorizontal:
		table = (table & 0x02) >> 1
	case ines.MirrorVertical:
		table = table & 0x01
	case ines.MirrorSingleLow:
		table = 0
	case ines.MirrorSingleHigh:
		table = 1
	}
	return table*0x0400 + offset
}

// paletteIndex applies the $3F10/$3F14/$3F18/$3F1C mirroring rule.
func paletteIndex(addr uint16) uint16 {
	addr &= 0x1F
	if addr == 0x10 || addr == 0x14 || addr == 0x18 || addr == 0x1C {
		addr -= 0x10
	}
	return addr
}

func (p *PPU) read(addr uint16) uint8 {
	addr &= 0x3FFF
	p.notifyA12(addr)

	switch {
	case addr < 0x2000:
		return p.Cart.PPURead(addr)
	case addr < 0x3F00:
		return p.vram[p.mirrorVRAMAddr(addr)]
	default:
		return p.palette[paletteIndex(addr)]
	}
}

func (p *PPU) write(addr uint16, val uint8) {
	addr &= 0x3FFF
	p.notifyA12(addr)

	switch {
	case addr < 0x2000:
		p.Cart.PPUWrite(addr, val)
	case addr < 0x3F00:
		p.vram[p.mirrorVRAMAddr(addr)] = val
	default:
		p.palette[paletteIndex(addr)] = val
	}
}

// notifyA12 forwards the accessed address and the absolute dot position to
// mappers that watch the A12 line (MMC3 scanline counter).
func (p *PPU) notifyA12(addr uint16) {
	if watcher, ok := p.Cart.Mapper.(A12Watcher); ok {
		watcher.NotifyA12(addr, uint32(p.Scanline*NumDots+p.Dot))
	}
}

/* CPU-exposed registers */

// ReadRegister handles a CPU read of a PPU register; only the low 3 address
// bits select the register.
func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch addr & 0x07 {
	case 2: // PPUSTATUS
		// The low 5 bits float with the last buffered value.
		res := p.status&0xE0 | p.dataBuffer&0x1F
		p.status &^= 1 << vblank
		p.w = false
		return res
	case 4: // OAMDATA
		return p.oam[p.oamAddr]
	case 7: // PPUDATA
		var res uint8
		if p.v&0x3FFF < 0x3F00 {
			// VRAM reads go through the read buffer, one access late.
			res = p.dataBuffer
			p.dataBuffer = p.read(p.v)
		} else {
			// Palette reads are immediate, but still refill the buffer
			// from the nametable underneath.
			res = p.read(p.v)
			p.dataBuffer = p.read(p.v - 0x1000)
		}
		p.incVRAMAddr()
		return res
	}
	return 0
}

// WriteRegister handles a CPU write to a PPU register.
func (p *PPU) WriteRegister(addr uint16, val uint8) {
	switch addr & 0x07 {
	case 0: // PPUCTRL
		hadNMIOutput := p.ctrlBit(nmiOutput)
		p.ctrl = val
		p.t = p.t&0xF3FF | uint16(val&ntselect)<<10

		// Toggling NMI output while the VBlank flag is up raises another
		// NMI immediately.
		if !hadNMIOutput && p.ctrlBit(nmiOutput) && p.status&(1<<vblank) != 0 {
			p.nmiPending = true
		}
	case 1: // PPUMASK
		p.mask = val
	case 3: // OAMADDR
		p.oamAddr = val
	case 4: // OAMDATA
		p.oam[p.oamAddr] = val
		p.oamAddr++
	case 5: // PPUSCROLL
		if !p.w {
			p.t = p.t&0xFFE0 | uint16(val)>>3
			p.fineX = val & 0x07
			p.w = true
		} else {
			p.t = p.t&0x8C1F | uint16(val&0x07)<<12 | uint16(val&0xF8)<<2
			p.w = false
		}
	case 6: // PPUADDR
		if !p.w {
			p.t = p.t&0x00FF | uint16(val&0x3F)<<8
			p.w = true
		} else {
			p.t = p.t&0xFF00 | uint16(val)
			p.v = p.t
			p.w = false
		}
	case 7: // PPUDATA
		p.write(p.v, val)
		p.incVRAMAddr()
	}
}

func (p *PPU) incVRAMAddr() {
	if p.ctrlBit(vramIncr) {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x7FFF
}

// OAMDMA copies a full 256-byte page into object memory.
func (p *PPU) OAMDMA(page []byte) {
	if len(page) != 256 {
		log.ModPPU.WarnZ("bad OAM DMA page size").Int("len", len(page)).End()
		return
	}
	copy(p.oam[:], page)
}

/* scroll register automaton */

func (p *PPU) incrementX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400 // switch horizontal nametable
	} else {
		p.v++
	}
}

func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
	} else {
		p.v &^= 0x7000
		y := (p.v & 0x03E0) >> 5
		switch y {
		case 29:
			y = 0
			p.v ^= 0x0800 // switch vertical nametable
		case 31:
			y = 0 // out-of-bounds coarse Y wraps without a nametable flip
		default:
			y++
		}
		p.v = p.v&^0x03E0 | y<<5
	}
}

func (p *PPU) copyX() {
	p.v = p.v&0xFBE0 | p.t&0x041F
}

func (p *PPU) copyY() {
	p.v = p.v&0x841F | p.t&0x7BE0
}

/* background pipeline */

func (p *PPU) loadShifters() {
	p.bgShiftLo = p.bgShiftLo&0xFF00 | uint16(p.bgLo)
	p.bgShiftHi = p.bgShiftHi&0xFF00 | uint16(p.bgHi)
	p.atLatchLo = 0
	if p.atByte&0x01 != 0 {
		p.atLatchLo = 0xFF
	}
	p.atLatchHi = 0
	if p.atByte&0x02 != 0 {
		p.atLatchHi = 0xFF
	}
}

func (p *PPU) shiftShifters() {
	if p.maskBit(showBg) {
		p.bgShiftLo <<= 1
		p.bgShiftHi <<= 1
		p.atShiftLo = p.atShiftLo<<1 | p.atLatchLo&1
		p.atShiftHi = p.atShiftHi<<1 | p.atLatchHi&1
	}
}

func (p *PPU) fetchNTByte() {
	p.ntByte = p.read(0x2000 | p.v&0x0FFF)
}

func (p *PPU) fetchATByte() {
	addr := 0x23C0 | p.v&0x0C00 | p.v>>4&0x38 | p.v>>2&0x07
	shift := p.v>>4&4 | p.v&2
	p.atByte = p.read(addr) >> shift & 0x03
}

// The pattern address is recomputed from PPUCTRL at every fetch; the base is
// deliberately not latched across the scanline so that mid-scanline bank
// switches take effect on the next tile.
func (p *PPU) bgPatternAddr() uint16 {
	base := uint16(0)
	if p.ctrlBit(backgroundAddr) {
		base = 0x1000
	}
	return base + uint16(p.ntByte)<<4 + p.v>>12&0x07
}

func (p *PPU) fetchBgLo() {
	p.bgLo = p.read(p.bgPatternAddr())
}

func (p *PPU) fetchBgHi() {
	p.bgHi = p.read(p.bgPatternAddr() + 8)
}

/* sprite pipeline */

func (p *PPU) spriteHeight() int {
	if p.ctrlBit(spriteSize) {
		return 16
	}
	return 8
}

// evaluateSprites scans the 64 OAM entries at dot 257 and copies the first
// eight that cover the current scanline into secondary OAM. A ninth match
// sets the overflow flag; the hardware's buggy partial scan is not modeled.
func (p *PPU) evaluateSprites() {
	height := p.spriteHeight()
	p.spriteCount = 0
	for i := range p.oam2 {
		p.oam2[i] = 0xFF
	}

	for i := 0; i < 64; i++ {
		y := p.oam[i*4]
		row := p.Scanline - int(y)
		if row < 0 || row >= height {
			continue
		}
		if p.spriteCount == 8 {
			p.status |= 1 << spriteOverflow
			break
		}
		copy(p.oam2[p.spriteCount*4:], p.oam[i*4:i*4+4])
		p.spriteIndices[p.spriteCount] = uint8(i)
		p.spriteCount++
	}
}

// reverse8 mirrors the bits of b, for horizontally flipped sprites.
func reverse8(b uint8) uint8 {
	b = b&0x55<<1 | b&0xAA>>1
	b = b&0x33<<2 | b&0xCC>>2
	b = b&0x0F<<4 | b&0xF0>>4
	return b
}

// fetchSprite loads the pattern bytes for one secondary OAM slot. Slots past
// spriteCount still perform the dummy $FF tile fetch the hardware does, which
// matters for mappers clocking on A12.
func (p *PPU) fetchSprite(slot int) {
	height := p.spriteHeight()

	var addr uint16
	if slot < p.spriteCount {
		y := p.oam2[slot*4]
		tile := p.oam2[slot*4+1]
		attr := p.oam2[slot*4+2]
		p.spriteAttributes[slot] = attr
		p.spritePositions[slot] = p.oam2[slot*4+3]

		row := p.Scanline - int(y)
		if attr&0x80 != 0 { // vertical flip
			row = height - 1 - row
		}

		if height == 16 {
			// Bit 0 of the tile index selects the pattern bank; the bottom
			// half comes from the next tile.
			table := uint16(tile&0x01) * 0x1000
			tile &= 0xFE
			if row >= 8 {
				tile++
				row -= 8
			}
			addr = table + uint16(tile)<<4 + uint16(row)
		} else {
			table := uint16(0)
			if p.ctrlBit(spriteAddr) {
				table = 0x1000
			}
			addr = table + uint16(tile)<<4 + uint16(row)
		}

		lo := p.read(addr)
		hi := p.read(addr + 8)
		if attr&0x40 != 0 { // horizontal flip
			lo = reverse8(lo)
			hi = reverse8(hi)
		}
		p.spritePatternsLo[slot] = lo
		p.spritePatternsHi[slot] = hi
		return
	}

	// Empty slot: dummy fetch of tile $FF.
	table := uint16(0)
	if height == 16 || p.ctrlBit(spriteAddr) {
		table = 0x1000
	}
	addr = table + 0xFF<<4
	p.read(addr)
	p.read(addr + 8)
}

/* pixel compositor */

func (p *PPU) backgroundPixel(x int) (pixel, pal uint8) {
	if !p.maskBit(showBg) {
		return 0, 0
	}
	if !p.maskBit(leftmostBg) && x < 8 {
		return 0, 0
	}
	mux := uint16(0x8000) >> p.fineX
	if p.bgShiftLo&mux != 0 {
		pixel |= 1
	}
	if p.bgShiftHi&mux != 0 {
		pixel |= 2
	}
	amux := uint8(0x80) >> p.fineX
	if p.atShiftLo&amux != 0 {
		pal |= 1
	}
	if p.atShiftHi&amux != 0 {
		pal |= 2
	}
	return pixel, pal
}

func (p *PPU) spritePixel(x int) (pixel, pal, priority uint8, zero bool) {
	if !p.maskBit(showSprites) {
		return
	}
	if !p.maskBit(leftmostSprites) && x < 8 {
		return
	}
	for i := 0; i < p.spriteCount; i++ {
		offset := x - int(p.spritePositions[i])
		if offset < 0 || offset > 7 {
			continue
		}
		var px uint8
		if p.spritePatternsLo[i]>>(7-offset)&1 != 0 {
			px |= 1
		}
		if p.spritePatternsHi[i]>>(7-offset)&1 != 0 {
			px |= 2
		}
		if px == 0 {
			continue
		}
		return px, p.spriteAttributes[i]&0x03 + 4, p.spriteAttributes[i] >> 5 & 1, p.spriteIndices[i] == 0
	}
	return
}

func (p *PPU) renderPixel() {
	x := p.Dot - 1
	y := p.Scanline
	if x < 0 || x >= FrameWidth || y >= FrameHeight {
		return
	}

	bgPixel, bgPal := p.backgroundPixel(x)
	spPixel, spPal, spPriority, spZero := p.spritePixel(x)

	var pixel, pal uint8
	switch {
	case bgPixel == 0 && spPixel == 0:
		// Universal background color.
	case bgPixel == 0:
		pixel, pal = spPixel, spPal
	case spPixel == 0:
		pixel, pal = bgPixel, bgPal
	default:
		// Both opaque: this is where sprite 0 can hit. The left-8 clip
		// masks already forced the clipped source transparent, so only the
		// x=255 corner case needs excluding here.
		if spZero && x < 255 {
			p.status |= 1 << sprite0Hit
		}
		if spPriority == 0 {
			pixel, pal = spPixel, spPal
		} else {
			pixel, pal = bgPixel, bgPal
		}
	}

	color := p.read(0x3F00+uint16(pal)<<2+uint16(pixel)) & 0x3F
	p.framebuffer[y*FrameWidth+x] = nesPalette[color] | 0xFF000000
}

/* dot sequencing */

// Tick advances the PPU by one dot.
func (p *PPU) Tick() {
	rendering := p.renderingEnabled()
	preLine := p.Scanline == 261
	visibleLine := p.Scanline < 240
	renderLine := preLine || visibleLine
	prefetchDot := p.Dot >= 321 && p.Dot <= 336
	visibleDot := p.Dot >= 1 && p.Dot <= 256
	fetchDot := prefetchDot || visibleDot

	if rendering {
		if visibleLine && visibleDot {
			p.renderPixel()
		}

		if renderLine && fetchDot {
			p.shiftShifters()
			switch (p.Dot - 1) % 8 {
			case 0:
				p.loadShifters()
				p.fetchNTByte()
			case 2:
				p.fetchATByte()
			case 4:
				p.fetchBgLo()
			case 6:
				p.fetchBgHi()
			case 7:
				p.incrementX()
			}
		}

		if renderLine {
			if p.Dot == 256 {
				p.incrementY()
			}
			if p.Dot == 257 {
				p.loadShifters()
				p.copyX()
			}
			if p.Dot == 337 || p.Dot == 339 {
				// Dummy nametable fetches at the end of the line.
				p.fetchNTByte()
			}
		}

		if preLine && p.Dot >= 280 && p.Dot <= 304 {
			p.copyY()
		}

		if visibleLine {
			if p.Dot == 257 {
				p.evaluateSprites()
			}
			// Sprite pattern fetches are spread across dots 257-320, one
			// slot per 8-dot group.
			if p.Dot >= 257 && p.Dot <= 320 && (p.Dot-257)%8 == 0 {
				p.fetchSprite((p.Dot - 257) / 8)
			}
		}
	}

	if p.Scanline == 241 && p.Dot == 1 {
		p.status |= 1 << vblank
		if p.ctrlBit(nmiOutput) {
			p.nmiPending = true
		}
	}

	if preLine && p.Dot == 1 {
		p.status &^= 1<<vblank | 1<<sprite0Hit | 1<<spriteOverflow
	}

	// On odd frames with rendering enabled the pre-render line is one dot
	// short.
	if preLine && p.Dot == 339 && rendering && p.oddFrame {
		p.wrapFrame()
		return
	}

	p.Dot++
	if p.Dot > 340 {
		p.Dot = 0
		p.Scanline++
		if p.Scanline > 261 {
			p.wrapFrame()
		}
	}
}

func (p *PPU) wrapFrame() {
	p.Dot = 0
	p.Scanline = 0
	p.Frame++
	p.frameReady = true
	p.oddFrame = !p.oddFrame
}
