package main

import (
	"fmt"
	"io"

	"tanuki/hw"
	"tanuki/hw/apu"
	"tanuki/hw/mappers"
	"tanuki/hw/snapshot"
	"tanuki/ines"
)

// NES assembles the console: CPU, PPU, APU, bus and cartridge. The outer
// loop steps one CPU instruction at a time; the bus fans the elapsed cycles
// out to the PPU (3:1) and the APU (1:1) and delivers pending interrupts at
// the instruction boundary.
type NES struct {
	CPU  *hw.CPU
	PPU  *hw.PPU
	APU  *apu.APU
	Bus  *hw.Bus
	Cart *hw.Cartridge

	romName string
}

// PowerUp wires the console around the given rom and resets it. sampleRate
// selects the audio output rate; zero means 44.1kHz.
func (nes *NES) PowerUp(rom *ines.Rom, sampleRate int) error {
	if rom.IsNES20() {
		return fmt.Errorf("NES 2.0 roms are not supported")
	}

	cart := hw.NewCartridge(rom)
	if err := mappers.Load(cart); err != nil {
		return err
	}

	bus := hw.NewBus()
	bus.Cart = cart
	bus.PPU = hw.NewPPU(cart)
	bus.APU = apu.New(sampleRate)
	bus.APU.DMC.ReadMem = bus.Read8

	nes.CPU = hw.NewCPU(bus)
	nes.PPU = bus.PPU
	nes.APU = bus.APU
	nes.Bus = bus
	nes.Cart = cart

	nes.Reset()
	return nil
}

// Reset re-initializes all subsystems without freeing cartridge memory.
func (nes *NES) Reset() {
	nes.Bus.Reset()
	nes.PPU.Reset()
	nes.APU.Reset()
	nes.Cart.Mapper.Reset()
	nes.CPU.Reset()
}

// Teardown frees cartridge buffers and mapper state. The console must be
// powered up again before further use.
func (nes *NES) Teardown() {
	nes.Cart.Teardown()
}

// SetButtons stores the current button state of one controller.
func (nes *NES) SetButtons(pad int, state uint8) {
	nes.Bus.Controllers[pad].SetButtons(state)
}

// RunFrame executes until the PPU signals a complete frame. The framebuffer
// and the accumulated audio samples are then ready for collection.
func (nes *NES) RunFrame() {
	for !nes.PPU.FrameReady() {
		nes.Step()
	}
	nes.PPU.ClearFrameReady()
}

// Step services a pending OAM DMA, then executes one CPU instruction and
// distributes its cycles.
func (nes *NES) Step() {
	if page, pending := nes.Bus.DMAPending(); pending {
		nes.Bus.ClearDMA()
		nes.runOAMDMA(page)
	}

	cycles := nes.CPU.Step()
	nes.Bus.Tick(cycles)
}

// runOAMDMA copies 256 bytes from the named CPU page into PPU object memory
// through the OAMDATA register, then advances the machine through the
// 513-cycle stall (one more when the DMA starts on an odd CPU cycle). NMIs
// raised during the stall are delivered at the next instruction boundary.
func (nes *NES) runOAMDMA(page uint8) {
	base := uint16(page) << 8
	for i := uint16(0); i < 256; i++ {
		nes.Bus.Write8(0x2004, nes.Bus.Read8(base+i))
	}

	stall := int64(513)
	if nes.CPU.Cycles&1 != 0 {
		stall++
	}
	nes.CPU.Cycles += stall
	nes.Bus.Tick(stall)
}

// Framebuffer returns the last completed 256x240 ARGB frame.
func (nes *NES) Framebuffer() []uint32 {
	return nes.PPU.Framebuffer()
}

// Samples drains the audio samples accumulated since the last call.
func (nes *NES) Samples() []float32 {
	return nes.APU.Samples()
}

/* save states */

// SaveState serializes the full machine state to w.
func (nes *NES) SaveState(w io.Writer) error {
	state := &snapshot.NES{
		CPU:  nes.CPU.State(),
		Bus:  nes.Bus.State(),
		PPU:  nes.PPU.State(),
		APU:  nes.APU.State(),
		Cart: nes.Cart.State(),
	}
	if sm, ok := nes.Cart.Mapper.(hw.StatefulMapper); ok {
		ms := sm.MapperState()
		state.Mapper = &ms
	}

	meta := snapshot.Meta{Rom: nes.romName, Frame: nes.PPU.Frame}
	return snapshot.Save(w, meta, state)
}

// LoadState restores a machine state previously written by SaveState into
// the powered-up console. Subsystem back-references and the loaded rom are
// preserved; only state is replaced.
func (nes *NES) LoadState(r io.Reader) error {
	_, state, err := snapshot.Load(r)
	if err != nil {
		return err
	}

	nes.CPU.Restore(state.CPU)
	nes.Bus.Restore(state.Bus)
	nes.PPU.Restore(state.PPU)
	nes.APU.Restore(state.APU)
	nes.Cart.Restore(state.Cart)
	if state.Mapper != nil {
		if sm, ok := nes.Cart.Mapper.(hw.StatefulMapper); ok {
			sm.RestoreMapper(*state.Mapper)
		}
	}
	return nil
}
