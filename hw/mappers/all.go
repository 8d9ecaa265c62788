// Package mappers implements the cartridge bank-switching boards. Each
// mapper translates CPU- and PPU-side addresses into offsets of the
// cartridge memories; some hold private bank registers and one (MMC3) clocks
// a scanline IRQ counter off the PPU address bus.
package mappers

import (
	"fmt"

	"tanuki/emu/log"
	"tanuki/hw"
)

var modMapper = log.NewModule("mapper")

// MapperDesc describes one supported board.
type MapperDesc struct {
	Name string
	New  func(cart *hw.Cartridge) hw.Mapper
}

// All maps iNES mapper ids to their boards.
var All = map[uint8]MapperDesc{
	0:  NROM,
	2:  UxROM,
	3:  CNROM,
	4:  MMC3,
	7:  AxROM,
	66: GxROM,
}

// Load instantiates the mapper named by the cartridge header and attaches it
// to the cartridge.
func Load(cart *hw.Cartridge) error {
	desc, ok := All[cart.MapperID]
	if !ok {
		return fmt.Errorf("unsupported mapper %d", cart.MapperID)
	}

	m := desc.New(cart)
	m.Reset()
	cart.Mapper = m

	modMapper.InfoZ("mapper loaded").
		String("name", desc.Name).
		Uint8("id", cart.MapperID).
		End()
	return nil
}
