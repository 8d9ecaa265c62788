// Package snapshot holds the serializable state of every subsystem, plus the
// container codec. Subsystems copy themselves into these structs and restore
// from them; back-references between subsystems are never serialized, the
// restoring side keeps its own wiring.
package snapshot

type NES struct {
	CPU  CPU
	Bus  Bus
	PPU  PPU
	APU  APU
	Cart Cartridge

	// Mapper is nil for boards without runtime state.
	Mapper *Mapper
}

type CPU struct {
	A, X, Y, SP uint8
	P           uint8
	PC          uint16
	Cycles      int64

	NMIPending bool
	IRQPending bool
	Halted     bool
}

type Pad struct {
	Buttons uint8
	Shift   uint8
}

type Bus struct {
	RAM        [0x800]uint8
	Pads       [2]Pad
	Strobe     bool
	OpenBus    uint8
	DMAPage    uint8
	DMAPending bool
}

type PPU struct {
	Scanline int
	Dot      int
	Frame    uint32

	Ctrl    uint8
	Mask    uint8
	Status  uint8
	OAMAddr uint8

	VRAM    [0x800]uint8
	Palette [0x20]uint8
	OAM     [0x100]uint8
	OAM2    [32]uint8

	V, T       uint16
	FineX      uint8
	W          bool
	DataBuffer uint8

	NTByte, ATByte, BgLo, BgHi uint8
	BgShiftLo, BgShiftHi       uint16
	AtShiftLo, AtShiftHi       uint8
	AtLatchLo, AtLatchHi       uint8

	SpriteCount      int
	SpritePatternsLo [8]uint8
	SpritePatternsHi [8]uint8
	SpritePositions  [8]uint8
	SpriteAttributes [8]uint8
	SpriteIndices    [8]uint8

	NMIPending bool
	OddFrame   bool
	FrameReady bool
}

type Envelope struct {
	Start    bool
	Loop     bool
	Constant bool
	Period   uint8
	Divider  uint8
	Counter  uint8
}

type LengthCounter struct {
	Enabled bool
	Halt    bool
	Counter uint8
}

type Square struct {
	DutyMode uint8
	DutyStep uint8

	Timer     uint16
	TimerLoad uint16

	SweepEnabled bool
	SweepPeriod  uint8
	SweepNegate  bool
	SweepShift   uint8
	SweepReload  bool
	SweepCounter uint8

	Envelope Envelope
	Length   LengthCounter
}

type Triangle struct {
	Timer     uint16
	TimerLoad uint16

	SequencerStep uint8
	LinearCounter uint8
	LinearReload  bool
	LinearLoad    uint8
	Control       bool

	Length LengthCounter
}

type Noise struct {
	Timer     uint16
	TimerLoad uint16

	ShiftRegister uint16
	Mode          bool

	Envelope Envelope
	Length   LengthCounter
}

type DMC struct {
	Enabled    bool
	IRQEnabled bool
	Loop       bool
	IRQPending bool

	Timer     uint16
	TimerLoad uint16

	OutputLevel uint8

	SampleAddress  uint16
	SampleLength   uint16
	CurrentAddress uint16
	BytesRemaining uint16

	ShiftRegister uint8
	BitsRemaining uint8
	SampleBuffer  uint8
	BufferEmpty   bool
	Silence       bool
}

type FrameCounter struct {
	Mode5      bool
	IRQInhibit bool
	FrameIRQ   bool
	Cycle      int
	Step       int
}

type APU struct {
	Square1  Square
	Square2  Square
	Triangle Triangle
	Noise    Noise
	DMC      DMC
	FC       FrameCounter

	Cycle       uint64
	SampleClock float64
}

type Cartridge struct {
	PRGRAM    []byte
	CHRRAM    []byte // nil for CHR-ROM carts
	Mirroring uint8
}

// Mapper is a board-agnostic register dump; each mapper reads back only the
// fields it populated.
type Mapper struct {
	BankSelect uint8
	Banks      [8]uint8
	PRGMode    uint8
	CHRMode    uint8

	PRGBank uint8
	CHRBank uint8

	IRQLatch   uint8
	IRQCounter uint8
	IRQEnabled bool
	IRQPending bool
	IRQReload  bool

	PRGRAMProtect uint8

	PrevA12High      bool
	LastA12HighCycle uint32
}
