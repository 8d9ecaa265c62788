package apu

// lengthTable is indexed by the upper 5 bits of the channel length register.
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// LengthCounter silences its channel when it reaches zero. It only reloads
// while the channel is enabled, and disabling the channel through the status
// register zeroes it immediately.
type LengthCounter struct {
	enabled bool
	halt    bool
	counter uint8
}

func (lc *LengthCounter) Load(val uint8) {
	if lc.enabled {
		lc.counter = lengthTable[val>>3]
	}
}

// Tick is the half-frame clock.
func (lc *LengthCounter) Tick() {
	if lc.counter > 0 && !lc.halt {
		lc.counter--
	}
}

func (lc *LengthCounter) SetEnabled(on bool) {
	if !on {
		lc.counter = 0
	}
	lc.enabled = on
}

func (lc *LengthCounter) SetHalt(halt bool) {
	lc.halt = halt
}

// Active reports whether the counter is nonzero.
func (lc *LengthCounter) Active() bool {
	return lc.counter > 0
}

func (lc *LengthCounter) reset() {
	*lc = LengthCounter{}
}
