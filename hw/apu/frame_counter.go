package apu

// The frame counter divides the CPU clock down to the ~240Hz quarter-frame
// cadence.
const frameCounterPeriod = 7457

// frameCounter sequences the envelope/linear (quarter-frame) and
// length/sweep (half-frame) clocks, in 4-step or 5-step mode, and raises the
// frame IRQ at the end of the 4-step sequence unless inhibited.
type frameCounter struct {
	mode5      bool
	irqInhibit bool
	frameIRQ   bool

	cycle int
	step  int
}

// Write handles $4017 (MI-- ----). Entering 5-step mode clocks both units
// immediately.
func (fc *frameCounter) Write(val uint8) (clockNow bool) {
	fc.mode5 = val&0x80 != 0
	fc.irqInhibit = val&0x40 != 0
	if fc.irqInhibit {
		fc.frameIRQ = false
	}
	fc.cycle = 0
	fc.step = 0
	return fc.mode5
}

// Tick advances one CPU cycle and reports which clocks fire.
func (fc *frameCounter) Tick() (quarter, half bool) {
	fc.cycle++
	if fc.cycle < frameCounterPeriod {
		return false, false
	}
	fc.cycle = 0
	fc.step++

	if !fc.mode5 {
		quarter = true
		half = fc.step == 2 || fc.step == 4
		if fc.step == 4 {
			if !fc.irqInhibit {
				fc.frameIRQ = true
			}
			fc.step = 0
		}
		return quarter, half
	}

	// 5-step mode: step 4 is silent, no IRQ ever.
	quarter = fc.step != 4
	half = fc.step == 2 || fc.step == 5
	if fc.step == 5 {
		fc.step = 0
	}
	return quarter, half
}

func (fc *frameCounter) reset() {
	*fc = frameCounter{}
}
