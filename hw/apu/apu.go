// Package apu implements the audio processor: two pulse channels, a
// triangle, a noise channel and the delta-modulation channel, sequenced by a
// frame counter and mixed into a mono float sample stream at the host sample
// rate.
package apu

import (
	"tanuki/emu/log"
)

// CPUFrequency is the NTSC CPU clock rate; the APU is ticked once per CPU
// cycle.
const CPUFrequency = 1789773

// DefaultSampleRate is the host sample rate the mixer resolves to.
const DefaultSampleRate = 44100

// maxBufferedSamples bounds the internal sample buffer; the collaborator is
// expected to drain it every frame.
const maxBufferedSamples = 1024

type APU struct {
	Square1  Square
	Square2  Square
	Triangle Triangle
	Noise    Noise
	DMC      DMC

	fc frameCounter

	cycle uint64

	samplePeriod float64
	sampleClock  float64
	samples      []float32
}

// New creates an APU producing samples at the given rate; zero selects
// DefaultSampleRate.
func New(sampleRate int) *APU {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	a := &APU{
		samplePeriod: float64(CPUFrequency) / float64(sampleRate),
		samples:      make([]float32, 0, maxBufferedSamples),
	}
	a.Square1.channel = 1
	a.Square2.channel = 2
	a.Reset()
	return a
}

func (a *APU) Reset() {
	a.Square1.reset()
	a.Square2.reset()
	a.Triangle.reset()
	a.Noise.reset()
	a.DMC.reset()
	a.fc.reset()
	a.cycle = 0
	a.sampleClock = 0
	a.samples = a.samples[:0]
}

// Tick advances the APU by one CPU cycle.
func (a *APU) Tick() {
	// Pulse and noise timers run at half the CPU rate, the triangle and
	// DMC at the full rate.
	if a.cycle&1 == 0 {
		a.Square1.TickTimer()
		a.Square2.TickTimer()
		a.Noise.TickTimer()
	}
	a.Triangle.TickTimer()
	a.DMC.TickTimer()

	quarter, half := a.fc.Tick()
	if quarter {
		a.clockQuarterFrame()
	}
	if half {
		a.clockHalfFrame()
	}

	a.cycle++

	a.sampleClock++
	if a.sampleClock >= a.samplePeriod {
		a.sampleClock -= a.samplePeriod
		a.appendSample()
	}
}

func (a *APU) clockQuarterFrame() {
	a.Square1.Envelope.Tick()
	a.Square2.Envelope.Tick()
	a.Noise.Envelope.Tick()
	a.Triangle.TickLinear()
}

func (a *APU) clockHalfFrame() {
	a.Square1.Length.Tick()
	a.Square2.Length.Tick()
	a.Triangle.Length.Tick()
	a.Noise.Length.Tick()
	a.Square1.TickSweep()
	a.Square2.TickSweep()
}

func (a *APU) appendSample() {
	if len(a.samples) >= maxBufferedSamples {
		return
	}
	a.samples = append(a.samples, mix(
		a.Square1.Output(),
		a.Square2.Output(),
		a.Triangle.Output(),
		a.Noise.Output(),
		a.DMC.Output(),
	))
}

// Samples hands the accumulated sample buffer to the collaborator and clears
// it. The returned slice is only valid until the next Tick.
func (a *APU) Samples() []float32 {
	out := a.samples
	a.samples = a.samples[:0]
	return out
}

// IRQ reports whether the APU holds the IRQ line: frame counter or DMC.
func (a *APU) IRQ() bool {
	return a.fc.frameIRQ || a.DMC.IRQPending()
}

// ReadStatus services $4015: per-channel length status, DMC state and the
// frame IRQ flag, which the read acknowledges.
func (a *APU) ReadStatus() uint8 {
	var status uint8
	if a.Square1.Length.Active() {
		status |= 0x01
	}
	if a.Square2.Length.Active() {
		status |= 0x02
	}
	if a.Triangle.Length.Active() {
		status |= 0x04
	}
	if a.Noise.Length.Active() {
		status |= 0x08
	}
	if a.DMC.BytesRemaining() > 0 {
		status |= 0x10
	}
	if a.fc.frameIRQ {
		status |= 0x40
	}
	if a.DMC.IRQPending() {
		status |= 0x80
	}

	a.fc.frameIRQ = false
	return status
}

// WriteRegister routes a CPU write to $4000-$4013, $4015 or $4017.
func (a *APU) WriteRegister(addr uint16, val uint8) {
	switch addr {
	case 0x4000:
		a.Square1.WriteControl(val)
	case 0x4001:
		a.Square1.WriteSweep(val)
	case 0x4002:
		a.Square1.WriteTimerLo(val)
	case 0x4003:
		a.Square1.WriteTimerHi(val)
	case 0x4004:
		a.Square2.WriteControl(val)
	case 0x4005:
		a.Square2.WriteSweep(val)
	case 0x4006:
		a.Square2.WriteTimerLo(val)
	case 0x4007:
		a.Square2.WriteTimerHi(val)
	case 0x4008:
		a.Triangle.WriteLinear(val)
	case 0x400A:
		a.Triangle.WriteTimerLo(val)
	case 0x400B:
		a.Triangle.WriteTimerHi(val)
	case 0x400C:
		a.Noise.WriteControl(val)
	case 0x400E:
		a.Noise.WritePeriod(val)
	case 0x400F:
		a.Noise.WriteLength(val)
	case 0x4010:
		a.DMC.WriteControl(val)
	case 0x4011:
		a.DMC.WriteLevel(val)
	case 0x4012:
		a.DMC.WriteAddress(val)
	case 0x4013:
		a.DMC.WriteLength(val)
	case 0x4015:
		a.Square1.Length.SetEnabled(val&0x01 != 0)
		a.Square2.Length.SetEnabled(val&0x02 != 0)
		a.Triangle.Length.SetEnabled(val&0x04 != 0)
		a.Noise.Length.SetEnabled(val&0x08 != 0)
		a.DMC.SetEnabled(val&0x10 != 0)
		a.DMC.ClearIRQ()
	case 0x4017:
		if a.fc.Write(val) {
			a.clockQuarterFrame()
			a.clockHalfFrame()
		}
	default:
		log.ModSound.DebugZ("write to unmapped APU register").
			Hex16("addr", addr).
			Hex8("val", val).
			End()
	}
}
