package apu

import (
	"tanuki/hw/snapshot"
)

func (env *Envelope) state() snapshot.Envelope {
	return snapshot.Envelope{
		Start: env.start, Loop: env.loop, Constant: env.constant,
		Period: env.period, Divider: env.divider, Counter: env.counter,
	}
}

func (env *Envelope) restore(s snapshot.Envelope) {
	env.start, env.loop, env.constant = s.Start, s.Loop, s.Constant
	env.period, env.divider, env.counter = s.Period, s.Divider, s.Counter
}

func (lc *LengthCounter) state() snapshot.LengthCounter {
	return snapshot.LengthCounter{Enabled: lc.enabled, Halt: lc.halt, Counter: lc.counter}
}

func (lc *LengthCounter) restore(s snapshot.LengthCounter) {
	lc.enabled, lc.halt, lc.counter = s.Enabled, s.Halt, s.Counter
}

func (sq *Square) state() snapshot.Square {
	return snapshot.Square{
		DutyMode: sq.dutyMode, DutyStep: sq.dutyStep,
		Timer: sq.timer, TimerLoad: sq.timerLoad,
		SweepEnabled: sq.sweepEnabled, SweepPeriod: sq.sweepPeriod,
		SweepNegate: sq.sweepNegate, SweepShift: sq.sweepShift,
		SweepReload: sq.sweepReload, SweepCounter: sq.sweepCounter,
		Envelope: sq.Envelope.state(),
		Length:   sq.Length.state(),
	}
}

func (sq *Square) restore(s snapshot.Square) {
	sq.dutyMode, sq.dutyStep = s.DutyMode, s.DutyStep
	sq.timer, sq.timerLoad = s.Timer, s.TimerLoad
	sq.sweepEnabled, sq.sweepPeriod = s.SweepEnabled, s.SweepPeriod
	sq.sweepNegate, sq.sweepShift = s.SweepNegate, s.SweepShift
	sq.sweepReload, sq.sweepCounter = s.SweepReload, s.SweepCounter
	sq.Envelope.restore(s.Envelope)
	sq.Length.restore(s.Length)
}

func (tr *Triangle) state() snapshot.Triangle {
	return snapshot.Triangle{
		Timer: tr.timer, TimerLoad: tr.timerLoad,
		SequencerStep: tr.sequencerStep,
		LinearCounter: tr.linearCounter, LinearReload: tr.linearReload,
		LinearLoad: tr.linearLoad, Control: tr.control,
		Length: tr.Length.state(),
	}
}

func (tr *Triangle) restore(s snapshot.Triangle) {
	tr.timer, tr.timerLoad = s.Timer, s.TimerLoad
	tr.sequencerStep = s.SequencerStep
	tr.linearCounter, tr.linearReload = s.LinearCounter, s.LinearReload
	tr.linearLoad, tr.control = s.LinearLoad, s.Control
	tr.Length.restore(s.Length)
}

func (n *Noise) state() snapshot.Noise {
	return snapshot.Noise{
		Timer: n.timer, TimerLoad: n.timerLoad,
		ShiftRegister: n.shiftRegister, Mode: n.mode,
		Envelope: n.Envelope.state(),
		Length:   n.Length.state(),
	}
}

func (n *Noise) restore(s snapshot.Noise) {
	n.timer, n.timerLoad = s.Timer, s.TimerLoad
	n.shiftRegister, n.mode = s.ShiftRegister, s.Mode
	if n.shiftRegister == 0 {
		n.shiftRegister = 1
	}
	n.Envelope.restore(s.Envelope)
	n.Length.restore(s.Length)
}

func (d *DMC) state() snapshot.DMC {
	return snapshot.DMC{
		Enabled: d.enabled, IRQEnabled: d.irqEnabled, Loop: d.loop, IRQPending: d.irqPending,
		Timer: d.timer, TimerLoad: d.timerLoad,
		OutputLevel:   d.outputLevel,
		SampleAddress: d.sampleAddress, SampleLength: d.sampleLength,
		CurrentAddress: d.currentAddress, BytesRemaining: d.bytesRemaining,
		ShiftRegister: d.shiftRegister, BitsRemaining: d.bitsRemaining,
		SampleBuffer: d.sampleBuffer, BufferEmpty: d.bufferEmpty, Silence: d.silence,
	}
}

// restore rebuilds the channel; the ReadMem callback is preserved.
func (d *DMC) restore(s snapshot.DMC) {
	d.enabled, d.irqEnabled, d.loop, d.irqPending = s.Enabled, s.IRQEnabled, s.Loop, s.IRQPending
	d.timer, d.timerLoad = s.Timer, s.TimerLoad
	d.outputLevel = s.OutputLevel
	d.sampleAddress, d.sampleLength = s.SampleAddress, s.SampleLength
	d.currentAddress, d.bytesRemaining = s.CurrentAddress, s.BytesRemaining
	d.shiftRegister, d.bitsRemaining = s.ShiftRegister, s.BitsRemaining
	d.sampleBuffer, d.bufferEmpty, d.silence = s.SampleBuffer, s.BufferEmpty, s.Silence
}

// State captures the full APU state. The sample buffer is not serialized;
// pending samples belong to the host, not the machine.
func (a *APU) State() snapshot.APU {
	return snapshot.APU{
		Square1:  a.Square1.state(),
		Square2:  a.Square2.state(),
		Triangle: a.Triangle.state(),
		Noise:    a.Noise.state(),
		DMC:      a.DMC.state(),
		FC: snapshot.FrameCounter{
			Mode5: a.fc.mode5, IRQInhibit: a.fc.irqInhibit, FrameIRQ: a.fc.frameIRQ,
			Cycle: a.fc.cycle, Step: a.fc.step,
		},
		Cycle:       a.cycle,
		SampleClock: a.sampleClock,
	}
}

// Restore rebuilds the APU from a snapshot.
func (a *APU) Restore(s snapshot.APU) {
	a.Square1.restore(s.Square1)
	a.Square2.restore(s.Square2)
	a.Triangle.restore(s.Triangle)
	a.Noise.restore(s.Noise)
	a.DMC.restore(s.DMC)
	a.fc.mode5, a.fc.irqInhibit, a.fc.frameIRQ = s.FC.Mode5, s.FC.IRQInhibit, s.FC.FrameIRQ
	a.fc.cycle, a.fc.step = s.FC.Cycle, s.FC.Step
	a.cycle = s.Cycle
	a.sampleClock = s.SampleClock
	a.samples = a.samples[:0]
}
