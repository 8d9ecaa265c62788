package mappers

import (
	"tanuki/hw/snapshot"
)

// Save-state hooks for the boards that carry runtime state. Each board
// populates only the fields it owns of the shared snapshot.Mapper record;
// NROM has nothing to save.

func (m *uxrom) MapperState() snapshot.Mapper {
	return snapshot.Mapper{PRGBank: m.prgBank}
}

func (m *uxrom) RestoreMapper(s snapshot.Mapper) {
	m.prgBank = s.PRGBank
}

func (m *cnrom) MapperState() snapshot.Mapper {
	return snapshot.Mapper{CHRBank: m.chrBank}
}

func (m *cnrom) RestoreMapper(s snapshot.Mapper) {
	m.chrBank = s.CHRBank
}

func (m *axrom) MapperState() snapshot.Mapper {
	return snapshot.Mapper{PRGBank: m.prgBank}
}

func (m *axrom) RestoreMapper(s snapshot.Mapper) {
	m.prgBank = s.PRGBank
}

func (m *gxrom) MapperState() snapshot.Mapper {
	return snapshot.Mapper{PRGBank: m.prgBank, CHRBank: m.chrBank}
}

func (m *gxrom) RestoreMapper(s snapshot.Mapper) {
	m.prgBank = s.PRGBank
	m.chrBank = s.CHRBank
}

func (m *mmc3) MapperState() snapshot.Mapper {
	return snapshot.Mapper{
		BankSelect: m.bankSelect,
		Banks:      m.bankData,
		PRGMode:    m.prgMode,
		CHRMode:    m.chrMode,

		IRQLatch:   m.irqLatch,
		IRQCounter: m.irqCounter,
		IRQEnabled: m.irqEnabled,
		IRQPending: m.irqPending,
		IRQReload:  m.irqReload,

		PRGRAMProtect: m.prgRAMProtect,

		PrevA12High:      m.prevA12High,
		LastA12HighCycle: m.lastA12HighCycle,
	}
}

func (m *mmc3) RestoreMapper(s snapshot.Mapper) {
	m.bankSelect = s.BankSelect
	m.bankData = s.Banks
	m.prgMode = s.PRGMode
	m.chrMode = s.CHRMode

	m.irqLatch = s.IRQLatch
	m.irqCounter = s.IRQCounter
	m.irqEnabled = s.IRQEnabled
	m.irqPending = s.IRQPending
	m.irqReload = s.IRQReload

	m.prgRAMProtect = s.PRGRAMProtect

	m.prevA12High = s.PrevA12High
	m.lastA12HighCycle = s.LastA12HighCycle
}
