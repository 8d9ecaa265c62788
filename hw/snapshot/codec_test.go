package snapshot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	state := &NES{}
	state.CPU = CPU{A: 0x12, X: 0x34, Y: 0x56, SP: 0xF0, P: 0x24, PC: 0xC123, Cycles: 4242}
	state.Bus.RAM[0x123] = 0xAB
	state.Bus.Pads[0] = Pad{Buttons: 0x0F, Shift: 0xF0}
	state.PPU.Scanline = 241
	state.PPU.Dot = 12
	state.PPU.V = 0x3F00
	state.PPU.Palette[0] = 0x11
	state.APU.Noise.ShiftRegister = 0x4001
	state.Mapper = &Mapper{Banks: [8]uint8{0, 2, 4, 5, 6, 7, 3, 1}, IRQLatch: 42}

	meta := Meta{Rom: "smb3.nes", Frame: 1234}

	var buf bytes.Buffer
	if err := Save(&buf, meta, state); err != nil {
		t.Fatal(err)
	}

	gotMeta, got, err := Load(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(meta, gotMeta); diff != "" {
		t.Errorf("meta mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(state, got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	_, _, err := Load(strings.NewReader("not a state file\nmore garbage\n"))
	if err == nil {
		t.Fatal("expected an error for a malformed state file")
	}
}

func TestLoadRejectsWrongVersion(t *testing.T) {
	header := `{"magic":"tanuki-state","version":99,"rom":"x","frame":0}` + "\n"
	_, _, err := Load(strings.NewReader(header))
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("err = %v, want unsupported version error", err)
	}
}
