package main

import (
	"bytes"
	"fmt"
	"testing"

	"tanuki/ines"
)

/* general testing helpers */

func tcheck(tb testing.TB, err error) {
	if err == nil {
		return
	}

	tb.Helper()
	tb.Fatalf("fatal error:\n\n%s\n", err)
}

func tcheckf(tb testing.TB, err error, format string, args ...any) {
	if err == nil {
		return
	}

	tb.Helper()
	tb.Fatalf("fatal error:\n\n%s: %s\n", fmt.Sprintf(format, args...), err)
}

// buildTestRom assembles a 16KB NROM image with the given program at $8000
// and the reset vector pointing at it.
func buildTestRom(tb testing.TB, program []byte) *ines.Rom {
	tb.Helper()

	prg := make([]byte, 16384)
	copy(prg, program)
	prg[0x3FFC] = 0x00 // reset vector -> $8000
	prg[0x3FFD] = 0x80

	image := []byte{'N', 'E', 'S', 0x1A, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	image = append(image, prg...)

	rom := new(ines.Rom)
	_, err := rom.ReadFrom(bytes.NewReader(image))
	tcheck(tb, err)
	return rom
}

// powerUp builds a console around the given program.
func powerUp(tb testing.TB, program []byte) *NES {
	tb.Helper()

	nes := &NES{}
	tcheck(tb, nes.PowerUp(buildTestRom(tb, program), 0))
	return nes
}
