package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"tanuki/emu/log"
)

type (
	CLI struct {
		Run      Run      `cmd:"" help:"Run a ROM in the emulator." default:"withargs"`
		RomInfos RomInfos `cmd:"" help:"Show ROM infos." name:"rom-infos"`
		Version  Version  `cmd:"" help:"Show tanuki version."`

		Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
	}

	Run struct {
		RomPath string `arg:"" name:"/path/to/rom" help:"${rompath_help}" type:"existingfile"`

		Frames uint64   `help:"Stop after this many frames (0 runs until interrupted)." default:"0"`
		Turbo  bool     `help:"Do not pace frames to wall time."`
		Trace  *outfile `help:"Write CPU trace log." placeholder:"FILE|stdout|stderr"`
	}

	RomInfos struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`
	}

	Version struct{}
)

var vars = kong.Vars{
	"rompath_help": "Run the ROM headless; frames and audio are produced but not displayed.",
	"log_help":     "Enable debug logging for specified modules.",
}

func parseArgs(args []string) (*CLI, *kong.Context) {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("tanuki"),
		kong.Description("NES emulator core."),
		kong.UsageOnError(),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)
	return &cli, ctx
}

// logModMask accumulates the module bitmask from a comma-separated list of
// module names, "all" enabling everything.
type logModMask struct {
	mask log.ModuleMask
}

func (m *logModMask) UnmarshalText(text []byte) error {
	for _, name := range strings.Split(string(text), ",") {
		if name == "all" {
			m.mask |= log.ModuleMaskAll
			continue
		}
		mod, found := log.ModuleByName(name)
		if !found {
			return fmt.Errorf("unknown log module %q", name)
		}
		m.mask |= mod.Mask()
	}
	return nil
}

// outfile is a flag value writing to a file, with "stdout" and "stderr"
// recognized as the process streams.
type outfile struct {
	w    io.Writer
	name string
}

func (f *outfile) UnmarshalText(text []byte) error {
	f.name = string(text)
	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		w, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = w
	}
	return nil
}

func (f *outfile) Close() error {
	if c, ok := f.w.(io.Closer); ok && f.name != "stdout" && f.name != "stderr" {
		return c.Close()
	}
	return nil
}
