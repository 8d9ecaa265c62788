package main

import (
	"fmt"
	"os"

	"tanuki/emu/log"
	"tanuki/ines"
)

const version = "0.2.0"

func main() {
	cli, ctx := parseArgs(os.Args[1:])

	if cli.Log.mask != 0 {
		log.EnableDebugModules(cli.Log.mask)
		log.EnableDebugLog()
	}

	var err error
	switch ctx.Command() {
	case "run </path/to/rom>":
		err = runRom(LoadConfigOrDefault(), &cli.Run)
	case "rom-infos </path/to/rom>":
		err = romInfos(cli.RomInfos.RomPath)
	case "version":
		fmt.Println("tanuki", version)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "tanuki: %s\n", err)
		os.Exit(1)
	}
}

func romInfos(path string) error {
	rom, err := ines.Open(path)
	if err != nil {
		return err
	}
	rom.PrintInfos(os.Stdout)
	return nil
}
