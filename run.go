package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"tanuki/emu/log"
	"tanuki/ines"
)

// NTSC frame period; the PPU emits 60.0988 frames per second.
const framePeriod = 16639267 * time.Nanosecond

// runRom drives the console headless: frames and audio samples are produced
// at the emulated rate and dropped, since display and audio queueing belong
// to an outer collaborator. The loop stops after cmd.Frames frames, or on
// SIGINT/SIGTERM.
func runRom(cfg Config, cmd *Run) error {
	rom, err := ines.Open(cmd.RomPath)
	if err != nil {
		return err
	}

	nes := &NES{romName: cmd.RomPath}
	if err := nes.PowerUp(rom, cfg.Audio.SampleRate); err != nil {
		return err
	}
	defer nes.Teardown()

	if cmd.Trace != nil {
		nes.CPU.SetTraceOutput(cmd.Trace.w)
		defer cmd.Trace.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pace := cfg.Emulation.PaceFrames && !cmd.Turbo

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var ticker *time.Ticker
		if pace {
			ticker = time.NewTicker(framePeriod)
			defer ticker.Stop()
		}

		start := time.Now()
		frames := uint64(0)
		for {
			select {
			case <-ctx.Done():
				logFrameRate(frames, time.Since(start))
				return nil
			default:
			}

			nes.RunFrame()
			nes.Samples()
			frames++

			if cmd.Frames > 0 && frames >= cmd.Frames {
				logFrameRate(frames, time.Since(start))
				return nil
			}
			if pace {
				<-ticker.C
			}
		}
	})

	return g.Wait()
}

func logFrameRate(frames uint64, elapsed time.Duration) {
	if elapsed <= 0 {
		return
	}
	fps := float64(frames) / elapsed.Seconds()
	log.ModEmu.InfoZ("emulation stopped").
		Uint64("frames", frames).
		String("fps", fmt.Sprintf("%.1f", fps)).
		End()
}
