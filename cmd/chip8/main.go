// Package main implements a CHIP-8 emulator with an SDL2 frontend
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/retroemu/chip8/internal/chip8"
	"github.com/retroemu/chip8/internal/config"
	"github.com/retroemu/chip8/internal/driver"
	"github.com/retroemu/chip8/internal/options"
	"github.com/retroemu/chip8/pkg/audio"
	sdlio "github.com/retroemu/chip8/pkg/sdl"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	opts := readArguments()
	logger := config.CreateLogger(opts.Debug, opts.Quiet)

	if !opts.Quiet {
		logger.Info("chip8 - CHIP-8 emulator",
			log.String("version", buildinfo.Version(version, commit, date)))
	}

	if err := run(app.Context(), logger, opts); err != nil {
		logger.Fatal("Emulation failed", log.Err(err))
	}
}

func readArguments() options.Program {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := options.Program{}

	flags.UintVar(&opts.CPUSpeed, "cpu-speed", 700, "how many CHIP-8 instructions are executed per second")
	flags.BoolVar(&opts.NoShiftQuirks, "no-shift-quirks", false, "shift Vy instead of Vx for 8XY6/8XYE, emulating the original CHIP-8")
	flags.BoolVar(&opts.NoLoadStoreQuirks, "no-load-store-quirks", false, "increase I by X+1 for FX55/FX65, emulating the original CHIP-8")
	flags.StringVar(&opts.Waveform, "waveform", string(audio.Triangle), "waveform of the beep: sawtooth, sine, square, triangle")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) != 1 {
		fmt.Printf("usage: chip8 [options] <ROM file>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	opts.ROMFile = args[0]

	return opts
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	waveform, err := audio.ParseWaveform(opts.Waveform)
	if err != nil {
		return err
	}

	vm, err := chip8.LoadFile(opts.ROMFile, chip8.Config{
		ShiftQuirks:     !opts.NoShiftQuirks,
		LoadStoreQuirks: !opts.NoLoadStoreQuirks,
	})
	if err != nil {
		return fmt.Errorf("loading ROM '%s': %w", opts.ROMFile, err)
	}
	logger.Debug("ROM loaded",
		log.String("file", opts.ROMFile),
		log.String("cpu_speed", strconv.FormatUint(uint64(opts.CPUSpeed), 10)))

	io := sdlio.NewIO(vm)
	defer io.Destroy()
	if err := io.SetupWindow("CHIP-8"); err != nil {
		return err
	}

	beeper, err := audio.NewBeeper(waveform)
	if err != nil {
		return err
	}
	defer func() {
		_ = beeper.Close()
	}()

	return loop(ctx, vm, io, beeper, driver.New(opts.CPUSpeed))
}

// loop drives the emulation at a nominal 60 frames per second until the
// window is closed or the context is cancelled.
func loop(ctx context.Context, vm *chip8.Machine, io *sdlio.IO, beeper *audio.Beeper, updater *driver.Updater) error {
	ticker := time.NewTicker(chip8.TimerClockCycle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if !io.ProcessInput() {
			return nil
		}
		if err := updater.Update(vm); err != nil {
			return err
		}
		if err := io.Render(); err != nil {
			return err
		}
		beeper.Update(vm.Timers.Sound())
	}
}
