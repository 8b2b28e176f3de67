//go:build !js

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/config"
	"gochip8/pkg/cpu"
	"gochip8/pkg/disasm"
	"gochip8/pkg/display"
	"gochip8/pkg/emulator"
	"gochip8/pkg/utils"
)

type options struct {
	rom        string
	dis        bool
	cycles     int
	screenshot string
	scale      int
	seed       uint64
	seeded     bool
	legacy     bool
	trace      bool
	debug      bool
	quiet      bool
}

func main() {
	opts := readArguments()
	logger := config.CreateLogger(opts.debug || opts.trace, opts.quiet)

	if err := run(opts, logger, os.Stdout); err != nil {
		logger.Error("Run failed", log.Err(err))
		os.Exit(1)
	}
}

func readArguments() options {
	var opts options
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flags.StringVar(&opts.rom, "rom", "", "program image to load at 0x200")
	flags.BoolVar(&opts.dis, "dis", false, "print a disassembly of the program and exit")
	flags.IntVar(&opts.cycles, "cycles", 1000, "number of CPU cycles to run headless")
	flags.StringVar(&opts.screenshot, "screenshot", "", "write the final framebuffer to this PNG file")
	flags.IntVar(&opts.scale, "scale", 8, "screenshot pixel scale")
	flags.Uint64Var(&opts.seed, "seed", 0, "seed for the random number generator (0 uses system entropy)")
	flags.BoolVar(&opts.legacy, "legacy", false, "use COSMAC VIP shift, load/store and sprite clipping behaviour")
	flags.BoolVar(&opts.trace, "trace", false, "log every executed instruction")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.quiet, "q", false, "only log errors")
	_ = flags.Parse(os.Args[1:])

	if opts.rom == "" && flags.NArg() > 0 {
		opts.rom = flags.Arg(0)
	}
	if opts.rom == "" {
		fmt.Fprintf(os.Stderr, "usage: %s [options] <rom>\n\n", os.Args[0])
		flags.PrintDefaults()
		os.Exit(2)
	}
	opts.seeded = opts.seed != 0
	return opts
}

func run(opts options, logger *log.Logger, out io.Writer) error {
	program, err := utils.ReadROM(opts.rom)
	if err != nil {
		return err
	}

	if opts.dis {
		for _, ins := range disasm.Program(program, cpu.ProgramStart) {
			fmt.Fprintf(out, "%03X  %04X  %s\n", ins.Address, ins.Opcode, ins)
		}
		return nil
	}

	cfg := emulator.DefaultConfig()
	cfg.Logger = logger
	cfg.Trace = opts.trace
	cfg.Seed = opts.seed
	cfg.Seeded = opts.seeded
	if opts.legacy {
		cfg.Quirks = cpu.LegacyQuirks
	}

	emu := emulator.New(cfg)
	if err := emu.LoadProgram(program); err != nil {
		return err
	}

	// one timer tick per cycles/timer-rate cycles, as a real host would
	ticksEvery := cfg.ClockHz / cfg.TimerHz
	for i := 1; i <= opts.cycles && !emu.IsFaulted(); i++ {
		emu.ExecuteCycle()
		if i%ticksEvery == 0 {
			emu.DecrementTimers()
		}
	}

	printState(out, emu)

	if opts.screenshot != "" {
		if err := emu.Screen().SaveScreenshot(opts.screenshot, display.DefaultPalette, opts.scale); err != nil {
			return fmt.Errorf("writing screenshot %q: %w", opts.screenshot, err)
		}
		logger.Info("Screenshot written", log.String("file", opts.screenshot))
	}

	if f := emu.Fault(); f != nil {
		return f
	}
	return nil
}

func printState(out io.Writer, emu *emulator.Emulator) {
	v := emu.RegisterV()
	fmt.Fprintf(out, "PC=0x%03X I=0x%03X SP=%d DT=%d waiting=%t\n",
		emu.RegisterPC(), emu.RegisterI(), emu.StackPointer(), emu.DelayTimer(), emu.IsWaitingForKey())
	for i, r := range v {
		fmt.Fprintf(out, "V%X=%02X", i, r)
		if i%8 == 7 {
			fmt.Fprintln(out)
		} else {
			fmt.Fprint(out, " ")
		}
	}
	fmt.Fprint(out, emu.Screen().String())
}
