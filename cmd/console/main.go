package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/term"
	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/config"
	"gochip8/pkg/cpu"
	"gochip8/pkg/display"
	"gochip8/pkg/emulator"
	"gochip8/pkg/utils"
)

const (
	frameRate = 60
	// terminals report presses only, so a key is released after this many
	// frames unless it repeats
	holdFrames = 6

	keyEscape = 0x1B
	keyCtrlC  = 0x03
)

// keyMap places the hex keypad on the left block of a QWERTY keyboard.
var keyMap = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// readKeys forwards raw bytes from the terminal until it is closed.
func readKeys(t *term.Term, keys chan<- byte) {
	buf := make([]byte, 16)
	for {
		n, err := t.Read(buf)
		if err != nil {
			close(keys)
			return
		}
		for _, b := range buf[:n] {
			keys <- b
		}
	}
}

// renderFrame draws the framebuffer with half-block characters, two pixel
// rows per text line.
func renderFrame(d *display.Display) string {
	var sb strings.Builder
	sb.WriteString("\x1b[H")
	for y := 0; y < display.Height; y += 2 {
		for x := 0; x < display.Width; x++ {
			top, bottom := d.Pixel(x, y), d.Pixel(x, y+1)
			switch {
			case top && bottom:
				sb.WriteString("█")
			case top:
				sb.WriteString("▀")
			case bottom:
				sb.WriteString("▄")
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}

type options struct {
	rom    string
	legacy bool
	quiet  bool
}

func parseOptions(args []string) (options, *flag.FlagSet, error) {
	var opts options
	flags := flag.NewFlagSet("console", flag.ContinueOnError)
	flags.BoolVar(&opts.legacy, "legacy", false, "use COSMAC VIP shift, load/store and sprite clipping behaviour")
	flags.BoolVar(&opts.quiet, "q", false, "only log errors")
	if err := flags.Parse(args); err != nil {
		return opts, flags, err
	}
	if flags.NArg() != 1 {
		return opts, flags, errors.New("expected exactly one ROM path")
	}
	opts.rom = flags.Arg(0)
	return opts, flags, nil
}

func main() {
	opts, flags, err := parseOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\nusage: %s [options] <rom>\n", err, os.Args[0])
		flags.PrintDefaults()
		os.Exit(2)
	}

	logger := config.CreateLogger(false, opts.quiet)
	if err := run(opts.rom, opts.legacy, logger); err != nil {
		logger.Error("Run failed", log.Err(err))
		os.Exit(1)
	}
}

func run(romPath string, legacy bool, logger *log.Logger) error {
	program, err := utils.ReadROM(romPath)
	if err != nil {
		return err
	}

	cfg := emulator.DefaultConfig()
	cfg.Logger = logger
	if legacy {
		cfg.Quirks = cpu.LegacyQuirks
	}
	emu := emulator.New(cfg)
	if err := emu.LoadProgram(program); err != nil {
		return err
	}

	tty, err := term.Open("/dev/tty", term.RawMode)
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer func() {
		_ = tty.Restore()
		_ = tty.Close()
	}()

	keys := make(chan byte, 64)
	go readKeys(tty, keys)

	fmt.Print("\x1b[2J\x1b[?25l")
	defer fmt.Print("\x1b[?25h\r\n")

	var held [16]int
	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()
	last := time.Now()

	for {
	drain:
		for {
			select {
			case b, ok := <-keys:
				if !ok || b == keyEscape || b == keyCtrlC {
					return nil
				}
				if pad, found := keyMap[b]; found {
					emu.KeyDown(pad)
					held[pad] = holdFrames
				}
			default:
				break drain
			}
		}

		for pad := range held {
			if held[pad] > 0 {
				held[pad]--
				if held[pad] == 0 {
					emu.KeyUp(uint8(pad))
				}
			}
		}

		<-ticker.C
		now := time.Now()
		emu.Advance(now.Sub(last))
		last = now

		fmt.Print(renderFrame(emu.Screen()))
		if f := emu.Fault(); f != nil {
			fmt.Printf("HALTED: %v (Esc to quit)\r\n", f)
		}
	}
}
