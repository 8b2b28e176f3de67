package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/config"
	"gochip8/pkg/cpu"
	"gochip8/pkg/display"
	"gochip8/pkg/emulator"
	"gochip8/pkg/utils"
)

const (
	screenScale = 10
	screenW     = display.Width * screenScale
	screenH     = display.Height * screenScale
)

// keyMap places the hex keypad on the left block of a QWERTY keyboard.
var keyMap = map[ebiten.Key]uint8{
	ebiten.Key1: 0x1, ebiten.Key2: 0x2, ebiten.Key3: 0x3, ebiten.Key4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

type Game struct {
	emu     *emulator.Emulator
	program []byte
	logger  *log.Logger
	palette display.Palette

	screenImg *ebiten.Image // reused 64×32 canvas
	shotCount int
}

func (g *Game) Update() error {
	for key, pad := range keyMap {
		if inpututil.IsKeyJustPressed(key) {
			g.emu.KeyDown(pad)
		}
		if inpututil.IsKeyJustReleased(key) {
			g.emu.KeyUp(pad)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.reload()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.screenshot()
	}

	g.emu.Advance(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *Game) reload() {
	g.emu.Reset()
	if err := g.emu.LoadProgram(g.program); err != nil {
		g.logger.Error("Reload failed", log.Err(err))
		return
	}
	g.logger.Info("Program reloaded")
}

func (g *Game) screenshot() {
	g.shotCount++
	name := fmt.Sprintf("chip8_%03d.png", g.shotCount)
	if err := g.emu.Screen().SaveScreenshot(name, g.palette, screenScale); err != nil {
		g.logger.Error("Screenshot failed", log.Err(err))
		return
	}
	g.logger.Info("Screenshot written", log.String("file", name))
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.screenImg == nil {
		g.screenImg = ebiten.NewImage(display.Width, display.Height)
	}
	g.screenImg.WritePixels(g.emu.Screen().FramebufferRGBA(g.palette))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(screenScale, screenScale)
	screen.DrawImage(g.screenImg, op)

	if g.emu.SoundActive() {
		ebitenutil.DebugPrintAt(screen, "BEEP", screenW-32, 0)
	}
	if f := g.emu.Fault(); f != nil {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("HALTED: %v\nF5 to restart", f))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	clockHz := flag.Int("hz", emulator.DefaultClockHz, "CPU cycles per second")
	legacy := flag.Bool("legacy", false, "use COSMAC VIP shift, load/store and sprite clipping behaviour")
	debug := flag.Bool("debug", false, "enable debug logging")
	quiet := flag.Bool("q", false, "only log errors")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [options] <rom>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	logger := config.CreateLogger(*debug, *quiet)

	program, err := utils.ReadROM(flag.Arg(0))
	if err != nil {
		logger.Fatal(err.Error())
	}

	cfg := emulator.DefaultConfig()
	cfg.ClockHz = *clockHz
	cfg.Logger = logger
	if *legacy {
		cfg.Quirks = cpu.LegacyQuirks
	}

	emu := emulator.New(cfg)
	if err := emu.LoadProgram(program); err != nil {
		logger.Fatal(err.Error())
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("CHIP-8")

	game := &Game{
		emu:     emu,
		program: program,
		logger:  logger,
		palette: display.DefaultPalette,
	}
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal(err.Error())
	}
}
