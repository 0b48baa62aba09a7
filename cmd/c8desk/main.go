// Package main provides the desktop host for c8sim.
//
// Drop a .ch8 file on the window to load it. Space pauses and resumes the
// machine, Esc quits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrogolib/buildinfo"

	"github.com/sarchlab/c8sim/config"
	"github.com/sarchlab/c8sim/loader"
	"github.com/sarchlab/c8sim/logging"
	"github.com/sarchlab/c8sim/timing/core"
	"github.com/sarchlab/c8sim/video"
)

var (
	version = "0.1.0"
	commit  = ""
	date    = ""
)

var (
	configPath = flag.String("config", "", "Path to JSON or YAML configuration file")
	verbosity  = flag.Int("v", 0, "Log verbosity")
)

// Game adapts a Core to ebiten's fixed-rate update loop. One Update is one
// frame.
type Game struct {
	core     *core.Core
	keyboard *keyboard
	scale    int

	screen *ebiten.Image
	pixels []byte

	loaded  bool
	message string
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if files := ebiten.DroppedFiles(); files != nil {
		g.loadDropped(files)
	}

	if g.loaded && inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.core.ToggleHalt()
		if g.core.Halted() {
			g.message = "paused"
		} else {
			g.message = ""
		}
	}

	g.keyboard.poll()
	g.core.Tick()

	if err := g.core.LastErr(); err != nil {
		g.message = err.Error()
	}

	return nil
}

// loadDropped loads the first ROM among the dropped files.
func (g *Game) loadDropped(files fs.FS) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		g.message = err.Error()
		return
	}

	for _, e := range entries {
		if e.IsDir() || !loader.IsROM(e.Name()) {
			continue
		}
		prog, err := loader.LoadFS(files, e.Name())
		if err == nil {
			err = g.load(prog)
		}
		if err != nil {
			g.message = err.Error()
		}
		return
	}

	g.message = fmt.Sprintf("drop a %s file", loader.ROMExtension)
}

func (g *Game) load(prog *loader.Program) error {
	if err := g.core.LoadROM(prog.Data); err != nil {
		return err
	}
	g.core.Reset()
	g.loaded = true
	g.message = ""
	ebiten.SetWindowTitle("c8sim - " + prog.Name)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	fb := g.core.State().Display
	if g.screen == nil {
		g.screen = ebiten.NewImage(fb.Width(), fb.Height())
	}

	g.pixels = video.RGBA(fb, g.pixels)
	g.screen.WritePixels(g.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.screen, op)

	if !g.loaded {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("drop a %s file here", loader.ROMExtension), 4, 4)
	} else if g.message != "" {
		ebitenutil.DebugPrintAt(screen, g.message, 4, 4)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	fb := g.core.State().Display
	return fb.Width() * g.scale, fb.Height() * g.scale
}

func main() {
	flag.Parse()

	fmt.Printf("c8desk version: %s\n", buildinfo.Version(version, commit, date))

	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	keymap, err := cfg.HostKeymap()
	if err != nil {
		log.Fatalf("Invalid keymap: %v", err)
	}
	kb := newKeyboard(keymap)

	c, err := core.Build(cfg, kb, logging.New(os.Stderr, *verbosity))
	if err != nil {
		log.Fatalf("Failed to build machine: %v", err)
	}

	game := &Game{core: c, keyboard: kb, scale: cfg.PixelSize}

	if flag.NArg() > 0 {
		prog, err := loader.Load(flag.Arg(0))
		if err != nil {
			log.Fatalf("Failed to load ROM: %v", err)
		}
		if err := game.load(prog); err != nil {
			log.Fatalf("Failed to load ROM: %v", err)
		}
	}

	w, h := c.State().Display.Width(), c.State().Display.Height()
	ebiten.SetWindowSize(w*cfg.PixelSize, h*cfg.PixelSize)
	ebiten.SetWindowTitle("c8sim")
	ebiten.SetTPS(cfg.FramesPerSecond)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
