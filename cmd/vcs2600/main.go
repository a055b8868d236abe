// Command vcs2600 runs a cartridge image in a window.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"

	"github.com/bwade/vcs2600/cartridge"
	"github.com/bwade/vcs2600/console"
	"github.com/bwade/vcs2600/host"
	"github.com/bwade/vcs2600/tia"
)

var (
	romFile = flag.String("rom", "", "Path to a flat 4096-byte cartridge image to run.")
	scale   = flag.Int("scale", 3, "Window scale factor applied to the 160x192 frame.")
)

func main() {
	flag.Parse()

	rom, err := cartridge.Load(*romFile)
	if err != nil {
		log.Fatalf("invalid cartridge: %v", err)
	}

	sys := console.New(rom.Bytes())
	events := make(chan console.Event, 8)
	game := host.NewGame(sys, events)

	ebiten.SetWindowSize(tia.Width*(*scale), tia.Height*(*scale))
	ebiten.SetWindowTitle("vcs2600: " + rom.Path())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		pacer := host.NewPacer()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case ev := <-events:
				if ev.Kind == console.Quit {
					return nil
				}
				sys.Apply(ev)
			default:
			}

			before := sys.Clocks
			if err := sys.Step(); err != nil {
				game.SetFatal(err)
				return err
			}
			pacer.PauseForCycles(int(sys.Clocks - before))
		}
	})

	g.Go(func() error {
		defer cancel()
		return ebiten.RunGame(game)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Printf("vcs2600 stopped: %v", err)
	}
}
