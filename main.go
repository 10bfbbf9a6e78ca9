package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/skyclimb/config"
)

func main() {
	settings, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	if settings.BaseMonitor {
		if monitors := ebiten.AppendMonitors(nil); len(monitors) > 0 {
			ebiten.SetMonitor(monitors[0])
		}
	}

	game, err := NewGame(settings)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetTPS(settings.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(game.viewW, game.viewH)
	ebiten.SetWindowTitle("skyclimb")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
