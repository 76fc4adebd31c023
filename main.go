package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/animstudio/pkg/app"
)

var (
	configPath = flag.String("config", "assets/config/studio.yaml", "studio config file")
	clipsDir   = flag.String("clips", "", "clip library directory (overrides config)")
	clipName   = flag.String("clip", "", "clip to open at startup")
	verbose    = flag.Bool("verbose", false, "enable log output")
)

func main() {
	flag.Parse()

	studio, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		ClipsDir:   *clipsDir,
		Clip:       *clipName,
	})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(studio.WindowSize())
	ebiten.SetWindowTitle(studio.WindowTitle())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(studio)
	studio.Shutdown()
	if err != nil {
		log.Fatal(err)
	}
}
