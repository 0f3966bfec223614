package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	scene := flag.String("scene", "scene.yaml", "scene file under prefabs/")
	workers := flag.Int("workers", 1, "goroutines used to advance springs")
	watch := flag.Bool("watch", false, "reload prefabs and scripts from ./prefabs when they change")
	debug := flag.Bool("debug", false, "enable debug mode")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("springs")

	game, err := NewGame(Options{
		Scene:   *scene,
		Workers: *workers,
		Watch:   *watch,
		Debug:   *debug,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
