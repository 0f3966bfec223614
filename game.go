package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/springs/ecs"
	"github.com/milk9111/springs/ecs/component"
	"github.com/milk9111/springs/ecs/entity"
	"github.com/milk9111/springs/ecs/system"
	"github.com/milk9111/springs/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Options struct {
	Scene   string
	Workers int
	Watch   bool
	Debug   bool
}

type Game struct {
	opts   Options
	frames int

	world     *ecs.World
	scheduler *ecs.Scheduler
	watcher   *prefabs.Watcher
}

func NewGame(opts Options) (*Game, error) {
	g := &Game{opts: opts}

	if opts.Watch {
		watcher, err := prefabs.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("watch prefabs: %w", err)
		}
		g.watcher = watcher
	}

	scripts := system.NewScriptSystem()
	springs := system.NewSpringSystem()
	springs.Workers = opts.Workers
	render := system.NewRenderSystem()
	render.Debug = opts.Debug

	g.scheduler = ecs.NewScheduler()
	if g.watcher != nil {
		g.scheduler.Add(system.NewReloadSystem(g.watcher.Events, scripts))
	}
	g.scheduler.Add(scripts)
	g.scheduler.Add(springs)
	g.scheduler.Add(system.NewLifetimeSystem())
	g.scheduler.Add(render)

	if err := g.reset(); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

// reset rebuilds the world from the scene file.
func (g *Game) reset() error {
	world := ecs.NewWorld()
	if _, err := entity.BuildScene(world, g.opts.Scene); err != nil {
		return err
	}
	g.world = world
	return nil
}

func (g *Game) Close() {
	if g.watcher == nil {
		return
	}
	if err := g.watcher.Close(); err != nil {
		log.Printf("close watcher: %v", err)
	}
	g.watcher = nil
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.reset(); err != nil {
			log.Printf("reset scene: %v", err)
		}
	}

	g.scheduler.Update(g.world, 1/float64(ebiten.TPS()))

	for _, evt := range g.world.Events().Drain() {
		if g.opts.Debug {
			log.Printf("event: %s entity=%v data=%v", evt.Type, evt.Entity, evt.Data)
		}
	}

	if g.watcher != nil {
		select {
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("watch prefabs: %v", err)
			}
		default:
		}
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scheduler.Draw(g.world, screen)

	msg := fmt.Sprintf("Frames: %d    FPS: %.2f    Entities: %d", g.frames, ebiten.ActualFPS(), len(ecs.Entities(g.world)))
	if g.opts.Debug {
		msg += fmt.Sprintf("\nSprings: %d scalar, %d vector    R: reset",
			ecs.Count(g.world, component.SpringComponent.Kind()),
			ecs.Count(g.world, component.SpringVecComponent.Kind()))
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
