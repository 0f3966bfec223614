package ecs

import "github.com/hajimehoshi/ebiten/v2"

// Drawer is implemented by systems that also render.
type Drawer interface {
	Draw(w *World, screen *ebiten.Image)
}

// Draw calls every render-capable system in update order.
func (s *Scheduler) Draw(w *World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	for _, system := range s.systems {
		if d, ok := system.(Drawer); ok {
			d.Draw(w, screen)
		}
	}
}
