package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/springs/ecs"
	"github.com/milk9111/springs/ecs/component"
	"golang.org/x/image/colornames"
)

// RenderSystem draws markers relative to the camera entity. World y points
// up; the camera position lands in the middle of the screen.
type RenderSystem struct {
	// Debug draws a line from each vector spring to its target.
	Debug bool

	camEntity ecs.Entity
	drawables []drawable
}

type drawable struct {
	e      ecs.Entity
	t      *component.Transform
	marker *component.Marker
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Update(*ecs.World, float64) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !r.camEntity.Valid() || !ecs.IsAlive(w, r.camEntity) {
		if camEntity, ok := ecs.First(w, component.CameraTagComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}

	camX, camY := 0.0, 0.0
	zoom := 1.0
	if camTransform, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind()); ok {
		camX = camTransform.X
		camY = camTransform.Y
	}
	if camComp, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind()); ok && camComp.Zoom > 0 {
		zoom = camComp.Zoom
	}

	bounds := screen.Bounds()
	halfW := float64(bounds.Dx()) / 2
	halfH := float64(bounds.Dy()) / 2
	project := func(x, y float64) (float32, float32) {
		return float32((x-camX)*zoom + halfW), float32(halfH - (y-camY)*zoom)
	}

	r.drawables = r.drawables[:0]
	ecs.ForEach(w, component.MarkerComponent.Kind(), func(e ecs.Entity, m *component.Marker) {
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			r.drawables = append(r.drawables, drawable{e: e, t: t, marker: m})
		}
	})
	sort.SliceStable(r.drawables, func(i, j int) bool {
		li, lj := r.drawables[i].marker.Layer, r.drawables[j].marker.Layer
		if li != lj {
			return li < lj
		}
		return uint64(r.drawables[i].e) < uint64(r.drawables[j].e)
	})

	if r.Debug {
		ecs.ForEach(w, component.SpringVecComponent.Kind(), func(e ecs.Entity, sp *component.SpringVec) {
			if e == r.camEntity {
				return
			}
			px, py := project(sp.Position().X, sp.Position().Y)
			tx, ty := project(sp.Target().X, sp.Target().Y)
			vector.StrokeLine(screen, px, py, tx, ty, 1, colornames.Lightgrey, true)
			vector.StrokeCircle(screen, tx, ty, 4, 1, colornames.Lightgrey, true)
		})
	}

	for _, d := range r.drawables {
		x, y := project(d.t.X, d.t.Y)
		radius := d.marker.Radius * float32(markerScale(d.t)*zoom)
		if radius <= 0 {
			continue
		}
		vector.DrawFilledCircle(screen, x, y, radius, d.marker.Color, true)
	}
}

func markerScale(t *component.Transform) float64 {
	s := max(t.ScaleX, t.ScaleY)
	if s == 0 {
		return 1
	}
	return s
}
