package entity

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/springs/ecs"
	"github.com/milk9111/springs/ecs/component"
	"github.com/milk9111/springs/prefabs"
	"github.com/milk9111/springs/spring"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"camera_tag":     addCameraTag,
	"camera":         addCamera,
	"transform":      addTransform,
	"spring":         addSpring,
	"spring_vec":     addSpringVec,
	"spring_binding": addSpringBinding,
	"spring_ignore":  addSpringIgnore,
	"lifetime":       addLifetime,
	"marker":         addMarker,
	"script":         addScript,
}

// spring_binding checks the scalar spring, so it comes after spring
var componentBuildOrder = []string{
	"camera_tag",
	"camera",
	"transform",
	"spring",
	"spring_vec",
	"spring_binding",
	"spring_ignore",
	"lifetime",
	"marker",
	"script",
}

// BuildEntity creates an entity from a prefab file. On error nothing is left
// behind in the world.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	for _, name := range componentBuildOrder {
		raw, ok := spec.Components[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	if err := ecs.Add(w, e, component.PrefabComponent.Kind(), &component.Prefab{Path: prefabPath}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: add prefab ref: %w", prefabPath, err)
	}

	return e, nil
}

// BuildScene builds every prefab the scene lists and returns them in order.
func BuildScene(w *ecs.World, scenePath string) ([]ecs.Entity, error) {
	scene, err := prefabs.LoadSceneSpec(scenePath)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}

	built := make([]ecs.Entity, 0, len(scene.Entities))
	for _, path := range scene.Entities {
		e, err := BuildEntity(w, path)
		if err != nil {
			for _, done := range built {
				ecs.DestroyEntity(w, done)
			}
			return nil, fmt.Errorf("build scene %q: %w", scenePath, err)
		}
		built = append(built, e)
	}
	return built, nil
}

// Registered returns the component names a prefab may use.
func Registered() []string {
	names := make([]string, 0, len(componentRegistry))
	for name := range componentRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addSpringIgnore(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.SpringIgnoreTagComponent.Kind(), &component.SpringIgnoreTag{})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Zoom <= 0 {
		spec.Zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{Zoom: spec.Zoom})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

func addSpring(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpringComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode spring spec: %w", err)
	}
	s := spring.NewScalar(spec.Target, spec.AngularFrequency, spec.DampingRatio)
	if spec.Shove != 0 {
		s.Shove(spring.Scalar(spec.Shove))
	}
	return ecs.Add(w, e, component.SpringComponent.Kind(), &s)
}

func addSpringVec(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpringVecComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode spring_vec spec: %w", err)
	}
	s := spring.NewVector(cp.Vector{X: spec.Target.X, Y: spec.Target.Y}, spec.AngularFrequency, spec.DampingRatio)
	if shove := (cp.Vector{X: spec.Shove.X, Y: spec.Shove.Y}); shove != (cp.Vector{}) {
		s.Shove(shove)
	}
	return ecs.Add(w, e, component.SpringVecComponent.Kind(), &s)
}

func addSpringBinding(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpringBindingComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode spring_binding spec: %w", err)
	}
	field := component.TransformField(spec.Field)
	if !field.Valid() {
		return fmt.Errorf("unknown transform field %q", spec.Field)
	}
	if !ecs.Has(w, e, component.SpringComponent.Kind()) {
		return fmt.Errorf("spring_binding requires a spring on the same entity")
	}
	return ecs.Add(w, e, component.SpringBindingComponent.Kind(), &component.SpringBinding{Field: field})
}

func addLifetime(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LifetimeComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode lifetime spec: %w", err)
	}
	if spec.Seconds <= 0 {
		return fmt.Errorf("lifetime must be positive, got %v", spec.Seconds)
	}
	return ecs.Add(w, e, component.LifetimeComponent.Kind(), &component.Lifetime{Remaining: spec.Seconds})
}

func addMarker(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MarkerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode marker spec: %w", err)
	}
	if spec.Radius <= 0 {
		spec.Radius = 8
	}
	clr := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if spec.Color != nil {
		clr = spec.Color.RGBA
	}
	return ecs.Add(w, e, component.MarkerComponent.Kind(), &component.Marker{
		Radius: spec.Radius,
		Color:  clr,
		Layer:  spec.Layer,
	})
}

func addScript(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ScriptComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode script spec: %w", err)
	}
	if spec.Path == "" {
		return fmt.Errorf("script requires a path")
	}
	return ecs.Add(w, e, component.SpringScriptComponent.Kind(), &component.SpringScript{Path: spec.Path})
}
