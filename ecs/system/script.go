package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/springs/ecs"
	"github.com/milk9111/springs/ecs/component"
	"github.com/milk9111/springs/prefabs"
	"github.com/milk9111/springs/spring"
)

// globals every spring script sees; all are floats
var scriptGlobals = []string{
	"t", "dt",
	"target", "target_x", "target_y",
	"angular", "damping",
	"shove", "shove_x", "shove_y",
}

// ScriptSystem runs each entity's SpringScript once per tick and writes the
// results back through the spring setters. Run it before SpringSystem.
type ScriptSystem struct {
	// Load fetches script source by path. Defaults to prefabs.LoadScript.
	Load func(path string) ([]byte, error)

	templates map[string]*tengo.Compiled
	runtimes  map[ecs.Entity]*scriptRuntime
}

type scriptRuntime struct {
	path     string
	compiled *tengo.Compiled
}

func NewScriptSystem() *ScriptSystem {
	return &ScriptSystem{Load: prefabs.LoadScript}
}

func (s *ScriptSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.SpringScriptComponent.Kind(), func(e ecs.Entity, sc *component.SpringScript) {
		sc.Elapsed += dt
		if err := s.run(w, e, sc, dt); err != nil {
			log.Printf("script: entity=%v %s: %v", e, sc.Path, err)
		}
	})

	for e := range s.runtimes {
		if !ecs.IsAlive(w, e) {
			delete(s.runtimes, e)
		}
	}
}

// Invalidate drops every compiled copy of the script so the next tick
// reloads it. path may be in any form prefabs.Name understands.
func (s *ScriptSystem) Invalidate(path string) {
	name := prefabs.Name(path)
	for p := range s.templates {
		if prefabs.Name(p) == name {
			delete(s.templates, p)
		}
	}
	for e, rt := range s.runtimes {
		if prefabs.Name(rt.path) == name {
			delete(s.runtimes, e)
		}
	}
}

func (s *ScriptSystem) run(w *ecs.World, e ecs.Entity, sc *component.SpringScript, dt float64) error {
	vec, hasVec := ecs.Get(w, e, component.SpringVecComponent.Kind())
	scalar, hasScalar := ecs.Get(w, e, component.SpringComponent.Kind())
	if !hasVec && !hasScalar {
		return fmt.Errorf("entity has no spring to drive")
	}

	rt, err := s.runtime(e, sc.Path)
	if err != nil {
		return err
	}

	in := map[string]float64{"t": sc.Elapsed, "dt": dt}
	if hasVec {
		in["target_x"] = vec.Target().X
		in["target_y"] = vec.Target().Y
		in["angular"] = vec.AngularFrequency()
		in["damping"] = vec.DampingRatio()
	}
	if hasScalar {
		in["target"] = scalar.Target().Float()
		if !hasVec {
			in["angular"] = scalar.AngularFrequency()
			in["damping"] = scalar.DampingRatio()
		}
	}
	for _, name := range scriptGlobals {
		if err := rt.compiled.Set(name, in[name]); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}

	if err := rt.compiled.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	out := func(name string) float64 {
		return rt.compiled.Get(name).Float()
	}

	if hasVec {
		vec.SetTarget(cp.Vector{X: out("target_x"), Y: out("target_y")})
		vec.SetAngularFrequency(out("angular"))
		vec.SetDampingRatio(out("damping"))
		if shove := (cp.Vector{X: out("shove_x"), Y: out("shove_y")}); shove != (cp.Vector{}) {
			vec.Shove(shove)
		}
	}
	if hasScalar {
		scalar.SetTarget(spring.Scalar(out("target")))
		scalar.SetAngularFrequency(out("angular"))
		scalar.SetDampingRatio(out("damping"))
		if shove := out("shove"); shove != 0 {
			scalar.Shove(spring.Scalar(shove))
		}
	}
	return nil
}

func (s *ScriptSystem) runtime(e ecs.Entity, path string) (*scriptRuntime, error) {
	if rt, ok := s.runtimes[e]; ok && rt.path == path {
		return rt, nil
	}
	if s.runtimes == nil {
		s.runtimes = map[ecs.Entity]*scriptRuntime{}
	}
	if s.templates == nil {
		s.templates = map[string]*tengo.Compiled{}
	}

	tmpl, ok := s.templates[path]
	if !ok {
		compiled, err := s.compile(path)
		if err != nil {
			return nil, err
		}
		tmpl = compiled
		s.templates[path] = tmpl
	}

	rt := &scriptRuntime{path: path, compiled: tmpl.Clone()}
	s.runtimes[e] = rt
	return rt, nil
}

func (s *ScriptSystem) compile(path string) (*tengo.Compiled, error) {
	load := s.Load
	if load == nil {
		load = prefabs.LoadScript
	}
	src, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	script := tengo.NewScript(src)
	for _, name := range scriptGlobals {
		if err := script.Add(name, 0.0); err != nil {
			return nil, fmt.Errorf("declare %s: %w", name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
}
