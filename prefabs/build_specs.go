package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec converts one raw entry of EntityBuildSpec.Components
// into its typed spec.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec = TransformSpec

type CameraComponentSpec struct {
	Zoom float64 `yaml:"zoom"`
}

type SpringComponentSpec struct {
	Target           float64 `yaml:"target"`
	AngularFrequency float64 `yaml:"angular_frequency"`
	DampingRatio     float64 `yaml:"damping_ratio"`
	Shove            float64 `yaml:"shove"`
}

type SpringVecComponentSpec struct {
	Target           VecSpec `yaml:"target"`
	AngularFrequency float64 `yaml:"angular_frequency"`
	DampingRatio     float64 `yaml:"damping_ratio"`
	Shove            VecSpec `yaml:"shove"`
}

type SpringBindingComponentSpec struct {
	Field string `yaml:"field"`
}

type LifetimeComponentSpec struct {
	Seconds float64 `yaml:"seconds"`
}

type MarkerComponentSpec struct {
	Radius float32    `yaml:"radius"`
	Color  *YAMLColor `yaml:"color"`
	Layer  int        `yaml:"layer"`
}

type ScriptComponentSpec struct {
	Path string `yaml:"path"`
}
