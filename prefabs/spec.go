package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// LoadSpec reads a prefab file and decodes it into T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SceneSpec lists the prefabs spawned at startup, in order.
type SceneSpec struct {
	Name     string   `yaml:"name"`
	Entities []string `yaml:"entities"`
}

func LoadSceneSpec(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	if len(spec.Entities) == 0 {
		return nil, fmt.Errorf("prefabs: scene %s lists no entities", filename)
	}
	return &spec, nil
}

type VecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

// YAMLColor accepts an x/image colornames name ("crimson") or hex
// ("#rrggbb" / "#rrggbbaa").
type YAMLColor struct {
	color.RGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	name := strings.ToLower(strings.TrimSpace(value.Value))
	if named, ok := colornames.Map[name]; ok {
		c.RGBA = named
		return nil
	}

	s := strings.TrimPrefix(name, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color %q: want a color name or #rrggbb[aa]", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var channels [4]uint8
	channels[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color %q: %w", value.Value, err)
		}
		channels[i] = v
	}

	c.RGBA = color.RGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}
	return nil
}
