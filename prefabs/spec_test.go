package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func useDir(t *testing.T, dir string) {
	t.Helper()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
}

func TestLoadSceneSpecEmbedded(t *testing.T) {
	useDir(t, t.TempDir())

	scene, err := LoadSceneSpec("scene.yaml")
	if err != nil {
		t.Fatalf("load scene: %v", err)
	}
	if len(scene.Entities) != 8 {
		t.Fatalf("expected 8 entities, got %d", len(scene.Entities))
	}
	if scene.Entities[0] != "camera.yaml" {
		t.Fatalf("expected camera first, got %q", scene.Entities[0])
	}
}

func TestLoadSceneSpecEmpty(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, "empty.yaml"), []byte("name: empty\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadSceneSpec("empty.yaml"); err == nil {
		t.Fatalf("expected error for a scene without entities")
	}
}

func TestLoadPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)

	spec, err := LoadEntityBuildSpec("camera.yaml")
	if err != nil {
		t.Fatalf("load embedded camera: %v", err)
	}
	if spec.Name != "camera" {
		t.Fatalf("expected embedded camera, got %q", spec.Name)
	}

	if err := os.WriteFile(filepath.Join(dir, "camera.yaml"), []byte("name: override\ncomponents: {}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	spec, err = LoadEntityBuildSpec("prefabs/camera.yaml")
	if err != nil {
		t.Fatalf("load override: %v", err)
	}
	if spec.Name != "override" {
		t.Fatalf("expected disk copy to win, got %q", spec.Name)
	}
}

func TestLoadScript(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)

	for _, name := range []string{"step.tengo", "scripts/step.tengo", "prefabs/scripts/step.tengo"} {
		if _, err := LoadScript(name); err != nil {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
	}

	if err := os.MkdirAll(filepath.Join(dir, "scripts"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "scripts", "step.tengo"), []byte("target = 1"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	src, err := LoadScript("step.tengo")
	if err != nil {
		t.Fatalf("load override: %v", err)
	}
	if string(src) != "target = 1" {
		t.Fatalf("expected disk script, got %q", src)
	}

	if _, err := LoadScript("missing.tengo"); err == nil {
		t.Fatalf("expected error for missing script")
	}
}

func TestDecodeComponentSpec(t *testing.T) {
	raw := map[string]any{
		"target":            map[string]any{"x": 1.5, "y": -2.0},
		"angular_frequency": 6,
		"damping_ratio":     0.3,
	}
	spec, err := DecodeComponentSpec[SpringVecComponentSpec](raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec.Target != (VecSpec{X: 1.5, Y: -2}) || spec.AngularFrequency != 6 || spec.DampingRatio != 0.3 {
		t.Fatalf("unexpected spec %+v", spec)
	}

	empty, err := DecodeComponentSpec[SpringComponentSpec](nil)
	if err != nil || empty != (SpringComponentSpec{}) {
		t.Fatalf("nil raw should decode to zero value, got %+v, %v", empty, err)
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "crimson", want: color.RGBA{R: 0xdc, G: 0x14, B: 0x3c, A: 0xff}},
		{in: "  Gold ", want: color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}},
		{in: "#102030", want: color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}},
		{in: "#ffffffcc", want: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xcc}},
		{in: "#fff", wantErr: true},
		{in: "#gg0000", wantErr: true},
		{in: "notacolor", wantErr: true},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var out struct {
				Color YAMLColor `yaml:"color"`
			}
			err := yaml.Unmarshal([]byte("color: \""+c.in+"\"\n"), &out)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", c.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal %q: %v", c.in, err)
			}
			if out.Color.RGBA != c.want {
				t.Fatalf("expected %v, got %v", c.want, out.Color.RGBA)
			}
		})
	}
}

func TestName(t *testing.T) {
	useDir(t, "prefabs")

	cases := []struct {
		in   string
		want string
	}{
		{"camera.yaml", "camera.yaml"},
		{"prefabs/camera.yaml", "camera.yaml"},
		{"/home/me/game/prefabs/camera.yaml", "camera.yaml"},
		{"prefabs/scripts/step.tengo", "scripts/step.tengo"},
		{"step.tengo", "scripts/step.tengo"},
		{"/home/me/game/prefabs/scripts/orbit.tengo", "scripts/orbit.tengo"},
	}
	for _, c := range cases {
		if got := Name(c.in); got != c.want {
			t.Fatalf("Name(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
