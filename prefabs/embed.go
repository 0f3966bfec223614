package prefabs

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// Dir is the on-disk directory whose files shadow the embedded ones.
var Dir = "prefabs"

// Load returns the named prefab, preferring a copy on disk.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// LoadScript returns the named tengo script, preferring a copy on disk.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// Name maps a path as reported by the watcher back to the name Load expects.
func Name(path string) string {
	s := filepath.ToSlash(path)
	dir := strings.TrimSuffix(filepath.ToSlash(Dir), "/") + "/"
	if i := strings.LastIndex(s, dir); i >= 0 {
		s = s[i+len(dir):]
	}
	if isScriptFile(s) {
		return cleanScriptPath(s)
	}
	return cleanPrefabPath(s)
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
