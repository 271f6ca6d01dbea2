package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

// Dir holds on-disk copies of the embedded files. A file there shadows its
// embedded twin, so edits apply without recompiling.
const Dir = "prefabs"

//go:embed *.yaml scripts/*.tengo
var files embed.FS

// Load reads a yaml prefab such as "zombie.yaml" or "prefabs/zombie.yaml".
func Load(name string) ([]byte, error) {
	return read(prefabName(name))
}

// LoadScript reads a tengo steering script. Names may be bare
// ("zombie_steer.tengo") or carry the scripts/ or prefabs/scripts/ prefix.
func LoadScript(name string) ([]byte, error) {
	return read(scriptName(name))
}

func read(rel string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(rel))); err == nil {
		return data, nil
	}
	return files.ReadFile(rel)
}

func prefabName(name string) string {
	return strings.TrimPrefix(filepath.ToSlash(name), Dir+"/")
}

func scriptName(name string) string {
	if name == "" {
		return ""
	}
	rel := prefabName(name)
	return "scripts/" + strings.TrimPrefix(rel, "scripts/")
}
