package terrain

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// formatVersion is written into every saved mesh file.
const formatVersion = 1

// meshFile is the on-disk layout of a saved mesh.
type meshFile struct {
	Version int   `yaml:"version"`
	Mesh    *Mesh `yaml:"mesh"`
}

// Save writes the mesh buffers to a human-readable YAML file, creating the
// parent directory if needed.
func Save(path string, m *Mesh) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating mesh directory: %w", err)
		}
	}

	data, err := yaml.Marshal(meshFile{Version: formatVersion, Mesh: m})
	if err != nil {
		return fmt.Errorf("encoding mesh: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Load reads a mesh written by Save.
func Load(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f meshFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding mesh %s: %w", path, err)
	}
	if f.Version != formatVersion {
		return nil, fmt.Errorf("mesh %s: unsupported version %d", path, f.Version)
	}
	if f.Mesh == nil || len(f.Mesh.Positions) == 0 {
		return nil, fmt.Errorf("mesh %s: no positions", path)
	}
	if len(f.Mesh.Colors) != 0 && len(f.Mesh.Colors) != len(f.Mesh.Positions) {
		return nil, fmt.Errorf("mesh %s: %d colors for %d positions", path, len(f.Mesh.Colors), len(f.Mesh.Positions))
	}
	for _, idx := range f.Mesh.Indices {
		if int(idx) >= len(f.Mesh.Positions) {
			return nil, fmt.Errorf("mesh %s: index %d out of range", path, idx)
		}
	}

	return f.Mesh, nil
}
