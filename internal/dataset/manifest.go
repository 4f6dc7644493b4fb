package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const ManifestFile = "manifest.yaml"

// Manifest describes one generation run. It sits next to the CSVs so a
// later load run can report what it is about to push.
type Manifest struct {
	GeneratedAt string      `yaml:"generated_at"`
	Seed        int64       `yaml:"seed"`
	Files       []FileEntry `yaml:"files"`
}

type FileEntry struct {
	Name  string `yaml:"name"`
	Table string `yaml:"table"`
	Rows  int    `yaml:"rows"`
}

// WriteManifest saves the run manifest to dir/manifest.yaml.
func WriteManifest(dir string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	path := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}

	return nil
}

// ReadManifest loads dir/manifest.yaml, wrapping any read or parse error.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	return &m, nil
}
