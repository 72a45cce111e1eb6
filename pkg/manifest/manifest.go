package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Entry records one generated mock artifact pair.
type Entry struct {
	Interface string `yaml:"interface" json:"interface"`
	Source    string `yaml:"source" json:"source"`
	Header    string `yaml:"header" json:"header"`
	Cpp       string `yaml:"cpp" json:"cpp"`
}

// Manifest tracks the mock artifacts generated into an output directory.
type Manifest struct {
	Entries []Entry `yaml:"entries" json:"entries"`
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// Add records an entry, replacing an existing entry for the same interface.
func (m *Manifest) Add(e Entry) {
	for i := range m.Entries {
		if m.Entries[i].Interface == e.Interface {
			m.Entries[i] = e
			return
		}
	}
	m.Entries = append(m.Entries, e)
}

// HeaderFor returns the generated header path recorded for an interface, if present.
func (m *Manifest) HeaderFor(qualifiedName string) string {
	for _, e := range m.Entries {
		if e.Interface == qualifiedName {
			return e.Header
		}
	}
	return ""
}
