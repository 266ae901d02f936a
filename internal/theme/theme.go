// Package theme persists the dark-mode preference: a single durable key,
// read once at startup and written on every toggle.
package theme

import (
	"os"

	"github.com/pathshare/pathshare/internal/config"
	"gopkg.in/yaml.v3"
)

const (
	valueDark  = "dark"
	valueLight = "light"
)

type preferenceFile struct {
	Theme string `yaml:"pathshare-theme"`
}

// Store reads and writes the theme preference file.
type Store struct {
	path string
}

// NewStore creates a preference store backed by the configured file.
func NewStore(cfg *config.ThemeConfig) *Store {
	return &Store{path: cfg.File}
}

// Load returns true when the stored preference is dark. A missing or
// unreadable file defaults to light.
func (s *Store) Load() bool {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}

	var pref preferenceFile
	if err := yaml.Unmarshal(data, &pref); err != nil {
		return false
	}
	return pref.Theme == valueDark
}

// Save writes the preference. Called on every dark-mode change.
func (s *Store) Save(dark bool) error {
	value := valueLight
	if dark {
		value = valueDark
	}

	data, err := yaml.Marshal(preferenceFile{Theme: value})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
