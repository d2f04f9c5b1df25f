// Package customapps persists user-defined launcher entries for
// programs that ship no desktop file, such as scripts and one-off
// commands.
package customapps

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"flint/internal/catalog"
	"flint/internal/config"
)

// Definition is one user-defined entry as stored on disk. Exec is a
// desktop-style command line and may carry %f/%F/%u/%U placeholders.
type Definition struct {
	Name string `yaml:"name"`
	Exec string `yaml:"exec"`
}

type appsFile struct {
	Apps []Definition `yaml:"apps"`
}

// Store persists entry definitions in a YAML file.
type Store struct {
	path string
}

// New creates a store over path. A blank path selects the default
// location next to the launcher config.
func New(path string) *Store {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	return &Store{path: path}
}

// DefaultPath returns the default definitions path.
func DefaultPath() string {
	dir := config.Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "apps.yaml")
}

// Load returns all stored definitions. A missing file is an empty
// store.
func (s *Store) Load() ([]Definition, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var f appsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Apps, nil
}

// Add appends a definition, refusing names that are already taken.
func (s *Store) Add(def Definition) error {
	def, err := sanitize(def)
	if err != nil {
		return err
	}

	existing, err := s.Load()
	if err != nil {
		return err
	}
	for _, d := range existing {
		if strings.EqualFold(d.Name, def.Name) {
			return fmt.Errorf("entry %q already exists", def.Name)
		}
	}
	return s.save(append(existing, def))
}

func (s *Store) save(defs []Definition) error {
	data, err := yaml.Marshal(appsFile{Apps: defs})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func sanitize(def Definition) (Definition, error) {
	def.Name = strings.TrimSpace(def.Name)
	def.Exec = strings.TrimSpace(def.Exec)

	if def.Name == "" {
		return def, fmt.Errorf("name is required")
	}
	if def.Exec == "" {
		return def, fmt.Errorf("exec is required")
	}
	if len(catalog.SplitExec(def.Exec)) == 0 {
		return def, fmt.Errorf("exec %q has no command", def.Exec)
	}
	return def, nil
}

// Entries converts definitions into catalog entries, dropping any
// whose command line does not tokenize.
func Entries(defs []Definition) []catalog.Entry {
	var out []catalog.Entry
	for _, d := range defs {
		cmd := catalog.SplitExec(d.Exec)
		if len(cmd) == 0 {
			continue
		}
		out = append(out, catalog.Entry{Name: d.Name, Command: cmd})
	}
	return out
}
