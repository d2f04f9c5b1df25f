package history

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

const fileName = "history.toml"

// History tracks launch counts and pinned favorites across runs.
// Favorites must stay ahead of Usage so the encoder emits the
// top-level array before the [usage] table.
type History struct {
	Favorites []string       `toml:"favorites"`
	Usage     map[string]int `toml:"usage"`

	path string
}

// Load reads the history file from the user config directory. A
// missing or unreadable file yields an empty history so the launcher
// still starts.
func Load() *History {
	dir, err := os.UserConfigDir()
	if err != nil {
		logrus.Debugf("history: no config dir: %v", err)
		return LoadFrom("")
	}
	return LoadFrom(filepath.Join(dir, "flint", fileName))
}

// LoadFrom reads history from an explicit path. An empty path keeps
// the history in memory only.
func LoadFrom(path string) *History {
	h := &History{Usage: map[string]int{}, path: path}
	if path == "" {
		return h
	}
	if _, err := toml.DecodeFile(path, h); err != nil {
		if !os.IsNotExist(err) {
			logrus.Debugf("history: decode %s: %v", path, err)
		}
		h.Favorites = nil
		h.Usage = map[string]int{}
		return h
	}
	if h.Usage == nil {
		h.Usage = map[string]int{}
	}
	return h
}

// UsageCount returns how many times the named app was launched.
func (h *History) UsageCount(name string) int { return h.Usage[name] }

// IsFavorite reports whether the named app is pinned.
func (h *History) IsFavorite(name string) bool {
	for _, f := range h.Favorites {
		if f == name {
			return true
		}
	}
	return false
}

// Increment bumps the launch count for name and persists the change.
func (h *History) Increment(name string) {
	h.Usage[name]++
	h.save()
}

// ToggleFavorite pins name, or unpins it when already pinned, and
// persists the change.
func (h *History) ToggleFavorite(name string) {
	for i, f := range h.Favorites {
		if f == name {
			h.Favorites = append(h.Favorites[:i], h.Favorites[i+1:]...)
			h.save()
			return
		}
	}
	h.Favorites = append(h.Favorites, name)
	h.save()
}

func (h *History) save() {
	if h.path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		logrus.Debugf("history: mkdir: %v", err)
		return
	}
	f, err := os.Create(h.path)
	if err != nil {
		logrus.Debugf("history: create: %v", err)
		return
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(h); err != nil {
		logrus.Debugf("history: encode: %v", err)
	}
}
