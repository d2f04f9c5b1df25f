package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

// configFileName is the name of the config file
const configFileName = "config.toml"

// General holds launcher-wide options shared by all styling blocks.
type General struct {
	RoundedCorners  bool   `toml:"rounded-corners"`
	ShowBorders     bool   `toml:"show-borders"`
	HighlightSymbol string `toml:"highlight-symbol"`
	FavoriteSymbol  string `toml:"favorite-symbol"`
	FavoriteKey     string `toml:"favorite-key"`
}

// Features toggles optional launcher behaviors.
type Features struct {
	EnableFileExplorer bool `toml:"enable-file-explorer"`
	EnableLaunchArgs   bool `toml:"enable-launch-args"`
	EnableAutoComplete bool `toml:"enable-auto-complete"`
	DirsFirst          bool `toml:"dirs-first"`
	RecentFirst        bool `toml:"recent-first"`
	ShowDuplicates     bool `toml:"show-duplicates"`
}

// Block styles one rectangular region of the interface. The pointer
// fields distinguish "omitted" from "false" so a block can inherit
// the general settings.
type Block struct {
	Title          string `toml:"title"`
	Fg             string `toml:"fg"`
	Bg             string `toml:"bg"`
	BorderColor    string `toml:"border-color"`
	Rounded        *bool  `toml:"rounded"`
	Borders        *bool  `toml:"borders"`
	Visible        *bool  `toml:"visible"`
	Visable        *bool  `toml:"visable"` // legacy spelling
	TitleAlignment string `toml:"title-alignment"`
}

// Styling collects the per-region blocks.
type Styling struct {
	Window        Block `toml:"window"`
	OuterBox      Block `toml:"outer-box"`
	Input         Block `toml:"input"`
	Scroll        Block `toml:"scroll"`
	InnerBox      Block `toml:"inner-box"`
	Entry         Block `toml:"entry"`
	EntrySelected Block `toml:"entry-selected"`
	Text          Block `toml:"text"`
}

// Config holds the full launcher configuration.
type Config struct {
	General  General  `toml:"general"`
	Features Features `toml:"features"`
	Styling  Styling  `toml:"styling"`
}

// IsRounded reports the effective corner style for the block.
func (b Block) IsRounded(g General) bool {
	if b.Rounded != nil {
		return *b.Rounded
	}
	return g.RoundedCorners
}

// HasBorders reports the effective border toggle for the block.
func (b Block) HasBorders(g General) bool {
	if b.Borders != nil {
		return *b.Borders
	}
	return g.ShowBorders
}

// IsVisible reports whether the block frame is drawn at all. Older
// configs used the misspelled visable key; it still counts when the
// correct key is absent.
func (b Block) IsVisible() bool {
	if b.Visible != nil {
		return *b.Visible
	}
	if b.Visable != nil {
		return *b.Visable
	}
	return true
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		General: General{
			RoundedCorners:  true,
			ShowBorders:     true,
			HighlightSymbol: ">> ",
			FavoriteSymbol:  "★ ",
			FavoriteKey:     "alt+f",
		},
		Features: Features{
			EnableFileExplorer: true,
			EnableLaunchArgs:   true,
			EnableAutoComplete: true,
			DirsFirst:          true,
			RecentFirst:        true,
		},
		Styling: Styling{
			Window: Block{Title: " flint ", TitleAlignment: "left"},
		},
	}
}

// Dir returns the flint configuration directory.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "flint")
}

// Path returns the path to the config file.
func Path() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, configFileName)
}

// Load reads the configuration, writing the default file on first
// run. The returned Config is always usable; a non-nil error means
// the file was unreadable or invalid and the defaults are in effect.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the configuration from an explicit path. Keys
// missing from the file keep their default values.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if werr := write(path, false); werr != nil {
				logrus.Debugf("config: write default: %v", werr)
			}
			return cfg, nil
		}
		return Default(), err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// WriteDefault writes the default config file and returns its path,
// refusing to overwrite an existing file.
func WriteDefault() (string, error) {
	path := Path()
	return path, write(path, false)
}

func write(path string, overwrite bool) error {
	if path == "" {
		return fmt.Errorf("cannot locate the user config directory")
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(defaultTOML), 0o644)
}

// namedColors maps the 16 classic terminal color names to ANSI
// palette indices.
var namedColors = map[string]int{
	"black":        0,
	"red":          1,
	"green":        2,
	"yellow":       3,
	"blue":         4,
	"magenta":      5,
	"cyan":         6,
	"gray":         7,
	"grey":         7,
	"darkgray":     8,
	"darkgrey":     8,
	"lightred":     9,
	"lightgreen":   10,
	"lightyellow":  11,
	"lightblue":    12,
	"lightmagenta": 13,
	"lightcyan":    14,
	"white":        15,
}

// ParseColor converts a config color string to a lipgloss color.
// Accepted forms are #rrggbb, #rrggbbaa (alpha premultiplied into
// the channels), and the 16 ANSI color names. The second result is
// false for empty or unrecognized values.
func ParseColor(s string) (lipgloss.TerminalColor, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, false
	}
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		switch len(hex) {
		case 6:
			if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
				return nil, false
			}
			return lipgloss.Color("#" + hex), true
		case 8:
			v, err := strconv.ParseUint(hex, 16, 64)
			if err != nil {
				return nil, false
			}
			r := uint8(v >> 24)
			g := uint8(v >> 16)
			b := uint8(v >> 8)
			a := uint64(uint8(v))
			r = uint8(uint64(r) * a / 255)
			g = uint8(uint64(g) * a / 255)
			b = uint8(uint64(b) * a / 255)
			return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b)), true
		}
		return nil, false
	}
	if idx, ok := namedColors[s]; ok {
		return lipgloss.Color(strconv.Itoa(idx)), true
	}
	return nil, false
}

// defaultTOML is the config file written on first run. It mirrors
// Default(); keep the two in sync.
const defaultTOML = `[general]
rounded-corners = true
show-borders = true
highlight-symbol = ">> "
favorite-symbol = "★ "
favorite-key = "alt+f"

[features]
enable-file-explorer = true
enable-launch-args = true
enable-auto-complete = true
dirs-first = true
recent-first = true
show-duplicates = false

# Per-block styling. Colors are "#rrggbb", "#rrggbbaa", or one of the
# 16 terminal color names. Omitted settings inherit from [general].
[styling.window]
title = " flint "
title-alignment = "left"

[styling.outer-box]

[styling.input]

[styling.scroll]

[styling.inner-box]

[styling.entry]

[styling.entry-selected]

[styling.text]
`
