// Package catalog discovers the launchable applications advertised
// through freedesktop desktop entries and ranks them for display.
package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

// Entry is one launchable application. Command[0] is the executable;
// the remaining tokens may contain desktop placeholders such as %f
// or %U, which are resolved at launch time, not here.
type Entry struct {
	Name    string
	Command []string
}

// Scan reads every applications directory in the XDG search path and
// returns the visible, localized entries sorted by name. Unless
// showDuplicates is set, entries whose names differ only in case are
// collapsed to the first.
func Scan(showDuplicates bool) []Entry {
	start := time.Now()
	locales := localeCandidates()

	var entries []Entry
	for _, dir := range dataDirs() {
		files, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".desktop") {
				continue
			}
			if e, ok := parseDesktopFile(filepath.Join(dir, f.Name()), locales); ok {
				entries = append(entries, e)
			}
		}
	}

	sortByName(entries)
	if !showDuplicates {
		entries = dedupe(entries)
	}

	log.Debugf("catalog: %d entries from %d dirs in %v", len(entries), len(dataDirs()), time.Since(start))
	return entries
}

// Combine merges user-defined entries into a scanned catalog and
// restores the name ordering. Unless showDuplicates is set, name
// collisions are resolved in favor of the custom entry.
func Combine(scanned, custom []Entry, showDuplicates bool) []Entry {
	merged := make([]Entry, 0, len(scanned)+len(custom))
	merged = append(merged, custom...)
	merged = append(merged, scanned...)
	if !showDuplicates {
		seen := make(map[string]bool, len(merged))
		kept := merged[:0]
		for _, e := range merged {
			lower := strings.ToLower(e.Name)
			if seen[lower] {
				continue
			}
			seen[lower] = true
			kept = append(kept, e)
		}
		merged = kept
	}
	sortByName(merged)
	return merged
}

// sortByName orders entries case-insensitively with a raw-name
// tiebreak so case variants keep a stable relative order.
func sortByName(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		li, lj := strings.ToLower(entries[i].Name), strings.ToLower(entries[j].Name)
		if li != lj {
			return li < lj
		}
		return entries[i].Name < entries[j].Name
	})
}

// dedupe collapses adjacent entries with the same lowercase name.
// The slice must already be sorted by lowercase name.
func dedupe(entries []Entry) []Entry {
	out := entries[:0]
	prev := ""
	for _, e := range entries {
		lower := strings.ToLower(e.Name)
		if lower == prev {
			continue
		}
		out = append(out, e)
		prev = lower
	}
	return out
}

// dataDirs returns every applications directory in XDG precedence
// order: the user's data home first, then the system data dirs.
func dataDirs() []string {
	var dirs []string
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	if dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "applications"))
	}

	dataPath := os.Getenv("XDG_DATA_DIRS")
	if dataPath == "" {
		dataPath = "/usr/local/share:/usr/share"
	}
	for _, d := range strings.Split(dataPath, ":") {
		if d != "" {
			dirs = append(dirs, filepath.Join(d, "applications"))
		}
	}
	return dirs
}

// localeCandidates derives the desktop-entry locale suffixes to try,
// most specific first: "pt_BR" then "pt" for LANG=pt_BR.UTF-8.
func localeCandidates() []string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(env)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
		if err != nil {
			continue
		}
		base, conf := tag.Base()
		if conf == language.No {
			continue
		}
		var cands []string
		if region, rc := tag.Region(); rc == language.Exact {
			cands = append(cands, base.String()+"_"+region.String())
		}
		return append(cands, base.String())
	}
	return nil
}

// parseDesktopFile extracts the launcher-relevant subset of one
// desktop entry. The second result is false for entries the launcher
// must not show: hidden, no-display, or incomplete ones.
func parseDesktopFile(path string, locales []string) (Entry, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, false
	}

	const plainRank = 1 << 30
	var name, execLine string
	nameRank := plainRank + 1
	var noDisplay, hidden bool

	inEntry := false
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			if inEntry {
				// Keys after the [Desktop Entry] section belong to
				// actions and never to the entry itself.
				break
			}
			inEntry = line == "[Desktop Entry]"
			continue
		}
		if !inEntry {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch {
		case key == "Name":
			if nameRank > plainRank {
				name = value
				nameRank = plainRank
			}
		case strings.HasPrefix(key, "Name["):
			loc := strings.TrimSuffix(strings.TrimPrefix(key, "Name["), "]")
			for rank, want := range locales {
				if loc == want && rank < nameRank {
					name = value
					nameRank = rank
				}
			}
		case key == "Exec":
			execLine = value
		case key == "NoDisplay":
			noDisplay = value == "true"
		case key == "Hidden":
			hidden = value == "true"
		}
	}

	if name == "" || execLine == "" || noDisplay || hidden {
		return Entry{}, false
	}
	command := SplitExec(execLine)
	if len(command) == 0 {
		return Entry{}, false
	}
	return Entry{Name: name, Command: command}, true
}

// SplitExec tokenizes a desktop-style Exec line with shell-style
// quoting. Placeholder tokens survive verbatim.
func SplitExec(s string) []string {
	var args []string
	var cur strings.Builder
	inSingle, inDouble, escaped := false, false, false

	flush := func() {
		if cur.Len() > 0 {
			args = append(args, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && !inSingle:
			escaped = true
		case r == '\'' && !inDouble:
			inSingle = !inSingle
		case r == '"' && !inSingle:
			inDouble = !inDouble
		case unicode.IsSpace(r) && !inSingle && !inDouble:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return args
}
