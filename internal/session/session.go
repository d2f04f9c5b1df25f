package session

import (
	"strings"

	"github.com/sirupsen/logrus"

	"flint/internal/catalog"
	"flint/internal/launch"
	"flint/internal/match"
)

// Mode selects which candidate list is active.
type Mode int

const (
	AppSelection Mode = iota
	FileSelection
	PasswordPrompt
)

func (m Mode) String() string {
	switch m {
	case AppSelection:
		return "apps"
	case FileSelection:
		return "files"
	case PasswordPrompt:
		return "password"
	}
	return "unknown"
}

// Store is the slice of the persistence layer the session needs.
type Store interface {
	catalog.UsageSource
	ToggleFavorite(name string)
}

// Lister produces candidate paths for a path-like query fragment.
type Lister func(input string) []string

// DirChecker reports whether a path (possibly ~-prefixed) names a
// directory.
type DirChecker func(path string) bool

// Options fixes the feature toggles for the lifetime of a session.
type Options struct {
	FileExplorer bool
	LaunchArgs   bool
	AutoComplete bool
	RecentFirst  bool
}

// Session is the mutable launcher state driven by the renderer. The
// filtered lists, selection, and pending launch arguments are derived
// from Query on every edit; exactly one of Apps/Paths is active per
// Mode, and Selected is -1 iff the active list is empty.
type Session struct {
	Query       string
	Mode        Mode
	Apps        []catalog.Entry
	Paths       []string
	Selected    int
	PendingArgs []string
	SudoFlags   []string
	Pending     *launch.Command
	Password    string
	Transcript  []string
	Status      string

	opts    Options
	catalog []catalog.Entry
	store   Store
	list    Lister
	isDir   DirChecker
	sudo    bool
}

// New builds a session over a ranked catalog. list and isDir are
// injected so tests can run against fixed filesystems.
func New(ranked []catalog.Entry, store Store, opts Options, list Lister, isDir DirChecker) *Session {
	s := &Session{
		Mode:     AppSelection,
		Selected: -1,
		opts:     opts,
		catalog:  ranked,
		store:    store,
		list:     list,
		isDir:    isDir,
	}
	s.Recompute()
	return s
}

// SetQuery replaces the query and reinterprets it.
func (s *Session) SetQuery(q string) {
	s.Query = q
	s.Recompute()
}

// SudoPrefix reports whether the current query begins with the sudo
// token, meaning a confirm must go through the escalation handshake.
func (s *Session) SudoPrefix() bool { return s.sudo }

// Recompute reinterprets the query from scratch: sudo-prefix
// extraction, mode selection, filtering, fallback argument
// extraction, and selection reset. It does nothing while the
// password prompt is open.
func (s *Session) Recompute() {
	if s.Mode == PasswordPrompt {
		return
	}
	prev := s.Mode
	effective := s.extractSudo()
	trimmed := strings.TrimSpace(effective)

	s.Apps = nil
	s.Paths = nil
	s.PendingArgs = nil
	s.Mode = AppSelection

	if s.opts.FileExplorer && (strings.HasPrefix(trimmed, "~") || strings.HasPrefix(trimmed, "/")) {
		s.Mode = FileSelection
		s.Paths = s.list(trimmed)
	} else {
		s.filterApps(trimmed)
	}
	s.resetSelection()
	if s.Mode != prev {
		logrus.Debugf("session: mode %s -> %s", prev, s.Mode)
	}
}

// sudoValueFlags are the sudo flags that consume the next token as
// their value.
var sudoValueFlags = map[string]bool{
	"-C": true, "-g": true, "-h": true, "-p": true,
	"-r": true, "-t": true, "-U": true, "-u": true,
}

// extractSudo strips a leading sudo token and its flags from the
// query and returns the effective query. A query like "sudoku" is
// not a sudo prefix; the token needs a word boundary.
func (s *Session) extractSudo() string {
	s.sudo = false
	s.SudoFlags = nil

	rest, ok := strings.CutPrefix(s.Query, "sudo")
	if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
		return s.Query
	}
	s.sudo = true

	tokens := strings.Fields(rest)
	i := 0
	for i < len(tokens) && strings.HasPrefix(tokens[i], "-") {
		flag := tokens[i]
		s.SudoFlags = append(s.SudoFlags, flag)
		i++
		if sudoValueFlags[flag] && i < len(tokens) {
			s.SudoFlags = append(s.SudoFlags, tokens[i])
			i++
		}
	}
	return strings.Join(tokens[i:], " ")
}

func (s *Session) filterApps(trimmed string) {
	if trimmed == "" {
		s.Apps = s.catalog
		return
	}
	s.Apps = s.filter(strings.ToLower(trimmed))
	if len(s.Apps) == 0 {
		s.fallback(trimmed)
	}
}

// filter keeps the catalog entries whose lower-cased name
// subsequence-matches the already lower-cased query, in catalog
// order.
func (s *Session) filter(lowerQuery string) []catalog.Entry {
	var out []catalog.Entry
	for _, e := range s.catalog {
		if match.Subsequence(lowerQuery, strings.ToLower(e.Name)) {
			out = append(out, e)
		}
	}
	return out
}

// fallback retries the match on successively shorter word prefixes of
// the query. The longest prefix with matches wins; the words after it
// become pending launch arguments. When the last pending word looks
// like a path rather than a flag, a file lookup on it may flip the
// session into FileSelection while the matched app stays the launch
// target.
func (s *Session) fallback(trimmed string) {
	words := strings.Fields(trimmed)
	for n := len(words) - 1; n >= 1; n-- {
		matches := s.filter(strings.ToLower(strings.Join(words[:n], " ")))
		if len(matches) == 0 {
			continue
		}
		s.Apps = matches
		s.PendingArgs = words[n:]

		last := words[len(words)-1]
		if s.opts.LaunchArgs && !strings.HasPrefix(last, "-") {
			if paths := s.list(last); len(paths) > 0 {
				s.Mode = FileSelection
				s.Paths = paths
			}
		}
		return
	}
}

func (s *Session) activeLen() int {
	if s.Mode == FileSelection {
		return len(s.Paths)
	}
	return len(s.Apps)
}

func (s *Session) resetSelection() {
	if s.activeLen() > 0 {
		s.Selected = 0
	} else {
		s.Selected = -1
	}
}

// Move shifts the selection by delta, wrapping at both ends.
func (s *Session) Move(delta int) {
	n := s.activeLen()
	if n == 0 {
		return
	}
	cur := s.Selected
	if cur < 0 {
		cur = 0
	}
	s.Selected = ((cur+delta)%n + n) % n
}

// First jumps to the top of the active list.
func (s *Session) First() {
	if s.activeLen() > 0 {
		s.Selected = 0
	}
}

// Last jumps to the bottom of the active list.
func (s *Session) Last() {
	if n := s.activeLen(); n > 0 {
		s.Selected = n - 1
	}
}

// AutoComplete replaces the path token under edit with the selected
// path, appending a separator when the path is a directory, then
// reinterprets the query.
func (s *Session) AutoComplete() {
	if s.Mode != FileSelection || !s.opts.AutoComplete {
		return
	}
	if s.Selected < 0 || s.Selected >= len(s.Paths) {
		return
	}
	chosen := s.Paths[s.Selected]
	if s.isDir(chosen) {
		chosen += "/"
	}
	if i := strings.LastIndex(s.Query, " "); i >= 0 {
		s.Query = s.Query[:i+1] + chosen
	} else {
		s.Query = chosen
	}
	s.Recompute()
}

// ToggleFavorite flips the favorite flag on the selected app,
// re-ranks the catalog, and reinterprets the query.
func (s *Session) ToggleFavorite() {
	if s.Mode != AppSelection || s.Selected < 0 || s.Selected >= len(s.Apps) {
		return
	}
	s.store.ToggleFavorite(s.Apps[s.Selected].Name)
	s.catalog = catalog.Rank(s.catalog, s.store, s.opts.RecentFirst)
	s.Recompute()
}

// TargetApp returns the entry a confirm would launch. In
// FileSelection reached through argument fallback the first filtered
// app remains the target; pure file browsing has no app target.
func (s *Session) TargetApp() (catalog.Entry, bool) {
	switch s.Mode {
	case AppSelection:
		if s.Selected >= 0 && s.Selected < len(s.Apps) {
			return s.Apps[s.Selected], true
		}
	case FileSelection:
		if len(s.Apps) > 0 {
			return s.Apps[0], true
		}
	}
	return catalog.Entry{}, false
}

// SelectedPath returns the highlighted path in FileSelection mode.
func (s *Session) SelectedPath() (string, bool) {
	if s.Mode != FileSelection || s.Selected < 0 || s.Selected >= len(s.Paths) {
		return "", false
	}
	return s.Paths[s.Selected], true
}

// BeginEscalation parks cmd and opens the password prompt.
func (s *Session) BeginEscalation(cmd *launch.Command) {
	s.Pending = cmd
	s.Mode = PasswordPrompt
	s.Password = ""
	s.Transcript = []string{"Password: "}
}

// EscalationFailed records a failed attempt and prompts again.
func (s *Session) EscalationFailed(msg string) {
	s.Transcript = append(s.Transcript, msg, "Password: ")
	s.Password = ""
}

// CancelEscalation abandons the pending launch and returns to the
// app list.
func (s *Session) CancelEscalation() {
	s.Pending = nil
	s.Password = ""
	s.Transcript = nil
	s.Mode = AppSelection
	s.Recompute()
}
