package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"flint/internal/catalog"
	"flint/internal/config"
	"flint/internal/customapps"
	"flint/internal/history"
	"flint/internal/launch"
	"flint/internal/pathx"
	"flint/internal/session"
	"flint/internal/ui"
	"flint/internal/ui/components"
)

// Version info (set by ldflags)
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

var debugMode = false

// Model is the main application model
type Model struct {
	cfg  *config.Config
	sess *session.Session
	hist *history.History
	host launch.Host
	esc  launch.Escalator

	// UI Components
	input  textinput.Model
	list   *components.EntryList
	help   help.Model
	keys   ui.KeyMap
	styles ui.Styles

	width  int
	height int
}

func New() *Model {
	cfg, cfgErr := config.Load()
	styles := ui.FromConfig(cfg)

	hist := history.Load()
	custom, err := customapps.New("").Load()
	if err != nil {
		logrus.Debugf("custom apps: %v", err)
	}
	scanned := catalog.Combine(catalog.Scan(cfg.Features.ShowDuplicates), customapps.Entries(custom), cfg.Features.ShowDuplicates)
	entries := catalog.Rank(scanned, hist, cfg.Features.RecentFirst)

	lister := func(input string) []string {
		return pathx.List(input, cfg.Features.DirsFirst)
	}
	sess := session.New(entries, hist, session.Options{
		FileExplorer: cfg.Features.EnableFileExplorer,
		LaunchArgs:   cfg.Features.EnableLaunchArgs,
		AutoComplete: cfg.Features.EnableAutoComplete,
		RecentFirst:  cfg.Features.RecentFirst,
	}, lister, pathx.IsDir)
	if cfgErr != nil {
		sess.Status = fmt.Sprintf("config error: %v", cfgErr)
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Width = 50
	ti.PromptStyle = styles.Input.Text
	ti.TextStyle = styles.Input.Text
	ti.Focus()

	host := launch.OSHost{}

	return &Model{
		cfg:    cfg,
		sess:   sess,
		hist:   hist,
		host:   host,
		esc:    launch.Escalator{Host: host},
		input:  ti,
		list:   &components.EntryList{},
		help:   help.New(),
		keys:   ui.DefaultKeyMap(cfg.General.FavoriteKey),
		styles: styles,
		width:  80,
		height: 24,
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(16, msg.Width-12)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKeyPress routes keys by mode. Navigation chords are consumed
// before the text input sees them; everything else edits the query.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.sess.Mode == session.PasswordPrompt {
		return m.handlePasswordKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Escape):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Confirm):
		return m.confirm()

	case key.Matches(msg, m.keys.Up):
		m.sess.Move(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.sess.Move(1)
		return m, nil

	case key.Matches(msg, m.keys.First):
		m.sess.First()
		return m, nil

	case key.Matches(msg, m.keys.Last):
		m.sess.Last()
		return m, nil

	case key.Matches(msg, m.keys.AutoComplete):
		m.sess.AutoComplete()
		m.input.SetValue(m.sess.Query)
		m.input.CursorEnd()
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		m.sess.ToggleFavorite()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != m.sess.Query {
		m.sess.SetQuery(q)
	}
	return m, cmd
}

func (m *Model) handlePasswordKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.sess.CancelEscalation()
		m.input.SetValue(m.sess.Query)
		m.input.CursorEnd()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m.runEscalation()
	}

	switch msg.Type {
	case tea.KeyRunes:
		if !msg.Alt {
			m.sess.Password += string(msg.Runes)
		}
	case tea.KeySpace:
		m.sess.Password += " "
	case tea.KeyBackspace:
		if r := []rune(m.sess.Password); len(r) > 0 {
			m.sess.Password = string(r[:len(r)-1])
		}
	}
	return m, nil
}

// confirm launches the current selection: the selected app, the
// matched app with the selected file as argument, or a bare file.
func (m *Model) confirm() (tea.Model, tea.Cmd) {
	switch m.sess.Mode {
	case session.AppSelection:
		if app, ok := m.sess.TargetApp(); ok {
			return m.launchApp(app, "")
		}
	case session.FileSelection:
		path, ok := m.sess.SelectedPath()
		if !ok {
			return m, nil
		}
		if app, appOK := m.sess.TargetApp(); appOK {
			return m.launchApp(app, path)
		}
		return m.openPath(path)
	}
	return m, nil
}

func (m *Model) launchApp(app catalog.Entry, filePath string) (tea.Model, tea.Cmd) {
	exe, args := launch.Compose(app.Command, m.sess.PendingArgs, filePath, m.cfg.Features.EnableLaunchArgs)
	m.hist.Increment(app.Name)

	if m.sess.SudoPrefix() {
		logrus.Debugf("escalation: prompting for %s", app.Name)
		m.sess.BeginEscalation(&launch.Command{Name: app.Name, Exec: exe, Args: args})
		return m, nil
	}

	logrus.Debugf("launch: %s", app.Name)
	if err := m.host.SpawnDetached(exe, args...); err != nil {
		logrus.Debugf("launch %s: %v", app.Name, err)
		m.sess.Status = fmt.Sprintf("Failed to launch %s: %v", app.Name, err)
		return m, nil
	}
	return m, tea.Quit
}

func (m *Model) openPath(path string) (tea.Model, tea.Cmd) {
	logrus.Debugf("open: %s", path)
	if err := launch.OpenPath(m.host, path); err != nil {
		logrus.Debugf("open %s: %v", path, err)
		m.sess.Status = fmt.Sprintf("Failed to open %s: %v", path, err)
		return m, nil
	}
	return m, tea.Quit
}

func (m *Model) runEscalation() (tea.Model, tea.Cmd) {
	ok, err := m.esc.Validate(m.sess.SudoFlags, m.sess.Password)
	if err != nil {
		logrus.Debugf("escalation: %v", err)
		m.sess.EscalationFailed(err.Error())
		return m, nil
	}
	if !ok {
		logrus.Debug("escalation: password rejected")
		m.sess.EscalationFailed("Sorry, try again.")
		return m, nil
	}

	cmd := m.sess.Pending
	if err := m.esc.LaunchPrivileged(cmd, m.sess.SudoFlags, m.sess.Password); err != nil {
		logrus.Debugf("escalation launch %s: %v", cmd.Name, err)
		m.sess.EscalationFailed(fmt.Sprintf("Failed to launch %s: %v", cmd.Name, err))
		return m, nil
	}
	logrus.Debugf("escalation: launched %s", cmd.Name)
	return m, tea.Quit
}

func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	inner := m.width - 8
	if inner < 24 {
		inner = 24
	}
	listHeight := m.height - 10
	if listHeight < 3 {
		listHeight = 3
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Input.Render(inner, m.renderInput()),
		m.styles.InnerBox.Render(inner, m.renderBody(inner, listHeight)),
		m.renderStatus(inner),
	)
	return m.styles.Window.Render(m.width-2, m.styles.OuterBox.Render(inner+2, content))
}

func (m *Model) renderInput() string {
	// The password never echoes; the prompt stands alone.
	if m.sess.Mode == session.PasswordPrompt {
		return m.styles.Input.Text.Render("> ")
	}
	return m.input.View()
}

func (m *Model) renderBody(width, height int) string {
	if m.sess.Mode == session.PasswordPrompt {
		lines := m.sess.Transcript
		if len(lines) > height {
			lines = lines[len(lines)-height:]
		}
		return m.styles.Text.Text.Render(strings.Join(lines, "\n"))
	}

	m.list.Width = width
	m.list.Height = height
	m.list.Cursor = m.sess.Selected
	m.list.Highlight = m.styles.HighlightSymbol
	m.list.Entry = m.styles.Entry.Text
	m.list.Selected = m.styles.EntrySelected.Text
	m.list.Muted = m.styles.Scroll.Text

	if m.sess.Mode == session.FileSelection {
		m.list.FavoriteMark = ""
		items := make([]components.Item, len(m.sess.Paths))
		for i, p := range m.sess.Paths {
			items[i] = components.Item{Text: p}
		}
		m.list.Items = items
	} else {
		m.list.FavoriteMark = m.styles.FavoriteSymbol
		items := make([]components.Item, len(m.sess.Apps))
		for i, e := range m.sess.Apps {
			items[i] = components.Item{Text: e.Name, Favorite: m.hist.IsFavorite(e.Name)}
		}
		m.list.Items = items
	}
	return m.list.View()
}

func (m *Model) renderStatus(width int) string {
	if m.sess.Status != "" {
		return m.styles.Error.Render(ui.Truncate(m.sess.Status, width))
	}
	return m.help.View(m.keys)
}

func setupLogging() {
	if !debugMode {
		logrus.SetOutput(io.Discard)
		return
	}
	logrus.SetLevel(logrus.DebugLevel)
	if dir := config.Dir(); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			if f, err := os.Create(filepath.Join(dir, "flint.log")); err == nil {
				logrus.SetOutput(f)
				return
			}
		}
	}
	logrus.SetOutput(io.Discard)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "flint",
		Short:        "A keyboard-driven application launcher for the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			p := tea.NewProgram(New(), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
	root.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "enable debug logging")

	root.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefault()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "add <name> <command>",
		Short: "Add a user-defined entry to the catalog",
		Long: `Add a user-defined entry to the catalog.

The command line is stored verbatim and may use desktop-style
placeholders, for example:

  flint add "Work Browser" 'firefox --profile work %U'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := customapps.New("").Add(customapps.Definition{Name: args[0], Exec: args[1]}); err != nil {
				return err
			}
			fmt.Printf("added %s\n", strings.TrimSpace(args[0]))
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("flint %s (commit %s, built %s)\n", version, commit, buildTime)
		},
	})

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
