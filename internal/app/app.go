// Package app contains the root application model.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/zjrosen/regexlens/internal/config"
	"github.com/zjrosen/regexlens/internal/diagnostic"
	"github.com/zjrosen/regexlens/internal/highlight"
	"github.com/zjrosen/regexlens/internal/keys"
	"github.com/zjrosen/regexlens/internal/log"
	"github.com/zjrosen/regexlens/internal/pattern"
	"github.com/zjrosen/regexlens/internal/session"
	"github.com/zjrosen/regexlens/internal/ui/help"
	"github.com/zjrosen/regexlens/internal/ui/patterninput"
	"github.com/zjrosen/regexlens/internal/ui/styles"
	"github.com/zjrosen/regexlens/internal/watcher"
)

// Panel identifies the focused area of the screen.
type Panel int

const (
	PanelPattern Panel = iota
	PanelSubject
	PanelCaptures
)

// patternPanelHeight is the bordered one-line input; its bottom border doubles
// as the error marker row.
const patternPanelHeight = 3

// minSplitWidth is the narrowest screen that shows subject and captures side
// by side.
const minSplitWidth = 60

// Options configures a new application model.
type Options struct {
	Config config.Config
	// Subject is the text matched against.
	Subject string
	// SubjectPath is the file Subject was read from, empty for stdin. It is
	// reloaded on ctrl+r and watched when Config.Subject.Watch is set.
	SubjectPath string
}

// reloadMsg carries the result of a manual subject reload.
type reloadMsg struct {
	update watcher.Update
}

// Model is the root application state.
type Model struct {
	session *session.Session
	input   patterninput.Model
	keys    keys.KeyMap
	help    help.Model

	subject      string
	subjectPath  string
	subjectErr   error
	matchCount   int
	subjectView  viewport.Model
	capturesView viewport.Model

	focus        Panel
	showCaptures bool
	showHelp     bool // help overlay
	showFooter   bool // one-line key hints

	themes      []string
	theme       int
	themeColors map[string]string

	width  int
	height int

	// Subject file watcher
	watcherHandle *watcher.Watcher
	watcherCtx    context.Context
	watcherCancel context.CancelFunc
	updates       <-chan watcher.Update
}

// New creates the application model. The theme must already be applied so
// the painter picks up its colors.
func New(opts Options) Model {
	cfg := opts.Config

	compiler := pattern.Compiler{
		SizeLimit:         cfg.Engine.SizeLimit,
		MaxRecursionDepth: cfg.Engine.MaxRecursionDepth,
	}
	sess := session.New(compiler, highlight.NewPainter(highlight.TableFromTheme()))
	sess.SetMatchBackground(styles.MatchBackgroundColor)

	input := patterninput.New()
	input.SetPlaceholder("type a regular expression")
	input.Focus()

	themes := styles.PresetNames()
	theme := slices.Index(themes, cfg.Theme.Preset)
	if theme < 0 {
		theme = max(slices.Index(themes, "default"), 0)
	}

	m := Model{
		session:      sess,
		input:        input,
		keys:         keys.DefaultKeyMap(),
		help:         help.New(),
		subject:      opts.Subject,
		subjectPath:  opts.SubjectPath,
		subjectView:  viewport.New(0, 0),
		capturesView: viewport.New(0, 0),
		focus:        PanelPattern,
		showCaptures: cfg.UI.ShowCaptures,
		showFooter:   cfg.UI.ShowHelp,
		themes:       themes,
		theme:        theme,
		themeColors:  cfg.Theme.FlattenedColors(),
	}

	if p := cfg.UI.InitialPattern; p != "" {
		m.input.SetValue(p)
		m.input.SetCursor(len(p))
		m.setPattern(p)
	}

	if cfg.Subject.Watch && opts.SubjectPath != "" {
		m.startWatcher(cfg.Subject)
	}

	return m
}

func (m *Model) startWatcher(cfg config.SubjectConfig) {
	wcfg := watcher.DefaultConfig(m.subjectPath)
	if cfg.Debounce > 0 {
		wcfg.Debounce = cfg.Debounce
	}

	w, err := watcher.New(wcfg)
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Creating watcher failed", err)
		return
	}
	updates, err := w.Start()
	if err != nil {
		// Cleanup on start failure; the app works without live reload
		log.ErrorErr(log.CatWatcher, "Starting watcher failed", err, "path", m.subjectPath)
		_ = w.Stop()
		return
	}

	m.watcherHandle = w
	m.updates = updates
	m.watcherCtx, m.watcherCancel = context.WithCancel(context.Background())
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	return watcher.ListenCmd(m.watcherCtx, m.updates)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(max(msg.Width-2, 1))
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.refresh()
		return m, nil

	case watcher.Update:
		m.applySubject(msg)
		if m.updates == nil {
			return m, nil
		}
		return m, watcher.ListenCmd(m.watcherCtx, m.updates)

	case reloadMsg:
		m.applySubject(msg.update)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The help overlay swallows everything but its own close keys
	if m.showHelp {
		switch {
		case msg.Type == tea.KeyCtrlC:
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help), msg.Type == tea.KeyEsc:
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ToggleCaptures):
		m.showCaptures = !m.showCaptures
		if !m.showCaptures && m.focus == PanelCaptures {
			m.setFocus(PanelSubject)
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadCmd()

	case key.Matches(msg, m.keys.NextPanel):
		m.setFocus(m.nextPanel(1))
		return m, nil

	case key.Matches(msg, m.keys.PrevPanel):
		m.setFocus(m.nextPanel(-1))
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.scrollTarget().ScrollUp(1)
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.scrollTarget().ScrollDown(1)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.scrollTarget().PageUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.scrollTarget().PageDown()
		return m, nil
	}

	// Typing from another panel goes back to the pattern
	if m.focus != PanelPattern && msg.Type == tea.KeyRunes {
		m.setFocus(PanelPattern)
	}
	if m.focus != PanelPattern {
		return m, nil
	}

	var resp patterninput.Response
	m.input, resp = m.input.Update(msg)
	if resp.Value {
		m.setPattern(m.input.Value())
	}
	return m, nil
}

// setPattern hands the edited pattern to the session and redraws everything
// derived from it.
func (m *Model) setPattern(p string) {
	m.session.SetPattern(p)
	m.input.SetSegments(m.session.PatternSegments())
	m.refresh()
}

func (m *Model) applySubject(u watcher.Update) {
	if u.Err != nil {
		m.subjectErr = u.Err
		log.Warn(log.CatSubject, "Keeping previous subject", "path", u.Path, "error", u.Err)
		return
	}
	m.subjectErr = nil
	m.subject = u.Content
	log.Info(log.CatSubject, "Subject reloaded", "path", u.Path, "bytes", len(u.Content))
	m.refresh()
}

func (m Model) reloadCmd() tea.Cmd {
	if m.subjectPath == "" {
		return nil
	}
	path := m.subjectPath
	return func() tea.Msg {
		return reloadMsg{update: watcher.Load(path)}
	}
}

func (m *Model) cycleTheme() {
	if len(m.themes) == 0 {
		return
	}
	next := (m.theme + 1) % len(m.themes)
	name := m.themes[next]

	if err := styles.ApplyTheme(styles.ThemeConfig{Preset: name, Colors: m.themeColors}); err != nil {
		log.ErrorErr(log.CatUI, "Applying theme failed", err, "preset", name)
		return
	}
	m.theme = next

	m.session.SetPainter(highlight.NewPainter(highlight.TableFromTheme()))
	m.session.SetMatchBackground(styles.MatchBackgroundColor)
	m.input.SetSegments(m.session.PatternSegments())
	m.refresh()
	log.Info(log.CatUI, "Theme changed", "preset", name)
}

func (m *Model) setFocus(p Panel) {
	m.focus = p
	if p == PanelPattern {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m Model) nextPanel(step int) Panel {
	panels := []Panel{PanelPattern, PanelSubject}
	if m.showCaptures {
		panels = append(panels, PanelCaptures)
	}
	i := max(slices.Index(panels, m.focus), 0)
	return panels[(i+step+len(panels))%len(panels)]
}

// scrollTarget is the viewport the scroll keys move. The subject scrolls
// unless the captures panel has focus.
func (m *Model) scrollTarget() *viewport.Model {
	if m.focus == PanelCaptures {
		return &m.capturesView
	}
	return &m.subjectView
}

// layout splits the screen below the pattern panel and status line.
func (m Model) layout() (bodyHeight, subjectWidth, capturesWidth int) {
	footer := 0
	if m.showFooter {
		footer = 1
	}
	bodyHeight = max(m.height-patternPanelHeight-1-footer, 3)

	subjectWidth = m.width
	// Too narrow to split; the captures panel stays hidden
	if m.showCaptures && m.width >= minSplitWidth {
		capturesWidth = m.width / 3
		subjectWidth = m.width - capturesWidth
	}
	return bodyHeight, subjectWidth, capturesWidth
}

// refresh resizes the viewports and fills them from the current subject and
// session state.
func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	bodyHeight, subjectWidth, capturesWidth := m.layout()

	m.subjectView.Width = max(subjectWidth-2, 1)
	m.subjectView.Height = max(bodyHeight-2, 1)
	m.subjectView.SetContent(m.subjectContent(m.subjectView.Width))

	m.matchCount = len(m.session.Captures(m.subject))
	if capturesWidth > 0 {
		m.capturesView.Width = max(capturesWidth-2, 1)
		m.capturesView.Height = max(bodyHeight-2, 1)
		m.capturesView.SetContent(m.capturesContent(m.capturesView.Width))
	}
}

func (m Model) subjectContent(width int) string {
	if m.subject == "" {
		return styles.MutedStyle.Render("no subject text")
	}
	lines := highlight.Lines(m.session.SubjectSegments(m.subject))
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ansi.Truncate(highlight.Render(line), width, "…")
	}
	return strings.Join(out, "\n")
}

func (m Model) capturesContent(width int) string {
	dump := m.session.CapturesDump(m.subject)
	if dump == "" {
		var hint string
		switch m.session.State() {
		case session.StateEmpty:
			hint = "type a pattern"
		case session.StateParseInvalid, session.StateCompileInvalid:
			hint = "pattern has errors"
		default:
			hint = "no matches"
		}
		return styles.MutedStyle.Render(hint)
	}
	// Word wrap first, then hard wrap what a single long token still overflows
	return wrap.String(wordwrap.String(dump, width), width)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	parts := []string{m.renderPatternPanel(), m.renderStatus(), m.renderBody()}
	if m.showFooter {
		parts = append(parts, m.renderFooter())
	}
	view := lipgloss.JoinVertical(lipgloss.Left, parts...)

	if m.showHelp {
		view = m.help.Overlay(view)
	}
	return view
}

func (m Model) renderPatternPanel() string {
	// Inner column 1 shows the input's first visible cell
	origin := diagnostic.Point{X: -m.input.ScrollOffset()}
	var marks []styles.Mark
	for _, span := range m.session.Diagnostic(origin).Spans {
		r := diagnostic.CellMarker(m.session.Pattern(), span, origin)
		marks = append(marks, styles.Mark{X: r.X, Width: r.Width})
	}

	return styles.RenderMarkedBorder(
		m.input.View(),
		"Pattern",
		m.width,
		patternPanelHeight,
		m.focus == PanelPattern,
		styles.BorderFocusColor,
		styles.BorderFocusColor,
		marks,
	)
}

func (m Model) renderStatus() string {
	var line string
	switch {
	case m.session.Err() != nil:
		line = styles.StatusErrorStyle.Render(m.session.Status(m.subject))
	case m.session.State() == session.StateEmpty:
		line = styles.MutedStyle.Render("type a pattern to match against the subject")
	default:
		line = styles.StatusSuccessStyle.Render(m.session.Status(m.subject))
	}
	if m.subjectErr != nil {
		line += "  " + styles.StatusErrorStyle.Render(m.subjectErr.Error())
	}
	return ansi.Truncate(" "+line, m.width, "…")
}

func (m Model) renderBody() string {
	bodyHeight, subjectWidth, capturesWidth := m.layout()

	subject := styles.RenderWithTitleBorder(
		m.subjectView.View(),
		withIndicator(m.subjectTitle(), m.subjectView),
		subjectWidth,
		bodyHeight,
		m.focus == PanelSubject,
		styles.BorderFocusColor,
		styles.BorderFocusColor,
	)
	if capturesWidth == 0 {
		return subject
	}

	captures := styles.RenderWithTitleBorder(
		m.capturesView.View(),
		withIndicator(fmt.Sprintf("Captures (%d)", m.matchCount), m.capturesView),
		capturesWidth,
		bodyHeight,
		m.focus == PanelCaptures,
		styles.BorderFocusColor,
		styles.BorderFocusColor,
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, subject, captures)
}

func (m Model) subjectTitle() string {
	if m.subjectPath == "" {
		return "Subject"
	}
	return "Subject: " + filepath.Base(m.subjectPath)
}

// withIndicator appends the scroll position when the content overflows.
func withIndicator(title string, vp viewport.Model) string {
	if vp.TotalLineCount() <= vp.Height {
		return title
	}
	return fmt.Sprintf("%s %.0f%%", title, vp.ScrollPercent()*100)
}

func (m Model) renderFooter() string {
	hints := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	return styles.MutedStyle.Render(ansi.Truncate(" "+strings.Join(hints, " • "), m.width, "…"))
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	// Cancel watcher subscription context (stops listener)
	if m.watcherCancel != nil {
		m.watcherCancel()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return fmt.Errorf("stopping watcher: %w", err)
		}
		m.watcherHandle = nil
	}
	return nil
}
