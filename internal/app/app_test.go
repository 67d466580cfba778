package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/regexlens/internal/config"
	"github.com/zjrosen/regexlens/internal/session"
	"github.com/zjrosen/regexlens/internal/ui/styles"
	"github.com/zjrosen/regexlens/internal/watcher"
)

// createTestModel creates a sized Model without a subject file.
func createTestModel(t *testing.T, subject string) Model {
	t.Helper()
	return createTestModelWithConfig(t, config.Defaults(), subject)
}

func createTestModelWithConfig(t *testing.T, cfg config.Config, subject string) Model {
	t.Helper()
	m := New(Options{Config: cfg, Subject: subject})
	t.Cleanup(func() { _ = m.Close() })
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func viewLines(m Model) []string {
	return strings.Split(ansi.Strip(m.View()), "\n")
}

func TestApp_DefaultState(t *testing.T) {
	m := createTestModel(t, "abc")

	assert.Equal(t, PanelPattern, m.focus)
	assert.True(t, m.input.Focused())
	assert.True(t, m.showCaptures, "captures panel follows ui.show_captures")
	assert.Equal(t, session.StateEmpty, m.session.State())
	assert.Contains(t, ansi.Strip(m.View()), "type a pattern to match against the subject")
}

func TestApp_WindowSizeMsg(t *testing.T) {
	m := createTestModel(t, "abc")
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 50, m.height)
	assert.Equal(t, 118, m.input.Width(), "input fills the pattern panel")

	lines := viewLines(m)
	assert.Len(t, lines, 50)
	for _, line := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(line), 120)
	}
}

func TestApp_ViewBeforeSize(t *testing.T) {
	m := New(Options{Config: config.Defaults()})
	assert.Empty(t, m.View())
}

func TestApp_TypingUpdatesSession(t *testing.T) {
	m := createTestModel(t, "aa b a")
	m = typeText(t, m, "a+")

	assert.Equal(t, "a+", m.session.Pattern())
	assert.Equal(t, session.StateValid, m.session.State())
	assert.Equal(t, 2, m.matchCount)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "2 matches")
	assert.Contains(t, view, "Captures (2)")
	assert.Contains(t, view, `0: [0,2) "aa"`)
}

func TestApp_PasteSetsPattern(t *testing.T) {
	m := createTestModel(t, "x1y22")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(`\d+` + "\n"), Paste: true})

	assert.Equal(t, `\d+`, m.session.Pattern())
	assert.Contains(t, ansi.Strip(m.View()), "2 matches")
}

func TestApp_ParseErrorShowsMarker(t *testing.T) {
	m := createTestModel(t, "abc")
	m = typeText(t, m, "a(")

	assert.Equal(t, session.StateParseInvalid, m.session.State())

	lines := viewLines(m)
	require.GreaterOrEqual(t, len(lines), 4)
	assert.True(t, strings.HasPrefix(lines[2], "╰─^─"), "marker under the '(' in %q", lines[2])
	assert.Contains(t, lines[3], "missing closing )")
	assert.Contains(t, ansi.Strip(m.View()), "pattern has errors")
}

func TestApp_MarkerFollowsScroll(t *testing.T) {
	m := createTestModel(t, "")
	m = update(t, m, tea.WindowSizeMsg{Width: 12, Height: 20})
	// 15 characters in a 10 column input scrolls by 6 to show the cursor
	m = typeText(t, m, "abcdefghijklm(x")

	require.Equal(t, 6, m.input.ScrollOffset())
	lines := viewLines(m)
	// '(' is at column 14, visible column 8
	assert.Equal(t, "╰───────^──╯", lines[2])
}

func TestApp_CompileTooBigHasNoMarkers(t *testing.T) {
	cfg := config.Defaults()
	cfg.Engine.SizeLimit = 5
	m := createTestModelWithConfig(t, cfg, "aaaa")
	m = typeText(t, m, "a{50}")

	assert.Equal(t, session.StateCompileInvalid, m.session.State())
	lines := viewLines(m)
	assert.NotContains(t, lines[2], "^")
	assert.Contains(t, lines[3], "pattern too large")
}

func TestApp_InitialPattern(t *testing.T) {
	cfg := config.Defaults()
	cfg.UI.InitialPattern = `\w+`
	m := createTestModelWithConfig(t, cfg, "one two")

	assert.Equal(t, `\w+`, m.input.Value())
	assert.Equal(t, 3, m.input.Cursor())
	assert.Equal(t, session.StateValid, m.session.State())
	assert.Contains(t, ansi.Strip(m.View()), "2 matches")
}

func TestApp_ToggleCaptures(t *testing.T) {
	m := createTestModel(t, "abc")
	require.Contains(t, ansi.Strip(m.View()), "Captures")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.False(t, m.showCaptures)
	assert.NotContains(t, ansi.Strip(m.View()), "Captures")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.True(t, m.showCaptures)
}

func TestApp_FocusCycle(t *testing.T) {
	m := createTestModel(t, "abc")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, PanelSubject, m.focus)
	assert.False(t, m.input.Focused())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, PanelCaptures, m.focus)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, PanelPattern, m.focus)
	assert.True(t, m.input.Focused())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, PanelCaptures, m.focus)

	// Hiding the focused captures panel moves focus to the subject
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, PanelSubject, m.focus)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, PanelPattern, m.focus, "only two panels while captures are hidden")
}

func TestApp_TypingRefocusesPattern(t *testing.T) {
	m := createTestModel(t, "abc")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, PanelSubject, m.focus)

	m = typeText(t, m, "b")
	assert.Equal(t, PanelPattern, m.focus)
	assert.Equal(t, "b", m.session.Pattern())
}

func TestApp_ScrollSubject(t *testing.T) {
	var sb strings.Builder
	for i := range 100 {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("line")
	}
	m := createTestModel(t, sb.String())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.subjectView.YOffset)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, 2, m.subjectView.YOffset)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.subjectView.YOffset)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Greater(t, m.subjectView.YOffset, 1)

	assert.Contains(t, ansi.Strip(m.View()), "Subject ", "scroll indicator in the title")
}

func TestApp_QuitKeys(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := createTestModel(t, "abc")
		_, cmd := m.Update(tea.KeyMsg{Type: k})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	}
}

func TestApp_HelpOverlay(t *testing.T) {
	m := createTestModel(t, "abc")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	require.True(t, m.showHelp)
	assert.Contains(t, ansi.Strip(m.View()), "Keybindings")

	// Keys do not reach the input while help is open
	m = typeText(t, m, "x")
	assert.Empty(t, m.session.Pattern())

	// Esc closes help instead of quitting
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.False(t, m.showHelp)
}

func TestApp_WatcherUpdateReplacesSubject(t *testing.T) {
	m := createTestModel(t, "old")
	m = typeText(t, m, "z")
	require.Contains(t, ansi.Strip(m.View()), "0 matches")

	m = update(t, m, watcher.Update{Path: "s.txt", Content: "zz z"})
	assert.Equal(t, "zz z", m.subject)
	assert.Contains(t, ansi.Strip(m.View()), "3 matches")
}

func TestApp_FailedReloadKeepsSubject(t *testing.T) {
	m := createTestModel(t, "keep")
	m = update(t, m, watcher.Update{Path: "s.txt", Err: errors.New("reading subject: gone")})

	assert.Equal(t, "keep", m.subject)
	assert.Contains(t, ansi.Strip(m.View()), "reading subject: gone")

	m = update(t, m, watcher.Update{Path: "s.txt", Content: "new"})
	assert.NoError(t, m.subjectErr)
	assert.NotContains(t, ansi.Strip(m.View()), "reading subject: gone")
}

func TestApp_ReloadKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subject.txt")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0o644))

	cfg := config.Defaults()
	cfg.Subject.Watch = false
	m := New(Options{Config: cfg, Subject: "first", SubjectPath: path})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Contains(t, ansi.Strip(m.View()), "Subject: subject.txt")

	require.NoError(t, os.WriteFile(path, []byte("second"), 0o644))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, cmd)

	m = update(t, m, cmd())
	assert.Equal(t, "second", m.subject)
}

func TestApp_ReloadWithoutFile(t *testing.T) {
	m := createTestModel(t, "stdin text")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Nil(t, cmd)
}

func TestApp_CycleTheme(t *testing.T) {
	t.Cleanup(func() { _ = styles.ApplyTheme(styles.ThemeConfig{}) })

	m := createTestModel(t, "abc")
	m = typeText(t, m, "b")
	start := m.theme

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, (start+1)%len(m.themes), m.theme)

	want := styles.Presets[m.themes[m.theme]].Colors[styles.TokenPatternLiteral]
	segs := m.session.PatternSegments()
	require.Len(t, segs, 1)
	assert.Equal(t, styles.PatternLiteralColor, segs[0].Style.GetForeground())
	assert.Equal(t, want, styles.PatternLiteralColor.Dark)
}

func TestApp_WatchesSubjectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subject.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	cfg := config.Defaults()
	cfg.Subject.Debounce = 20 * time.Millisecond
	m := New(Options{Config: cfg, Subject: "x", SubjectPath: path})

	require.NotNil(t, m.watcherHandle)
	cmd := m.Init()
	require.NotNil(t, cmd)

	require.NoError(t, os.WriteFile(path, []byte("yy"), 0o644))
	msg := cmd()
	u, ok := msg.(watcher.Update)
	require.True(t, ok, "expected a watcher.Update, got %T", msg)
	assert.Equal(t, "yy", u.Content)

	require.NoError(t, m.Close())
	assert.Nil(t, m.watcherHandle)
}

func TestApp_EndToEnd(t *testing.T) {
	m := New(Options{Config: config.Defaults(), Subject: "a1 b22 c333"})
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	tm.Type(`\d+`)
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("3 matches"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final := tm.FinalModel(t).(Model)
	assert.Equal(t, `\d+`, final.session.Pattern())
	assert.Equal(t, 3, final.matchCount)
}
