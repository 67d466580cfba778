// Package help contains the help overlay component.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/regexlens/internal/keys"
	"github.com/zjrosen/regexlens/internal/ui/overlay"
	"github.com/zjrosen/regexlens/internal/ui/styles"
)

// Construct is one row of the syntax legend: a sample of a regex construct
// drawn in the color the pattern panel uses for it.
type Construct struct {
	Sample string
	Desc   string
	Color  func() lipgloss.TerminalColor
}

// Constructs returns the syntax legend rows. Colors are looked up on every
// render so the legend follows theme changes.
func Constructs() []Construct {
	return []Construct{
		{Sample: "abc", Desc: "literal", Color: func() lipgloss.TerminalColor { return styles.PatternLiteralColor }},
		{Sample: ".", Desc: "any character", Color: func() lipgloss.TerminalColor { return styles.PatternDotColor }},
		{Sample: `^ $ \b`, Desc: "assertion", Color: func() lipgloss.TerminalColor { return styles.PatternAssertionColor }},
		{Sample: `\d \w \s`, Desc: "perl class", Color: func() lipgloss.TerminalColor { return styles.PatternClassPerlColor }},
		{Sample: `\pL \p{Greek}`, Desc: "unicode class", Color: func() lipgloss.TerminalColor { return styles.PatternClassUnicodeColor }},
		{Sample: "[a-z]", Desc: "bracketed class", Color: func() lipgloss.TerminalColor { return styles.PatternClassBracketedColor }},
		{Sample: "* + ? {2,5}", Desc: "repetition", Color: func() lipgloss.TerminalColor { return styles.PatternRepetitionColor }},
		{Sample: "(?P<name>x)", Desc: "group", Color: func() lipgloss.TerminalColor { return styles.PatternGroupColor }},
		{Sample: "a|b", Desc: "alternation", Color: func() lipgloss.TerminalColor { return styles.PatternAlternationColor }},
		{Sample: "(?i)", Desc: "flags", Color: func() lipgloss.TerminalColor { return styles.PatternFlagsColor }},
	}
}

// Model holds the help view state.
type Model struct {
	keys   keys.KeyMap
	width  int
	height int
}

// New creates a new help view.
func New() Model {
	return Model{keys: keys.DefaultKeyMap()}
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help box centered on an empty screen.
func (m Model) View() string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderContent())
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	if background == "" {
		return m.View()
	}
	return overlay.Place(m.width, m.height, m.renderContent(), background)
}

func (m Model) renderContent() string {
	var (
		titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(styles.BorderFocusColor).PaddingLeft(2)
		dividerStyle = lipgloss.NewStyle().Foreground(styles.BorderDefaultColor)
		sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.BorderFocusColor).MarginTop(1)
		boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(styles.BorderDefaultColor)
		columnStyle  = lipgloss.NewStyle().MarginRight(4)
	)

	var editCol strings.Builder
	editCol.WriteString(sectionStyle.Render("Pattern"))
	editCol.WriteString("\n")
	editCol.WriteString(renderKeyDesc("←/→", "move"))
	editCol.WriteString(renderKeyDesc("alt+←/→", "word"))
	editCol.WriteString(renderKeyDesc("home/end", "line"))
	editCol.WriteString(renderKeyDesc("ctrl+w", "delete word"))
	editCol.WriteString(renderKeyDesc("ctrl+u/k", "delete line"))

	var panelCol strings.Builder
	panelCol.WriteString(sectionStyle.Render("Panels"))
	panelCol.WriteString("\n")
	panelCol.WriteString(renderBinding(m.keys.NextPanel))
	panelCol.WriteString(renderBinding(m.keys.ScrollUp))
	panelCol.WriteString(renderBinding(m.keys.ScrollDown))
	panelCol.WriteString(renderBinding(m.keys.PageUp))
	panelCol.WriteString(renderBinding(m.keys.PageDown))

	var generalCol strings.Builder
	generalCol.WriteString(sectionStyle.Render("General"))
	generalCol.WriteString("\n")
	generalCol.WriteString(renderBinding(m.keys.ToggleCaptures))
	generalCol.WriteString(renderBinding(m.keys.CycleTheme))
	generalCol.WriteString(renderBinding(m.keys.Reload))
	generalCol.WriteString(renderBinding(m.keys.Help))
	generalCol.WriteString(renderBinding(m.keys.Quit))

	keyColumns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(editCol.String()),
		columnStyle.Render(panelCol.String()),
		generalCol.String(),
	)

	var legend strings.Builder
	legend.WriteString(sectionStyle.Render("Syntax"))
	for _, c := range Constructs() {
		sample := lipgloss.NewStyle().Foreground(c.Color()).Width(16).Render(c.Sample)
		legend.WriteString("\n" + sample + descStyle().Render(c.Desc))
	}

	footer := lipgloss.NewStyle().Foreground(styles.TextMutedColor).MarginTop(1).
		Render("Press " + m.keys.Help.Help().Key + " or esc to close")

	columnsWidth := max(lipgloss.Width(keyColumns), lipgloss.Width(legend.String()))
	boxWidth := columnsWidth + 4

	body := lipgloss.NewStyle().Padding(0, 2).Render(keyColumns + "\n" + legend.String() + "\n" + footer)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Keybindings"))
	content.WriteString("\n")
	content.WriteString(dividerStyle.Render(strings.Repeat("─", boxWidth)))
	content.WriteString("\n")
	content.WriteString(body)

	return boxStyle.Width(boxWidth).Render(content.String())
}

func renderBinding(b key.Binding) string {
	help := b.Help()
	return renderKeyDesc(help.Key, help.Desc)
}

func renderKeyDesc(k, desc string) string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.BorderFocusColor).Width(11)
	return keyStyle.Render(k) + descStyle().Render(desc) + "\n"
}

func descStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.TextMutedColor)
}
