// Package styles contains Lip Gloss style definitions.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
	markerChar        = "^"
)

// Mark is a highlighted stretch of a bottom border. X is measured from the
// box's left edge, so the first inner column is X=1.
type Mark struct {
	X, Width int
}

// RenderWithTitleBorder renders content with a title embedded in the top border.
// Similar to lazygit's panel style: ╭─ Title ─────╮
// titleColor is used for the title text, focusedBorderColor is used for the border when focused.
func RenderWithTitleBorder(content, title string, width, height int, focused bool, titleColor, focusedBorderColor lipgloss.TerminalColor) string {
	return RenderMarkedBorder(content, title, width, height, focused, titleColor, focusedBorderColor, nil)
}

// RenderMarkedBorder is RenderWithTitleBorder with marks drawn into the bottom
// border in ErrorMarkerColor. Marks outside the inner width are clipped.
func RenderMarkedBorder(content, title string, width, height int, focused bool, titleColor, focusedBorderColor lipgloss.TerminalColor, marks []Mark) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = focusedBorderColor
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(titleColor)

	innerWidth := max(width-2, 1) // -2 for left and right border
	contentHeight := max(height-2, 1)

	topBorder := buildTopBorder(title, innerWidth, borderStyle, titleStyle)
	bottomBorder := buildBottomBorder(innerWidth, borderStyle, marks)

	// Use lipgloss to constrain content width (handles wrapping/truncation properly)
	contentStyle := lipgloss.NewStyle().Width(innerWidth).Height(contentHeight)
	contentLines := strings.Split(contentStyle.Render(content), "\n")

	paddedLines := make([]string, contentHeight)
	for i := range contentHeight {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}

		// Pad line to innerWidth to ensure right border aligns
		if lineWidth := lipgloss.Width(line); lineWidth < innerWidth {
			line += strings.Repeat(" ", innerWidth-lineWidth)
		}

		paddedLines[i] = borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical)
	}

	var result strings.Builder
	result.WriteString(topBorder)
	result.WriteString("\n")
	result.WriteString(strings.Join(paddedLines, "\n"))
	result.WriteString("\n")
	result.WriteString(bottomBorder)

	return result.String()
}

// buildTopBorder creates the top border with embedded title.
// borderStyle is used for border characters, titleStyle for the title text.
func buildTopBorder(title string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	// Format: ╭─ Title ──────╮
	// We need at least 4 chars: "─ " + " ─"
	if title == "" || innerWidth < 4 {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	displayTitle := TruncateString(title, innerWidth-4)

	// Inner: "─ " (2) + title + " " (1) + dashes = innerWidth
	remainingWidth := max(innerWidth-3-lipgloss.Width(displayTitle), 0)

	return borderStyle.Render(borderTopLeft+borderHorizontal+" ") +
		titleStyle.Render(displayTitle) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, remainingWidth)+borderTopRight)
}

// buildBottomBorder creates the bottom border, replacing the marked columns
// with marker characters.
func buildBottomBorder(innerWidth int, borderStyle lipgloss.Style, marks []Mark) string {
	marked := make([]bool, innerWidth)
	for _, m := range marks {
		for x := m.X; x < m.X+max(m.Width, 1); x++ {
			if x >= 1 && x <= innerWidth {
				marked[x-1] = true
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(borderStyle.Render(borderBottomLeft))
	for i := 0; i < innerWidth; {
		j := i
		for j < innerWidth && marked[j] == marked[i] {
			j++
		}
		if marked[i] {
			sb.WriteString(ErrorMarkerStyle.Render(strings.Repeat(markerChar, j-i)))
		} else {
			sb.WriteString(borderStyle.Render(strings.Repeat(borderHorizontal, j-i)))
		}
		i = j
	}
	sb.WriteString(borderStyle.Render(borderBottomRight))
	return sb.String()
}
