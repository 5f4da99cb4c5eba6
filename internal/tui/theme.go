// Package tui provides the terminal styling used by the imagegen CLI summaries.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Primary color - Orange #ff8700
	ColorPrimary = lipgloss.Color("208")

	// Secondary color - Light Orange #ffaf00
	ColorSecondary = lipgloss.Color("214")

	// White for high contrast text #eeeeee
	ColorWhite = lipgloss.Color("255")

	// Success indicator - Green
	ColorSuccess = lipgloss.Color("42")

	// Error indicator - Red
	ColorError = lipgloss.Color("196")

	// Warning indicator - Orange
	ColorWarning = lipgloss.Color("214")

	// Muted/subtle text - Gray
	ColorMuted = lipgloss.Color("240")
)

// Text styles
var (
	// TitleStyle is used for main titles and headings
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// HeaderStyle is used for section headers
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// MutedStyle is used for subtle/secondary text
	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// LabelStyle is used for key/value labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	// ListItemStyle is the default style for list items
	ListItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	// ActiveListItemStyle marks items that are in effect
	ActiveListItemStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				PaddingLeft(2)
)

// Status indicators
const (
	StatusSuccess = "[OK]"
	StatusError   = "[ERR]"
	StatusWarning = "[WARN]"
	StatusInfo    = "[INFO]"

	// ListCursor marks active list items
	ListCursor = ">"

	// ListBullet marks inactive list items
	ListBullet = "-"
)

// Status names accepted by RenderStatusLine
const (
	StatusNameSuccess = "success"
	StatusNameError   = "error"
	StatusNameWarning = "warning"
)

// RenderTitle renders text with the title style
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderHeader renders text with the header style
func RenderHeader(text string) string {
	return HeaderStyle.Render(text)
}

// RenderSuccess renders a success message with its status marker
func RenderSuccess(text string) string {
	return SuccessStyle.Render(StatusSuccess + " " + text)
}

// RenderError renders an error message with its status marker
func RenderError(text string) string {
	return ErrorStyle.Render(StatusError + " " + text)
}

// RenderWarning renders a warning message with its status marker
func RenderWarning(text string) string {
	return WarningStyle.Render(StatusWarning + " " + text)
}

// RenderInfo renders an info message with its status marker
func RenderInfo(text string) string {
	return MutedStyle.Render(StatusInfo + " " + text)
}

// RenderMuted renders text with the muted style
func RenderMuted(text string) string {
	return MutedStyle.Render(text)
}

// RenderListItem renders a list item, marking active items with the cursor
func RenderListItem(text string, active bool) string {
	if active {
		return ActiveListItemStyle.Render(ListCursor + " " + text)
	}
	return ListItemStyle.Render(ListBullet + " " + text)
}

// RenderStatusLine renders a status line with label and value
func RenderStatusLine(label, value string, status string) string {
	labelStyled := LabelStyle.Render(label + ":")
	var valueStyled string

	switch status {
	case StatusNameSuccess:
		valueStyled = SuccessStyle.Render(value)
	case StatusNameError:
		valueStyled = ErrorStyle.Render(value)
	case StatusNameWarning:
		valueStyled = WarningStyle.Render(value)
	default:
		valueStyled = value
	}

	return labelStyled + " " + valueStyled
}

// RenderList renders a header followed by one item per line; an empty list
// renders the placeholder instead
func RenderList(header string, items []string, placeholder string) string {
	var sb strings.Builder
	sb.WriteString(RenderHeader(header))
	sb.WriteString("\n")

	if len(items) == 0 {
		sb.WriteString(ListItemStyle.Render(RenderMuted(placeholder)))
		sb.WriteString("\n")
		return sb.String()
	}

	for _, item := range items {
		sb.WriteString(RenderListItem(item, false))
		sb.WriteString("\n")
	}
	return sb.String()
}
