// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all CLI output.
const (
	// ColorPrimary is purple - titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - secondary text.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - success states and values.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - errors.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - warnings.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue - names, keys and paths.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary text and placeholders.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages and values.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// KeyStyle is for kind names, library names and config keys.
	KeyStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// activeMarkerStyle marks the active entry of a list.
	activeMarkerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSuccess)
)
