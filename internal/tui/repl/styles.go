// ============================================================================
// teacup - grammar-driven language engine
// ============================================================================
//
// Package:     repl
// Description: Styles for the interactive REPL
// Author:      msto63
// Created:     2025-06-25
// License:     MIT
// ============================================================================

package repl

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/teacup/internal/render"
)

// Text colors
var (
	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
	ColorDimmed    = lipgloss.Color("#374151") // Dark Gray
	ColorBgPanel   = lipgloss.Color("#1E293B") // Slate 800
)

// Transcript styles
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(render.ColorPrimary).
			Bold(true)

	PromptStyle = lipgloss.NewStyle().
			Foreground(render.ColorSecondary).
			Bold(true)

	InputEchoStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	ValueStyle = lipgloss.NewStyle().
			Foreground(render.ColorSuccess)

	OutputStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(render.ColorError)

	MetaStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	TreePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimmed).
			Padding(0, 1)
)

// Input styles
var (
	FocusedInputStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(render.ColorPrimary).
				Padding(0, 1)
)

// Status and help styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(render.ColorPrimary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Logo
const Logo = "teacup"

// Prompt is shown in front of every input line
const Prompt = "» "

// RenderKeyHint renders a keyboard shortcut hint
func RenderKeyHint(key, description string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(description)
}
