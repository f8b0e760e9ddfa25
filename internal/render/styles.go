// ============================================================================
// teacup - grammar-driven language engine
// ============================================================================
//
// Package:     render
// Description: Styles for parse tree display
// Author:      msto63
// Created:     2025-06-22
// License:     MIT
// ============================================================================

package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/teacup/foundation/engine/ast"
	"github.com/msto63/teacup/foundation/engine/lexer"
)

// Color Palette
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorAccent    = lipgloss.Color("#F59E0B") // Amber
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
)

// Tree styles
var (
	BranchStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	SignatureStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	ShapeStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	UnknownShapeStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Italic(true)
)

var kindStyles = map[lexer.Kind]lipgloss.Style{
	lexer.KindNumber: lipgloss.NewStyle().Foreground(ColorAccent),
	lexer.KindString: lipgloss.NewStyle().Foreground(ColorSuccess),
	lexer.KindWord:   lipgloss.NewStyle().Foreground(ColorSecondary),
	lexer.KindInfix:  lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true),
	lexer.KindPrefix: lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true),
}

// KindStyle returns the style for a leaf of the given token kind
func KindStyle(k lexer.Kind) lipgloss.Style {
	if s, ok := kindStyles[k]; ok {
		return s
	}
	return lipgloss.NewStyle().Foreground(ColorText)
}

// ShapeLabelStyle returns the style for the shape annotation of a node
func ShapeLabelStyle(s ast.Shape) lipgloss.Style {
	if s == ast.ShapeOther {
		return UnknownShapeStyle
	}
	return ShapeStyle
}
