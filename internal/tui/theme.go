package tui

import (
	"github.com/gdamore/tcell/v2"
)

// robosave color palette
var (
	// Primary accent color
	AccentBlue = tcell.NewRGBColor(59, 130, 246) // #3B82F6

	// Status colors
	SuccessGreen  = tcell.NewRGBColor(34, 197, 94) // #22C55E
	ErrorRed      = tcell.NewRGBColor(239, 68, 68) // #EF4444
	WarningYellow = tcell.NewRGBColor(234, 179, 8) // #EAB308
)

// Symbols and icons
const (
	SymbolSuccess  = "✓"
	SymbolError    = "✗"
	SymbolWarning  = "⚠"
	SymbolSelected = "▸"
	SymbolFolder   = "🗀"
)
