package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the colour palette of the task client. Colours are ANSI 256 codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	FocusForeground  lipgloss.Color
	HelpText         lipgloss.Color

	// Priority cell colours.
	PriorityHigh   lipgloss.Color
	PriorityMedium lipgloss.Color
	PriorityLow    lipgloss.Color

	// Notice line colours.
	Info    lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

// PriorityColor returns the colour for a priority value. Unknown priorities use
// NormalText.
func (theme Theme) PriorityColor(priority string) lipgloss.Color {
	switch priority {
	case "High":
		return theme.PriorityHigh
	case "Medium":
		return theme.PriorityMedium
	case "Low":
		return theme.PriorityLow
	default:
		return theme.NormalText
	}
}

var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	FocusForeground:  lipgloss.Color("75"),
	HelpText:         lipgloss.Color("241"),

	PriorityHigh:   lipgloss.Color("196"), // red
	PriorityMedium: lipgloss.Color("208"), // orange
	PriorityLow:    lipgloss.Color("114"), // green

	Info:    lipgloss.Color("75"),
	Success: lipgloss.Color("114"),
	Warning: lipgloss.Color("220"),
	Error:   lipgloss.Color("196"),
}
