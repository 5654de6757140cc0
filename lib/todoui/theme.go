// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package todoui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the TUI.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Status colors, one per todo status.
	StatusDraft      lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusCompleted  lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText:       lipgloss.Color("252"),
	FaintText:        lipgloss.Color("243"),
	StatusDraft:      lipgloss.Color("245"),
	StatusInProgress: lipgloss.Color("214"),
	StatusCompleted:  lipgloss.Color("40"),
	HeaderForeground: lipgloss.Color("81"),
	BorderColor:      lipgloss.Color("238"),
	HelpText:         lipgloss.Color("241"),
}
