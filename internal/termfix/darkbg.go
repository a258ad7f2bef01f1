// ABOUTME: Fixes lipgloss to a dark background before bubbletea initializes
// ABOUTME: Import with _ ahead of bubbletea so the demo never emits OSC 10/11 queries

// Package termfix pins the lipgloss background so the demo's alt screen does
// not receive background-color query replies as keystrokes.
package termfix

import "github.com/charmbracelet/lipgloss"

func init() {
	// Must run before bubbletea's init, so this package may not import it.
	lipgloss.SetHasDarkBackground(true)
}
