// ABOUTME: Tests that importing termfix pins a dark background
// ABOUTME: Runs in-package so init has already fired

package termfix

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestDarkBackground(t *testing.T) {
	if !lipgloss.HasDarkBackground() {
		t.Error("HasDarkBackground() = false; want true after init")
	}
}
