// ABOUTME: Tests for escape skipping and link tag parsing
// ABOUTME: CSI, OSC, string sequences, truncated input, malformed tags

package layout

import "testing"

func TestSkipEscape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "csi", input: "\x1b[31mx", want: 5},
		{name: "osc bel", input: "\x1b]0;title\x07x", want: 10},
		{name: "osc st", input: "\x1b]0;t\x1b\\x", want: 7},
		{name: "apc", input: "\x1b_data\x1b\\x", want: 8},
		{name: "two byte", input: "\x1bcx", want: 2},
		{name: "truncated csi", input: "\x1b[31", want: 4},
		{name: "lone esc", input: "\x1b", want: 1},
		{name: "not an escape", input: "x", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := skipEscape(tt.input, 0); got != tt.want {
				t.Errorf("skipEscape(%q) = %d; want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestOpenLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		wantID string
		wantOK bool
	}{
		{input: `<link="id">x`, wantID: "id", wantOK: true},
		{input: `<link="">x`, wantID: "", wantOK: true},
		{input: `<link="id"`, wantOK: false},
		{input: `<link=id>`, wantOK: false},
		{input: "<link=\"a\nb\">", wantOK: false},
		{input: `<b>`, wantOK: false},
	}

	for _, tt := range tests {
		id, end, ok := openLink(tt.input, 0)
		if ok != tt.wantOK || id != tt.wantID {
			t.Errorf("openLink(%q) = %q, %v; want %q, %v", tt.input, id, ok, tt.wantID, tt.wantOK)
		}
		if ok && tt.input[end-2:end] != `">` {
			t.Errorf("openLink(%q) end = %d; not past the tag", tt.input, end)
		}
	}
}
