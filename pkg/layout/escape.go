// ABOUTME: Zero-width markup scanning: ANSI escape sequences and link tags
// ABOUTME: Escapes are skipped whole; <link="id"> and </link> delimit link spans

package layout

import "strings"

const (
	linkOpenPrefix = `<link="`
	linkOpenSuffix = `">`
	linkClose      = "</link>"
)

// skipEscape returns the index just past the escape sequence at s[i].
// CSI, OSC, and string sequences (DCS, APC, PM) are recognized; anything
// else after ESC is a two-byte sequence.
func skipEscape(s string, i int) int {
	if i >= len(s) || s[i] != '\x1b' {
		return i
	}
	i++
	if i >= len(s) {
		return i
	}
	switch s[i] {
	case '[':
		for i++; i < len(s); i++ {
			if b := s[i]; b >= 0x40 && b <= 0x7E {
				return i + 1
			}
		}
		return i
	case ']':
		for i++; i < len(s); i++ {
			if s[i] == '\x07' {
				return i + 1
			}
			if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return i
	case 'P', '_', '^':
		for i++; i < len(s); i++ {
			if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return i
	default:
		return i + 1
	}
}

// openLink parses a link opening tag at s[i]. It returns the link ID and
// the index past the tag, or ok=false when s[i:] is not a complete tag.
func openLink(s string, i int) (id string, end int, ok bool) {
	rest := s[i:]
	if !strings.HasPrefix(rest, linkOpenPrefix) {
		return "", i, false
	}
	body := rest[len(linkOpenPrefix):]
	n := strings.Index(body, linkOpenSuffix)
	if n < 0 || strings.ContainsAny(body[:n], "\"\n") {
		return "", i, false
	}
	return body[:n], i + len(linkOpenPrefix) + n + len(linkOpenSuffix), true
}
