package render

import "strings"

// Style selects which sections a README gets.
type Style string

const (
	Minimal  Style = "minimal"
	Detailed Style = "detailed"
)

// DefaultStyle is used when no style, or an unknown one, is requested.
const DefaultStyle = Detailed

// ParseStyle reports whether s names a known style. Unknown values return
// DefaultStyle and false.
func ParseStyle(s string) (Style, bool) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case Minimal:
		return Minimal, true
	case Detailed:
		return Detailed, true
	default:
		return DefaultStyle, false
	}
}

func (s Style) String() string { return string(s) }
