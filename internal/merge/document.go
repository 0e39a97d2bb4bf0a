package merge

import "strings"

// Document is a Markdown text held as lines, so that String reproduces the
// input byte for byte.
type Document struct {
	lines []string
}

func ParseDocument(text string) *Document {
	return &Document{lines: strings.Split(text, "\n")}
}

// Index returns the first line equal to heading, ignoring trailing whitespace,
// or -1.
func (d *Document) Index(heading string) int {
	for i, line := range d.lines {
		if strings.TrimRight(line, " \t\r") == heading {
			return i
		}
	}
	return -1
}

// InsertBefore splices text in front of line i. text is expected to end with
// a newline so the original line i starts a line again.
func (d *Document) InsertBefore(i int, text string) {
	if i < 0 || i > len(d.lines) {
		d.Append(text)
		return
	}
	add := splitBlock(text)
	lines := make([]string, 0, len(d.lines)+len(add))
	lines = append(lines, d.lines[:i]...)
	lines = append(lines, add...)
	lines = append(lines, d.lines[i:]...)
	d.lines = lines
}

// Append adds text after a blank line at the end of the document.
func (d *Document) Append(text string) {
	if n := len(d.lines); n > 0 && d.lines[n-1] != "" {
		d.lines = append(d.lines, "")
	}
	d.lines = append(d.lines, splitBlock(text)...)
}

func (d *Document) String() string {
	return strings.Join(d.lines, "\n")
}

// splitBlock splits text into the lines it contributes. A trailing newline
// yields a final empty line, which becomes the separator after the block.
func splitBlock(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	return append(strings.Split(text, "\n"), "")
}
