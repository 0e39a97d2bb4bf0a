// Package merge carries user-written custom regions from a previously
// generated README into a freshly rendered one.
//
// A region looks like
//
//	<!-- custom: notes -->
//	anything the user wants to keep
//	<!-- /custom -->
//
// Extract collects regions from the old document; Inject places them right
// before the "## License" heading of the new one, or at the end when there is
// no such heading. Bodies are carried verbatim, so running the two in a loop
// is stable.
package merge

import (
	"fmt"
	"strings"
)

const (
	OpenPrefix  = "<!-- custom:"
	CommentEnd  = "-->"
	CloseMarker = "<!-- /custom -->"
	// Anchor is the heading custom regions are inserted before.
	Anchor = "## License"
)

// DiagnosticKind classifies a problem found while extracting regions.
type DiagnosticKind string

const (
	// Unterminated: an opening marker without "-->" on its own line. Extraction stops.
	Unterminated DiagnosticKind = "unterminated-marker"
	// Unclosed: an opening marker with no closing marker after it. Extraction stops.
	Unclosed DiagnosticKind = "missing-close-marker"
	// Duplicate: a name seen before; the later body replaces the earlier one.
	Duplicate DiagnosticKind = "duplicate-name"
)

// Diagnostic describes a malformed or repeated region. Line is 1-based and
// points at the opening marker.
type Diagnostic struct {
	Kind DiagnosticKind
	Line int
	Name string
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case Unterminated:
		return fmt.Sprintf("line %d: custom marker is not terminated, ignoring it and everything after", d.Line)
	case Unclosed:
		return fmt.Sprintf("line %d: custom section %q has no %s, ignoring it and everything after", d.Line, d.Name, CloseMarker)
	case Duplicate:
		return fmt.Sprintf("line %d: custom section %q appears again, keeping the later body", d.Line, d.Name)
	default:
		return fmt.Sprintf("line %d: %s", d.Line, d.Kind)
	}
}

// OpenMarker returns the opening marker for name.
func OpenMarker(name string) string {
	return OpenPrefix + " " + name + " " + CommentEnd
}

// Block renders one region followed by a newline.
func Block(name, body string) string {
	return OpenMarker(name) + body + CloseMarker + "\n"
}

// Extract returns the custom regions of doc. See ExtractWithDiagnostics.
func Extract(doc string) *Sections {
	sections, _ := ExtractWithDiagnostics(doc)
	return sections
}

// ExtractWithDiagnostics scans doc left to right for custom regions. The first
// malformed region ends the scan: regions before it are returned, nothing after
// it is. Regions do not nest.
func ExtractWithDiagnostics(doc string) (*Sections, []Diagnostic) {
	sections := NewSections()
	var diags []Diagnostic
	pos := 0
	for {
		i := strings.Index(doc[pos:], OpenPrefix)
		if i < 0 {
			break
		}
		start := pos + i
		line := 1 + strings.Count(doc[:start], "\n")
		nameStart := start + len(OpenPrefix)

		j := strings.Index(doc[nameStart:], CommentEnd)
		if j < 0 || strings.Contains(doc[nameStart:nameStart+j], "\n") {
			diags = append(diags, Diagnostic{Kind: Unterminated, Line: line})
			break
		}
		name := strings.TrimSpace(doc[nameStart : nameStart+j])
		bodyStart := nameStart + j + len(CommentEnd)

		k := strings.Index(doc[bodyStart:], CloseMarker)
		if k < 0 {
			diags = append(diags, Diagnostic{Kind: Unclosed, Line: line, Name: name})
			break
		}
		if sections.Set(name, doc[bodyStart:bodyStart+k]) {
			diags = append(diags, Diagnostic{Kind: Duplicate, Line: line, Name: name})
		}
		pos = bodyStart + k + len(CloseMarker)
	}
	return sections, diags
}

// Inject places every section, in order, immediately before the first
// "## License" heading of doc, or appends them when the heading is absent.
func Inject(doc string, sections *Sections) string {
	if sections.Len() == 0 {
		return doc
	}
	blocks := make([]string, 0, sections.Len())
	for _, name := range sections.Names() {
		body, _ := sections.Body(name)
		blocks = append(blocks, Block(name, body))
	}
	text := strings.Join(blocks, "\n")

	d := ParseDocument(doc)
	if at := d.Index(Anchor); at >= 0 {
		d.InsertBefore(at, text)
	} else {
		d.Append(text)
	}
	return d.String()
}
