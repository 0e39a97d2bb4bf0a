// Package render turns project metadata into a README.
//
// Render is pure: the same Metadata and Style always produce the same bytes.
// A README is an ordered list of sections, each with an inclusion predicate;
// Sections exposes which ones a given input selects.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/LXGIC-Studios/ai-readme/internal/project"
)

// MaxTreeEntries bounds the Project Structure listing.
const MaxTreeEntries = 20

// LicenseHeading anchors the license section; custom sections are merged in
// right before it.
const LicenseHeading = "## License"

type section struct {
	name    string
	include func(m *project.Metadata, s Style) bool
	write   func(w io.Writer, m *project.Metadata, s Style)
}

var sections = []section{
	{"title", always, writeTitle},
	{"description", hasDescription, writeDescription},
	{"tech-stack", detailedAnd(hasStack), writeTechStack},
	{"features", detailedAnd(hasFeatures), writeFeatures},
	{"installation", always, writeInstallation},
	{"usage", always, writeUsage},
	{"project-structure", detailedAnd(hasSrcFiles), writeStructure},
	{"api", detailedAnd(hasLibraryEntry), writeAPI},
	{"dependencies", detailedAnd(hasDependencies), writeDependencies},
	{"scripts", detailedAnd(hasScripts), writeScripts},
	{"contributing", detailedAnd(always), writeContributing},
	{"license", always, writeLicense},
	{"author", hasAuthor, writeAuthor},
}

// Render produces the README for m in the given style.
func Render(m project.Metadata, style Style) string {
	style, _ = ParseStyle(string(style))
	var b strings.Builder
	first := true
	for _, sec := range sections {
		if !sec.include(&m, style) {
			continue
		}
		if !first {
			b.WriteString("\n")
		}
		first = false
		sec.write(&b, &m, style)
	}
	return b.String()
}

// Sections lists the names of the sections Render would emit, in order.
func Sections(m project.Metadata, style Style) []string {
	style, _ = ParseStyle(string(style))
	var names []string
	for _, sec := range sections {
		if sec.include(&m, style) {
			names = append(names, sec.name)
		}
	}
	return names
}

func always(*project.Metadata, Style) bool { return true }

func detailedAnd(pred func(*project.Metadata, Style) bool) func(*project.Metadata, Style) bool {
	return func(m *project.Metadata, s Style) bool {
		return s == Detailed && pred(m, s)
	}
}

func hasDescription(m *project.Metadata, _ Style) bool {
	return strings.TrimSpace(m.Description) != ""
}

func hasStack(m *project.Metadata, _ Style) bool {
	return len(m.Frameworks) > 0 || len(m.Languages) > 0
}

func hasFeatures(m *project.Metadata, _ Style) bool { return len(features(m)) > 0 }

func hasSrcFiles(m *project.Metadata, _ Style) bool { return len(m.SrcFiles) > 0 }

func hasLibraryEntry(m *project.Metadata, _ Style) bool {
	return m.Main != "" && m.Bin.Len() == 0
}

func hasDependencies(m *project.Metadata, _ Style) bool { return len(m.Dependencies) > 0 }

func hasScripts(m *project.Metadata, _ Style) bool { return m.Scripts.Len() > 0 }

func hasAuthor(m *project.Metadata, _ Style) bool { return strings.TrimSpace(m.Author) != "" }

func writeTitle(w io.Writer, m *project.Metadata, _ Style) {
	fmt.Fprintf(w, "# %s\n\n", m.Name)
	fmt.Fprintln(w, strings.Join(Badges(*m), "\n"))
}

func writeDescription(w io.Writer, m *project.Metadata, _ Style) {
	for _, line := range strings.Split(strings.TrimSpace(m.Description), "\n") {
		fmt.Fprintf(w, "> %s\n", strings.TrimRight(line, " \t\r"))
	}
}

func writeTechStack(w io.Writer, m *project.Metadata, _ Style) {
	fmt.Fprint(w, "## Tech Stack\n\n")
	if len(m.Languages) > 0 {
		fmt.Fprintf(w, "- **Languages:** %s\n", strings.Join(m.Languages, ", "))
	}
	if len(m.Frameworks) > 0 {
		fmt.Fprintf(w, "- **Frameworks:** %s\n", strings.Join(m.Frameworks, ", "))
	}
}

func features(m *project.Metadata) []string {
	var out []string
	if m.Bin.Len() > 0 {
		out = append(out, fmt.Sprintf("**CLI ready** - run `%s` straight from your terminal", m.Bin.Keys()[0]))
	}
	if m.HasTypeScript {
		out = append(out, "**Type-safe** - written in TypeScript with full type definitions")
	}
	if len(m.Frameworks) > 0 {
		out = append(out, fmt.Sprintf("**Modern stack** - built with %s", strings.Join(m.Frameworks, ", ")))
	}
	if len(m.Dependencies) == 0 {
		out = append(out, "**Zero dependencies** - lightweight, nothing extra to install")
	}
	return out
}

func writeFeatures(w io.Writer, m *project.Metadata, _ Style) {
	fmt.Fprint(w, "## Features\n\n")
	for _, f := range features(m) {
		fmt.Fprintf(w, "- %s\n", f)
	}
}

func writeInstallation(w io.Writer, m *project.Metadata, _ Style) {
	fmt.Fprint(w, "## Installation\n\n```bash\n")
	if m.Bin.Len() > 0 {
		fmt.Fprintf(w, "# Run directly\nnpx %s\n\n# Or install globally\nnpm install -g %s\n", m.Name, m.Name)
	} else {
		fmt.Fprintf(w, "npm install %s\n", m.Name)
	}
	fmt.Fprint(w, "```\n")
}

var (
	detailedScripts = []string{"dev", "build", "start", "test"}
	minimalScripts  = []string{"dev", "start"}
)

func writeUsage(w io.Writer, m *project.Metadata, s Style) {
	fmt.Fprint(w, "## Usage\n\n")
	wrote := false
	if m.Bin.Len() > 0 {
		fmt.Fprintf(w, "```bash\n%s --help\n```\n", m.Bin.Keys()[0])
		wrote = true
	}

	names := minimalScripts
	if s == Detailed {
		names = detailedScripts
	}
	var lines []string
	width := 0
	for _, name := range names {
		if _, ok := m.Scripts.Get(name); ok {
			lines = append(lines, name)
			if l := len("npm run " + name); l > width {
				width = l
			}
		}
	}
	if len(lines) > 0 {
		if wrote {
			fmt.Fprintln(w)
		}
		fmt.Fprint(w, "```bash\n")
		for _, name := range lines {
			run := "npm run " + name
			if s == Detailed {
				cmd, _ := m.Scripts.Get(name)
				fmt.Fprintf(w, "%-*s  # %s\n", width, run, cmd)
			} else {
				fmt.Fprintln(w, run)
			}
		}
		fmt.Fprint(w, "```\n")
		wrote = true
	}

	if !wrote {
		fmt.Fprintf(w, "```js\nconst %s = require('%s');\n```\n", identifier(m.Name), m.Name)
	}
}

func writeStructure(w io.Writer, m *project.Metadata, _ Style) {
	fmt.Fprint(w, "## Project Structure\n\n```\n")
	fmt.Fprintf(w, "%s/\n", project.SourceDir)
	files := m.SrcFiles
	more := 0
	if len(files) > MaxTreeEntries {
		more = len(files) - MaxTreeEntries
		files = files[:MaxTreeEntries]
	}
	for i, f := range files {
		branch := "├── "
		if i == len(files)-1 && more == 0 {
			branch = "└── "
		}
		fmt.Fprintf(w, "%s%s\n", branch, f)
	}
	if more > 0 {
		fmt.Fprintf(w, "└── ... +%d more\n", more)
	}
	fmt.Fprint(w, "```\n")
}

func writeAPI(w io.Writer, m *project.Metadata, _ Style) {
	fmt.Fprint(w, "## API\n\n")
	fmt.Fprintf(w, "```js\nimport %s from '%s';\n```\n", identifier(m.Name), m.Name)
}

func writeDependencies(w io.Writer, m *project.Metadata, _ Style) {
	fmt.Fprint(w, "## Dependencies\n\n| Package | Registry |\n|---------|----------|\n")
	for _, dep := range m.Dependencies {
		fmt.Fprintf(w, "| `%s` | [npm](%s%s) |\n", dep, npmRegistry, dep)
	}
}

func writeScripts(w io.Writer, m *project.Metadata, _ Style) {
	fmt.Fprint(w, "## Scripts\n\n| Script | Command |\n|--------|---------|\n")
	for _, p := range m.Scripts {
		fmt.Fprintf(w, "| `npm run %s` | `%s` |\n", p.Key, strings.ReplaceAll(p.Value, "|", `\|`))
	}
}

func writeContributing(w io.Writer, _ *project.Metadata, _ Style) {
	fmt.Fprint(w, `## Contributing

Contributions are welcome! Please feel free to submit a Pull Request.

1. Fork the repository
2. Create your feature branch (`+"`git checkout -b feature/amazing-feature`"+`)
3. Commit your changes (`+"`git commit -m 'Add amazing feature'`"+`)
4. Push to the branch (`+"`git push origin feature/amazing-feature`"+`)
5. Open a Pull Request
`)
}

func writeLicense(w io.Writer, m *project.Metadata, _ Style) {
	fmt.Fprintf(w, "%s\n\n", LicenseHeading)
	fmt.Fprintf(w, "This project is licensed under the %s License. See the [LICENSE](LICENSE) file for details.\n", licenseName(*m))
}

func writeAuthor(w io.Writer, m *project.Metadata, _ Style) {
	fmt.Fprintf(w, "---\n\nMade by %s\n", m.Author)
}

// identifier turns a package name into a camelCase JavaScript identifier:
// "@acme/my-tool" becomes "myTool".
func identifier(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	var b strings.Builder
	upper := false
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = b.Len() > 0
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	id := b.String()
	if id == "" {
		return "pkg"
	}
	if unicode.IsDigit([]rune(id)[0]) {
		return "pkg" + strings.ToUpper(id[:1]) + id[1:]
	}
	return id
}
