package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/LXGIC-Studios/ai-readme/internal/project"
)

const exampleDir = "./testdata/example"

func TestDryRunPrintsReadme(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--dry-run", "--dir", exampleDir}, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	assertContains(t, out, "# @acme/tool")
	assertContains(t, out, "> A tiny tool that does one thing well")
	assertContains(t, out, "https://img.shields.io/npm/v/@acme/tool.svg")
	assertContains(t, out, "github.com/acme/tool")
	assertContains(t, out, "npx @acme/tool")
	assertContains(t, out, "tool --help")
	assertContains(t, out, "TypeScript")
	assertContains(t, out, "├── helpers/format.py\n└── index.ts\n")
	assertContains(t, out, "| `commander` |")
	assertContains(t, out, "licensed under the Apache-2.0 License")
	assertContains(t, out, "Made by Acme Labs")
	assertOrder(t, out, "## Installation", "## Usage", "## Project Structure", "## License")
	if _, err := os.Stat(filepath.Join(exampleDir, "README.md")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("dry run must not write README.md, stat err = %v", err)
	}
}

func TestPositionalDirectory(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--dry-run", "--style", "minimal", exampleDir}, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	assertContains(t, out, "# @acme/tool")
	assertNotContains(t, out, "## Contributing")
	assertNotContains(t, out, "## Project Structure")
}

func TestWritesReadmeAndSummary(t *testing.T) {
	dir := copyExample(t)
	var buf bytes.Buffer
	if err := run([]string{"--dir", dir}, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	target := filepath.Join(dir, "README.md")
	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	assertContains(t, string(content), "## Contributing")
	assertContains(t, buf.String(), "Generated "+target+" (detailed style)")
}

func TestOutputFlagIsRelativeToProject(t *testing.T) {
	dir := copyExample(t)
	if err := run([]string{"-d", dir, "-o", "docs/README.md", "-s", "minimal"}, io.Discard, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	content, err := os.ReadFile(filepath.Join(dir, "docs", "README.md"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	assertContains(t, string(content), "## Installation")
	assertNotContains(t, string(content), "## Scripts")
}

func TestOutputDashWritesStdout(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--dir", exampleDir, "--output", "-"}, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	assertContains(t, out, "# @acme/tool")
	assertNotContains(t, out, "Generated ")
}

func TestUpdateKeepsCustomSections(t *testing.T) {
	dir := copyExample(t)
	target := filepath.Join(dir, "README.md")
	existing := "# old\n\n<!-- custom: notes -->\nKeep me.\n<!-- /custom -->\n\n## License\n\nold\n"
	if err := os.WriteFile(target, []byte(existing), 0o644); err != nil {
		t.Fatalf("write readme: %v", err)
	}

	var buf bytes.Buffer
	if err := run([]string{"--update", "--dir", dir}, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	out := string(content)
	assertContains(t, out, "<!-- custom: notes -->\nKeep me.\n<!-- /custom -->\n")
	assertOrder(t, out, "## Contributing", "<!-- custom: notes -->", "## License")
	assertNotContains(t, out, "# old")
	assertContains(t, buf.String(), "kept 1 custom section(s)")

	// A second run leaves the file as it is.
	if err := run([]string{"--update", "--dir", dir}, io.Discard, io.Discard); err != nil {
		t.Fatalf("second run: %v", err)
	}
	again, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(again) != out {
		t.Fatalf("update is not stable\n\nfirst:\n%s\n\nsecond:\n%s", out, again)
	}
}

func TestUpdateWarnsOnUnclosedSection(t *testing.T) {
	dir := copyExample(t)
	target := filepath.Join(dir, "README.md")
	existing := "<!-- custom: a -->\nA\n<!-- /custom -->\n<!-- custom: b -->\nB\n"
	if err := os.WriteFile(target, []byte(existing), 0o644); err != nil {
		t.Fatalf("write readme: %v", err)
	}
	var errBuf bytes.Buffer
	if err := run([]string{"-u", "-d", dir}, io.Discard, &errBuf); err != nil {
		t.Fatalf("run: %v", err)
	}
	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	assertContains(t, string(content), "<!-- custom: a -->\nA\n<!-- /custom -->")
	assertNotContains(t, string(content), "<!-- custom: b -->")
	assertContains(t, errBuf.String(), "level=WARN")
}

func TestUpdateWithoutExistingFile(t *testing.T) {
	dir := copyExample(t)
	var buf bytes.Buffer
	if err := run([]string{"--update", "--dir", dir}, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	assertNotContains(t, buf.String(), "kept")
}

func TestJSONWritesMetadata(t *testing.T) {
	dir := copyExample(t)
	var buf bytes.Buffer
	if err := run([]string{"--json", "--dir", dir}, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	target := filepath.Join(dir, "README.json")
	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	out := string(content)
	assertContains(t, out, `"name": "@acme/tool"`)
	assertContains(t, out, `"hasTypeScript": true`)
	assertOrder(t, out, `"build"`, `"test"`, `"dev"`)
	assertContains(t, buf.String(), "Generated "+target)
	if _, err := os.Stat(filepath.Join(dir, "README.md")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("json mode must not write README.md, stat err = %v", err)
	}
}

func TestJSONDryRun(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--json", "--dry-run", "--dir", exampleDir}, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	assertContains(t, buf.String(), `"srcFiles": [`)
}

func TestMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	err := run([]string{"--dir", missing}, io.Discard, io.Discard)
	if !errors.Is(err, project.ErrNotDirectory) {
		t.Fatalf("expected ErrNotDirectory, got %v", err)
	}
}

func TestInvalidStyleFallsBackToDetailed(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--style", "fancy", "--dry-run", "--dir", exampleDir}, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	assertContains(t, buf.String(), "## Contributing")
}

func TestUnknownFlagsAreIgnored(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--frobnicate", "--dry-run", "--dir", exampleDir}, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	assertContains(t, buf.String(), "# @acme/tool")
}

func TestSingleDashLongFlags(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"-dry-run", "-dir", exampleDir, "-style=minimal"}, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	assertContains(t, out, "# @acme/tool")
	assertNotContains(t, out, "## Contributing")
}

func TestConfigFileSetsDefaults(t *testing.T) {
	dir := copyExample(t)
	cfg := "style: minimal\noutput: OUT.md\n"
	if err := os.WriteFile(filepath.Join(dir, ".ai-readme.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := run([]string{"--dir", dir}, io.Discard, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	content, err := os.ReadFile(filepath.Join(dir, "OUT.md"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	assertNotContains(t, string(content), "## Contributing")

	// Flags win over the file.
	if err := run([]string{"--dir", dir, "--style", "detailed"}, io.Discard, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	content, err = os.ReadFile(filepath.Join(dir, "OUT.md"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	assertContains(t, string(content), "## Contributing")
}

func TestVerboseLogsAnalysis(t *testing.T) {
	var errBuf bytes.Buffer
	if err := run([]string{"--dry-run", "--verbose", "--dir", exampleDir}, io.Discard, &errBuf); err != nil {
		t.Fatalf("run: %v", err)
	}
	assertContains(t, errBuf.String(), "analyzed project")
	assertContains(t, errBuf.String(), "name=@acme/tool")
}

func TestHelpFlag(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--help"}, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	assertContains(t, out, "ai-readme [flags] [directory]")
	assertContains(t, out, "--dry-run")
	assertContains(t, out, "completion  Generate shell completion scripts")
}

func TestVersionFlag(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--version"}, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	assertContains(t, buf.String(), "ai-readme version "+Version)
}

func TestCompletionCommand(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"completion", "bash"}, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected completion output")
	}
	assertContains(t, buf.String(), "__start_ai-readme")
}

func TestGenDocsCommand(t *testing.T) {
	tmp := t.TempDir()
	if err := run([]string{"gen-docs", tmp}, io.Discard, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	files, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	var foundRoot bool
	for _, f := range files {
		if f.Name() == "ai-readme.md" {
			foundRoot = true
			break
		}
	}
	if !foundRoot {
		t.Fatalf("expected ai-readme.md in docs output, got %v", files)
	}
}

func TestCompletionShells(t *testing.T) {
	for shell, marker := range map[string]string{
		"zsh":        "#compdef ai-readme",
		"fish":       "complete -c ai-readme",
		"powershell": "Register-ArgumentCompleter",
	} {
		var buf bytes.Buffer
		if err := run([]string{"completion", shell}, &buf, io.Discard); err != nil {
			t.Fatalf("run %s: %v", shell, err)
		}
		assertContains(t, buf.String(), marker)
	}
	if err := run([]string{"completion", "tcsh"}, io.Discard, io.Discard); err == nil {
		t.Fatalf("expected an error for an unsupported shell")
	}
}

func TestGenDocsManPages(t *testing.T) {
	tmp := t.TempDir()
	if err := run([]string{"gen-docs", "--format", "man", tmp}, io.Discard, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	content, err := os.ReadFile(filepath.Join(tmp, "ai-readme.1"))
	if err != nil {
		t.Fatalf("read man page: %v", err)
	}
	assertContains(t, string(content), ".TH")
	assertContains(t, string(content), "AI-README")
}

func TestGenDocsUnknownFormat(t *testing.T) {
	err := run([]string{"gen-docs", "--format", "pdf", t.TempDir()}, io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), `unknown docs format "pdf"`) {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}

func TestNormalizeLegacyArgs(t *testing.T) {
	long := map[string]struct{}{"dry-run": {}, "dir": {}, "style": {}}
	cases := []struct {
		in   []string
		want []string
	}{
		{[]string{"-dry-run"}, []string{"--dry-run"}},
		{[]string{"-style=minimal", "-d", "x"}, []string{"--style=minimal", "-d", "x"}},
		{[]string{"-dir", "x", "--", "-dry-run"}, []string{"--dir", "x", "--", "-dry-run"}},
		{[]string{"-unknown", "x"}, []string{"-unknown", "x"}},
		{[]string{"--dir", "x"}, []string{"--dir", "x"}},
	}
	for _, tc := range cases {
		got := normalizeLegacyArgs(tc.in, long)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("normalizeLegacyArgs(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestJSONPath(t *testing.T) {
	cases := map[string]string{
		"README.md":      "README.json",
		"docs/GUIDE.MD":  "docs/GUIDE.json",
		"README":         "README.json",
		"notes.markdown": "notes.markdown.json",
		"-":              "-",
	}
	for in, want := range cases {
		if got := jsonPath(in); got != want {
			t.Errorf("jsonPath(%q) = %q, want %q", in, got, want)
		}
	}
}

// copyExample copies the example project into a temp dir so tests can write
// into it.
func copyExample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.CopyFS(dir, os.DirFS(exampleDir)); err != nil {
		t.Fatalf("copy example: %v", err)
	}
	return dir
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n\n%s", needle, haystack)
	}
}

func assertNotContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Fatalf("expected output not to contain %q\n\n%s", needle, haystack)
	}
}

func assertOrder(t *testing.T, text string, needles ...string) {
	t.Helper()
	last := -1
	for _, n := range needles {
		idx := strings.Index(text, n)
		if idx == -1 {
			t.Fatalf("missing %q\n\n%s", n, text)
		}
		if idx <= last {
			t.Fatalf("expected %q to appear after %q\n\n%s", n, needles, text)
		}
		last = idx
	}
}
