// Package project assembles the metadata a README is rendered from.
package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LXGIC-Studios/ai-readme/internal/classify"
	"github.com/LXGIC-Studios/ai-readme/internal/manifest"
	"github.com/LXGIC-Studios/ai-readme/internal/scan"
)

const (
	// SourceDir is the conventional source tree listed in Project Structure.
	SourceDir = "src"
	// TypeScriptConfig marks a project as typed.
	TypeScriptConfig = "tsconfig.json"
)

// ErrNotDirectory is returned when the target path is missing or not a directory.
var ErrNotDirectory = errors.New("target directory not found")

// Metadata is built once per invocation and only read afterwards.
type Metadata struct {
	Name            string         `json:"name"`
	Version         string         `json:"version"`
	Description     string         `json:"description"`
	License         string         `json:"license"`
	Author          string         `json:"author"`
	Homepage        string         `json:"homepage"`
	Repository      string         `json:"repository"`
	Scripts         manifest.Pairs `json:"scripts"`
	Dependencies    []string       `json:"dependencies"`
	DevDependencies []string       `json:"devDependencies"`
	Frameworks      []string       `json:"frameworks"`
	Languages       []string       `json:"languages"`
	HasTypeScript   bool           `json:"hasTypeScript"`
	HasSrc          bool           `json:"hasSrc"`
	SrcFiles        []string       `json:"srcFiles"`
	Main            string         `json:"main"`
	Bin             manifest.Pairs `json:"bin"`
	Engines         manifest.Pairs `json:"engines"`
	Keywords        []string       `json:"keywords"`
}

// Analyze reads the manifest and scans dir. Only a missing or non-directory
// dir is an error; everything else degrades to empty values.
func Analyze(dir string, opts scan.Options) (Metadata, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Metadata{}, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	m := manifest.Load(dir)
	return Build(dir, m, opts), nil
}

// Build derives Metadata from an already loaded manifest.
func Build(dir string, m manifest.Manifest, opts scan.Options) Metadata {
	exts := scan.Extensions(dir, opts)
	tags := classify.Classify(m.Dependencies, m.DevDependencies, exts)

	srcDir := filepath.Join(dir, SourceDir)
	hasSrc := isDir(srcDir)
	var srcFiles []string
	if hasSrc {
		srcFiles = scan.Files(srcDir, scan.Options{MaxDepth: opts.MaxDepth, Ignore: srcIgnore(opts.Ignore)})
	}

	name := m.Name
	if name == "" {
		name = dirName(dir)
	}

	return Metadata{
		Name:            name,
		Version:         m.Version,
		Description:     m.Description,
		License:         m.License,
		Author:          m.Author,
		Homepage:        m.Homepage,
		Repository:      m.Repository,
		Scripts:         m.Scripts,
		Dependencies:    nonNil(m.Dependencies),
		DevDependencies: nonNil(m.DevDependencies),
		Frameworks:      nonNil(tags.Frameworks),
		Languages:       nonNil(tags.Languages),
		HasTypeScript:   isFile(filepath.Join(dir, TypeScriptConfig)),
		HasSrc:          hasSrc,
		SrcFiles:        nonNil(srcFiles),
		Main:            m.Main,
		Bin:             m.Bin,
		Engines:         m.Engines,
		Keywords:        nonNil(m.Keywords),
	}
}

// JSON encodes the metadata with two-space indentation and a trailing newline.
func (m Metadata) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// srcIgnore rebases root-relative ignore patterns onto the src tree: "src/gen/**"
// becomes "gen/**", "**/*.snap" applies anywhere, other root patterns are dropped.
func srcIgnore(patterns []string) []string {
	prefix := SourceDir + "/"
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimPrefix(filepath.ToSlash(strings.TrimSpace(p)), "./")
		switch {
		case strings.HasPrefix(p, prefix) && len(p) > len(prefix):
			out = append(out, p[len(prefix):])
		case strings.HasPrefix(p, "**/"):
			out = append(out, p)
		}
	}
	return out
}

func dirName(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.Base(dir)
	}
	return filepath.Base(abs)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
