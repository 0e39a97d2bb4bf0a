// Package manifest reads a project's package.json into a normalized record.
//
// The raw document is loosely typed: license, author and repository may be
// strings or objects, bin may be a string or a map. Parse folds all of those
// shapes into one Manifest with every field defaulted, so callers never deal
// with optional values.
package manifest

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	// FileName is the manifest looked up in the project root.
	FileName = "package.json"
	// DefaultLicense is used when the manifest declares none.
	DefaultLicense = "MIT"
)

// Manifest is the normalized view of package.json.
type Manifest struct {
	Name            string
	Version         string
	Description     string
	License         string
	Author          string
	Homepage        string
	Repository      string
	Main            string
	Scripts         Pairs
	Dependencies    []string
	DevDependencies []string
	Bin             Pairs
	Engines         Pairs
	Keywords        []string
}

// Default returns the record used when no usable manifest exists.
func Default() Manifest {
	return Manifest{License: DefaultLicense}
}

// Load reads the manifest from dir. A missing, unreadable or malformed file
// yields Default().
func Load(dir string) Manifest {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return Default()
	}
	m, err := Parse(data)
	if err != nil {
		return Default()
	}
	return m
}

// Parse decodes a package.json document.
func Parse(data []byte) (Manifest, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return Manifest{}, err
	}
	if doc == nil {
		return Manifest{}, errors.New("manifest is not an object")
	}
	m := Manifest{
		Name:            str(doc["name"]),
		Version:         str(doc["version"]),
		Description:     str(doc["description"]),
		License:         license(doc["license"]),
		Author:          author(doc["author"]),
		Homepage:        str(doc["homepage"]),
		Repository:      repository(doc["repository"]),
		Main:            str(doc["main"]),
		Scripts:         stringPairs(doc["scripts"]),
		Dependencies:    objectKeys(doc["dependencies"]),
		DevDependencies: objectKeys(doc["devDependencies"]),
		Engines:         stringPairs(doc["engines"]),
		Keywords:        stringList(doc["keywords"]),
	}
	if m.Main == "" {
		m.Main = str(doc["module"])
	}
	m.Bin = bin(doc["bin"], m.Name)
	m.applyDefaults()
	return m, nil
}

func (m *Manifest) applyDefaults() {
	if m.License == "" {
		m.License = DefaultLicense
	}
}

func str(raw json.RawMessage) string {
	s, _ := asString(raw)
	return strings.TrimSpace(s)
}

func field(raw json.RawMessage, name string) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	return str(obj[name])
}

func license(raw json.RawMessage) string {
	if s, ok := asString(raw); ok {
		return strings.TrimSpace(s)
	}
	return field(raw, "type")
}

// author accepts both "Name <mail> (url)" strings and {name, email} objects
// and keeps only the name.
func author(raw json.RawMessage) string {
	if s, ok := asString(raw); ok {
		if i := strings.IndexAny(s, "<("); i >= 0 {
			s = s[:i]
		}
		return strings.TrimSpace(s)
	}
	return field(raw, "name")
}

func repository(raw json.RawMessage) string {
	if s, ok := asString(raw); ok {
		return strings.TrimSpace(s)
	}
	return field(raw, "url")
}

func bin(raw json.RawMessage, name string) Pairs {
	if s, ok := asString(raw); ok {
		cmd := commandName(name)
		if cmd == "" || strings.TrimSpace(s) == "" {
			return nil
		}
		return Pairs{{Key: cmd, Value: strings.TrimSpace(s)}}
	}
	return stringPairs(raw)
}

// commandName is the binary name npm derives from a package name: the part
// after the scope, if any.
func commandName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

func stringList(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := asString(item); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
