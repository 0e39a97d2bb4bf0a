package render

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/LXGIC-Studios/ai-readme/internal/project"
)

const (
	shields     = "https://img.shields.io"
	npmRegistry = "https://www.npmjs.com/package/"
)

// Badges returns the badge lines in their fixed order: npm version and
// downloads for scoped packages, license, GitHub stars, TypeScript, node.
func Badges(m project.Metadata) []string {
	var badges []string
	if strings.HasPrefix(m.Name, "@") {
		pkg := npmRegistry + m.Name
		badges = append(badges,
			fmt.Sprintf("[![npm version](%s/npm/v/%s.svg)](%s)", shields, m.Name, pkg),
			fmt.Sprintf("[![npm downloads](%s/npm/dm/%s.svg)](%s)", shields, m.Name, pkg),
		)
	}
	license := licenseName(m)
	badges = append(badges, fmt.Sprintf("[![License: %s](%s/badge/License-%s-blue.svg)](LICENSE)",
		license, shields, shieldsEscape(license)))
	if slug := RepoSlug(m.Repository); slug != "" {
		badges = append(badges, fmt.Sprintf("[![GitHub stars](%s/github/stars/%s.svg?style=social)](https://github.com/%s)",
			shields, slug, slug))
	}
	if m.HasTypeScript {
		badges = append(badges, fmt.Sprintf("[![TypeScript](%s/badge/TypeScript-Ready-blue.svg)](https://www.typescriptlang.org/)", shields))
	}
	if node, ok := m.Engines.Get("node"); ok && strings.TrimSpace(node) != "" {
		badges = append(badges, fmt.Sprintf("[![Node.js](%s/badge/node-%s-brightgreen.svg)](https://nodejs.org/)",
			shields, encodeURIComponent(node)))
	}
	return badges
}

// RepoSlug reduces a repository URL to "owner/repo". It returns "" when no
// slug can be derived.
func RepoSlug(repo string) string {
	s := strings.TrimSpace(repo)
	if s == "" {
		return ""
	}
	s = strings.TrimPrefix(s, "git+")
	switch {
	case strings.HasPrefix(s, "github:"):
		s = strings.TrimPrefix(s, "github:")
	case strings.Contains(s, "://"):
		u, err := url.Parse(s)
		if err != nil {
			return ""
		}
		s = u.Path
	case strings.HasPrefix(s, "git@"):
		i := strings.Index(s, ":")
		if i < 0 {
			return ""
		}
		s = s[i+1:]
	case strings.Contains(s, ":"):
		// gitlab:owner/repo and friends
		return ""
	}
	s = strings.Trim(s, "/")
	s = strings.TrimSuffix(s, ".git")
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ""
	}
	return s
}

func licenseName(m project.Metadata) string {
	if strings.TrimSpace(m.License) == "" {
		return "MIT"
	}
	return m.License
}

// shieldsEscape applies the static badge escaping rules: dashes and
// underscores are doubled, spaces become underscores.
func shieldsEscape(s string) string {
	s = strings.ReplaceAll(s, "-", "--")
	s = strings.ReplaceAll(s, "_", "__")
	s = strings.ReplaceAll(s, " ", "_")
	return url.PathEscape(s)
}

// encodeURIComponent matches the JavaScript function of the same name.
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
