// Package classify maps dependency names and file extensions to the framework
// and language names shown in a README.
package classify

import "strings"

type framework struct {
	dependency string
	name       string
}

// frameworkTable is ordered; results follow this order, not manifest order.
var frameworkTable = []framework{
	{"react", "React"},
	{"next", "Next.js"},
	{"vue", "Vue"},
	{"nuxt", "Nuxt"},
	{"svelte", "Svelte"},
	{"@sveltejs/kit", "SvelteKit"},
	{"@angular/core", "Angular"},
	{"solid-js", "Solid"},
	{"astro", "Astro"},
	{"express", "Express"},
	{"fastify", "Fastify"},
	{"koa", "Koa"},
	{"hono", "Hono"},
	{"@nestjs/core", "NestJS"},
	{"electron", "Electron"},
	{"react-native", "React Native"},
	{"tailwindcss", "Tailwind CSS"},
	{"prisma", "Prisma"},
	{"@prisma/client", "Prisma"},
	{"drizzle-orm", "Drizzle"},
	{"mongoose", "Mongoose"},
	{"graphql", "GraphQL"},
	{"socket.io", "Socket.IO"},
	{"commander", "Commander"},
	{"yargs", "Yargs"},
	{"vite", "Vite"},
	{"webpack", "Webpack"},
	{"jest", "Jest"},
	{"vitest", "Vitest"},
	{"mocha", "Mocha"},
}

var languageByExt = map[string]string{
	".ts":     "TypeScript",
	".tsx":    "TypeScript",
	".mts":    "TypeScript",
	".cts":    "TypeScript",
	".js":     "JavaScript",
	".jsx":    "JavaScript",
	".mjs":    "JavaScript",
	".cjs":    "JavaScript",
	".py":     "Python",
	".go":     "Go",
	".rs":     "Rust",
	".java":   "Java",
	".kt":     "Kotlin",
	".rb":     "Ruby",
	".php":    "PHP",
	".swift":  "Swift",
	".c":      "C",
	".h":      "C",
	".cpp":    "C++",
	".cc":     "C++",
	".hpp":    "C++",
	".cs":     "C#",
	".dart":   "Dart",
	".lua":    "Lua",
	".zig":    "Zig",
	".sh":     "Shell",
	".vue":    "Vue",
	".svelte": "Svelte",
	".css":    "CSS",
	".scss":   "SCSS",
	".html":   "HTML",
}

// Result holds the derived tags.
type Result struct {
	Frameworks []string
	Languages  []string
}

// Classify derives frameworks from the union of dependency lists and languages
// from scanned extensions.
func Classify(deps, devDeps, exts []string) Result {
	return Result{
		Frameworks: Frameworks(deps, devDeps),
		Languages:  Languages(exts),
	}
}

// Frameworks returns the display names of recognised dependencies in table order.
func Frameworks(deps, devDeps []string) []string {
	present := make(map[string]bool, len(deps)+len(devDeps))
	for _, d := range deps {
		present[d] = true
	}
	for _, d := range devDeps {
		present[d] = true
	}
	var out []string
	seen := map[string]bool{}
	for _, f := range frameworkTable {
		if present[f.dependency] && !seen[f.name] {
			seen[f.name] = true
			out = append(out, f.name)
		}
	}
	return out
}

// Languages returns the language names for exts in first-seen order.
func Languages(exts []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, ext := range exts {
		lang, ok := Language(ext)
		if !ok || seen[lang] {
			continue
		}
		seen[lang] = true
		out = append(out, lang)
	}
	return out
}

// Language looks up a single extension, with or without its leading dot.
func Language(ext string) (string, bool) {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	lang, ok := languageByExt[ext]
	return lang, ok
}
