// # ai-readme
//
// `ai-readme` generates a README.md for a JavaScript/TypeScript project from
// what is already in the repository: the `package.json` manifest, the files in
// the tree and the `src/` listing. Nothing is sent anywhere; the result is a
// pure function of the project on disk.
//
// Key capabilities:
//
//   - read name, version, description, license, author, repository, scripts,
//     dependencies, bin, engines and keywords from `package.json`, tolerating a
//     missing or malformed manifest.
//   - detect frameworks from dependencies (React, Next.js, Express, Vite, ...)
//     and languages from file extensions, walking at most three levels deep and
//     skipping VCS, dependency, build and hidden directories.
//   - render a `minimal` or `detailed` README with shields.io badges.
//   - keep hand-written custom sections across regenerations with `--update`.
//   - dump the collected metadata as JSON with `--json`.
//   - ship a Cobra CLI with `--help`, `--version`, shell completion and a
//     `gen-docs` helper for the CLI reference.
//
// ## Usage
//
//	ai-readme [flags] [directory]
//
// Examples:
//
//   - Preview a detailed README for the current project:
//
//     ai-readme --dry-run
//
//   - Write a minimal README for another project:
//
//     ai-readme --dir ../my-lib --style minimal
//
//   - Regenerate, keeping custom sections:
//
//     ai-readme --update
//
//   - Write metadata next to the README as README.json:
//
//     ai-readme --json
//
// ## Supported Flags
//
//   - `--dir`, `-d`: project directory (default `.`; a positional argument
//     works too).
//   - `--style`, `-s`: `minimal` or `detailed`. Unknown values fall back to
//     `detailed`.
//   - `--output`, `-o`: output file relative to the project (default
//     `README.md`, `-` for stdout).
//   - `--update`, `-u`: merge custom sections from the existing output file.
//   - `--json`: write metadata JSON; the path is the output path with `.md`
//     replaced by `.json`.
//   - `--dry-run`: print instead of writing.
//   - `--verbose`, `-v`: log analysis details to stderr.
//   - `--config`: config file (default `<dir>/.ai-readme.yaml`).
//
// Unknown flags are ignored, and long flags may be spelled with a single dash
// (`-dry-run`).
//
// ## Custom Sections
//
// Anything between a custom opening marker and the closing marker is kept
// verbatim when running with `--update`:
//
//	<!-- custom: notes -->
//	Hand-written text.
//	<!-- /custom -->
//
// Sections are reinserted, in the order they first appeared, right before the
// `## License` heading of the new README. A marker that is never closed ends
// extraction: earlier sections are kept and a warning is logged.
//
// ## Configuration
//
// `.ai-readme.yaml` in the project directory may set defaults:
//
//	style: minimal
//	output: docs/README.md
//	update: true
//	max_depth: 3
//	ignore:
//	  - "src/generated/**"
//
// Environment variables override the file and are read after loading a `.env`
// from the working directory: `AI_README_STYLE`, `AI_README_OUTPUT`,
// `AI_README_UPDATE`, `AI_README_IGNORE` (comma-separated). Flags override
// both.
//
// ## Shell Completion
//
//	ai-readme completion bash        # bash
//	ai-readme completion zsh         # zsh
//	ai-readme completion fish | source
//	ai-readme completion powershell | Out-String | Invoke-Expression
//
// ## CLI Docs
//
//	ai-readme gen-docs ./docs/cli
//	ai-readme gen-docs --format man ./man/man1
//
// writes one Markdown file (or man page) per command.
package main
