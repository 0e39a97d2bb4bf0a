package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"
	"github.com/spf13/pflag"
)

const rootLongDesc = `
ai-readme reads a project's package.json, looks at the files in the tree and writes a README.md
from what it finds: badges, install and usage instructions, detected languages and frameworks,
a source listing, dependency and script tables.

Two styles are available:

  • minimal   title, badges, install, usage and license
  • detailed  everything above plus tech stack, features, project structure, API,
              dependencies, scripts and contributing sections (default)

Hand-written parts survive regeneration. Wrap them in custom markers and run with --update:

  <!-- custom: notes -->
  Anything here is kept verbatim.
  <!-- /custom -->

Defaults can be set in .ai-readme.yaml in the project or through AI_README_* environment variables.
`

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout, stderr: stderr}
	cmd := &cobra.Command{
		Use:           "ai-readme [flags] [directory]",
		Short:         "Generate a README from project metadata",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.FParseErrWhitelist.UnknownFlags = true

	flags := cmd.Flags()
	flags.StringVarP(&app.opts.dir, "dir", "d", ".", "project directory to scan")
	flags.StringVarP(&app.opts.style, "style", "s", "", "README style: minimal or detailed (default detailed)")
	flags.StringVarP(&app.opts.output, "output", "o", "", "output file, relative to the project directory (default README.md)")
	flags.BoolVarP(&app.opts.update, "update", "u", false, "keep custom sections from the existing output file")
	flags.BoolVar(&app.opts.json, "json", false, "write the collected metadata as JSON instead of Markdown")
	flags.BoolVar(&app.opts.dryRun, "dry-run", false, "print the result to stdout instead of writing it")
	flags.BoolVarP(&app.opts.verbose, "verbose", "v", false, "log analysis details to stderr")
	flags.StringVar(&app.opts.configPath, "config", "", "config file (default <dir>/.ai-readme.yaml)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return app.execute(cmd.Flags(), args)
	}

	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

// longFlagNames lists the long flags of cmd so single-dash spellings
// ("-dry-run") can be rewritten before parsing.
func longFlagNames(cmd *cobra.Command) map[string]struct{} {
	names := make(map[string]struct{})
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if len(f.Name) > 1 {
			names[f.Name] = struct{}{}
		}
	})
	return names
}

// completionWriters maps each supported shell to its cobra generator.
func completionWriters(root *cobra.Command) map[string]func(io.Writer) error {
	return map[string]func(io.Writer) error{
		"bash":       root.GenBashCompletion,
		"zsh":        root.GenZshCompletion,
		"fish":       func(w io.Writer) error { return root.GenFishCompletion(w, true) },
		"powershell": root.GenPowerShellCompletion,
	}
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate shell completion scripts",
		Long: strings.TrimSpace(`
Print a completion script for ai-readme. Supported shells: bash, zsh, fish, powershell.

  ai-readme completion bash > /usr/local/etc/bash_completion.d/ai-readme
  ai-readme completion zsh > "${fpath[1]}/_ai-readme"
  ai-readme completion fish | source
`),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		gen, ok := completionWriters(root)[args[0]]
		if !ok {
			return fmt.Errorf("unsupported shell %q", args[0])
		}
		return gen(cmd.OutOrStdout())
	}
	return cmd
}

const (
	docsMarkdown = "markdown"
	docsMan      = "man"
)

func newDocsCmd(root *cobra.Command) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "gen-docs <directory>",
		Short: "Write reference docs for the CLI",
		Long: strings.TrimSpace(`
Write the ai-readme command reference into a directory, one file per command.
Markdown is the default; --format man writes section 1 man pages instead.

  ai-readme gen-docs ./docs/cli
  ai-readme gen-docs --format man ./man/man1
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&format, "format", docsMarkdown, "output format: markdown or man")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := strings.TrimSpace(args[0])
		if target == "" {
			return errors.New("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", target, err)
		}
		switch strings.ToLower(format) {
		case docsMarkdown:
			return cobradoc.GenMarkdownTree(root, target)
		case docsMan:
			return cobradoc.GenManTree(root, &cobradoc.GenManHeader{
				Title:   "AI-README",
				Section: "1",
				Source:  "ai-readme " + Version,
			}, target)
		default:
			return fmt.Errorf("unknown docs format %q (want %s or %s)", format, docsMarkdown, docsMan)
		}
	}
	return cmd
}
