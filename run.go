package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/LXGIC-Studios/ai-readme/internal/config"
	"github.com/LXGIC-Studios/ai-readme/internal/merge"
	"github.com/LXGIC-Studios/ai-readme/internal/project"
	"github.com/LXGIC-Studios/ai-readme/internal/render"
)

type options struct {
	dir        string
	style      string
	output     string
	update     bool
	json       bool
	dryRun     bool
	verbose    bool
	configPath string
}

type cliApp struct {
	stdout io.Writer
	stderr io.Writer
	opts   options
}

func run(argv []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(normalizeLegacyArgs(argv, longFlagNames(cmd)))
	return cmd.Execute()
}

func (app *cliApp) execute(flags *pflag.FlagSet, positionals []string) error {
	logger := newLogger(app.stderr, app.opts.verbose)
	opts := app.opts

	dir := opts.dir
	if !flags.Changed("dir") && len(positionals) > 0 {
		dir = positionals[0]
	}
	if strings.TrimSpace(dir) == "" {
		return errors.New("a project directory is required")
	}

	cfg, err := config.Load(dir, opts.configPath)
	if err != nil {
		return err
	}
	cfg = app.applyFlags(cfg, flags)

	style, ok := render.ParseStyle(cfg.Style)
	if !ok {
		logger.Debug("unknown style, using default", "style", cfg.Style, "default", style)
	}

	meta, err := project.Analyze(dir, cfg.ScanOptions())
	if err != nil {
		return err
	}
	logger.Debug("analyzed project",
		"name", meta.Name,
		"languages", meta.Languages,
		"frameworks", meta.Frameworks,
		"srcFiles", len(meta.SrcFiles),
	)

	outPath := cfg.OutputPath(dir)
	if opts.json {
		return app.writeJSON(meta, jsonPath(outPath), opts.dryRun)
	}

	doc := render.Render(meta, style)
	preserved := 0
	if cfg.Update {
		doc, preserved = mergeExisting(outPath, doc, logger)
	}
	if opts.dryRun {
		return writeOutput("", app.stdout, []byte(doc))
	}
	if err := writeOutput(outPath, app.stdout, []byte(doc)); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	if isStdout(outPath) {
		return nil
	}
	summary := fmt.Sprintf("Generated %s (%s style)", outPath, style)
	if preserved > 0 {
		summary += fmt.Sprintf(", kept %d custom section(s)", preserved)
	}
	_, err = fmt.Fprintln(app.stdout, summary)
	return err
}

// applyFlags layers explicitly set flags over the file and env config.
func (app *cliApp) applyFlags(cfg config.Config, flags *pflag.FlagSet) config.Config {
	if flags.Changed("style") {
		cfg.Style = app.opts.style
	}
	if flags.Changed("output") && strings.TrimSpace(app.opts.output) != "" {
		cfg.Output = app.opts.output
	}
	if flags.Changed("update") {
		cfg.Update = app.opts.update
	}
	return cfg
}

func (app *cliApp) writeJSON(meta project.Metadata, path string, dryRun bool) error {
	data, err := meta.JSON()
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	if dryRun {
		path = ""
	}
	if err := writeOutput(path, app.stdout, data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if isStdout(path) {
		return nil
	}
	_, err = fmt.Fprintf(app.stdout, "Generated %s\n", path)
	return err
}

// mergeExisting carries custom sections of the file at path into doc. A
// missing or unreadable file leaves doc unchanged.
func mergeExisting(path, doc string, logger *slog.Logger) (string, int) {
	if isStdout(path) {
		return doc, 0
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("cannot read existing output, custom sections not merged", "file", path, "err", err)
		}
		return doc, 0
	}
	sections, diags := merge.ExtractWithDiagnostics(string(data))
	for _, d := range diags {
		logger.Warn(d.String(), "file", path)
	}
	logger.Debug("custom sections found", "file", path, "names", sections.Names())
	return merge.Inject(doc, sections), sections.Len()
}

// jsonPath swaps a trailing .md for .json, or appends .json.
func jsonPath(path string) string {
	if isStdout(path) {
		return path
	}
	ext := filepath.Ext(path)
	if strings.EqualFold(ext, ".md") {
		return strings.TrimSuffix(path, ext) + ".json"
	}
	return path + ".json"
}

func isStdout(path string) bool {
	return path == "" || path == "-"
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if isStdout(path) {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func normalizeLegacyArgs(args []string, longFlags map[string]struct{}) []string {
	if len(args) == 0 {
		return args
	}
	modified := false
	converted := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			converted = append(converted, args[i:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") || len(arg) <= 2 {
			converted = append(converted, arg)
			continue
		}
		name, value, hasValue := strings.Cut(arg[1:], "=")
		if _, ok := longFlags[name]; ok {
			if hasValue {
				converted = append(converted, "--"+name+"="+value)
			} else {
				converted = append(converted, "--"+name)
			}
			modified = true
			continue
		}
		converted = append(converted, arg)
	}
	if !modified {
		return args
	}
	return converted
}
