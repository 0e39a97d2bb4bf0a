// Package config resolves ai-readme settings from an optional YAML file in
// the target project and from the environment. Command-line flags are layered
// on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/LXGIC-Studios/ai-readme/internal/scan"
)

const (
	// FileName is looked up in the target directory when no explicit path is given.
	FileName = ".ai-readme.yaml"

	DefaultStyle  = "detailed"
	DefaultOutput = "README.md"

	EnvStyle  = "AI_README_STYLE"
	EnvOutput = "AI_README_OUTPUT"
	EnvUpdate = "AI_README_UPDATE"
	EnvIgnore = "AI_README_IGNORE"
)

// Config holds generation settings.
type Config struct {
	// Style is "minimal" or "detailed". Unknown values fall back to the default
	// when rendering.
	Style string `yaml:"style"`

	// Output is the README path. Relative paths are resolved against the
	// target directory.
	Output string `yaml:"output"`

	// Update merges custom sections from the existing output file.
	Update bool `yaml:"update"`

	// Ignore lists doublestar patterns excluded from scanning.
	Ignore []string `yaml:"ignore"`

	// MaxDepth bounds the directory walk (default 3).
	MaxDepth int `yaml:"max_depth"`
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Style) == "" {
		c.Style = DefaultStyle
	}
	if strings.TrimSpace(c.Output) == "" {
		c.Output = DefaultOutput
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = scan.DefaultMaxDepth
	}
}

// ScanOptions returns the scanner settings derived from c.
func (c Config) ScanOptions() scan.Options {
	return scan.Options{MaxDepth: c.MaxDepth, Ignore: c.Ignore}
}

// OutputPath resolves Output against dir.
func (c Config) OutputPath(dir string) string {
	if filepath.IsAbs(c.Output) || c.Output == "-" {
		return c.Output
	}
	return filepath.Join(dir, c.Output)
}

// Load reads the config for the project in dir. When path is empty the
// optional dir/.ai-readme.yaml is used; an explicit path must exist. A .env
// file in the working directory is loaded first, then environment overrides
// are applied.
func Load(dir, path string) (Config, error) {
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, FileName)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
		cfg = Config{}
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// LoadFile parses a YAML config file without applying env or defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvStyle)); v != "" {
		c.Style = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutput)); v != "" {
		c.Output = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvUpdate)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Update = b
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvIgnore)); v != "" {
		c.Ignore = append(c.Ignore, splitList(v)...)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
