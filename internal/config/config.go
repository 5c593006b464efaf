// Package config loads the host shell settings from a .lox.yml file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is looked up in the working directory, then in $HOME.
const FileName = ".lox.yml"

type Config struct {
	Path               string `yaml:"-"`
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
	HistoryFile        string `yaml:"history_file"`
	HistorySize        int    `yaml:"history_size"`
	LogLevel           string `yaml:"log_level"`
	Color              bool   `yaml:"color"`
	DumpTokens         bool   `yaml:"dump_tokens"`
}

func Default() *Config {
	return &Config{
		Prompt:             "> ",
		ContinuationPrompt: "... ",
		HistoryFile:        ".lox_history",
		HistorySize:        1000,
		LogLevel:           "warn",
	}
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load reads path over the defaults; keys absent from the file keep their
// default values and unknown keys are rejected.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	cfg := Default()
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: %s is empty", path)
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Path = path
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover loads the first config file found in dirs, or the defaults when
// none exists.
func Discover(dirs ...string) (*Config, error) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("config: stat %s: %w", path, err)
		}
		return Load(path)
	}
	return Default(), nil
}

func (c *Config) validate() error {
	var errs ValidationError
	if c.Prompt == "" {
		errs.Issues = append(errs.Issues, "prompt must not be empty")
	}
	if c.ContinuationPrompt == "" {
		errs.Issues = append(errs.Issues, "continuation_prompt must not be empty")
	}
	if c.HistorySize < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("history_size must not be negative, got %d", c.HistorySize))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs.Issues = append(errs.Issues, err.Error())
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Level is the slog level named by LogLevel.
func (c *Config) Level() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return l
}

// SetLogLevel overrides the configured level, e.g. from a command-line flag.
func (c *Config) SetLogLevel(s string) error {
	if _, err := parseLevel(s); err != nil {
		return err
	}
	c.LogLevel = s
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level %q is not one of debug, info, warn, error", s)
	}
	return l, nil
}

// HistoryPath resolves HistoryFile against home unless it is absolute.
func (c *Config) HistoryPath(home string) string {
	if c.HistoryFile == "" || filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	return filepath.Join(home, c.HistoryFile)
}
