package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "prompt: \"lox> \"\nlog_level: debug\ncolor: true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Prompt != "lox> " || !cfg.Color || cfg.Path != path {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.ContinuationPrompt != "... " || cfg.HistorySize != 1000 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Fatalf("level = %v", cfg.Level())
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "promt: oops\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "promt") {
		t.Fatalf("want unknown field error, got %v", err)
	}
}

func TestLoad_Empty(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("want empty error, got %v", err)
	}
}

func TestLoad_Validation(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "prompt: \"\"\nhistory_size: -1\nlog_level: loud\n")
	_, err := Load(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want *ValidationError, got %v", err)
	}
	if len(verr.Issues) != 3 {
		t.Fatalf("issues: %q", verr.Issues)
	}
}

func TestDiscover(t *testing.T) {
	empty := t.TempDir()
	withFile := t.TempDir()
	writeConfig(t, withFile, "dump_tokens: true\n")

	cfg, err := Discover(empty, "", withFile)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.DumpTokens {
		t.Fatalf("config from second dir not picked up: %+v", cfg)
	}

	cfg, err = Discover(empty)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" || cfg.Prompt != Default().Prompt {
		t.Fatalf("want defaults, got %+v", cfg)
	}
}

func TestSetLogLevelAndHistoryPath(t *testing.T) {
	cfg := Default()
	if err := cfg.SetLogLevel("nope"); err == nil {
		t.Fatal("want error for bad level")
	}
	if err := cfg.SetLogLevel("error"); err != nil || cfg.Level() != slog.LevelError {
		t.Fatalf("SetLogLevel: %v %v", err, cfg.Level())
	}
	if got := cfg.HistoryPath("/home/u"); got != filepath.Join("/home/u", ".lox_history") {
		t.Fatalf("HistoryPath = %q", got)
	}
	cfg.HistoryFile = "/tmp/h"
	if got := cfg.HistoryPath("/home/u"); got != "/tmp/h" {
		t.Fatalf("absolute HistoryPath = %q", got)
	}
}
