package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"lox-lang/impl/internal/config"
	"lox-lang/impl/internal/diag"
	"lox-lang/impl/internal/driver"
)

type app struct {
	cfg    *config.Config
	log    *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func (a *app) report(diags diag.List) {
	for _, d := range diags {
		msg := d.String()
		if a.cfg.Color {
			msg = red(msg)
		}
		fmt.Fprintln(a.stderr, msg)
	}
}

func (a *app) printTokens(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return driver.ExitNoInput
	}
	toks, diags := driver.New(a.stdout, driver.WithLogger(a.log)).Tokens(string(data))
	enc := json.NewEncoder(a.stdout)
	enc.SetEscapeHTML(false)
	for _, t := range toks {
		if err := enc.Encode(t); err != nil {
			fmt.Fprintln(a.stderr, err)
			return driver.ExitSoftware
		}
	}
	a.report(diags)
	if diags.HasErrors() {
		return driver.ExitData
	}
	return driver.ExitOK
}

func (a *app) printAST(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return driver.ExitNoInput
	}
	prog, diags := driver.New(a.stdout, driver.WithLogger(a.log)).Parse(string(data))
	if diags.HasErrors() {
		a.report(diags)
		return driver.ExitData
	}
	w := bufio.NewWriter(a.stdout)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(prog); err != nil {
		fmt.Fprintln(a.stderr, err)
		return driver.ExitSoftware
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintln(a.stderr, err)
		return driver.ExitSoftware
	}
	return driver.ExitOK
}

func (a *app) runFile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return driver.ExitNoInput
	}
	res := driver.New(a.stdout, driver.WithLogger(a.log)).Run(string(data))
	a.report(res.Diagnostics)
	if res.Err != nil {
		fmt.Fprintln(a.stderr, res.Err)
	}
	return res.ExitCode()
}

func usage(w io.Writer, fs *flag.FlagSet) {
	name := filepath.Base(fs.Name())
	fmt.Fprintf(w, "Usage: %s [flags] [script]\n       %s [flags] tokens|ast <file>\n", name, name)
	fs.SetOutput(w)
	fs.PrintDefaults()
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfgPath := fs.String("config", "", "path to a "+config.FileName+" file")
	logLevel := fs.String("log-level", "", "override log level (debug, info, warn, error)")
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(stdout, fs)
			return driver.ExitOK
		}
		fmt.Fprintln(stderr, err)
		usage(stderr, fs)
		return driver.ExitUsage
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return driver.ExitUsage
	}
	if *logLevel != "" {
		if err := cfg.SetLogLevel(*logLevel); err != nil {
			fmt.Fprintln(stderr, err)
			return driver.ExitUsage
		}
	}
	a := &app{
		cfg:    cfg,
		log:    slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Level()})),
		stdout: stdout,
		stderr: stderr,
	}
	if cfg.Path != "" {
		a.log.Debug("loaded config", slog.String("path", cfg.Path))
	}

	rest := fs.Args()
	switch {
	case len(rest) == 0:
		return a.repl()
	case len(rest) == 2 && rest[0] == "tokens":
		return a.printTokens(rest[1])
	case len(rest) == 2 && rest[0] == "ast":
		return a.printAST(rest[1])
	case len(rest) == 1:
		return a.runFile(rest[0])
	default:
		usage(stderr, fs)
		return driver.ExitUsage
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	wd, _ := os.Getwd()
	home, _ := os.UserHomeDir()
	return config.Discover(wd, home)
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}
