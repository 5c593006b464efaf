package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"lox-lang/impl/internal/driver"
)

const banner = "Lox REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit."

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

// prompter is the part of *liner.State the read loop needs.
type prompter interface {
	Prompt(prompt string) (string, error)
}

func (a *app) repl() int {
	fmt.Fprintln(a.stdout, banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := ""
	if a.cfg.HistorySize > 0 {
		histPath = a.cfg.HistoryPath(home)
	}
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if err := saveHistory(ln, histPath, a.cfg.HistorySize); err != nil {
				a.log.Warn("save history", "path", histPath, "err", err)
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	s := driver.New(a.stdout, driver.WithLogger(a.log))
	for {
		src, ok := readEntry(ln, s, a.cfg.Prompt, a.cfg.ContinuationPrompt)
		if !ok {
			fmt.Fprintln(a.stdout)
			return driver.ExitOK
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if strings.HasPrefix(trimmed, ":") {
			if strings.ToLower(trimmed) == ":quit" {
				return driver.ExitOK
			}
			fmt.Fprintln(a.stdout, "unknown command. Type :quit to exit.")
			continue
		}
		a.eval(s, src)
	}
}

// eval runs one REPL entry. Each entry gets a fresh diagnostics list; only the
// interpreter state carries over.
func (a *app) eval(s *driver.Session, src string) {
	if a.cfg.DumpTokens {
		toks, _ := s.Tokens(src)
		for _, t := range toks {
			fmt.Fprintf(a.stdout, "  %s\n", t)
		}
	}
	res := s.Run(src)
	a.report(res.Diagnostics)
	if res.Err != nil {
		fmt.Fprintln(a.stderr, res.Err)
	}
}

// readEntry reads one logical entry, asking for continuation lines while the
// source so far only fails because it ends too early.
func readEntry(p prompter, s *driver.Session, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		current := prompt
		if b.Len() > 0 {
			current = cont
		}
		line, err := p.Prompt(current)
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, diags := s.Parse(src); !diags.Incomplete() {
			return src, true
		}
	}
}

// saveHistory writes at most limit entries, keeping the newest.
func saveHistory(ln *liner.State, path string, limit int) error {
	var buf bytes.Buffer
	if _, err := ln.WriteHistory(&buf); err != nil {
		return err
	}
	var lines []string
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(f, l); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
