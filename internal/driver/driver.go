// Package driver runs source text through the scan, parse and interpret
// stages and turns the outcome into something a host can report.
package driver

import (
	"errors"
	"io"
	"log/slog"

	"lox-lang/impl/internal/diag"
	"lox-lang/impl/internal/evaluator"
	"lox-lang/impl/internal/lexer"
	"lox-lang/impl/internal/parser"
	"lox-lang/impl/internal/token"
)

// Exit codes follow sysexits(3).
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitData     = 65
	ExitNoInput  = 66
	ExitSoftware = 70
)

type Status int

const (
	StatusOK Status = iota
	StatusStaticError
	StatusRuntimeError
)

// Result is the outcome of one Run. Diagnostics hold every lexical and
// syntax problem, plus at most one runtime error.
type Result struct {
	Diagnostics diag.List
	// Err is set when the run failed for a reason that is not a language
	// diagnostic, such as the output writer failing.
	Err error
}

func (r Result) Status() Status {
	switch {
	case r.Diagnostics.HasErrors():
		return StatusStaticError
	case r.Diagnostics.HasRuntimeError() || r.Err != nil:
		return StatusRuntimeError
	default:
		return StatusOK
	}
}

func (r Result) ExitCode() int {
	switch r.Status() {
	case StatusStaticError:
		return ExitData
	case StatusRuntimeError:
		return ExitSoftware
	default:
		return ExitOK
	}
}

// Session keeps one interpreter alive across Run calls, so a REPL sees the
// variables defined by earlier entries.
type Session struct {
	ev  *evaluator.Evaluator
	log *slog.Logger
}

type Option func(*sessionOptions)

type sessionOptions struct {
	log *slog.Logger
}

func WithLogger(l *slog.Logger) Option { return func(o *sessionOptions) { o.log = l } }

func New(out io.Writer, opts ...Option) *Session {
	o := sessionOptions{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}
	return &Session{
		ev:  evaluator.New(out, evaluator.WithLogger(o.log.With("component", "evaluator"))),
		log: o.log,
	}
}

func (s *Session) Tokens(src string) ([]token.Token, diag.List) {
	toks, diags := lexer.Lex(src)
	s.log.Debug("scanned", slog.Int("tokens", len(toks)), slog.Int("diagnostics", len(diags)))
	return toks, diags
}

// Parse scans and parses src. Lexical diagnostics come first.
func (s *Session) Parse(src string) (parser.Program, diag.List) {
	toks, diags := s.Tokens(src)
	prog, parseDiags := parser.Parse(toks)
	s.log.Debug("parsed", slog.Int("statements", len(prog.Statements)), slog.Int("diagnostics", len(parseDiags)))
	return prog, append(diags, parseDiags...)
}

// Run executes src. The program is not interpreted when any lexical or
// syntax error was found.
func (s *Session) Run(src string) Result {
	prog, diags := s.Parse(src)
	res := Result{Diagnostics: diags}
	if diags.HasErrors() {
		return res
	}
	err := s.ev.Interpret(prog)
	var rerr *evaluator.RuntimeError
	switch {
	case err == nil:
	case errors.As(err, &rerr):
		res.Diagnostics.RuntimeError(rerr.Token, rerr.Message)
		s.log.Debug("runtime error", slog.Int("line", rerr.Token.Line), slog.Any("kind", rerr.Kind))
	default:
		res.Err = err
	}
	return res
}
