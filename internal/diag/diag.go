// Package diag collects the problems found while scanning, parsing and
// running a program. A List is returned by value from each stage so that no
// error state outlives the run that produced it.
package diag

import (
	"errors"
	"fmt"

	"lox-lang/impl/internal/token"
)

// Reporter is what the scanner, parser and interpreter report into.
type Reporter interface {
	Error(line int, message string)
	SyntaxError(tok token.Token, message string)
	RuntimeError(tok token.Token, message string)
}

type Kind int

const (
	Lexical Kind = iota
	Syntax
	Runtime
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Syntax:
		return "syntax"
	case Runtime:
		return "runtime"
	default:
		return "unknown"
	}
}

// Messages the REPL treats as "keep reading" rather than as hard errors.
const (
	MsgUnterminatedString = "Unterminated string."
	whereEnd              = " at end"
)

type Diagnostic struct {
	Kind    Kind
	Line    int
	Where   string
	Message string
}

func (d Diagnostic) String() string {
	if d.Kind == Runtime {
		return fmt.Sprintf("%s\n[line %d]", d.Message, d.Line)
	}
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

func (d Diagnostic) Error() string { return d.String() }

// List is an ordered set of diagnostics. The zero value is ready to use.
type List []Diagnostic

var _ Reporter = (*List)(nil)

func (l *List) Error(line int, message string) {
	*l = append(*l, Diagnostic{Kind: Lexical, Line: line, Message: message})
}

func (l *List) SyntaxError(tok token.Token, message string) {
	where := fmt.Sprintf(" at '%s'", tok.Lexeme)
	if tok.Kind == token.EOF {
		where = whereEnd
	}
	*l = append(*l, Diagnostic{Kind: Syntax, Line: tok.Line, Where: where, Message: message})
}

func (l *List) RuntimeError(tok token.Token, message string) {
	*l = append(*l, Diagnostic{Kind: Runtime, Line: tok.Line, Message: message})
}

// HasErrors reports whether any lexical or syntax error was recorded.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Kind != Runtime {
			return true
		}
	}
	return false
}

func (l List) HasRuntimeError() bool {
	for _, d := range l {
		if d.Kind == Runtime {
			return true
		}
	}
	return false
}

// Incomplete is true when every static error could be fixed by appending
// more source: an unterminated string or a syntax error at end of input.
func (l List) Incomplete() bool {
	if !l.HasErrors() {
		return false
	}
	for _, d := range l {
		switch {
		case d.Kind == Lexical && d.Message == MsgUnterminatedString:
		case d.Kind == Syntax && d.Where == whereEnd:
		default:
			return false
		}
	}
	return true
}

// Err joins the list into a single error, or nil when empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	errs := make([]error, len(l))
	for i, d := range l {
		errs[i] = d
	}
	return errors.Join(errs...)
}
