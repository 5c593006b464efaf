package evaluator

import (
	"errors"

	"lox-lang/impl/internal/token"
)

var (
	// ErrType marks an operand that does not satisfy its operator.
	ErrType = errors.New("type error")
	// ErrUndefinedVariable marks a name missing from every enclosing scope.
	ErrUndefinedVariable = errors.New("undefined variable")
)

// RuntimeError aborts an Interpret call. Token is the operator or name the
// failure is attributed to.
type RuntimeError struct {
	Token   token.Token
	Kind    error
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

func (e *RuntimeError) Unwrap() error { return e.Kind }

func typeError(tok token.Token, msg string) *RuntimeError {
	return &RuntimeError{Token: tok, Kind: ErrType, Message: msg}
}

func undefined(tok token.Token) *RuntimeError {
	return &RuntimeError{Token: tok, Kind: ErrUndefinedVariable, Message: "Undefined variable '" + tok.Lexeme + "'."}
}
