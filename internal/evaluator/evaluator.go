package evaluator

import (
	"fmt"
	"io"
	"log/slog"

	"lox-lang/impl/internal/parser"
	"lox-lang/impl/internal/token"
)

// Evaluator walks a parsed program. The global scope outlives a single
// Interpret call, so a REPL can feed it one line at a time.
type Evaluator struct {
	out     io.Writer
	globals *Env
	env     *Env
	log     *slog.Logger
}

type Option func(*Evaluator)

func WithLogger(l *slog.Logger) Option { return func(ev *Evaluator) { ev.log = l } }

// WithGlobals runs programs against an existing global scope.
func WithGlobals(env *Env) Option { return func(ev *Evaluator) { ev.globals = env } }

func New(w io.Writer, opts ...Option) *Evaluator {
	ev := &Evaluator{out: w, log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(ev)
	}
	if ev.globals == nil {
		ev.globals = NewEnv(nil)
	}
	ev.env = ev.globals
	return ev
}

func (ev *Evaluator) Globals() *Env { return ev.globals }

// Interpret executes the statements in order. The first runtime error stops
// the run and is returned as a *RuntimeError; later statements do not run.
func (ev *Evaluator) Interpret(prog parser.Program) error {
	for _, st := range prog.Statements {
		if err := ev.Execute(st); err != nil {
			return err
		}
	}
	return nil
}

func (ev *Evaluator) Execute(st parser.Statement) error {
	switch s := st.(type) {
	case parser.ExpressionStmt:
		_, err := ev.Evaluate(s.Value)
		return err
	case parser.PrintStmt:
		v, err := ev.Evaluate(s.Value)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(ev.out, Format(v)); err != nil {
			return fmt.Errorf("print: %w", err)
		}
		return nil
	case parser.VarStmt:
		var v Value = Nil{}
		if s.Initializer != nil {
			var err error
			if v, err = ev.Evaluate(s.Initializer); err != nil {
				return err
			}
		}
		ev.env.Define(s.Name.Lexeme, v)
		return nil
	case parser.BlockStmt:
		return ev.executeBlock(s.Statements, NewEnv(ev.env))
	default:
		panic(fmt.Sprintf("evaluator: unhandled statement %T", st))
	}
}

// executeBlock runs stmts in env and restores the previous scope on every
// exit path.
func (ev *Evaluator) executeBlock(stmts []parser.Statement, env *Env) error {
	outer := ev.env
	ev.env = env
	ev.log.Debug("push scope", slog.Int("depth", env.depth()))
	defer func() {
		ev.env = outer
		ev.log.Debug("pop scope", slog.Int("depth", outer.depth()))
	}()
	for _, st := range stmts {
		if err := ev.Execute(st); err != nil {
			return err
		}
	}
	return nil
}

func (ev *Evaluator) Evaluate(e parser.Expr) (Value, error) {
	switch ex := e.(type) {
	case parser.Literal:
		return fromLiteral(ex.Value), nil
	case parser.Grouping:
		return ev.Evaluate(ex.Inner)
	case parser.Variable:
		return ev.env.Get(ex.Name)
	case parser.Assign:
		v, err := ev.Evaluate(ex.Value)
		if err != nil {
			return nil, err
		}
		if err := ev.env.Assign(ex.Name, v); err != nil {
			return nil, err
		}
		return v, nil
	case parser.Unary:
		v, err := ev.Evaluate(ex.Operand)
		if err != nil {
			return nil, err
		}
		switch ex.Operator.Kind {
		case token.Bang:
			return Bool{V: !isTruthy(v)}, nil
		case token.Minus:
			n, ok := v.(Number)
			if !ok {
				return nil, typeError(ex.Operator, "Operand must be a number.")
			}
			return Number{V: -n.V}, nil
		}
		panic("evaluator: unexpected unary operator " + ex.Operator.Kind.String())
	case parser.Binary:
		l, err := ev.Evaluate(ex.Left)
		if err != nil {
			return nil, err
		}
		r, err := ev.Evaluate(ex.Right)
		if err != nil {
			return nil, err
		}
		return binary(ex.Operator, l, r)
	default:
		panic(fmt.Sprintf("evaluator: unhandled expression %T", e))
	}
}

// Operations

func binary(op token.Token, l, r Value) (Value, error) {
	switch op.Kind {
	case token.EqualEqual:
		return Bool{V: equal(l, r)}, nil
	case token.BangEqual:
		return Bool{V: !equal(l, r)}, nil
	case token.Plus:
		return add(op, l, r)
	}

	x, okl := l.(Number)
	y, okr := r.(Number)
	if !okl || !okr {
		return nil, typeError(op, "Operands must be numbers.")
	}
	switch op.Kind {
	case token.Minus:
		return Number{V: x.V - y.V}, nil
	case token.Star:
		return Number{V: x.V * y.V}, nil
	case token.Slash:
		// IEEE semantics: x/0 is ±Inf or NaN, never an error.
		return Number{V: x.V / y.V}, nil
	case token.Greater:
		return Bool{V: x.V > y.V}, nil
	case token.GreaterEqual:
		return Bool{V: x.V >= y.V}, nil
	case token.Less:
		return Bool{V: x.V < y.V}, nil
	case token.LessEqual:
		return Bool{V: x.V <= y.V}, nil
	}
	panic("evaluator: unexpected binary operator " + op.Kind.String())
}

func add(op token.Token, a, b Value) (Value, error) {
	switch x := a.(type) {
	case Number:
		if y, ok := b.(Number); ok {
			return Number{V: x.V + y.V}, nil
		}
	case Str:
		if y, ok := b.(Str); ok {
			return Str{V: x.V + y.V}, nil
		}
	}
	return nil, typeError(op, "Operands must be two numbers or two strings.")
}
