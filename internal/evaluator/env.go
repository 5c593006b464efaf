package evaluator

import "lox-lang/impl/internal/token"

// Env is one lexical scope. outer is nil for the global scope; a block scope
// points at the scope that was current when the block was entered.
type Env struct {
	store map[string]Value
	outer *Env
}

func NewEnv(outer *Env) *Env { return &Env{store: map[string]Value{}, outer: outer} }

// Define binds name in this scope only, replacing any existing binding here.
func (e *Env) Define(name string, v Value) { e.store[name] = v }

func (e *Env) Get(name token.Token) (Value, error) {
	for env := e; env != nil; env = env.outer {
		if v, ok := env.store[name.Lexeme]; ok {
			return v, nil
		}
	}
	return nil, undefined(name)
}

// Assign updates the nearest scope that already binds name. It never creates
// a binding.
func (e *Env) Assign(name token.Token, v Value) error {
	for env := e; env != nil; env = env.outer {
		if _, ok := env.store[name.Lexeme]; ok {
			env.store[name.Lexeme] = v
			return nil
		}
	}
	return undefined(name)
}

func (e *Env) depth() int {
	d := 0
	for env := e.outer; env != nil; env = env.outer {
		d++
	}
	return d
}
