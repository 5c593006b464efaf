package evaluator

import (
	"errors"
	"testing"

	"lox-lang/impl/internal/token"
)

func name(lexeme string, line int) token.Token {
	return token.Token{Kind: token.Identifier, Lexeme: lexeme, Line: line}
}

func TestEnv_DefineGet(t *testing.T) {
	root := NewEnv(nil)
	root.Define("a", Number{V: 1})
	root.Define("a", Str{V: "again"})
	v, err := root.Get(name("a", 1))
	if err != nil || v != (Str{V: "again"}) {
		t.Fatalf("got %#v, %v", v, err)
	}
}

func TestEnv_ShadowingLeavesOuterUntouched(t *testing.T) {
	root := NewEnv(nil)
	root.Define("x", Number{V: 1})
	child := NewEnv(root)
	child.Define("x", Number{V: 2})

	if v, _ := child.Get(name("x", 1)); v != (Number{V: 2}) {
		t.Fatalf("child x = %#v", v)
	}
	if v, _ := root.Get(name("x", 1)); v != (Number{V: 1}) {
		t.Fatalf("root x = %#v", v)
	}
}

func TestEnv_AssignWalksToNearestBinding(t *testing.T) {
	root := NewEnv(nil)
	root.Define("x", Number{V: 1})
	mid := NewEnv(root)
	leaf := NewEnv(mid)

	if err := leaf.Assign(name("x", 1), Number{V: 5}); err != nil {
		t.Fatal(err)
	}
	if v, _ := root.Get(name("x", 1)); v != (Number{V: 5}) {
		t.Fatalf("root x = %#v", v)
	}
	if _, ok := leaf.store["x"]; ok {
		t.Fatal("assign must not create a binding in the inner scope")
	}
}

func TestEnv_Undefined(t *testing.T) {
	root := NewEnv(nil)
	child := NewEnv(root)

	_, err := child.Get(name("ghost", 7))
	var rerr *RuntimeError
	if !errors.As(err, &rerr) || !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("Get: %v", err)
	}
	if rerr.Token.Line != 7 || rerr.Message != "Undefined variable 'ghost'." {
		t.Fatalf("Get error: %+v", rerr)
	}

	err = child.Assign(name("ghost", 9), Nil{})
	if !errors.As(err, &rerr) || rerr.Token.Line != 9 {
		t.Fatalf("Assign: %v", err)
	}
	if _, err := root.Get(name("ghost", 1)); err == nil {
		t.Fatal("a failed assign must not define the name")
	}
}

func TestEnv_Depth(t *testing.T) {
	root := NewEnv(nil)
	if d := NewEnv(NewEnv(root)).depth(); d != 2 {
		t.Fatalf("depth = %d", d)
	}
}
