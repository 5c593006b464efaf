package lexer

import (
	"math"
	"reflect"
	"strconv"
	"testing"

	"lox-lang/impl/internal/diag"
	"lox-lang/impl/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func wantKinds(t *testing.T, src string, want ...token.Kind) []token.Token {
	t.Helper()
	toks, diags := Lex(src)
	if len(diags) != 0 {
		t.Fatalf("Lex(%q) diagnostics: %v", src, diags)
	}
	want = append(want, token.EOF)
	if got := kinds(toks); !reflect.DeepEqual(got, want) {
		t.Fatalf("Lex(%q)\nwant: %v\ngot:  %v", src, want, got)
	}
	return toks
}

func TestLex_Punctuation(t *testing.T) {
	wantKinds(t, "(){},.-+;*/",
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.Slash)
}

func TestLex_OneOrTwoCharOperators(t *testing.T) {
	wantKinds(t, "! != = == < <= > >=",
		token.Bang, token.BangEqual, token.Equal, token.EqualEqual,
		token.Less, token.LessEqual, token.Greater, token.GreaterEqual)
	// no whitespace between operators
	wantKinds(t, "!==", token.BangEqual, token.Equal)
}

func TestLex_Comments(t *testing.T) {
	toks := wantKinds(t, "1 // ignored ( ) \"\n/* block\n comment */ 2 / 3",
		token.Number, token.Number, token.Slash, token.Number)
	if toks[1].Line != 3 {
		t.Fatalf("line after block comment: got %d, want 3", toks[1].Line)
	}
	// unterminated block comment swallows the rest silently
	wantKinds(t, "1 /* never closed\n2", token.Number)
}

func TestLex_Keywords(t *testing.T) {
	wantKinds(t, "and class else false fun for if nil or print return super this true var while",
		token.And, token.Class, token.Else, token.False, token.Fun, token.For, token.If,
		token.Nil, token.Or, token.Print, token.Return, token.Super, token.This,
		token.True, token.Var, token.While)
	toks := wantKinds(t, "variable _x9 printer", token.Identifier, token.Identifier, token.Identifier)
	if toks[1].Lexeme != "_x9" {
		t.Fatalf("lexeme: got %q", toks[1].Lexeme)
	}
}

func TestLex_Strings(t *testing.T) {
	toks := wantKinds(t, "\"hello\" \"multi\nline\" x", token.String, token.String, token.Identifier)
	if toks[0].Literal != "hello" || toks[0].Lexeme != `"hello"` {
		t.Fatalf("string token: %+v", toks[0])
	}
	if toks[1].Line != 1 {
		t.Fatalf("multi-line string should keep its starting line, got %d", toks[1].Line)
	}
	if toks[2].Line != 2 {
		t.Fatalf("token after multi-line string: line %d, want 2", toks[2].Line)
	}
	// no escape processing
	toks = wantKinds(t, `"a\nb"`, token.String)
	if toks[0].Literal != `a\nb` {
		t.Fatalf("escape should be kept verbatim, got %q", toks[0].Literal)
	}
}

func TestLex_UnterminatedString(t *testing.T) {
	toks, diags := Lex("\n\"abc")
	if len(diags) != 1 {
		t.Fatalf("want exactly one diagnostic, got %v", diags)
	}
	want := diag.Diagnostic{Kind: diag.Lexical, Line: 2, Message: "Unterminated string."}
	if diags[0] != want {
		t.Fatalf("got %+v, want %+v", diags[0], want)
	}
	if got := kinds(toks); !reflect.DeepEqual(got, []token.Kind{token.EOF}) {
		t.Fatalf("unterminated string must not produce a token, got %v", got)
	}
}

func TestLex_UnexpectedCharacter(t *testing.T) {
	toks, diags := Lex("1 @ 2 # é")
	if len(diags) != 3 {
		t.Fatalf("want 3 diagnostics, got %v", diags)
	}
	if diags[0].Message != "Unexpected character '@'." || diags[2].Message != "Unexpected character 'é'." {
		t.Fatalf("messages: %v", diags)
	}
	if got := kinds(toks); !reflect.DeepEqual(got, []token.Kind{token.Number, token.Number, token.EOF}) {
		t.Fatalf("scanning should continue past bad characters, got %v", got)
	}
}

func TestLex_Numbers(t *testing.T) {
	toks := wantKinds(t, "123 4.5 6. .7", token.Number, token.Number, token.Number, token.Dot, token.Dot, token.Number)
	if toks[0].Literal != 123.0 || toks[1].Literal != 4.5 {
		t.Fatalf("literals: %v %v", toks[0].Literal, toks[1].Literal)
	}
	if toks[2].Lexeme != "6" {
		t.Fatalf("trailing dot must not be part of the number, got %q", toks[2].Lexeme)
	}
}

func TestLex_NumberRoundTrip(t *testing.T) {
	cases := []float64{0, 1, 7, 0.1, 2.5, 1234567.875, 3.141592653589793, 1e21, 123456789012345680000, math.MaxFloat64}
	for _, n := range cases {
		src := strconv.FormatFloat(n, 'f', -1, 64)
		toks := wantKinds(t, src, token.Number)
		if toks[0].Literal != n {
			t.Errorf("round trip %s: got %v", src, toks[0].Literal)
		}
	}
}

func TestLex_LinesAndEOF(t *testing.T) {
	toks := wantKinds(t, "a\nb\r\n\tc\n", token.Identifier, token.Identifier, token.Identifier)
	for i, want := range []int{1, 2, 3, 4} {
		if toks[i].Line != want {
			t.Errorf("token %d (%s): line %d, want %d", i, toks[i].Kind, toks[i].Line, want)
		}
	}
	toks, _ = Lex("")
	if len(toks) != 1 || toks[0].Kind != token.EOF || toks[0].Line != 1 {
		t.Fatalf("empty source: %v", toks)
	}
}
