package lexer

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"lox-lang/impl/internal/diag"
	"lox-lang/impl/internal/token"
)

// Lex converts source into a flat token stream terminated by a single EOF
// token. Lexical problems are returned as diagnostics; the offending text
// produces no token and scanning carries on.
func Lex(src string) ([]token.Token, diag.List) {
	var out []token.Token
	var diags diag.List
	i := 0
	n := len(src)
	line := 1

	// helper to peek ahead of the cursor; returns 0 if out of bounds
	peek := func(off int) byte {
		j := i + off
		if j >= n || j < 0 {
			return 0
		}
		return src[j]
	}

	emit := func(kind token.Kind, start int, lit any, at int) {
		out = append(out, token.Token{Kind: kind, Lexeme: src[start:i], Literal: lit, Line: at})
	}

	for i < n {
		start := i
		ch := src[i]
		i++

		switch ch {
		case ' ', '\t', '\r':
			continue
		case '\n':
			line++
			continue
		case '(':
			emit(token.LeftParen, start, nil, line)
			continue
		case ')':
			emit(token.RightParen, start, nil, line)
			continue
		case '{':
			emit(token.LeftBrace, start, nil, line)
			continue
		case '}':
			emit(token.RightBrace, start, nil, line)
			continue
		case ',':
			emit(token.Comma, start, nil, line)
			continue
		case '.':
			emit(token.Dot, start, nil, line)
			continue
		case '-':
			emit(token.Minus, start, nil, line)
			continue
		case '+':
			emit(token.Plus, start, nil, line)
			continue
		case ';':
			emit(token.Semicolon, start, nil, line)
			continue
		case '*':
			emit(token.Star, start, nil, line)
			continue
		}

		// One or two character operators
		two := func(a byte, one, both token.Kind) bool {
			if ch != a {
				return false
			}
			kind := one
			if peek(0) == '=' {
				i++
				kind = both
			}
			emit(kind, start, nil, line)
			return true
		}
		if two('!', token.Bang, token.BangEqual) || two('=', token.Equal, token.EqualEqual) ||
			two('<', token.Less, token.LessEqual) || two('>', token.Greater, token.GreaterEqual) {
			continue
		}

		if ch == '/' {
			switch peek(0) {
			case '/':
				for i < n && src[i] != '\n' {
					i++
				}
			case '*':
				// Block comment: runs to the closing */ or to end of input.
				i++
				for i < n && !(src[i] == '*' && peek(1) == '/') {
					if src[i] == '\n' {
						line++
					}
					i++
				}
				if i < n {
					i += 2
				}
			default:
				emit(token.Slash, start, nil, line)
			}
			continue
		}

		// Strings: no escapes, may span lines; the token keeps its first line.
		if ch == '"' {
			at := line
			for i < n && src[i] != '"' {
				if src[i] == '\n' {
					line++
				}
				i++
			}
			if i >= n {
				diags.Error(at, diag.MsgUnterminatedString)
				continue
			}
			i++ // closing quote
			emit(token.String, start, src[start+1:i-1], at)
			continue
		}

		if isDigit(ch) {
			for i < n && isDigit(src[i]) {
				i++
			}
			// fractional part needs at least one digit after the dot
			if peek(0) == '.' && isDigit(peek(1)) {
				i++
				for i < n && isDigit(src[i]) {
					i++
				}
			}
			// ParseFloat only fails here with ErrRange, where it still
			// returns the correctly signed infinity.
			v, _ := strconv.ParseFloat(src[start:i], 64)
			emit(token.Number, start, v, line)
			continue
		}

		if isIdentStart(ch) {
			for i < n && isIdentPart(src[i]) {
				i++
			}
			emit(token.Lookup(src[start:i]), start, nil, line)
			continue
		}

		r, size := utf8.DecodeRuneInString(src[start:])
		i = start + size
		diags.Error(line, fmt.Sprintf("Unexpected character '%c'.", r))
	}

	out = append(out, token.Token{Kind: token.EOF, Line: line})
	return out, diags
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}
