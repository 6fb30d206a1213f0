// Package query compiles fault search expressions into parameterized SQL.
//
// A search expression combines fault names with & (and), | (or), ! (not)
// and parentheses, e.g. "Alpine Jacksons to Kaniere & (Fiordland | !Wairau)".
// The expression is lexed into tokens, parsed by precedence climbing into an
// expression tree, and lowered to a SQL statement over the rupture tables
// together with an ordered positional parameter list.
package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType classifies the tokens of a search expression.
type TokenType int

const (
	TokenLeftParen TokenType = iota
	TokenRightParen
	TokenBinaryOp
	TokenUnaryOp
	TokenFault
)

// BinaryOp is an infix operator joining two subexpressions.
type BinaryOp int

const (
	OpAnd BinaryOp = iota
	OpOr
)

func (op BinaryOp) String() string {
	if op == OpAnd {
		return "AND"
	}
	return "OR"
}

// bindingPower returns the (left, right) binding powers of the operator.
// Higher powers bind tighter; left < right makes the operator
// left-associative.
func (op BinaryOp) bindingPower() (int, int) {
	if op == OpAnd {
		return 3, 4
	}
	return 1, 2
}

// notBindingPower is the binding power of the prefix ! operator. It exceeds
// both infix powers so that negation binds tighter than & and |.
const notBindingPower = 5

// Token is a single lexed token. Op is meaningful only for TokenBinaryOp
// and Name only for TokenFault.
type Token struct {
	Type TokenType
	Op   BinaryOp
	Name string
}

// TokenStream is a cursor over a lexed token sequence with one-token
// lookahead.
type TokenStream struct {
	tokens []Token
	idx    int
}

// NewTokenStream wraps a token slice in a stream positioned at the first
// token.
func NewTokenStream(tokens []Token) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// Next consumes and returns the next token. The second return value is
// false once the stream is exhausted.
func (ts *TokenStream) Next() (Token, bool) {
	if ts.idx >= len(ts.tokens) {
		return Token{}, false
	}
	tok := ts.tokens[ts.idx]
	ts.idx++
	return tok, true
}

// Peek returns the next token without consuming it.
func (ts *TokenStream) Peek() (Token, bool) {
	if ts.idx >= len(ts.tokens) {
		return Token{}, false
	}
	return ts.tokens[ts.idx], true
}

// Tokens returns the underlying token slice.
func (ts *TokenStream) Tokens() []Token {
	return ts.tokens
}

// isNameByte reports whether b may appear in a fault name. Fault names are
// runs of letters, digits, '-', '_', ':' and spaces; interior spaces are
// legitimate ("Alpine Fault").
func isNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_' || b == ':' || b == ' ':
		return true
	}
	return false
}

// Lex splits a search expression into a token stream. Whitespace separates
// tokens and is otherwise ignored. A fault name is the longest run of name
// characters, trimmed of surrounding spaces; two adjacent names with no
// operator between them therefore lex as a single merged name, which is the
// documented behaviour for names containing spaces.
func Lex(input string) (*TokenStream, error) {
	var tokens []Token
	i := 0
	for i < len(input) {
		r, size := utf8.DecodeRuneInString(input[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '&':
			tokens = append(tokens, Token{Type: TokenBinaryOp, Op: OpAnd})
			i++
		case r == '|':
			tokens = append(tokens, Token{Type: TokenBinaryOp, Op: OpOr})
			i++
		case r == '!':
			tokens = append(tokens, Token{Type: TokenUnaryOp})
			i++
		case r == '(':
			tokens = append(tokens, Token{Type: TokenLeftParen})
			i++
		case r == ')':
			tokens = append(tokens, Token{Type: TokenRightParen})
			i++
		default:
			j := i
			for j < len(input) && isNameByte(input[j]) {
				j++
			}
			if j == i {
				return nil, &LexError{Input: input, Pos: i}
			}
			tokens = append(tokens, Token{Type: TokenFault, Name: strings.TrimSpace(input[i:j])})
			i = j
		}
	}
	return NewTokenStream(tokens), nil
}
