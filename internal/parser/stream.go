// Package parser turns a line's tokens into an ast.Node, and splices
// consecutive nodes into the block tree (spec.md §4). It is grounded in
// original_source/parse.c, expr.c and ast.c, structured the way the
// teacher's internal/parser package structures its own Pratt parser.
package parser

import "github.com/PawanKartikS/Cherry/internal/lexer"

// Stream is a consumable view over a line's tokens, mirroring the
// pop_front/peek_front/lookahead operations the original parser runs
// against its linked list of tokens.
type Stream struct {
	toks []lexer.Token
}

// NewStream wraps toks for consumption. It does not copy toks's backing
// array eagerly; callers should not mutate toks afterward.
func NewStream(toks []lexer.Token) *Stream {
	return &Stream{toks: toks}
}

// Len reports how many tokens remain.
func (s *Stream) Len() int {
	return len(s.toks)
}

// Empty reports whether no tokens remain.
func (s *Stream) Empty() bool {
	return len(s.toks) == 0
}

// PeekFront returns the first remaining token without consuming it.
func (s *Stream) PeekFront() (lexer.Token, bool) {
	if len(s.toks) == 0 {
		return lexer.Token{}, false
	}
	return s.toks[0], true
}

// Lookahead returns the second remaining token without consuming anything.
func (s *Stream) Lookahead() (lexer.Token, bool) {
	if len(s.toks) < 2 {
		return lexer.Token{}, false
	}
	return s.toks[1], true
}

// PopFront consumes and returns the first remaining token.
func (s *Stream) PopFront() (lexer.Token, bool) {
	if len(s.toks) == 0 {
		return lexer.Token{}, false
	}
	t := s.toks[0]
	s.toks = s.toks[1:]
	return t, true
}

// PopTokenFold consumes one token, folding a leading +/- sign into an
// immediately following numeric literal when fold is true. This is the
// narrow sign convenience argument lists use for literal numeric
// arguments (e.g. f(-5)) — not the general unary handling the expression
// compiler does for full sub-expressions. Mirrors pop_token(tokens, exprm)
// from original_source/token.c.
func (s *Stream) PopTokenFold(fold bool) (lexer.Token, bool) {
	first, ok := s.PopFront()
	if !ok {
		return lexer.Token{}, false
	}
	if !fold || first.Type != lexer.Operator || (first.Str != "+" && first.Str != "-") {
		return first, true
	}

	next, ok := s.PeekFront()
	if !ok || next.Type != lexer.Numeric {
		return first, true
	}

	num, _ := s.PopFront()
	if first.Str == "-" {
		num.Num = -num.Num
	}
	return num, true
}
