package parser

import (
	"fmt"

	"github.com/PawanKartikS/Cherry/internal/ast"
	"github.com/PawanKartikS/Cherry/internal/lexer"
)

// parseArgList consumes a parenthesized, comma-separated token list: the
// opening '(' must already be the front of s. Each element is popped with
// PopTokenFold(!onlyVar) — call arguments fold a leading sign into an
// immediate numeric literal (f(-5)); def parameter lists don't, since a
// parameter position only ever accepts a bare identifier (the "onlyvar"
// constraint in original_source/parse.c's parse_arglist).
func parseArgList(s *Stream, onlyVar bool) ([]lexer.Token, error) {
	if _, ok := s.PopFront(); !ok {
		return nil, fmt.Errorf("expected ( to open argument list")
	}

	var args []lexer.Token
	if front, ok := s.PeekFront(); ok && front.Type == lexer.Paren && front.Str == ")" {
		s.PopFront()
		return args, nil
	}

	for {
		tok, ok := s.PopTokenFold(!onlyVar)
		if !ok {
			return nil, fmt.Errorf("unexpected end of argument list")
		}
		if onlyVar && tok.Type != lexer.Identifier {
			return nil, fmt.Errorf("parameter must be an identifier, got %q", tok.Text())
		}
		if !onlyVar && tok.Type != lexer.Identifier && tok.Type != lexer.String && tok.Type != lexer.Numeric {
			return nil, fmt.Errorf("argument must be an identifier, string or numeric, got %q", tok.Text())
		}
		args = append(args, tok)

		next, ok := s.PopFront()
		if !ok {
			return nil, fmt.Errorf("unterminated argument list")
		}
		if next.Type == lexer.Paren && next.Str == ")" {
			return args, nil
		}
		if !(next.Type == lexer.Syntax && next.Str == ",") {
			return nil, fmt.Errorf("expected , or ) in argument list, got %q", next.Text())
		}
	}
}

// parseCall consumes `name(args...)` from the front of s and returns it as
// a Call payload. Arguments are plain tokens, never sub-expressions — the
// original language only ever passes identifiers, strings and numerics to
// a function (spec.md §4.5's aliasing rules depend on that).
func parseCall(s *Stream) (*ast.Call, error) {
	name, ok := s.PopFront()
	if !ok || name.Type != lexer.Identifier {
		return nil, fmt.Errorf("expected function name")
	}

	args, err := parseArgList(s, false)
	if err != nil {
		return nil, err
	}
	return &ast.Call{Name: name.Name, Args: args}, nil
}

// parseSlice consumes `arg[beg:end]`, its partial forms (`arg[:end]`,
// `arg[beg:]`, `arg[:]`), or the single-character form `arg[idx]` from the
// front of s. Bounds are full expressions (e.g. s[i+1:len(s)]), resolved
// via parseNext. An omitted bound is left with BegType/EndType ==
// lexer.None, which evalSlice reads as "use the default" (spec.md §4.6).
func parseSlice(s *Stream) (*ast.SliceExpr, error) {
	arg, ok := s.PopFront()
	if !ok || (arg.Type != lexer.Identifier && arg.Type != lexer.String) {
		return nil, fmt.Errorf("expected identifier or string before [")
	}

	open, ok := s.PopFront()
	if !ok || open.Type != lexer.SqBr || open.Str != "[" {
		return nil, fmt.Errorf("expected [")
	}

	var beg any
	begType := lexer.None
	if front, ok := s.PeekFront(); ok && !isColon(front) && !isCloseBracket(front) {
		b, bt, err := parseNext(s)
		if err != nil {
			return nil, err
		}
		beg, begType = b, bt
	}

	sep, ok := s.PeekFront()
	if !ok {
		return nil, fmt.Errorf("unterminated slice expression")
	}

	if isCloseBracket(sep) {
		s.PopFront()
		if begType == lexer.None {
			return nil, fmt.Errorf("single-character slice requires an index")
		}
		return &ast.SliceExpr{Arg: arg, Beg: beg, BegType: begType, EndType: lexer.None, SingleChar: true}, nil
	}

	if !isColon(sep) {
		return nil, fmt.Errorf("expected : or ] in slice expression, got %q", sep.Text())
	}
	s.PopFront()

	var end any
	endType := lexer.None
	if front, ok := s.PeekFront(); ok && !isCloseBracket(front) {
		e, et, err := parseNext(s)
		if err != nil {
			return nil, err
		}
		end, endType = e, et
	}

	closeTok, ok := s.PopFront()
	if !ok || !isCloseBracket(closeTok) {
		return nil, fmt.Errorf("expected ] to close slice expression")
	}

	return &ast.SliceExpr{Arg: arg, Beg: beg, BegType: begType, End: end, EndType: endType}, nil
}

func isColon(tok lexer.Token) bool {
	return tok.Type == lexer.Syntax && tok.Str == ":"
}

func isCloseBracket(tok lexer.Token) bool {
	return tok.Type == lexer.SqBr && tok.Str == "]"
}
