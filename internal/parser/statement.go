package parser

import (
	"fmt"

	"github.com/PawanKartikS/Cherry/internal/ast"
	"github.com/PawanKartikS/Cherry/internal/lexer"
)

func isCompareOperator(tok lexer.Token) bool {
	if tok.Type != lexer.Operator {
		return false
	}
	switch tok.Str {
	case "==", "!=", "<", ">", "<=", ">=":
		return true
	}
	return false
}

// ParseLine turns one line's tokens into a single ast.Node, dispatching on
// the leading keyword the way original_source/parse.c's parse_stmt does.
// Blank/comment lines (no tokens) are the caller's concern, not this
// function's — Parse skips them before ever calling ParseLine.
func ParseLine(tokens []lexer.Token, lineNo int) (*ast.Node, error) {
	s := NewStream(tokens)
	front, ok := s.PeekFront()
	if !ok {
		return nil, fmt.Errorf("line %d: empty statement", lineNo)
	}

	var node *ast.Node
	var err error

	switch {
	case front.Is("var") || front.Is("const"):
		node, err = parseDecl(s, lineNo, front.Name)
	case front.Is("def"):
		node, err = parseFuncDecl(s, lineNo)
	case front.Is("defer"):
		node, err = parseDeferStmt(s, lineNo)
	case front.Is("for") || front.Is("if"):
		node, err = parseCondStmt(s, lineNo, front.Name)
	case front.Is("print"):
		node, err = parsePrintStmt(s, lineNo)
	case front.Is("read"):
		node, err = parseReadStmt(s, lineNo)
	case front.Is("return"):
		node, err = parseReturnStmt(s, lineNo)
	case front.Is("else"):
		s.PopFront()
		if !s.Empty() {
			return nil, fmt.Errorf("line %d: unexpected tokens after else", lineNo)
		}
		return &ast.Node{Keyword: "else", Kind: ast.NoOp, Line: lineNo}, nil
	case front.Is("end"):
		s.PopFront()
		if !s.Empty() {
			return nil, fmt.Errorf("line %d: unexpected tokens after end", lineNo)
		}
		return &ast.Node{Keyword: "end", Kind: ast.CloseBlock, Line: lineNo}, nil
	default:
		node, err = parseExprStmt(s, lineNo)
	}

	if err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNo, err)
	}
	return node, nil
}

func parseDecl(s *Stream, lineNo int, keyword string) (*ast.Node, error) {
	s.PopFront()

	nameTok, ok := s.PopFront()
	if !ok || nameTok.Type != lexer.Identifier {
		return nil, fmt.Errorf("expected identifier after %s", keyword)
	}

	op, ok := s.PopFront()
	if !ok {
		return nil, fmt.Errorf("expected = or : in %s declaration", keyword)
	}

	var rhs any
	var rhsType lexer.TokenType

	switch {
	case op.Type == lexer.Operator && op.Str == "=":
		var err error
		rhs, rhsType, err = parseNext(s)
		if err != nil {
			return nil, err
		}

	case op.Type == lexer.Syntax && op.Str == ":":
		typeTok, ok := s.PopFront()
		if !ok {
			return nil, fmt.Errorf("expected type name after : in %s declaration", keyword)
		}
		var err error
		rhs, rhsType, err = typedDefault(typeTok)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("expected = or : in %s declaration", keyword)
	}

	if !s.Empty() {
		return nil, fmt.Errorf("unexpected trailing tokens in %s declaration", keyword)
	}

	return &ast.Node{
		Keyword: keyword,
		Kind:    ast.VarDecl,
		Line:    lineNo,
		Payload: &ast.Decl{Name: nameTok.Name, RHS: rhs, RHSType: rhsType, IsConst: keyword == "const"},
	}, nil
}

// typedDefault resolves the type name following `var x : <type>` to its
// zero/empty value, per original_source/parse.c's handling of the typed
// declaration form (int -> numeric 0, str -> empty string, glist/gstack ->
// the reserved, unimplemented container placeholders).
func typedDefault(tok lexer.Token) (any, lexer.TokenType, error) {
	switch tok.Text() {
	case "int":
		return 0.0, lexer.Numeric, nil
	case "str":
		return "", lexer.String, nil
	case "glist":
		return nil, lexer.GList, nil
	case "gstack":
		return nil, lexer.GStack, nil
	default:
		return nil, 0, fmt.Errorf("invalid type name %q in typed declaration", tok.Text())
	}
}

func parseFuncDecl(s *Stream, lineNo int) (*ast.Node, error) {
	s.PopFront()

	nameTok, ok := s.PopFront()
	if !ok || nameTok.Type != lexer.Identifier {
		return nil, fmt.Errorf("expected function name after def")
	}

	params, err := parseArgList(s, true)
	if err != nil {
		return nil, err
	}
	if !s.Empty() {
		return nil, fmt.Errorf("unexpected trailing tokens in function declaration")
	}

	return &ast.Node{
		Keyword: "def",
		Kind:    ast.FuncDecl,
		Line:    lineNo,
		Payload: &ast.Call{Name: nameTok.Name, Args: params},
	}, nil
}

func parseDeferStmt(s *Stream, lineNo int) (*ast.Node, error) {
	s.PopFront()

	call, err := parseCall(s)
	if err != nil {
		return nil, err
	}
	if !s.Empty() {
		return nil, fmt.Errorf("unexpected trailing tokens in defer statement")
	}

	return &ast.Node{Keyword: "defer", Kind: ast.DeferCall, Line: lineNo, Payload: call}, nil
}

func parseCondStmt(s *Stream, lineNo int, keyword string) (*ast.Node, error) {
	s.PopFront()

	lhs, lhsType, err := parseNext(s)
	if err != nil {
		return nil, err
	}

	opTok, ok := s.PopFront()
	if !ok || !isCompareOperator(opTok) {
		return nil, fmt.Errorf("expected a comparison operator in %s condition", keyword)
	}

	rhs, rhsType, err := parseNext(s)
	if err != nil {
		return nil, err
	}
	if !s.Empty() {
		return nil, fmt.Errorf("unexpected trailing tokens in %s condition", keyword)
	}

	kind := ast.Conditional
	if keyword == "for" {
		kind = ast.ForLoop
	}

	return &ast.Node{
		Keyword: keyword,
		Kind:    kind,
		Line:    lineNo,
		Payload: &ast.Cond{Op: opTok.Str, LHS: lhs, LHSType: lhsType, RHS: rhs, RHSType: rhsType},
	}, nil
}

func parsePrintStmt(s *Stream, lineNo int) (*ast.Node, error) {
	s.PopFront()

	val, vtype, err := parseNext(s)
	if err != nil {
		return nil, err
	}
	if !s.Empty() {
		return nil, fmt.Errorf("unexpected trailing tokens after print argument")
	}

	return &ast.Node{Keyword: "print", Kind: ast.Print, Line: lineNo, Payload: &ast.Print{Arg: val, ArgType: vtype}}, nil
}

func parseReadStmt(s *Stream, lineNo int) (*ast.Node, error) {
	s.PopFront()

	nameTok, ok := s.PopFront()
	if !ok || nameTok.Type != lexer.Identifier {
		return nil, fmt.Errorf("expected identifier after read")
	}
	if !s.Empty() {
		return nil, fmt.Errorf("unexpected trailing tokens after read target")
	}

	return &ast.Node{Keyword: "read", Kind: ast.Read, Line: lineNo, Payload: &ast.Read{Target: nameTok.Name}}, nil
}

func parseReturnStmt(s *Stream, lineNo int) (*ast.Node, error) {
	s.PopFront()

	if s.Empty() {
		return &ast.Node{Keyword: "return", Kind: ast.Return, Line: lineNo, Payload: &ast.Return{ValType: lexer.None}}, nil
	}

	val, vtype, err := parseNext(s)
	if err != nil {
		return nil, err
	}
	if !s.Empty() {
		return nil, fmt.Errorf("unexpected trailing tokens after return value")
	}

	return &ast.Node{Keyword: "return", Kind: ast.Return, Line: lineNo, Payload: &ast.Return{Val: val, ValType: vtype}}, nil
}

// parseExprStmt handles the two statement shapes that start with a bare
// identifier and aren't caught by any keyword above: a function call used
// for its side effects (name(args)), and the post-increment/decrement
// shorthand (name++, name--).
func parseExprStmt(s *Stream, lineNo int) (*ast.Node, error) {
	front, ok := s.PeekFront()
	if !ok || front.Type != lexer.Identifier {
		return nil, fmt.Errorf("unexpected token %q", front.Text())
	}

	la, haveLa := s.Lookahead()
	if haveLa && la.Type == lexer.Paren && la.Str == "(" {
		call, err := parseCall(s)
		if err != nil {
			return nil, err
		}
		if !s.Empty() {
			return nil, fmt.Errorf("unexpected trailing tokens after function call")
		}
		return &ast.Node{Keyword: front.Name, Kind: ast.FuncCall, Line: lineNo, Payload: call}, nil
	}

	if haveLa && la.Type == lexer.Operator && (la.Str == "++" || la.Str == "--") {
		s.PopFront()
		opTok, _ := s.PopFront()
		if !s.Empty() {
			return nil, fmt.Errorf("unexpected trailing tokens after %s", opTok.Str)
		}
		kind := ast.PostInc
		if opTok.Str == "--" {
			kind = ast.PostDec
		}
		return &ast.Node{Keyword: front.Name, Kind: kind, Line: lineNo, Payload: &ast.Unary{Name: front.Name}}, nil
	}

	return nil, fmt.Errorf("unrecognized statement starting with %q", front.Text())
}
