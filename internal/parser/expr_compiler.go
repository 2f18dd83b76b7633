package parser

import (
	"fmt"

	"github.com/PawanKartikS/Cherry/internal/ast"
	"github.com/PawanKartikS/Cherry/internal/lexer"
)

// isArithOperator reports whether tok is one of the four arithmetic
// operators the expression compiler folds (+ - * /). Comparison operators
// (==, <, >=, ...) share the Operator token type but are never legal
// inside an arithmetic expression tree — to_exprtree in the original
// treats them as the "illegal token" case that ends the expression.
func isArithOperator(tok lexer.Token) bool {
	if tok.Type != lexer.Operator {
		return false
	}
	switch tok.Str {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

// precedence gives + and - precedence 1, * and / precedence 2, matching
// spec.md §4.3's table.
func precedence(op string) int {
	switch op {
	case "+", "-":
		return 1
	case "*", "/":
		return 2
	default:
		return 0
	}
}

// popBinary pops the top two operands off operands (rhs first, then lhs,
// mirroring init_bnode's pop order) and combines them under opTok.
func popBinary(operands *[]*ast.ExprNode, opTok lexer.Token) (*ast.ExprNode, bool) {
	n := len(*operands)
	if n < 2 {
		return nil, false
	}
	rhs := (*operands)[n-1]
	lhs := (*operands)[n-2]
	*operands = (*operands)[:n-2]
	return &ast.ExprNode{Val: opTok, Left: lhs, Right: rhs}, true
}

// defaultLeafResolve resolves a leaf token during constant folding. It is
// only ever invoked on trees with no identifier leaves (compileExpr skips
// folding entirely once it sees one), so an Identifier arriving here is a
// bug in the caller, not a user error.
func defaultLeafResolve(tok lexer.Token) (any, lexer.TokenType, error) {
	switch tok.Type {
	case lexer.Numeric:
		return tok.Num, lexer.Numeric, nil
	case lexer.String:
		return tok.Str, lexer.String, nil
	default:
		return nil, 0, fmt.Errorf("unexpected token in constant expression: %s", tok.Text())
	}
}

// compiledExpr is compileExpr's result: either a folded constant (Tree is
// nil) or an expression tree awaiting runtime evaluation (Tree is set,
// Type is lexer.Exprtree).
type compiledExpr struct {
	Value any
	Type  lexer.TokenType
	Tree  *ast.ExprNode
}

// compileExpr runs the shunting-yard algorithm over the front of s,
// stopping (without consuming) at the first token that isn't an operand, a
// +-*/ operator, or a parenthesis. This mirrors to_exprtree in
// original_source/expr.c exactly, including its trailing-token contract:
// callers compare token counts before/after to tell how much of the
// stream compileExpr actually consumed. Returns an error only for
// malformed expressions (mismatched parens, dangling operators).
func compileExpr(s *Stream) (compiledExpr, error) {
	var operands []*ast.ExprNode
	var operators []lexer.Token
	idfSeen := false

	if front, ok := s.PeekFront(); ok && front.Type == lexer.Operator && (front.Str == "+" || front.Str == "-") {
		// Leading unary sign: seed the stack with an implicit 0, so the
		// sign token that follows is processed as an ordinary binary
		// minus/plus against it (0 - x, 0 + x).
		operands = append(operands, &ast.ExprNode{Val: lexer.Token{Type: lexer.Numeric, Num: 0}})
	}

loop:
	for {
		tok, ok := s.PeekFront()
		if !ok {
			break
		}

		switch {
		case tok.Type == lexer.Paren && tok.Str == "(":
			operators = append(operators, tok)

		case tok.Type == lexer.String || tok.Type == lexer.Numeric || tok.Type == lexer.Identifier:
			if tok.Type == lexer.Identifier {
				idfSeen = true
			}
			operands = append(operands, &ast.ExprNode{Val: tok})

		case isArithOperator(tok):
			for len(operators) > 0 {
				top := operators[len(operators)-1]
				if top.Str == "(" || !isArithOperator(top) || precedence(tok.Str) > precedence(top.Str) {
					break
				}
				node, ok := popBinary(&operands, top)
				if !ok {
					return compiledExpr{}, fmt.Errorf("malformed expression: missing operand for %q", top.Str)
				}
				operands = append(operands, node)
				operators = operators[:len(operators)-1]
			}
			operators = append(operators, tok)

		case tok.Type == lexer.Paren && tok.Str == ")":
			if len(operators) == 0 {
				return compiledExpr{}, fmt.Errorf("malformed expression: unmatched )")
			}
			for {
				top := operators[len(operators)-1]
				if top.Str == "(" {
					operators = operators[:len(operators)-1]
					break
				}
				node, ok := popBinary(&operands, top)
				if !ok {
					return compiledExpr{}, fmt.Errorf("malformed expression: missing operand for %q", top.Str)
				}
				operands = append(operands, node)
				operators = operators[:len(operators)-1]
				if len(operators) == 0 {
					return compiledExpr{}, fmt.Errorf("malformed expression: unmatched )")
				}
			}

		default:
			break loop
		}

		s.PopFront()
	}

	for len(operators) > 0 {
		top := operators[len(operators)-1]
		if top.Str == "(" {
			return compiledExpr{}, fmt.Errorf("malformed expression: unmatched (")
		}
		node, ok := popBinary(&operands, top)
		if !ok {
			return compiledExpr{}, fmt.Errorf("malformed expression: missing operand for %q", top.Str)
		}
		operands = append(operands, node)
		operators = operators[:len(operators)-1]
	}

	if len(operands) != 1 {
		return compiledExpr{}, fmt.Errorf("malformed expression")
	}
	root := operands[0]

	if idfSeen {
		return compiledExpr{Tree: root, Type: lexer.Exprtree}, nil
	}

	val, vtype, err := ast.EvalExprTree(root, defaultLeafResolve)
	if err != nil {
		return compiledExpr{}, err
	}
	return compiledExpr{Value: val, Type: vtype}, nil
}

// parseNext resolves the next typed value in s: a function call
// (identifier immediately followed by '('), a slice/index (identifier or
// string immediately followed by '['), or a general expression — folded
// to a constant when possible, left as an expression tree otherwise.
// Consuming exactly one token that isn't a call or slice is further
// special-cased, matching parse_next's size-diff shortcut: a lone
// `none`, identifier, numeric or string keeps its native type instead of
// being wrapped in a single-leaf expression tree.
func parseNext(s *Stream) (any, lexer.TokenType, error) {
	front, ok := s.PeekFront()
	if !ok {
		return nil, 0, fmt.Errorf("expected a value, found end of line")
	}
	la, haveLa := s.Lookahead()

	if front.Type == lexer.Identifier && haveLa && la.Type == lexer.Paren && la.Str == "(" {
		call, err := parseCall(s)
		if err == nil {
			return call, lexer.Fretval, nil
		}
		return nil, 0, err
	}

	if (front.Type == lexer.Identifier || front.Type == lexer.String) && haveLa && la.Type == lexer.SqBr && la.Str == "[" {
		sl, err := parseSlice(s)
		if err == nil {
			return sl, lexer.Indx, nil
		}
		return nil, 0, err
	}

	before := s.Len()
	result, err := compileExpr(s)
	if err != nil {
		return nil, 0, err
	}
	consumed := before - s.Len()

	if consumed == 1 {
		if front.Is("none") {
			return nil, lexer.None, nil
		}
		switch front.Type {
		case lexer.Numeric:
			return front.Num, lexer.Numeric, nil
		case lexer.String:
			return front.Str, lexer.String, nil
		case lexer.Identifier:
			return front.Name, lexer.Identifier, nil
		}
	}

	if result.Tree != nil {
		return result.Tree, result.Type, nil
	}
	return result.Value, result.Type, nil
}
