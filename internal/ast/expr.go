package ast

import (
	"fmt"

	"github.com/PawanKartikS/Cherry/internal/lexer"
)

// ExprNode is a binary node in an arithmetic expression tree, built by the
// parser's shunting-yard expression compiler (spec.md §4.3). A leaf carries
// a literal or identifier token and has no children; an interior node
// carries an operator token and both children.
type ExprNode struct {
	Val   lexer.Token
	Left  *ExprNode
	Right *ExprNode
}

// IsLeaf reports whether n is a leaf (operand) node.
func (n *ExprNode) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// LeafResolver resolves a leaf token to a value during expression tree
// evaluation. The parser's constant folder and the evaluator's runtime
// expression walk each supply their own (the former rejects identifiers
// outright, since idfSeen gates whether the tree is folded at all; the
// latter looks an identifier up in the live symbol table).
type LeafResolver func(tok lexer.Token) (val any, vtype lexer.TokenType, err error)

// EvalExprTree walks an expression tree bottom-up, resolving leaves with
// resolve and combining interior nodes with EvalBinaryOp. Both operands of
// an interior node must resolve to numeric — mirrors eval_exprtree's type
// check in the original evaluator.
func EvalExprTree(node *ExprNode, resolve LeafResolver) (any, lexer.TokenType, error) {
	if node == nil {
		return nil, lexer.None, nil
	}
	if node.IsLeaf() {
		return resolve(node.Val)
	}

	lv, lt, err := EvalExprTree(node.Left, resolve)
	if err != nil {
		return nil, 0, err
	}
	rv, rt, err := EvalExprTree(node.Right, resolve)
	if err != nil {
		return nil, 0, err
	}
	if lt != lexer.Numeric || rt != lexer.Numeric {
		return nil, 0, fmt.Errorf("non-numeric operand in expression")
	}

	result, err := EvalBinaryOp(node.Val.Str, lv.(float64), rv.(float64))
	if err != nil {
		return nil, 0, err
	}
	return result, lexer.Numeric, nil
}

// EvalBinaryOp applies one of the four arithmetic operators. Division by
// zero is not special-cased: it propagates IEEE 754 Inf/NaN like the
// original's plain C double division.
func EvalBinaryOp(op string, l, r float64) (float64, error) {
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		return l / r, nil
	default:
		return 0, fmt.Errorf("unknown expression operator: %s", op)
	}
}
