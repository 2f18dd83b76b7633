package interp

import (
	"github.com/PawanKartikS/Cherry/internal/ast"
	"github.com/PawanKartikS/Cherry/internal/lexer"
	"github.com/PawanKartikS/Cherry/internal/symtab"
)

// resolve turns a parsed operand (val, vtype) into its runtime value. The
// parser hands every operand position one of: a literal (Numeric/String),
// None, an Identifier name, a pending call (Fretval, *ast.Call), a slice
// (Indx, *ast.SliceExpr), or an unfolded expression tree (Exprtree,
// *ast.ExprNode) — spec.md §4.6's resolve_operand dispatch.
func (i *Interpreter) resolve(val any, vtype lexer.TokenType) (any, lexer.TokenType, error) {
	switch vtype {
	case lexer.Numeric, lexer.String, lexer.GList, lexer.GStack:
		return val, vtype, nil

	case lexer.None:
		return nil, lexer.None, nil

	case lexer.Identifier:
		name := val.(string)
		e, ok := i.sym.GetSymEntry(name)
		if !ok {
			return nil, 0, i.errorf(i.currentLine, "undeclared symbol: %s", name)
		}
		return e.Cell.Val, e.Cell.VType, nil

	case lexer.Fretval:
		call := val.(*ast.Call)
		rv, rt, err := i.evalFunc(call.Name, call.Args, i.currentLine)
		if err != nil {
			return nil, 0, err
		}
		return rv, rt, nil

	case lexer.Indx:
		return i.evalSlice(val.(*ast.SliceExpr))

	case lexer.Exprtree:
		tree := val.(*ast.ExprNode)
		rv, rt, err := ast.EvalExprTree(tree, i.resolveLeaf)
		if err != nil {
			return nil, 0, i.errorf(i.currentLine, "%v", err)
		}
		return rv, rt, nil

	default:
		return nil, 0, i.errorf(i.currentLine, "unresolvable operand of type %s", vtype)
	}
}

// resolveLeaf is the LeafResolver the runtime expression evaluator uses:
// unlike the parser's constant folder, it looks identifiers up in the live
// symbol table instead of rejecting them outright.
func (i *Interpreter) resolveLeaf(tok lexer.Token) (any, lexer.TokenType, error) {
	switch tok.Type {
	case lexer.Numeric:
		return tok.Num, lexer.Numeric, nil
	case lexer.String:
		return tok.Str, lexer.String, nil
	case lexer.Identifier:
		e, ok := i.sym.GetSymEntry(tok.Name)
		if !ok {
			return nil, 0, i.errorf(i.currentLine, "undeclared symbol: %s", tok.Name)
		}
		return e.Cell.Val, e.Cell.VType, nil
	default:
		return nil, 0, i.errorf(i.currentLine, "unexpected token in expression: %s", tok.Text())
	}
}

// resolveArgToken resolves one call-argument token to its value, reporting
// whether the argument came in as a bare identifier (and, if so, the Cell
// backing it) so evalUserFunc can decide between aliasing and copying
// (spec.md §4.5).
func (i *Interpreter) resolveArgToken(tok lexer.Token) (val any, vtype lexer.TokenType, cell *symtab.Cell, err error) {
	switch tok.Type {
	case lexer.Numeric:
		return tok.Num, lexer.Numeric, nil, nil
	case lexer.String:
		return tok.Str, lexer.String, nil, nil
	case lexer.Identifier:
		e, ok := i.sym.GetSymEntry(tok.Name)
		if !ok {
			return nil, 0, nil, i.errorf(i.currentLine, "undeclared symbol: %s", tok.Name)
		}
		return e.Cell.Val, e.Cell.VType, e.Cell, nil
	default:
		return nil, 0, nil, i.errorf(i.currentLine, "invalid argument token: %s", tok.Text())
	}
}
