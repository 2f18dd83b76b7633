package interp

import (
	"github.com/PawanKartikS/Cherry/internal/ast"
	"github.com/PawanKartikS/Cherry/internal/lexer"
)

// evalSlice evaluates a SliceExpr against spec.md §4.6's rules: the base
// must resolve to a string; an omitted lower bound defaults to 0, an
// omitted upper bound defaults to the string's length; a single-character
// slice forces the upper bound to lower+1. The upper bound alone is
// clamped into the string's length (original_source/eval.c:142); every
// other out-of-range case — lower<0, upper<0, upper<lower, lower>length,
// upper>length, or a single-char slice starting at/past length — is
// rejected rather than silently clamped (eval.c:141-146).
func (i *Interpreter) evalSlice(se *ast.SliceExpr) (any, lexer.TokenType, error) {
	base, err := i.sliceBase(se.Arg)
	if err != nil {
		return nil, 0, err
	}
	runes := []rune(base)
	n := len(runes)

	beg, err := i.sliceBound(se.Beg, se.BegType, 0)
	if err != nil {
		return nil, 0, err
	}
	end, err := i.sliceBound(se.End, se.EndType, n)
	if err != nil {
		return nil, 0, err
	}
	if se.SingleChar {
		end = beg + 1
	}
	if end >= n {
		end = n
	}

	if beg < 0 || end < 0 || end < beg || beg > n || end > n || (se.SingleChar && beg >= n) {
		return nil, 0, i.errorf(i.currentLine, "invalid slice bounds; beg -> [%d] & end -> [%d]", beg, end)
	}

	return string(runes[beg:end]), lexer.String, nil
}

func (i *Interpreter) sliceBase(arg lexer.Token) (string, error) {
	if arg.Type == lexer.String {
		return arg.Str, nil
	}
	e, ok := i.sym.GetSymEntry(arg.Name)
	if !ok {
		return "", i.errorf(i.currentLine, "undeclared symbol: %s", arg.Name)
	}
	if e.Cell.VType != lexer.String {
		return "", i.errorf(i.currentLine, "%s is not a string, cannot slice", arg.Name)
	}
	return e.Cell.Val.(string), nil
}

// sliceBound resolves a bound operand, falling back to dflt when it was
// omitted (BegType/EndType == lexer.None from the parser). A negative
// result is returned as-is, not wrapped relative to the string's length —
// evalSlice's bounds check rejects it.
func (i *Interpreter) sliceBound(val any, vtype lexer.TokenType, dflt int) (int, error) {
	if vtype == lexer.None {
		return dflt, nil
	}
	rv, rt, err := i.resolve(val, vtype)
	if err != nil {
		return 0, err
	}
	if rt != lexer.Numeric {
		return 0, i.errorf(i.currentLine, "slice bound must be numeric")
	}
	return int(rv.(float64)), nil
}
