package interp

import (
	"github.com/PawanKartikS/Cherry/internal/ast"
	"github.com/PawanKartikS/Cherry/internal/lexer"
)

// evalConditional evaluates an if statement: the true branch is Left, the
// (possibly absent) else branch is Right. Lexical depth is incremented for
// the duration of whichever branch runs and scope-cleaned on exit, exactly
// as for a for-loop's body (spec.md §4.5/§4.6 name `if`/`for` together).
func (i *Interpreter) evalConditional(node *ast.Node) (ctrl, error) {
	cond := node.Payload.(*ast.Cond)

	if isStaticOperand(cond.LHSType) && isStaticOperand(cond.RHSType) {
		i.warn(node.Line, "condition has no identifier operand and can never change")
	}

	i.sym.Depth++
	defer func() {
		i.sym.Depth--
		i.sym.ScopeCleanup()
	}()

	ok, err := i.evalCompare(cond)
	if err != nil {
		return ctrlOk, err
	}
	if ok {
		return i.evalBody(node.Left)
	}
	return i.evalBody(node.Right)
}

// evalForLoop re-evaluates the condition before each iteration. If both
// operands are literal (not identifiers, not a call/slice result that
// could change), the condition can never flip: spec.md §9's "loop
// condition invariant" diagnostic, always emitted as a warning, escalates
// to a hard error only once the condition is also observed true (the
// eval-once-true, never-again-false case — an actual infinite loop, not
// just a suspicious one).
func (i *Interpreter) evalForLoop(node *ast.Node) (ctrl, error) {
	cond := node.Payload.(*ast.Cond)

	invariant := isStaticOperand(cond.LHSType) && isStaticOperand(cond.RHSType)
	if invariant {
		i.warn(node.Line, "for condition has no identifier operand and can never change")
	}

	i.sym.Depth++
	defer func() {
		i.sym.Depth--
		i.sym.ScopeCleanup()
	}()

	for {
		ok, err := i.evalCompare(cond)
		if err != nil {
			return ctrlOk, err
		}
		if invariant && ok {
			return ctrlOk, i.errorf(node.Line, "for loop results in infinite loop")
		}
		if !ok {
			return ctrlOk, nil
		}

		c, err := i.evalBody(node.Left)
		if err != nil {
			return ctrlOk, err
		}
		if c == ctrlReturn {
			return ctrlReturn, nil
		}
		if i.exited {
			return ctrlOk, nil
		}
	}
}

// isStaticOperand reports whether a condition operand type is a literal
// that can never change between loop iterations. Identifier is
// deliberately excluded: an ordinary counted loop's operand changes
// through its backing Cell even though its static *type* never does.
func isStaticOperand(t lexer.TokenType) bool {
	switch t {
	case lexer.Numeric, lexer.String, lexer.None:
		return true
	default:
		return false
	}
}

// evalCompare resolves both sides of a Cond and applies its operator.
// Comparison requires both sides to resolve to the same underlying type,
// unless either side is `none` — a `none` operand compares equal against
// anything, regardless of the operator, matching original_source/eval.c's
// `compare()`: it treats a null buffer on either side as an unconditional
// match rather than deferring to the requested op (spec.md §4.6, open
// question (c)).
func (i *Interpreter) evalCompare(cond *ast.Cond) (bool, error) {
	lv, lt, err := i.resolve(cond.LHS, cond.LHSType)
	if err != nil {
		return false, err
	}
	rv, rt, err := i.resolve(cond.RHS, cond.RHSType)
	if err != nil {
		return false, err
	}

	if lt != rt && lt != lexer.None && rt != lexer.None {
		return false, i.errorf(i.currentLine, "cannot compare %s with %s", lt, rt)
	}
	if lt == lexer.None || rt == lexer.None {
		return true, nil
	}

	switch lt {
	case lexer.Numeric:
		return compareNumeric(cond.Op, lv.(float64), rv.(float64))
	case lexer.String:
		return compareString(cond.Op, lv.(string), rv.(string))
	default:
		return false, i.errorf(i.currentLine, "%s is not comparable", lt)
	}
}

func compareNumeric(op string, l, r float64) (bool, error) {
	switch op {
	case "==":
		return l == r, nil
	case "!=":
		return l != r, nil
	case "<":
		return l < r, nil
	case ">":
		return l > r, nil
	case "<=":
		return l <= r, nil
	case ">=":
		return l >= r, nil
	default:
		return false, &interpError{"unknown comparison operator: " + op}
	}
}

func compareString(op string, l, r string) (bool, error) {
	switch op {
	case "==":
		return l == r, nil
	case "!=":
		return l != r, nil
	case "<":
		return l < r, nil
	case ">":
		return l > r, nil
	case "<=":
		return l <= r, nil
	case ">=":
		return l >= r, nil
	default:
		return false, &interpError{"unknown comparison operator: " + op}
	}
}

type interpError struct{ msg string }

func (e *interpError) Error() string { return e.msg }
