package parser

import (
	"testing"

	"github.com/PawanKartikS/Cherry/internal/ast"
	"github.com/PawanKartikS/Cherry/internal/lexer"
)

func mustLex(t *testing.T, line string) []lexer.Token {
	t.Helper()
	toks, err := lexer.Lex(line, 1)
	if err != nil {
		t.Fatalf("lex(%q): %v", line, err)
	}
	return toks
}

func TestCompileExprConstantFolding(t *testing.T) {
	toks := mustLex(t, "2+3*4")
	result, err := compileExpr(NewStream(toks))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Tree != nil {
		t.Fatalf("expected a folded constant, got a tree")
	}
	if result.Value.(float64) != 14 {
		t.Fatalf("want 14, got %v", result.Value)
	}
}

func TestCompileExprLeftAssociative(t *testing.T) {
	toks := mustLex(t, "10-3-2")
	result, err := compileExpr(NewStream(toks))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Value.(float64) != 5 {
		t.Fatalf("want 5, got %v", result.Value)
	}
}

func TestCompileExprParens(t *testing.T) {
	toks := mustLex(t, "(2+3)*4")
	result, err := compileExpr(NewStream(toks))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Value.(float64) != 20 {
		t.Fatalf("want 20, got %v", result.Value)
	}
}

func TestCompileExprLeadingUnaryMinus(t *testing.T) {
	toks := mustLex(t, "-5+2")
	result, err := compileExpr(NewStream(toks))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Value.(float64) != -3 {
		t.Fatalf("want -3, got %v", result.Value)
	}
}

func TestCompileExprWithIdentifierStaysTree(t *testing.T) {
	toks := mustLex(t, "x+1")
	result, err := compileExpr(NewStream(toks))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Tree == nil || result.Type != lexer.Exprtree {
		t.Fatalf("expected an expression tree for an identifier operand")
	}
}

func TestCompileExprStopsAtComparison(t *testing.T) {
	toks := mustLex(t, "x+1<5")
	s := NewStream(toks)
	before := s.Len()
	if _, err := compileExpr(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	consumed := before - s.Len()
	if consumed != 3 {
		t.Fatalf("want 3 tokens consumed (x + 1), got %d", consumed)
	}
	rest, _ := s.PeekFront()
	if !rest.Is("<") {
		t.Fatalf("expected < left unconsumed, got %q", rest.Text())
	}
}

func TestParseNextShortcutPreservesIdentifierType(t *testing.T) {
	toks := mustLex(t, "x")
	val, vtype, err := parseNext(NewStream(toks))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vtype != lexer.Identifier || val.(string) != "x" {
		t.Fatalf("want identifier x, got %v %v", val, vtype)
	}
}

func TestParseNextNoneKeyword(t *testing.T) {
	toks := mustLex(t, "none")
	val, vtype, err := parseNext(NewStream(toks))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vtype != lexer.None || val != nil {
		t.Fatalf("want none/nil, got %v %v", val, vtype)
	}
}

func TestParseDeclaration(t *testing.T) {
	node, err := ParseLine(mustLex(t, "var x = 5"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Kind != ast.VarDecl {
		t.Fatalf("want VarDecl, got %v", node.Kind)
	}
	decl := node.Payload.(*ast.Decl)
	if decl.Name != "x" || decl.IsConst || decl.RHS.(float64) != 5 {
		t.Fatalf("unexpected decl payload: %+v", decl)
	}
}

func TestParseConstDeclaration(t *testing.T) {
	node, err := ParseLine(mustLex(t, "const pi = 3"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !node.Payload.(*ast.Decl).IsConst {
		t.Fatalf("expected const declaration")
	}
}

func TestParseTypedDefaultDeclaration(t *testing.T) {
	cases := []struct {
		src      string
		wantType lexer.TokenType
		wantVal  any
	}{
		{"var i : int", lexer.Numeric, 0.0},
		{"var s : str", lexer.String, ""},
		{"var l : glist", lexer.GList, nil},
		{"var st : gstack", lexer.GStack, nil},
	}

	for _, c := range cases {
		node, err := ParseLine(mustLex(t, c.src), 1)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.src, err)
		}
		decl := node.Payload.(*ast.Decl)
		if decl.RHSType != c.wantType {
			t.Fatalf("%s: want type %v, got %v", c.src, c.wantType, decl.RHSType)
		}
		if c.wantVal != nil && decl.RHS != c.wantVal {
			t.Fatalf("%s: want value %v, got %v", c.src, c.wantVal, decl.RHS)
		}
	}
}

func TestParseTypedDefaultDeclarationRejectsUnknownType(t *testing.T) {
	if _, err := ParseLine(mustLex(t, "var x : frobnicate"), 1); err == nil {
		t.Fatalf("expected error for invalid typed-default type name")
	}
}

func TestParseFuncDecl(t *testing.T) {
	node, err := ParseLine(mustLex(t, "def add(a, b)"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Kind != ast.FuncDecl {
		t.Fatalf("want FuncDecl, got %v", node.Kind)
	}
	call := node.Payload.(*ast.Call)
	if call.Name != "add" || len(call.Args) != 2 {
		t.Fatalf("unexpected call payload: %+v", call)
	}
}

func TestParseFuncDeclRejectsNonIdentifierParam(t *testing.T) {
	if _, err := ParseLine(mustLex(t, "def add(1, b)"), 1); err == nil {
		t.Fatalf("expected error for non-identifier parameter")
	}
}

func TestParseFuncCallArgFold(t *testing.T) {
	node, err := ParseLine(mustLex(t, "add(-5, x)"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call := node.Payload.(*ast.Call)
	if call.Args[0].Type != lexer.Numeric || call.Args[0].Num != -5 {
		t.Fatalf("want folded -5, got %+v", call.Args[0])
	}
}

func TestParseIfCondition(t *testing.T) {
	node, err := ParseLine(mustLex(t, "if x < 5"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cond := node.Payload.(*ast.Cond)
	if cond.Op != "<" || cond.LHS.(string) != "x" || cond.RHS.(float64) != 5 {
		t.Fatalf("unexpected cond payload: %+v", cond)
	}
}

func TestParseForCondition(t *testing.T) {
	node, err := ParseLine(mustLex(t, "for i < 3"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Kind != ast.ForLoop {
		t.Fatalf("want ForLoop, got %v", node.Kind)
	}
}

func TestParsePrint(t *testing.T) {
	node, err := ParseLine(mustLex(t, `print "hi"`), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := node.Payload.(*ast.Print)
	if p.Arg.(string) != "hi" || p.ArgType != lexer.String {
		t.Fatalf("unexpected print payload: %+v", p)
	}
}

func TestParseReadAndReturn(t *testing.T) {
	readNode, err := ParseLine(mustLex(t, "read name"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if readNode.Payload.(*ast.Read).Target != "name" {
		t.Fatalf("unexpected read payload")
	}

	retNode, err := ParseLine(mustLex(t, "return x"), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ret := retNode.Payload.(*ast.Return)
	if ret.ValType != lexer.Identifier || ret.Val.(string) != "x" {
		t.Fatalf("unexpected return payload: %+v", ret)
	}

	bareRet, err := ParseLine(mustLex(t, "return"), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bareRet.Payload.(*ast.Return).ValType != lexer.None {
		t.Fatalf("expected bare return to have None value type")
	}
}

func TestParsePostIncDec(t *testing.T) {
	inc, err := ParseLine(mustLex(t, "x++"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inc.Kind != ast.PostInc {
		t.Fatalf("want PostInc, got %v", inc.Kind)
	}

	dec, err := ParseLine(mustLex(t, "x--"), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.Kind != ast.PostDec {
		t.Fatalf("want PostDec, got %v", dec.Kind)
	}
}

func TestParseSliceRange(t *testing.T) {
	node, err := ParseLine(mustLex(t, "var y = s[1:4]"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decl := node.Payload.(*ast.Decl)
	if decl.RHSType != lexer.Indx {
		t.Fatalf("want Indx, got %v", decl.RHSType)
	}
	sl := decl.RHS.(*ast.SliceExpr)
	if sl.SingleChar || sl.Beg.(float64) != 1 || sl.End.(float64) != 4 {
		t.Fatalf("unexpected slice payload: %+v", sl)
	}
}

func TestParseSliceSingleChar(t *testing.T) {
	node, err := ParseLine(mustLex(t, "var y = s[0]"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sl := node.Payload.(*ast.Decl).RHS.(*ast.SliceExpr)
	if !sl.SingleChar {
		t.Fatalf("expected single-char slice")
	}
}

func TestParseDeferCall(t *testing.T) {
	node, err := ParseLine(mustLex(t, "defer put(x)"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Kind != ast.DeferCall {
		t.Fatalf("want DeferCall, got %v", node.Kind)
	}
}

func TestBuilderNestsIfElseEnd(t *testing.T) {
	program, err := Parse("def main()\nif x < 5\nprint x\nelse\nprint 0\nend\nend\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(program) != 1 || program[0].Kind != ast.FuncDecl {
		t.Fatalf("expected a single top-level def node, got %+v", program)
	}
	ifNode := program[0].Left[0]
	if ifNode.Kind != ast.Conditional {
		t.Fatalf("expected an if node inside main, got %v", ifNode.Kind)
	}
	if len(ifNode.Left) != 1 || ifNode.Left[0].Kind != ast.Print {
		t.Fatalf("expected one print in the if branch")
	}
	if len(ifNode.Right) != 1 || ifNode.Right[0].Kind != ast.Print {
		t.Fatalf("expected one print in the else branch")
	}
}

func TestBuilderNestsFunctionBody(t *testing.T) {
	program, err := Parse("def add(a, b)\nreturn a\nend\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(program) != 1 || program[0].Kind != ast.FuncDecl {
		t.Fatalf("expected a single top-level def node")
	}
	if len(program[0].Left) != 1 || program[0].Left[0].Kind != ast.Return {
		t.Fatalf("expected a return inside the function body")
	}
}

func TestBuilderRejectsUnterminatedBlock(t *testing.T) {
	if _, err := Parse("def main()\nif x < 5\nprint x\nend\n"); err == nil {
		t.Fatalf("expected error for unterminated if block")
	}
}

func TestBuilderRejectsElseWithoutIf(t *testing.T) {
	if _, err := Parse("def main()\nelse\nend\n"); err == nil {
		t.Fatalf("expected error for else without if")
	}
}

func TestBuilderRejectsEndWithoutBlock(t *testing.T) {
	if _, err := Parse("end\n"); err == nil {
		t.Fatalf("expected error for end without block")
	}
}

func TestBuilderRejectsNestedFuncDecl(t *testing.T) {
	if _, err := Parse("def outer()\ndef inner()\nend\nend\n"); err == nil {
		t.Fatalf("expected error for nested function declaration")
	}
}

func TestBuilderRejectsDanglingTopLevelStatement(t *testing.T) {
	if _, err := Parse("print 1\n"); err == nil {
		t.Fatalf("expected error for a statement outside any function")
	}
}

func TestParseSkipsBlankAndCommentLines(t *testing.T) {
	program, err := Parse("\n# a comment\ndef main()\nprint 1\nend\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(program) != 1 {
		t.Fatalf("want 1 top-level node, got %d", len(program))
	}
}
