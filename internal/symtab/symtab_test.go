package symtab

import (
	"testing"

	"github.com/PawanKartikS/Cherry/internal/arena"
	"github.com/PawanKartikS/Cherry/internal/ast"
	"github.com/PawanKartikS/Cherry/internal/lexer"
)

func newTestSymTab() *SymTab {
	return New(arena.New())
}

func TestRegisterAndGetSymEntry(t *testing.T) {
	s := newTestSymTab()
	s.PushFrame()

	if err := s.RegisterSym("x", 42.0, lexer.Numeric, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e, ok := s.GetSymEntry("x")
	if !ok {
		t.Fatalf("expected entry for x")
	}
	if e.Cell.Val.(float64) != 42.0 {
		t.Fatalf("want 42, got %v", e.Cell.Val)
	}
	if e.Cell.Handle == 0 {
		t.Fatalf("expected a non-zero arena handle for a fresh binding")
	}
}

func TestRegisterConstCannotBeRebound(t *testing.T) {
	s := newTestSymTab()
	s.PushFrame()

	if err := s.RegisterSym("x", 1.0, lexer.Numeric, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.RegisterSym("x", 2.0, lexer.Numeric, false); err == nil {
		t.Fatalf("expected error re-registering const")
	}
}

func TestRegisterNonConstUpdatesInPlace(t *testing.T) {
	s := newTestSymTab()
	s.PushFrame()

	if err := s.RegisterSym("x", 1.0, lexer.Numeric, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.RegisterSym("x", 2.0, lexer.Numeric, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e, _ := s.GetSymEntry("x")
	if e.Cell.Val.(float64) != 2.0 {
		t.Fatalf("want 2, got %v", e.Cell.Val)
	}
}

func TestReservedNameCannotBeRegistered(t *testing.T) {
	s := newTestSymTab()
	s.PushFrame()

	if err := s.RegisterSym("print", 1.0, lexer.Numeric, false); err == nil {
		t.Fatalf("expected error registering reserved name")
	}
}

func TestScopeCleanupRetiresDeeperEntries(t *testing.T) {
	s := newTestSymTab()
	s.PushFrame()

	if err := s.RegisterSym("outer", 1.0, lexer.Numeric, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Depth = 1
	if err := s.RegisterSym("inner", 2.0, lexer.Numeric, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Depth = 0
	s.ScopeCleanup()

	if _, ok := s.GetSymEntry("inner"); ok {
		t.Fatalf("expected inner to be retired after scope cleanup")
	}
	if _, ok := s.GetSymEntry("outer"); !ok {
		t.Fatalf("expected outer to survive scope cleanup")
	}
}

func TestFuncRedeclarationFails(t *testing.T) {
	s := newTestSymTab()
	if err := s.RegisterFunc("add", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.RegisterFunc("add", nil, nil); err == nil {
		t.Fatalf("expected error on redeclaration")
	}
}

func TestReturnStackLIFO(t *testing.T) {
	s := newTestSymTab()
	first := &ast.Return{Val: 1.0, ValType: lexer.Numeric}
	second := &ast.Return{Val: 2.0, ValType: lexer.Numeric}
	s.PushReturn(first)
	s.PushReturn(second)

	if r, ok := s.PopReturn(); !ok || r != second {
		t.Fatalf("expected the most recently pushed return value first")
	}
	if r, ok := s.PopReturn(); !ok || r != first {
		t.Fatalf("expected the earlier return value second")
	}
	if _, ok := s.PopReturn(); ok {
		t.Fatalf("expected return stack to be empty")
	}
}

func TestRegisterAliasSharesCell(t *testing.T) {
	s := newTestSymTab()
	s.PushFrame()
	if err := s.RegisterSym("x", 1.0, lexer.Numeric, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	caller, _ := s.GetSymEntry("x")

	s.PushFrame()
	if err := s.RegisterAlias("y", caller.Cell, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	callee, _ := s.GetSymEntry("y")

	callee.Cell.Val = 2.0
	if caller.Cell.Val.(float64) != 2.0 {
		t.Fatalf("expected mutation through the alias to be visible on the caller's entry")
	}
}

func TestRegisterAliasRejectsDuplicateName(t *testing.T) {
	s := newTestSymTab()
	s.PushFrame()
	if err := s.RegisterSym("x", 1.0, lexer.Numeric, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry, _ := s.GetSymEntry("x")
	if err := s.RegisterAlias("x", entry.Cell, false); err == nil {
		t.Fatalf("expected error registering a duplicate alias name")
	}
}
