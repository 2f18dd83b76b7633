// Package symtab implements Cherry's symbol table: call frames, lexical
// depth tracking, the return-value stack, and per-frame deferred-call
// stacks (spec.md §3, §4.5).
package symtab

import (
	"fmt"

	"github.com/PawanKartikS/Cherry/internal/arena"
	"github.com/PawanKartikS/Cherry/internal/ast"
	"github.com/PawanKartikS/Cherry/internal/lexer"
)

// Cell is the actual storage behind a symbol: a value, its type tag, and
// the arena handle backing it. Identifier-argument binding shares a
// Cell between the caller's and callee's entries (spec.md §4.5's
// aliasing rule: "identifiers resolve to their current entry — shared
// value pointer"); every other binding gets a fresh Cell.
type Cell struct {
	Val    any
	VType  lexer.TokenType
	Handle arena.Handle
}

// Entry is one symbol-table binding. A name with an empty Name is treated
// as retired (scope-cleaned) and invisible to lookups; its Cell is kept
// around regardless, for the arena's bulk cleanup at exit.
type Entry struct {
	Name    string
	Cell    *Cell
	IsConst bool
	Depth   int
}

// Frame is one function call's activation record: its live entries and the
// stack of calls deferred until the frame completes.
type Frame struct {
	Entries    []*Entry
	DeferStack []*ast.Call
}

// FuncSig is a registered user function: its name, parameter names, and the
// AST node holding its body.
type FuncSig struct {
	Name   string
	Params []lexer.Token
	Node   *ast.Node
}

// SymTab is the interpreter's whole symbol table: the frame stack, the
// registered function signatures, the shared return-value stack, and the
// flat visible-scope list scope_cleanup walks on block exit.
type SymTab struct {
	Depth        int
	Frames       []*Frame
	FuncSigs     []*FuncSig
	ReturnStack  []*ast.Return
	VisibleScope []*Entry

	arena *arena.Arena
}

// New creates an empty symbol table backed by a.
func New(a *arena.Arena) *SymTab {
	return &SymTab{arena: a}
}

// PushFrame opens a new, empty call frame (e.g. on function entry).
func (s *SymTab) PushFrame() {
	s.Frames = append(s.Frames, &Frame{})
}

// PopFrame closes the topmost call frame.
func (s *SymTab) PopFrame() {
	if len(s.Frames) == 0 {
		return
	}
	s.Frames = s.Frames[:len(s.Frames)-1]
}

// CurrentFrame returns the topmost frame, or nil if no frame is open.
func (s *SymTab) CurrentFrame() *Frame {
	if len(s.Frames) == 0 {
		return nil
	}
	return s.Frames[len(s.Frames)-1]
}

// InitGlobals registers the three type-name pseudo-constants mapping
// "string", "numeric", and "identifier" to their TokenType tag values as
// numerics. spec.md §4.5/§4.6 calls for this to run on *every* call frame,
// not just main's — open question (b) in SPEC_FULL.md.
func (s *SymTab) InitGlobals() error {
	names := []struct {
		name string
		tag  lexer.TokenType
	}{
		{"string", lexer.String},
		{"numeric", lexer.Numeric},
		{"identifier", lexer.Identifier},
	}
	for _, n := range names {
		if err := s.RegisterSym(n.name, float64(n.tag), lexer.Numeric, true); err != nil {
			return err
		}
	}
	return nil
}

// GetFuncSig looks up a registered user function by name.
func (s *SymTab) GetFuncSig(name string) (*FuncSig, bool) {
	for _, sig := range s.FuncSigs {
		if sig.Name == name {
			return sig, true
		}
	}
	return nil, false
}

// RegisterFunc registers a new user function signature. Redeclaring a
// function, or naming it after a reserved keyword, is an error.
func (s *SymTab) RegisterFunc(name string, params []lexer.Token, node *ast.Node) error {
	if lexer.IsReserved(name) {
		return fmt.Errorf("function name is a reserved keyword: %s", name)
	}
	if _, ok := s.GetFuncSig(name); ok {
		return fmt.Errorf("function redeclaration: %s", name)
	}
	s.FuncSigs = append(s.FuncSigs, &FuncSig{Name: name, Params: params, Node: node})
	return nil
}

// GetSymEntry searches only the topmost frame's entries by name (spec.md's
// invariant: every identifier reference resolves against the topmost
// frame). Entries retired by ScopeCleanup have an empty Name and are
// skipped.
func (s *SymTab) GetSymEntry(name string) (*Entry, bool) {
	frame := s.CurrentFrame()
	if frame == nil {
		return nil, false
	}
	for _, e := range frame.Entries {
		if e.Name != "" && e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// RegisterSym registers a new symbol with a freshly allocated Cell, or
// rebinds an existing non-const one's Cell in place (so any alias sharing
// that Cell observes the update too — this is what "rebind in place"
// means for a symbol another frame's parameter is aliasing). Reserved
// keywords cannot be declared as symbols, and rebinding a const is an
// error.
func (s *SymTab) RegisterSym(name string, val any, vtype lexer.TokenType, isConst bool) error {
	if lexer.IsReserved(name) {
		return fmt.Errorf("symbol name is a reserved keyword: %s", name)
	}

	frame := s.CurrentFrame()
	if frame == nil {
		return fmt.Errorf("no active frame to register symbol: %s", name)
	}

	if e, ok := s.GetSymEntry(name); ok {
		if e.IsConst {
			return fmt.Errorf("symbol is const, cannot modify: %s", name)
		}
		e.Cell.Val = val
		e.Cell.VType = vtype
		return nil
	}

	handle := arena.Handle(0)
	if s.arena != nil {
		handle = s.arena.Alloc()
	}

	e := &Entry{
		Name:    name,
		Cell:    &Cell{Val: val, VType: vtype, Handle: handle},
		IsConst: isConst,
		Depth:   s.Depth,
	}
	s.VisibleScope = append(s.VisibleScope, e)
	frame.Entries = append(frame.Entries, e)
	return nil
}

// RegisterAlias binds name in the current frame to an existing Cell
// shared with some other entry (typically a caller's, when an identifier
// argument is passed to a function — spec.md §4.5's aliasing rule). No
// new Cell or arena handle is allocated; mutations through either entry
// are visible through the other.
func (s *SymTab) RegisterAlias(name string, cell *Cell, isConst bool) error {
	if lexer.IsReserved(name) {
		return fmt.Errorf("symbol name is a reserved keyword: %s", name)
	}

	frame := s.CurrentFrame()
	if frame == nil {
		return fmt.Errorf("no active frame to register symbol: %s", name)
	}
	if _, ok := s.GetSymEntry(name); ok {
		return fmt.Errorf("duplicate parameter name: %s", name)
	}

	e := &Entry{Name: name, Cell: cell, IsConst: isConst, Depth: s.Depth}
	s.VisibleScope = append(s.VisibleScope, e)
	frame.Entries = append(frame.Entries, e)
	return nil
}

// ScopeCleanup retires every visible-scope entry whose declaration depth is
// deeper than the current depth, by blanking its name so lookups miss it.
// Storage is preserved for bulk cleanup at program exit (spec.md §3).
func (s *SymTab) ScopeCleanup() {
	for len(s.VisibleScope) > 0 {
		last := s.VisibleScope[len(s.VisibleScope)-1]
		if s.Depth >= last.Depth {
			break
		}
		last.Name = ""
		s.VisibleScope = s.VisibleScope[:len(s.VisibleScope)-1]
	}
}

// PushReturn deposits a completed return's value on the shared return
// stack, for the calling context to consume.
func (s *SymTab) PushReturn(r *ast.Return) {
	s.ReturnStack = append(s.ReturnStack, r)
}

// PopReturn consumes the most recently pushed return value.
func (s *SymTab) PopReturn() (*ast.Return, bool) {
	if len(s.ReturnStack) == 0 {
		return nil, false
	}
	r := s.ReturnStack[len(s.ReturnStack)-1]
	s.ReturnStack = s.ReturnStack[:len(s.ReturnStack)-1]
	return r, true
}
