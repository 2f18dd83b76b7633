// Package ast defines the Cherry abstract syntax tree: one Node per source
// line, assembled by the parser's statement dispatch and the AST builder's
// block-stack state machine (spec.md §3-§4.4).
package ast

import "github.com/PawanKartikS/Cherry/internal/lexer"

// Kind identifies which statement shape a Node represents, and therefore
// which concrete payload type Node.Payload holds. The set matches spec.md
// §3's statement-kind table exactly.
type Kind int

const (
	Conditional Kind = iota // if — payload *Cond
	VarDecl                 // var/const — payload *Decl
	FuncDecl                // def — payload *Call
	FuncCall                // name(...) — payload *Call
	DeferCall                // defer name(...) — payload *Call
	ForLoop                  // for — payload *Cond
	Read                     // read — payload *Read
	Print                    // print — payload *Print
	SliceStmt                // indexer used as a typed operand — payload *SliceExpr
	PostDec                  // x-- — payload *Unary
	PostInc                  // x++ — payload *Unary
	Return                   // return — payload *Return
	NoOp                     // else — no payload, toggles the builder's active side
	CloseBlock                // end — no payload, pops the builder's block stack
)

// Node is one statement in the Cherry AST. Block-introducing kinds
// (FuncDecl, Conditional, ForLoop) accumulate children in Left (the main
// body / if-true branch / for body / function body) and Right (the else
// branch) as the AST builder splices in subsequent lines.
type Node struct {
	Keyword string
	Kind    Kind
	Payload any
	Line    int

	Left  []*Node
	Right []*Node
}

// Cond is the payload for Conditional and ForLoop nodes: "op lhs rhs"
// where LHSType/RHSType say how to interpret LHS/RHS at eval time.
type Cond struct {
	Op      string
	LHS     any
	LHSType lexer.TokenType
	RHS     any
	RHSType lexer.TokenType
}

// Decl is the payload for VarDecl nodes.
type Decl struct {
	Name    string
	RHS     any
	RHSType lexer.TokenType
	IsConst bool
}

// Call is the payload for FuncDecl, FuncCall, and DeferCall nodes.
type Call struct {
	Name string
	Args []lexer.Token
}

// SliceExpr is the payload for a slice expression used as an operand
// anywhere a typed value is expected (a ValType of lexer.Indx points here).
type SliceExpr struct {
	Arg        lexer.Token
	Beg        any
	BegType    lexer.TokenType
	End        any
	EndType    lexer.TokenType
	SingleChar bool
}

// Print is the payload for Print nodes.
type Print struct {
	Arg     any
	ArgType lexer.TokenType
}

// Read is the payload for Read nodes.
type Read struct {
	Target string
}

// Return is the payload for Return nodes. Val is nil for a bare `return`.
type Return struct {
	Val     any
	ValType lexer.TokenType
}

// Unary is the payload for PostInc/PostDec nodes.
type Unary struct {
	Name string
}
