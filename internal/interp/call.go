package interp

import (
	"github.com/PawanKartikS/Cherry/internal/lexer"
	"github.com/PawanKartikS/Cherry/internal/symtab"
)

// evalFunc dispatches name as either a built-in or a user function. line is
// the call site, used for error reporting when the arguments themselves
// don't carry better position information.
func (i *Interpreter) evalFunc(name string, args []lexer.Token, line int) (any, lexer.TokenType, error) {
	if fn, ok := builtins[name]; ok {
		return fn(i, args, line)
	}
	return i.evalUserFunc(name, args, line)
}

// evalUserFunc binds args into a fresh frame, evaluates the function body,
// drains its deferred calls, and returns the pushed return value (or None
// if the function fell off the end without returning).
//
// Argument binding must happen before PushFrame: resolveArgToken looks
// names up in the *caller's* current frame, which PushFrame would
// otherwise shadow.
func (i *Interpreter) evalUserFunc(name string, args []lexer.Token, line int) (any, lexer.TokenType, error) {
	sig, ok := i.sym.GetFuncSig(name)
	if !ok {
		return nil, 0, i.errorf(line, "call to undeclared function: %s", name)
	}
	if len(args) != len(sig.Params) {
		return nil, 0, i.errorf(line, "%s expects %d argument(s), got %d", name, len(sig.Params), len(args))
	}

	type binding struct {
		param   string
		val     any
		vtype   lexer.TokenType
		alias   bool
		aliased *symtab.Cell
	}
	bindings := make([]binding, len(args))
	for idx, argTok := range args {
		val, vtype, cell, err := i.resolveArgToken(argTok)
		if err != nil {
			return nil, 0, err
		}
		b := binding{param: sig.Params[idx].Name, val: val, vtype: vtype}
		if argTok.Type == lexer.Identifier {
			b.alias, b.aliased = true, cell
		}
		bindings[idx] = b
	}

	i.sym.PushFrame()
	if err := i.sym.InitGlobals(); err != nil {
		i.sym.PopFrame()
		return nil, 0, i.wrap(line, err)
	}
	for _, b := range bindings {
		var err error
		if b.alias {
			err = i.sym.RegisterAlias(b.param, b.aliased, false)
		} else {
			err = i.sym.RegisterSym(b.param, b.val, b.vtype, false)
		}
		if err != nil {
			i.sym.PopFrame()
			return nil, 0, i.wrap(line, err)
		}
	}

	body := sig.Node.Left
	_, err := i.evalBody(body)
	i.drainDefers()
	if err != nil {
		i.sym.PopFrame()
		return nil, 0, err
	}

	i.sym.PopFrame()
	if i.exited {
		return nil, lexer.None, nil
	}

	if r, ok := i.sym.PopReturn(); ok {
		return r.Val, r.ValType, nil
	}
	return nil, lexer.None, nil
}

// drainDefers runs the current frame's deferred calls in LIFO order
// (spec.md §4.5), each swallowing its own return value: a deferred call's
// result has nowhere to go.
func (i *Interpreter) drainDefers() {
	frame := i.sym.CurrentFrame()
	if frame == nil {
		return
	}
	stack := frame.DeferStack
	for idx := len(stack) - 1; idx >= 0; idx-- {
		call := stack[idx]
		if _, _, err := i.evalFunc(call.Name, call.Args, i.currentLine); err != nil {
			i.warn(i.currentLine, "deferred call to %s failed: %v", call.Name, err)
		}
		if i.exited {
			return
		}
	}
}
