package interp

import (
	"fmt"
	"strings"

	"github.com/PawanKartikS/Cherry/internal/lexer"
)

// builtinFunc is the shape every entry in the built-in dispatch table
// shares with a user function call (spec.md §4.7): args are the raw
// call-argument tokens, resolved individually so each builtin can enforce
// its own arity and type constraints before doing anything.
type builtinFunc func(i *Interpreter, args []lexer.Token, line int) (any, lexer.TokenType, error)

// builtins is the name → handler table. Names are reserved keywords
// (lexer.IsReserved), so a user function can never shadow one.
var builtins = map[string]builtinFunc{
	"cmp":  builtinCmp,
	"len":  builtinLen,
	"idx":  builtinIdx,
	"put":  builtinPut,
	"rev":  builtinRev,
	"exit": builtinExit,
	"gc":   builtinGc,
	"type": builtinType,
}

func (i *Interpreter) resolveArgs(args []lexer.Token, line int) ([]any, []lexer.TokenType, error) {
	vals := make([]any, len(args))
	types := make([]lexer.TokenType, len(args))
	for idx, tok := range args {
		val, vtype, _, err := i.resolveArgToken(tok)
		if err != nil {
			return nil, nil, err
		}
		vals[idx] = val
		types[idx] = vtype
	}
	return vals, types, nil
}

func builtinCmp(i *Interpreter, args []lexer.Token, line int) (any, lexer.TokenType, error) {
	vals, types, err := i.resolveArgs(args, line)
	if err != nil {
		return nil, 0, err
	}
	if len(vals) != 2 || types[0] != lexer.String || types[1] != lexer.String {
		return nil, 0, i.errorf(line, "cmp expects 2 string arguments")
	}
	return float64(strings.Compare(vals[0].(string), vals[1].(string))), lexer.Numeric, nil
}

func builtinLen(i *Interpreter, args []lexer.Token, line int) (any, lexer.TokenType, error) {
	vals, types, err := i.resolveArgs(args, line)
	if err != nil {
		return nil, 0, err
	}
	if len(vals) != 1 || types[0] != lexer.String {
		return nil, 0, i.errorf(line, "len expects 1 string argument")
	}
	return float64(len([]rune(vals[0].(string)))), lexer.Numeric, nil
}

func builtinIdx(i *Interpreter, args []lexer.Token, line int) (any, lexer.TokenType, error) {
	vals, types, err := i.resolveArgs(args, line)
	if err != nil {
		return nil, 0, err
	}
	if len(vals) != 2 || types[0] != lexer.String || types[1] != lexer.String {
		return nil, 0, i.errorf(line, "idx expects 2 string arguments")
	}
	haystack, needle := []rune(vals[0].(string)), vals[1].(string)
	byteIdx := strings.Index(string(haystack), needle)
	if byteIdx < 0 {
		return float64(-1), lexer.Numeric, nil
	}
	return float64(len([]rune(string(haystack)[:byteIdx]))), lexer.Numeric, nil
}

func builtinPut(i *Interpreter, args []lexer.Token, line int) (any, lexer.TokenType, error) {
	vals, types, err := i.resolveArgs(args, line)
	if err != nil {
		return nil, 0, err
	}
	parts := make([]string, len(vals))
	for idx := range vals {
		switch types[idx] {
		case lexer.Numeric:
			parts[idx] = formatNumeric(vals[idx].(float64))
		case lexer.String:
			parts[idx] = vals[idx].(string)
		case lexer.None:
			parts[idx] = "none"
		default:
			return nil, 0, i.errorf(line, "put cannot format a value of type %s", types[idx])
		}
	}
	fmt.Fprintln(i.out, strings.Join(parts, " "))
	return nil, lexer.None, nil
}

func builtinRev(i *Interpreter, args []lexer.Token, line int) (any, lexer.TokenType, error) {
	vals, types, err := i.resolveArgs(args, line)
	if err != nil {
		return nil, 0, err
	}
	if len(vals) != 1 || types[0] != lexer.String {
		return nil, 0, i.errorf(line, "rev expects 1 string argument")
	}
	runes := []rune(vals[0].(string))
	for l, r := 0, len(runes)-1; l < r; l, r = l+1, r-1 {
		runes[l], runes[r] = runes[r], runes[l]
	}
	return string(runes), lexer.String, nil
}

func builtinExit(i *Interpreter, args []lexer.Token, line int) (any, lexer.TokenType, error) {
	vals, types, err := i.resolveArgs(args, line)
	if err != nil {
		return nil, 0, err
	}
	if len(vals) != 1 || types[0] != lexer.Numeric {
		return nil, 0, i.errorf(line, "exit expects 1 numeric argument")
	}
	i.exitCode = int(vals[0].(float64))
	i.exited = true
	i.arena.Cleanup()
	return nil, lexer.None, nil
}

// builtinGc frees the argument's backing storage eagerly. Only an
// identifier argument has a Cell/Handle to free; a literal has nothing
// registered in the arena, so gc on one is a harmless false.
func builtinGc(i *Interpreter, args []lexer.Token, line int) (any, lexer.TokenType, error) {
	if len(args) != 1 {
		return nil, 0, i.errorf(line, "gc expects 1 argument")
	}
	_, _, cell, err := i.resolveArgToken(args[0])
	if err != nil {
		return nil, 0, err
	}
	if cell == nil {
		return float64(0), lexer.Numeric, nil
	}
	freed := i.arena.Free(cell.Handle)
	if freed {
		return float64(1), lexer.Numeric, nil
	}
	return float64(0), lexer.Numeric, nil
}

func builtinType(i *Interpreter, args []lexer.Token, line int) (any, lexer.TokenType, error) {
	if len(args) != 1 {
		return nil, 0, i.errorf(line, "type expects 1 argument")
	}
	_, vtype, _, err := i.resolveArgToken(args[0])
	if err != nil {
		return nil, 0, err
	}
	return float64(vtype), lexer.Numeric, nil
}
