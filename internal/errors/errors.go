// Package errors formats Cherry lexer/parser/AST/evaluator failures with
// source context — a line:column header, the offending source line, and a
// caret under the error — the way the teacher's internal/errors package
// formats DWScript compiler errors.
package errors

import (
	"fmt"
	"strings"
)

// SourceError is a single failure tied to a line (and, where known, a
// column) in the program being compiled or run.
type SourceError struct {
	Line    int
	Column  int
	Message string
}

// Error implements the error interface with a plain, single-line form.
func (e *SourceError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("line %d:%d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// New creates a SourceError with no column information.
func New(line int, format string, args ...any) *SourceError {
	return &SourceError{Line: line, Message: fmt.Sprintf(format, args...)}
}

// NewAt creates a SourceError with a column.
func NewAt(line, column int, format string, args ...any) *SourceError {
	return &SourceError{Line: line, Column: column, Message: fmt.Sprintf(format, args...)}
}

// Format renders e with a caret under the offending column, reading the
// source line out of lines (1-indexed by e.Line). If color is true, ANSI
// codes highlight the caret and message.
func (e *SourceError) Format(file string, lines []string, color bool) string {
	var sb strings.Builder

	if file != "" {
		fmt.Fprintf(&sb, "Error in %s:%d", file, e.Line)
	} else {
		fmt.Fprintf(&sb, "Error at line %d", e.Line)
	}
	if e.Column > 0 {
		fmt.Fprintf(&sb, ":%d", e.Column)
	}
	sb.WriteString("\n")

	if e.Line >= 1 && e.Line <= len(lines) {
		src := lines[e.Line-1]
		prefix := fmt.Sprintf("%4d | ", e.Line)
		sb.WriteString(prefix)
		sb.WriteString(src)
		sb.WriteString("\n")

		col := e.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", len(prefix)+col-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// FormatAll formats every error in errs, separated by blank lines.
func FormatAll(errs []*SourceError, file string, source string, color bool) string {
	lines := strings.Split(source, "\n")
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Format(file, lines, color))
	}
	return strings.Join(parts, "\n\n")
}
