package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PawanKartikS/Cherry/internal/parser"
	"github.com/gkampitakis/go-snaps/snaps"
)

// run parses and evaluates source, returning everything it wrote to
// stdout and any failure.
func run(t *testing.T, source string) (string, error) {
	t.Helper()

	program, err := parser.Parse(source)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	it := New(&out, strings.NewReader(""))
	runErr := it.Run(program)
	return out.String(), runErr
}

// The six end-to-end scenarios exercise the full lex → parse → build →
// eval pipeline the way testdata fixtures do in the teacher's suite, but
// small enough to inline directly as Go string literals.

func TestConstantFoldedArithmeticPrint(t *testing.T) {
	out, err := run(t, "def main()\nvar x = 2 + 3 * 4\nprint x\nend\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snaps.MatchSnapshot(t, out)
}

func TestForLoopCounting(t *testing.T) {
	src := "def main()\nvar i : int\nfor i < 3\nprint i\ni++\nend\nend\n"
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snaps.MatchSnapshot(t, out)
}

func TestFunctionCallAdd(t *testing.T) {
	src := "def add(a, b)\nreturn a + b\nend\ndef main()\nprint add(2, 3)\nend\n"
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snaps.MatchSnapshot(t, out)
}

func TestStringSlicing(t *testing.T) {
	src := "def main()\nvar s = \"hello\"\nprint s[1:4]\nend\n"
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snaps.MatchSnapshot(t, out)
}

func TestDeferOrdering(t *testing.T) {
	src := "def main()\ndefer put(\"bye\")\nput(\"hi\")\nend\n"
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snaps.MatchSnapshot(t, out)
}

func TestExitStopsExecution(t *testing.T) {
	src := "def main()\nexit(7)\nprint \"unreachable\"\nend\n"
	program, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	var out bytes.Buffer
	it := New(&out, strings.NewReader(""))
	if err := it.Run(program); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.ExitCode() != 7 {
		t.Fatalf("want exit code 7, got %d", it.ExitCode())
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output after exit, got %q", out.String())
	}
}

func TestAliasedArgumentMutationIsVisibleToCaller(t *testing.T) {
	src := "def bump(n)\nn++\nend\ndef main()\nvar x = 1\nbump(x)\nprint x\nend\n"
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snaps.MatchSnapshot(t, out)
}

func TestUndeclaredSymbolIsAnError(t *testing.T) {
	_, err := run(t, "def main()\nprint missing\nend\n")
	if err == nil {
		t.Fatalf("expected an error referencing an undeclared symbol")
	}
}

// A variable declared inside an if body is scope-cleaned on exit, the
// same as one declared inside a for body.
func TestIfBodyScopeIsCleanedOnExit(t *testing.T) {
	src := "def main()\nif 1 == 1\nvar y = 5\nend\nprint y\nend\n"
	_, err := run(t, src)
	if err == nil {
		t.Fatalf("expected an error: y should not be visible after the if body ends")
	}
}

func TestSliceRejectsNegativeLowerBound(t *testing.T) {
	_, err := run(t, "def main()\nvar s = \"hello\"\nprint s[-1:3]\nend\n")
	if err == nil {
		t.Fatalf("expected an error for a negative lower slice bound")
	}
}

func TestSliceRejectsLowerBoundPastLength(t *testing.T) {
	_, err := run(t, "def main()\nvar s = \"hi\"\nprint s[5:6]\nend\n")
	if err == nil {
		t.Fatalf("expected an error for a lower slice bound past the string's length")
	}
}

func TestSliceClampsUpperBoundToLength(t *testing.T) {
	src := "def main()\nvar s = \"hi\"\nprint s[0:50]\nend\n"
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snaps.MatchSnapshot(t, out)
}

func TestCompareNoneAgainstNumericIsAlwaysEqual(t *testing.T) {
	src := "def main()\nvar x = 1\nif x == none\nprint \"eq\"\nelse\nprint \"neq\"\nend\nend\n"
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snaps.MatchSnapshot(t, out)
}

func TestForConditionWithOnlyLiteralOperandsIsAnInfiniteLoopError(t *testing.T) {
	_, err := run(t, "def main()\nfor 1 < 2\nprint 1\nend\nend\n")
	if err == nil {
		t.Fatalf("expected an infinite-loop error for a for condition with no identifier operand")
	}
}
