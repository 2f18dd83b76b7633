// Command cherry is the Cherry language's command-line front end: it
// lexes, parses, and evaluates programs, and offers a line-buffered REPL.
package main

import (
	"fmt"
	"os"

	"github.com/PawanKartikS/Cherry/cmd/cherry/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cmd.ExitCode())
	}
}
