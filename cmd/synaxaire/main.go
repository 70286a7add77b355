// Command synaxaire resolves and renders Coptic monthly programs from the
// command line.
package main

import (
	"fmt"
	"os"

	"github.com/zapponejosh/synaxaire-program/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
