// Command colflow generates SQLite adapters for tagged Go structs.
//
// Usage:
//
//	colflow generate ./models --target ./db
//	colflow ddl ./models --check
//	colflow inspect ./models --format yaml
//	colflow watch ./models --target ./db
//
// Settings are read from .colflow.yaml in the working directory (or the
// file given by --config), COLFLOW_* environment variables and flags, in
// increasing order of precedence.
package main

import (
	"fmt"
	"os"
)

// Exit codes.
const (
	exitSuccess = 0
	exitError   = 1
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitError)
	}
	os.Exit(exitSuccess)
}
