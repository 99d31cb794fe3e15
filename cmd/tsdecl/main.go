// Package main provides the tsdecl command: it compiles declaration records
// into a type graph and prints, checks, catalogs or inspects them.
package main

import (
	"fmt"
	"os"
)

// version can be set at build time using: -ldflags "-X main.version=1.2.3"
var version = "0.1.0"

func main() {
	app := NewApp(os.Stdout, os.Stderr)
	if err := app.RootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
