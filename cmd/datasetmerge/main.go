package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	a := &app{fs: afero.NewOsFs(), out: os.Stdout}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	return cmd.Execute()
}
