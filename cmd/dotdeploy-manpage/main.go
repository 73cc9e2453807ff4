package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dotdeploy/cmd/dotdeploy"
	"github.com/arthur-debert/dotdeploy/internal/version"
)

func main() {
	rootCmd := dotdeploy.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "DOTDEPLOY",
		Section: "1",
		Source:  "dotdeploy " + version.Version,
		Manual:  "dotdeploy manual",
	}

	// One page per command when a directory is given, otherwise the root
	// page on stdout
	if len(os.Args) > 1 {
		if err := doc.GenManTree(rootCmd, header, os.Args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating man pages: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
