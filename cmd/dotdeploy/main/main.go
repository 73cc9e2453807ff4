package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/arthur-debert/dotdeploy/cmd/dotdeploy"
	"github.com/arthur-debert/dotdeploy/pkg/style"
)

func main() {
	rootCmd := dotdeploy.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		var exitErr *dotdeploy.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}

		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
