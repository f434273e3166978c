package main

import (
	"context"
	"fmt"
	"os"

	_ "net/http/pprof" //nolint:gosec // G108: Profiling endpoint is automatically exposed on /debug/pprof

	"github.com/zigcc/zbuild/internal/cmd"
	_ "github.com/zigcc/zbuild/internal/extension/demo" // Register the demo extension module.
)

func main() {
	root, err := cmd.NewRootCommand()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
