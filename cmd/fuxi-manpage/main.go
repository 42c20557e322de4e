package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/fuxi/cmd/fuxi"
	"github.com/arthur-debert/fuxi/internal/version"
)

func main() {
	rootCmd := fuxi.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "FUXI",
		Section: "1",
		Source:  "fuxi " + version.Version,
		Manual:  "fuxi manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
