package main

import (
	"os"

	"github.com/arthur-debert/fuxi/cmd/fuxi"
)

func main() {
	rootCmd := fuxi.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fuxi.ReportError(rootCmd, err)
		os.Exit(1)
	}
}
