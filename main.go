package main

import (
	"os"

	"github.com/bjornpagen/qtiforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
