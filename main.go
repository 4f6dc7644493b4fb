package main

import (
	"os"

	"github.com/dohalabs/bankgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
