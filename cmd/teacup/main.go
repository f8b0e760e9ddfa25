package main

import (
	"os"

	"github.com/msto63/teacup/cmd/teacup/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
