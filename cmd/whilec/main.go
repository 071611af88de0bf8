package main

import (
	"os"

	"whilec/cmd/whilec/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
