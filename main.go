package main

import (
	"os"

	"github.com/abhisek/fracmole/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
