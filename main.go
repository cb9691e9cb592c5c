package main

import (
	"os"

	"github.com/mcrawford/wildtrails/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
