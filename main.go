package main

import (
	"os"

	"github.com/szuwgh/edgarsent/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
