package main

import (
	"os"

	"github.com/frontendschool-official/interview-engine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
