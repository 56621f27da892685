package main

import (
	"os"

	"github.com/speakup-edu/speakup/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
