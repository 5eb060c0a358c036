package main

import (
	"os"

	"github.com/msto63/mTW/cmd/mtw/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
