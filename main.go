package main

import (
	"os"

	"github.com/jobmatcher/matchctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
