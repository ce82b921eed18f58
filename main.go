package main

import (
	"os"

	"meeting-notes-backend/cmd/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
