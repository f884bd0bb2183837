package main

import (
	"os"

	"github.com/juanbolano/mini-trello/cmd"
	"github.com/juanbolano/mini-trello/internal/cli"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
