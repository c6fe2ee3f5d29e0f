package main

import (
	"os"

	"github.com/idilsaglam/tasklist/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args, cli.DefaultEnv()))
}
