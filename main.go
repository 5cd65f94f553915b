package main

import (
	"os"

	"github.com/codalab/cl-launcher/internal/cli"
)

func main() {
	os.Exit(cli.Launch(os.Args))
}
