package main

import (
	"fmt"
	"os"

	"github.com/codalab/cl-launcher/internal/cli"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.ExecuteDoctor(version, commit, date); err != nil {
		fmt.Fprintf(os.Stderr, "cl-doctor: %v\n", err)
		os.Exit(1)
	}
}
