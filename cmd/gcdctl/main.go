package main

import (
	"fmt"
	"os"

	"github.com/nivalis-labs/gcdctl/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Setup(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cli.Teardown()

	if err := cli.Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}
