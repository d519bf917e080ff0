package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-figcon/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "figcon: %v\n", err)
		os.Exit(1)
	}
}
