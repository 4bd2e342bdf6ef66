// Command vantage runs quotes, fundamentals and valuations from the terminal
// against the same services the server exposes.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
