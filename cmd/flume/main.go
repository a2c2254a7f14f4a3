// Command flume provides a CLI for conditional stream copies and chunk
// joining built on the flume library.
package main

import (
	"os"

	"github.com/meigma/flume/cmd/flume/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
