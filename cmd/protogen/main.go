// Command protogen patches malformed protobuf schemas and compiles them
// with protoc. It is a one-shot build-time tool; the rest of the module
// never interacts with it at runtime.
package main

import (
	"os"

	"github.com/meigma/flume/cmd/protogen/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
