// codewriter renders code from templates over a model of Go types.
package main

import (
	"os"

	"codewriter/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
