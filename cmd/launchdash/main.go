// Package main is the launchdash command: a dashboard over SpaceX launch records.
package main

import (
	"os"

	"github.com/leapstack-labs/launchdash/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
