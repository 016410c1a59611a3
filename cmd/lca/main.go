// Command lca evaluates the lifecycle CO2 emissions of one piece of
// equipment under a set of operating scenarios.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
