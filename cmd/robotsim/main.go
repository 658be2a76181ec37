// Package main is the robotsim command line tool.
package main

import (
	"fmt"
	"os"

	"go.viam.com/robotsim/cli"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "robotsim: %v\n", err)
		os.Exit(1)
	}
}
