// Package main is the entrypoint for splitqueued.
package main

import "github.com/tutu-network/splitqueue/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
