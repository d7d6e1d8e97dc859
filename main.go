// Package main is the entry point for the csstats CLI tool, which parses
// Counter-Strike server logs and computes player stats and skill ratings.
package main

import "github.com/Laski/counter-strike-docker/cmd"

func main() {
	cmd.Execute()
}
