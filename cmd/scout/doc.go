// Package scout provides the command-line interface for Scout. It configures
// subcommands (init, scan, config, cache), parses flags, and executes the
// selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/scout/scout/cmd/scout"
//	func main() { scout.Execute() }
package scout
