// Package phantom provides the command-line interface for the Phantom
// credential checker. It configures subcommands (serve, scan, redact,
// check, generate), parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/phantomsec/phantom/cmd/phantom"
//	func main() { phantom.Execute() }
package phantom
