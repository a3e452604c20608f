// Package pqradar provides the command-line interface for the pqradar tool.
// It configures subcommands (scan, report, risk, serve), parses flags, and
// executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/pqradar/pqradar/cmd/pqradar"
//	func main() { pqradar.Execute() }
package pqradar
