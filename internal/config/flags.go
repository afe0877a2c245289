package config

import (
	"flag"
	"os"
)

// parses CLI flags for the policies subcommand
func ParsePolicyFlags() Flags {
	args := os.Args[2:]

	fs := flag.NewFlagSet("policies", flag.ExitOnError)
	path := fs.String("path", "./data", "path to the PDF policy directory")
	clearFlag := fs.Bool("clear", false, "clear existing chunks before ingesting")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{Path: *path, Clear: *clearFlag}
}

// returns default flags for policy ingestion
func DefaultPolicyFlags() Flags {
	return Flags{Path: "./data", Clear: false}
}
