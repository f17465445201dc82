package main

import (
	"fmt"
	"os"

	"github.com/TimelordUK/logdeck/internal/cli"
	logio "github.com/TimelordUK/logdeck/internal/io"
	"github.com/TimelordUK/logdeck/internal/logger"
)

// main is the entry point for the application
func main() {
	os.Exit(runApp(os.Args[1:]))
}

// runApp contains the main application logic and returns the exit code
func runApp(args []string) int {
	opts, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	switch opts.Type {
	case cli.CommandHelp:
		return 0
	case cli.CommandInit:
		path, err := cli.RunInit(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(os.Stderr, "Wrote default config to %s\n", path)
		return 0
	}

	cfg, err := cli.LoadConfig(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logFile, err := logger.OpenLogFile(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logFile.Close()

	log := logger.NewLoggerWithOutput(cfg, logFile)

	switch opts.Type {
	case cli.CommandExport:
		n, err := cli.RunExport(opts, cfg, logio.NewMappedSource(), os.Stdout, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if opts.Export.Output != "" && opts.Export.Output != "-" {
			fmt.Fprintf(os.Stderr, "Exported %d entries to %s\n", n, opts.Export.Output)
		}
	default:
		if err := cli.RunViewer(opts, cfg, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	return 0
}
