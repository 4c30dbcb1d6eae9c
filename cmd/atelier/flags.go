// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --dir, --server, --model, --agent, --verbose, --version

package main

import "flag"

type cliArgs struct {
	dir     string
	server  string
	model   string
	agent   string
	verbose bool
	version bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.StringVar(&args.dir, "dir", "", "Workspace directory (defaults to cwd)")
	flag.StringVar(&args.server, "server", "", "Workspace server address (host:port)")
	flag.StringVar(&args.model, "model", "", "Model to use")
	flag.StringVar(&args.agent, "agent", "", "Agent to use")
	flag.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")

	flag.Parse()
	return args
}
