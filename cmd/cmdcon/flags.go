package main

import "flag"

// cliArgs captures flags for the interactive entrypoint.
type cliArgs struct {
	cfgPath     string
	historyPath string
	noBanner    bool
	noHistory   bool
	transcript  bool
	last        bool
}

func newFlagSet(name string) (*flag.FlagSet, *cliArgs) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	args := &cliArgs{}

	fs.StringVar(&args.cfgPath, "config", "", "Path to config file (default ~/.cmdcon/config.toml)")
	fs.StringVar(&args.historyPath, "history", "", "Path to history file (default ~/.cmdcon/history.jsonl)")
	fs.BoolVar(&args.noBanner, "no-banner", false, "Suppress the startup banner")
	fs.BoolVar(&args.noHistory, "no-history", false, "Do not load or persist input history")
	fs.BoolVar(&args.transcript, "transcript", true, "Save a session transcript on exit")
	fs.BoolVar(&args.last, "last", false, "Print the most recent transcript and exit")

	return fs, args
}
