package main

import (
	"flag"
	"fmt"
	"os"

	impl "github.com/phroun/aocscript/src"
	"golang.org/x/term"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug output")
	flag.BoolVar(debugFlag, "d", false, "Enable debug output (short)")
	configFlag := flag.String("config", "", "Config file (default $AOC_CONFIG or ~/.aoc/config.yaml)")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "aoc-repl requires a terminal; use aoc to run a script file")
		os.Exit(2)
	}

	configPath := *configFlag
	if configPath == "" {
		configPath = impl.DefaultConfigPath()
	}
	config, err := impl.LoadConfigFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	if *debugFlag {
		config.Debug = true
	}

	impl.NewREPL(impl.New(config), os.Stdout).Run()
}
