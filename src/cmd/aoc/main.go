package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phroun/aocscript"
	"github.com/phroun/aocscript/src/pkg/console"
)

var version = "dev" // set via -ldflags at build time

// Exit codes
const (
	exitOK          = 0
	exitScriptError = 1
	exitUsage       = 2
	exitNotAoC      = 3
	exitNotFound    = 4
)

// errorPrintf prints an error message to stderr, using color if supported
func errorPrintf(format string, args ...interface{}) {
	out := console.New(os.Stderr, console.SupportsColor(os.Stderr))
	out.Colored(console.Yellow, fmt.Sprintf(format, args...))
}

func main() {
	os.Exit(run())
}

func run() int {
	debugFlag := flag.Bool("debug", false, "Enable debug output")
	flag.BoolVar(debugFlag, "d", false, "Enable debug output (short)")
	tokensFlag := flag.Bool("tokens", false, "Print the token stream and exit")
	astFlag := flag.Bool("ast", false, "Print the parsed program and exit")
	configFlag := flag.String("config", "", "Config file (default $AOC_CONFIG or ~/.aoc/config.yaml)")
	colorFlag := flag.String("color", "", "Color output: auto, always or never")
	inputDirFlag := flag.String("input-dir", "", "Directory relative load paths are resolved against")
	versionFlag := flag.Bool("version", false, "Show version and exit")

	flag.Usage = showUsage
	flag.Parse()

	if *versionFlag {
		fmt.Printf("aoc, the AoC script interpreter version %s\n", version)
		return exitOK
	}

	args := flag.Args()
	if len(args) != 1 {
		errorPrintf("Error: expected exactly one script file, got %d arguments\n", len(args))
		showUsage()
		return exitUsage
	}
	scriptFile := args[0]
	if filepath.Ext(scriptFile) != ".aoc" {
		errorPrintf("Error: %s is not an .aoc file\n", scriptFile)
		return exitNotAoC
	}

	content, err := os.ReadFile(scriptFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			errorPrintf("Error: Script file not found: %s\n", scriptFile)
		} else {
			errorPrintf("Error reading script file: %v\n", err)
		}
		return exitNotFound
	}
	source := string(content)

	configPath := *configFlag
	if configPath == "" {
		configPath = aocscript.DefaultConfigPath()
	}
	config, err := aocscript.LoadConfigFile(configPath)
	if err != nil {
		errorPrintf("Warning: %v (using defaults)\n", err)
	}
	if *debugFlag {
		config.Debug = true
	}
	if *colorFlag != "" {
		switch mode := aocscript.ColorMode(*colorFlag); mode {
		case aocscript.ColorAuto, aocscript.ColorAlways, aocscript.ColorNever:
			config.Color = mode
		default:
			errorPrintf("Error: -color must be auto, always or never\n")
			return exitUsage
		}
	}
	if *inputDirFlag != "" {
		config.InputDir = *inputDirFlag
	} else if config.InputDir == "" {
		config.InputDir = filepath.Dir(scriptFile)
	}

	in := aocscript.New(config)

	if *tokensFlag {
		tokens, err := in.Tokens(source, scriptFile)
		for _, tok := range tokens {
			fmt.Printf("%d:%d\t%s\n", tok.Position.Line, tok.Position.Column, tok)
		}
		if err != nil {
			in.ReportError(err, source)
			return exitScriptError
		}
		return exitOK
	}

	if *astFlag {
		program, err := in.Parse(source, scriptFile)
		if err != nil {
			in.ReportError(err, source)
			return exitScriptError
		}
		fmt.Println(program)
		return exitOK
	}

	if err := in.Run(source, scriptFile); err != nil {
		in.ReportError(err, source)
		return exitScriptError
	}
	return exitOK
}

func showUsage() {
	usage := `Usage: aoc [options] script.aoc

Run an AoC script.

Options:
  -d, -debug          Enable debug output
  -tokens             Print the token stream and exit
  -ast                Print the parsed program and exit
  -config FILE        Config file (default $AOC_CONFIG or ~/.aoc/config.yaml)
  -color MODE         Color output: auto, always or never
  -input-dir DIR      Directory relative load paths are resolved against
                      (default: the script's directory)
  -version            Show version and exit

Exit codes:
  0  success
  1  the script failed with a lex, syntax or runtime error
  2  wrong number of arguments
  3  the argument is not an .aoc file
  4  the script file could not be read

Examples:
  aoc day01.aoc
  aoc -ast day01.aoc
`
	fmt.Fprint(os.Stderr, usage)
}
