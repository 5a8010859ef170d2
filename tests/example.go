package main

// This is an example of using AoC script as a library in a Go application

import (
	"bytes"
	"fmt"
	"os"

	"github.com/phroun/aocscript"
)

const puzzleInput = `199
200
208
210
200
207
240
269
260
263
`

func main() {
	// Serve load from memory instead of the file system
	config := aocscript.DefaultConfig()
	config.Color = aocscript.ColorAlways
	config.ReadFile = func(path string) ([]byte, error) {
		if path == "depths.txt" {
			return []byte(puzzleInput), nil
		}
		return os.ReadFile(path)
	}

	in := aocscript.New(config)

	fmt.Println("=== AoC script Example ===")
	fmt.Println()

	// Example 1: Arithmetic and printing
	fmt.Println("Example 1: Arithmetic")
	run(in, `x = 5; y = x + 3 * 2; print y;`)
	fmt.Println()

	// Example 2: Counting increases in the puzzle input
	fmt.Println("Example 2: Loading input")
	run(in, `
load "depths.txt";
increases = 0;
previous = -1;
loop DAY lines:
  depth = LINE as INT;
  if previous >= 0: if depth > previous: increases = increases + 1; else: end; else: end;
  previous = depth;
loopstop;
print increases;
assert increases == 7 : "increase count FAILED";
print "depth check SUCCESS";
`)
	fmt.Println()

	// Example 3: State persists between runs
	fmt.Println("Example 3: Sorted lists across runs")
	run(in, `sorted INT list depths;`)
	run(in, `loop DAY lines: depths << LINE as INT; loopstop;`)
	run(in, `print depths;`)
	fmt.Printf("Go sees %d depths, smallest %s\n", len(in.Lists()["depths"]), in.Lists()["depths"][0])
	fmt.Println()

	// Example 4: Errors carry positions
	fmt.Println("Example 4: Error reporting")
	run(in, "total = 1;\ntotal = total + \"one\";")
	fmt.Println()

	// Example 5: Inspecting the parse without running
	fmt.Println("Example 5: Parsing only")
	program, err := aocscript.ParseString(`loop 3 times: if ITER == 1: break; else: end; loopstop;`, "inline.aoc")
	if err != nil {
		fmt.Println("parse failed:", err)
	} else {
		fmt.Println(program)
	}
	fmt.Println()

	// Example 6: Capturing output
	fmt.Println("Example 6: Captured output")
	var captured bytes.Buffer
	quiet := aocscript.New(&aocscript.Config{Stdout: &captured, Color: aocscript.ColorNever})
	if err := quiet.Run(`simon says "hello"; n = 2 modulo 2; print n;`, "captured.aoc"); err == nil {
		fmt.Printf("captured %q\n", captured.String())
	}
	fmt.Println()

	fmt.Println("=== Examples Complete ===")
}

func run(in *aocscript.Interpreter, source string) {
	if err := in.Run(source, "example.aoc"); err != nil {
		in.ReportError(err, source)
	}
}
