// src/wasm/main.go
//go:build js && wasm
// +build js,wasm

package main

import (
	"bytes"
	"fmt"
	"syscall/js"

	aocscript "github.com/phroun/aocscript"
)

// wasmAoC wraps one interpreter session and the puzzle inputs JS has
// supplied for load
type wasmAoC struct {
	in     *aocscript.Interpreter
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	inputs map[string]string
}

func newWasmAoC() *wasmAoC {
	w := &wasmAoC{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		inputs: make(map[string]string),
	}
	w.in = aocscript.New(&aocscript.Config{
		Color:            aocscript.ColorAlways,
		ShowErrorContext: true,
		ContextLines:     2,
		Stdout:           w.stdout,
		Stderr:           w.stderr,
		ReadFile:         w.readInput,
	})
	return w
}

func (w *wasmAoC) readInput(path string) ([]byte, error) {
	text, ok := w.inputs[path]
	if !ok {
		return nil, fmt.Errorf("no input named %s; call aocscript_set_input first", path)
	}
	return []byte(text), nil
}

// --- JS bridge functions ---

// wasmRun is called from JS: aocscript_run(source: string)
// It returns {ok, stdout, stderr}.
func (w *wasmAoC) wasmRun(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return false
	}
	source := args[0].String()

	w.stdout.Reset()
	w.stderr.Reset()
	err := w.in.Run(source, "<browser>")
	if err != nil {
		w.in.ReportError(err, source)
	}
	return map[string]interface{}{
		"ok":     err == nil,
		"stdout": w.stdout.String(),
		"stderr": w.stderr.String(),
	}
}

// wasmSetInput is called from JS: aocscript_set_input(name: string, text: string)
func (w *wasmAoC) wasmSetInput(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return false
	}
	w.inputs[args[0].String()] = args[1].String()
	return true
}

// wasmReset is called from JS: aocscript_reset()
func (w *wasmAoC) wasmReset(this js.Value, args []js.Value) interface{} {
	w.in.Reset()
	return true
}

// --- Main entrypoint ---
func main() {
	wasm := newWasmAoC()

	// Expose JS functions
	js.Global().Set("aocscript_run", js.FuncOf(wasm.wasmRun))
	js.Global().Set("aocscript_set_input", js.FuncOf(wasm.wasmSetInput))
	js.Global().Set("aocscript_reset", js.FuncOf(wasm.wasmReset))

	fmt.Println("AoC script WASM ready!")

	// Keep the WASM runtime alive
	select {}
}
