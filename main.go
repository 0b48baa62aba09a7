// Package main provides the entry point for c8sim.
// c8sim is a CHIP-8 interpreter with a headless runner and a desktop host.
//
// For the full CLI, use: go run ./cmd/c8sim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("c8sim - CHIP-8 Interpreter")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  go run ./cmd/c8sim [options] <program.ch8>    headless runner")
	fmt.Println("  go run ./cmd/c8desk [options] [program.ch8]   desktop window")
	fmt.Println("  go run ./cmd/c8disasm <program.ch8>           disassembler")
	fmt.Println("  go run ./cmd/benchmark                        interpreter benchmarks")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/c8sim -h' for the runner options.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/c8sim' instead.")
	}
}
