// Package main provides the entry point for SRAMSim.
// SRAMSim is a cycle-accurate model of a byte-maskable, registered-output
// memory array, driven on the Akita simulation engine.
//
// For the full CLI, use: go run ./cmd/sramsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("SRAMSim - byte-maskable synchronous memory simulator")
	fmt.Println("Built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: sramsim <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  run        Run a stimulus file, --scenario or --random program")
	fmt.Println("  scenarios  List the built-in scenarios")
	fmt.Println("  config     Print the effective configuration")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/sramsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/sramsim' instead.")
	}
}
