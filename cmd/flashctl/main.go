//go:build !tinygo

// Command flashctl erases, reads and writes partitions of a host flash image
// through the same checks the firmware uses.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
