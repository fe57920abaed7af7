// ABOUTME: Entry point for the hwVisualiser CLI
// ABOUTME: Command-line tool for hardware inventory correlation and diagram generation

package main

import (
	"fmt"
	"os"

	"github.com/ahmedalalousi/hwVisualiser/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
